package converter

import (
	"time"

	"hospital-management-backend/internal/delivery/dto"
	"hospital-management-backend/internal/domain/entity"

	"github.com/google/uuid"
)

// AvailabilityToResponse converts a doctor's weekly window set to AvailabilityResponse DTO
func AvailabilityToResponse(doctorID uuid.UUID, windows []entity.AvailabilityWindow) *dto.AvailabilityResponse {
	responses := make([]dto.AvailabilityWindowResponse, len(windows))
	var updatedAt time.Time
	for i, window := range windows {
		responses[i] = dto.AvailabilityWindowResponse{
			DayOfWeek:   window.DayOfWeek,
			StartTime:   window.StartTime,
			EndTime:     window.EndTime,
			IsAvailable: window.IsOpen,
		}
		if window.UpdatedAt.After(updatedAt) {
			updatedAt = window.UpdatedAt
		}
	}

	return &dto.AvailabilityResponse{
		DoctorID:  doctorID,
		Windows:   responses,
		UpdatedAt: updatedAt,
	}
}
