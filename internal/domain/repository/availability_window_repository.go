package repository

import (
	"hospital-management-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilityWindowRepository interface {
	CreateBatch(db *gorm.DB, windows []entity.AvailabilityWindow) error
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilityWindow, error)
	FindByDoctorAndDay(db *gorm.DB, doctorID uuid.UUID, dayOfWeek int) (*entity.AvailabilityWindow, error)
	// ReplaceForDoctor deletes the doctor's template and inserts the new one.
	// Callers run it inside a transaction so the template is never partially replaced.
	ReplaceForDoctor(db *gorm.DB, doctorID uuid.UUID, windows []entity.AvailabilityWindow) error
}
