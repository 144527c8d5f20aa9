package usecase

import (
	"context"
	"errors"
	"fmt"

	"hospital-management-backend/internal/converter"
	"hospital-management-backend/internal/delivery/dto"
	"hospital-management-backend/internal/domain/entity"
	"hospital-management-backend/internal/domain/repository"
	"hospital-management-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidTimeFormat    = errors.New("invalid time format, use HH:MM")
	ErrWindowStartAfterEnd  = errors.New("window start time must be before end time")
	ErrDuplicateDayOfWeek   = errors.New("each day of week must appear exactly once")
	ErrWindowNotSlotAligned = errors.New("window times must align to 30-minute boundaries")
)

type AvailabilityUsecase interface {
	GetAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityResponse, error)
	ReplaceAvailability(ctx context.Context, doctorID uuid.UUID, req *dto.ReplaceAvailabilityRequest) (*dto.AvailabilityResponse, error)
}

type availabilityUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	doctorProfileRepo repository.DoctorProfileRepository
	availabilityRepo  repository.AvailabilityWindowRepository
	auditService      service.AuditService
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorProfileRepo repository.DoctorProfileRepository,
	availabilityRepo repository.AvailabilityWindowRepository,
	auditService service.AuditService,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:                db,
		log:               log,
		doctorProfileRepo: doctorProfileRepo,
		availabilityRepo:  availabilityRepo,
		auditService:      auditService,
	}
}

func (u *availabilityUsecase) GetAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityResponse, error) {
	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	windows, err := u.availabilityRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find availability windows: %+v", err)
		return nil, err
	}

	return converter.AvailabilityToResponse(doctorID, windows), nil
}

// ReplaceAvailability swaps the doctor's weekly template wholesale. Existing
// appointments are untouched: a template change only affects future slot
// listings, never bookings already made.
func (u *availabilityUsecase) ReplaceAvailability(ctx context.Context, doctorID uuid.UUID, req *dto.ReplaceAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	windows, err := buildWindows(doctorID, req.Windows)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorProfileRepo.FindByUserID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	if err := u.availabilityRepo.ReplaceForDoctor(tx, doctorID, windows); err != nil {
		u.log.Warnf("Failed to replace availability windows: %+v", err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &doctorID, entity.AuditActionAvailabilityReplace, "availability_window", doctorID.String(), nil, map[string]interface{}{
		"windows": req.Windows,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AvailabilityToResponse(doctorID, windows), nil
}

// buildWindows validates the payload and converts it to entities: exactly one
// window per day of week, each with parseable times, start strictly before end,
// both aligned to the 30-minute slot grid.
func buildWindows(doctorID uuid.UUID, payloads []dto.AvailabilityWindowPayload) ([]entity.AvailabilityWindow, error) {
	seen := make(map[int]bool, 7)
	windows := make([]entity.AvailabilityWindow, 0, len(payloads))

	for _, payload := range payloads {
		day := *payload.DayOfWeek
		if seen[day] {
			return nil, fmt.Errorf("%w: day %d repeated", ErrDuplicateDayOfWeek, day)
		}
		seen[day] = true

		start, err := service.ParseTimeOfDay(payload.StartTime)
		if err != nil {
			return nil, ErrInvalidTimeFormat
		}
		end, err := service.ParseTimeOfDay(payload.EndTime)
		if err != nil {
			return nil, ErrInvalidTimeFormat
		}
		if start >= end {
			return nil, ErrWindowStartAfterEnd
		}
		if start%service.SlotMinutes != 0 || end%service.SlotMinutes != 0 {
			return nil, ErrWindowNotSlotAligned
		}

		windows = append(windows, entity.AvailabilityWindow{
			DoctorID:  doctorID,
			DayOfWeek: day,
			StartTime: payload.StartTime,
			EndTime:   payload.EndTime,
			IsOpen:    payload.IsAvailable,
		})
	}

	return windows, nil
}
