package repository

import (
	"errors"

	"hospital-management-backend/internal/domain/entity"
	domainRepo "hospital-management-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type availabilityWindowRepository struct{}

func NewAvailabilityWindowRepository() domainRepo.AvailabilityWindowRepository {
	return &availabilityWindowRepository{}
}

func (r *availabilityWindowRepository) CreateBatch(db *gorm.DB, windows []entity.AvailabilityWindow) error {
	return db.Create(&windows).Error
}

func (r *availabilityWindowRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilityWindow, error) {
	var windows []entity.AvailabilityWindow
	err := db.Where("doctor_id = ?", doctorID).Order("day_of_week ASC").Find(&windows).Error
	if err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *availabilityWindowRepository) FindByDoctorAndDay(db *gorm.DB, doctorID uuid.UUID, dayOfWeek int) (*entity.AvailabilityWindow, error) {
	var window entity.AvailabilityWindow
	err := db.Where("doctor_id = ? AND day_of_week = ?", doctorID, dayOfWeek).First(&window).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &window, nil
}

// ReplaceForDoctor swaps the weekly template wholesale. The template is never
// partially patched, so delete then re-insert inside the caller's transaction.
func (r *availabilityWindowRepository) ReplaceForDoctor(db *gorm.DB, doctorID uuid.UUID, windows []entity.AvailabilityWindow) error {
	if err := db.Where("doctor_id = ?", doctorID).Delete(&entity.AvailabilityWindow{}).Error; err != nil {
		return err
	}
	return db.Create(&windows).Error
}
