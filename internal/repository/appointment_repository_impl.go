package repository

import (
	"errors"
	"time"

	"hospital-management-backend/internal/domain/entity"
	domainRepo "hospital-management-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Doctor.User").Preload("Patient.User").Preload("Prescription").
		Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindActiveSlot(db *gorm.DB, doctorID uuid.UUID, date time.Time, timeSlot string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("doctor_id = ? AND date = ? AND time_slot = ? AND status != ?",
		doctorID, entity.DateOnly(date), timeSlot, entity.AppointmentStatusCancelled).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindBookedSlots(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]string, error) {
	var slots []string
	err := db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND date = ? AND status != ?",
			doctorID, entity.DateOnly(date), entity.AppointmentStatusCancelled).
		Order("time_slot ASC").
		Pluck("time_slot", &slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Doctor.User").Preload("Prescription").
		Where("patient_id = ?", patientID).
		Order("date DESC, time_slot DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient.User").Preload("Prescription").
		Where("doctor_id = ?", doctorID).
		Order("date ASC, time_slot ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindAll returns appointments across all doctors, optionally filtered.
func (r *appointmentRepository) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Model(&entity.Appointment{})

	if filter != nil {
		if filter.StartAt != "" {
			query = query.Where("appointments.date >= ?", filter.StartAt)
		}
		if filter.EndAt != "" {
			query = query.Where("appointments.date <= ?", filter.EndAt)
		}
		if filter.Status != "" {
			query = query.Where("appointments.status = ?", filter.Status)
		}
		if filter.DoctorName != "" {
			query = query.
				Joins("JOIN doctor_profiles ON doctor_profiles.user_id = appointments.doctor_id").
				Joins("JOIN users ON users.id = doctor_profiles.user_id").
				Where("users.full_name ILIKE ?", "%"+filter.DoctorName+"%")
		}
	}

	err := query.
		Preload("Doctor.User").Preload("Patient.User").
		Order("appointments.date ASC, appointments.time_slot ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// UpdateStatus transitions an appointment atomically: the WHERE clause pins the
// expected source status so a concurrent transition loses with 0 affected rows.
func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus, extra map[string]interface{}) (int64, error) {
	updates := map[string]interface{}{"status": to}
	for column, value := range extra {
		updates[column] = value
	}

	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return result.RowsAffected, result.Error
}
