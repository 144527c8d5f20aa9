package repository

import (
	"time"

	"hospital-management-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	// Create inserts a new appointment. The appointments table carries a partial
	// unique index on (doctor_id, date, time_slot) WHERE status != 'cancelled', so a
	// concurrent insert for the same slot fails with a unique violation.
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	// FindActiveSlot returns the non-cancelled appointment occupying the slot, or nil.
	FindActiveSlot(db *gorm.DB, doctorID uuid.UUID, date time.Time, timeSlot string) (*entity.Appointment, error)
	// FindBookedSlots returns the time slots held by non-cancelled appointments for
	// the doctor on the given date, ordered ascending.
	FindBookedSlots(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]string, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error)
	FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	// UpdateStatus transitions id from one status to another, stamping extra columns
	// (cancellation_reason, cancelled_by) in the same statement. Returns affected
	// rows: 0 means the appointment was no longer in the expected source status.
	UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus, extra map[string]interface{}) (int64, error)
}
