package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// AppointmentType is the fixed set of visit types
type AppointmentType string

const (
	AppointmentTypeGeneralCheckup AppointmentType = "General Checkup"
	AppointmentTypeFollowUp       AppointmentType = "Follow-up"
	AppointmentTypeConsultation   AppointmentType = "Consultation"
	AppointmentTypeEmergency      AppointmentType = "Emergency"
)

// ValidAppointmentType reports whether t is one of the supported visit types
func ValidAppointmentType(t AppointmentType) bool {
	switch t {
	case AppointmentTypeGeneralCheckup, AppointmentTypeFollowUp, AppointmentTypeConsultation, AppointmentTypeEmergency:
		return true
	}
	return false
}

// Appointment represents one booking of a doctor's time slot by a patient.
// At most one non-cancelled appointment may exist per (doctor_id, date, time_slot);
// the database enforces this with a partial unique index.
type Appointment struct {
	ID                 uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID           uuid.UUID         `gorm:"type:uuid;not null;index:idx_appointments_doctor_date" json:"doctor_id"`
	Date               time.Time         `gorm:"type:date;not null;index:idx_appointments_doctor_date" json:"date"`
	TimeSlot           string            `gorm:"type:varchar(5);not null" json:"time_slot"`
	Type               AppointmentType   `gorm:"type:varchar(20);not null" json:"type"`
	Status             AppointmentStatus `gorm:"type:varchar(10);not null;default:'pending';index" json:"status"`
	CancellationReason string            `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CancelledBy        string            `gorm:"type:varchar(10)" json:"cancelled_by,omitempty"`
	CreatedAt          time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient      PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor       DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Prescription *Prescription  `gorm:"foreignKey:AppointmentID" json:"prescription,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsPending checks if the appointment is in pending status
func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}

// IsCancelled checks if the appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// IsCompleted checks if the appointment is completed
func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentStatusCompleted
}

// DateOnly normalizes t to midnight UTC so calendar dates compare without a time component
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
