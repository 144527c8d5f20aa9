package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type BookAppointmentRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" validate:"required"`
	Date     string    `json:"date" validate:"required"`      // Format: YYYY-MM-DD
	TimeSlot string    `json:"time_slot" validate:"required"` // Format: HH:MM
	Type     string    `json:"type" validate:"required"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" validate:"required,min=1"`
}

// CompleteAppointmentRequest is used by the owning doctor; the prescription is
// optional and may be supplied later through the prescription endpoint.
type CompleteAppointmentRequest struct {
	Prescription *PrescriptionPayload `json:"prescription" validate:"omitempty"`
}

// UpdateAppointmentStatusRequest is the admin status entry point. Reason is
// required when Status is cancelled; Prescription is honored when Status is
// completed.
type UpdateAppointmentStatusRequest struct {
	Status       string               `json:"status" validate:"required,oneof=confirmed completed cancelled"`
	Reason       string               `json:"reason" validate:"omitempty"`
	Prescription *PrescriptionPayload `json:"prescription" validate:"omitempty"`
}

// Response DTOs

type AppointmentResponse struct {
	ID                 uuid.UUID             `json:"id"`
	PatientID          uuid.UUID             `json:"patient_id"`
	DoctorID           uuid.UUID             `json:"doctor_id"`
	Date               string                `json:"date"`
	TimeSlot           string                `json:"time_slot"`
	Type               string                `json:"type"`
	Status             string                `json:"status"`
	CancellationReason string                `json:"cancellation_reason,omitempty"`
	CancelledBy        string                `json:"cancelled_by,omitempty"`
	Doctor             *DoctorResponse       `json:"doctor,omitempty"`
	Patient            *PatientResponse      `json:"patient,omitempty"`
	Prescription       *PrescriptionResponse `json:"prescription,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
