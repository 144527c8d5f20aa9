package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type MedicinePayload struct {
	Name      string `json:"name" validate:"required"`
	Dosage    string `json:"dosage" validate:"required"`
	Frequency string `json:"frequency" validate:"required"`
	Duration  string `json:"duration" validate:"omitempty"`
}

type PrescriptionPayload struct {
	Diagnosis string            `json:"diagnosis" validate:"required"`
	Medicines []MedicinePayload `json:"medicines" validate:"required,min=1,dive"`
	Notes     string            `json:"notes" validate:"omitempty"`
}

// Response DTOs

type MedicineResponse struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration,omitempty"`
}

type PrescriptionResponse struct {
	ID            uuid.UUID          `json:"id"`
	AppointmentID uuid.UUID          `json:"appointment_id"`
	Diagnosis     string             `json:"diagnosis"`
	Medicines     []MedicineResponse `json:"medicines"`
	Notes         string             `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}
