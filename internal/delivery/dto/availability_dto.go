package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// AvailabilityWindowPayload is one day of the weekly template.
// DayOfWeek: 0=Sunday .. 6=Saturday. Times are HH:MM 24h.
type AvailabilityWindowPayload struct {
	DayOfWeek   *int   `json:"day_of_week" validate:"required,min=0,max=6"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time" validate:"required"`
	IsAvailable bool   `json:"is_available"`
}

// ReplaceAvailabilityRequest replaces the doctor's weekly template wholesale:
// exactly 7 windows, one per day of week.
type ReplaceAvailabilityRequest struct {
	Windows []AvailabilityWindowPayload `json:"windows" validate:"required,len=7,dive"`
}

// Response DTOs

type AvailabilityWindowResponse struct {
	DayOfWeek   int    `json:"day_of_week"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

type AvailabilityResponse struct {
	DoctorID  uuid.UUID                    `json:"doctor_id"`
	Windows   []AvailabilityWindowResponse `json:"windows"`
	UpdatedAt time.Time                    `json:"updated_at"`
}

// AvailableSlotsResponse lists the bookable slots for one doctor on one date.
// Reason is set only when Slots is empty because of the date or the template.
type AvailableSlotsResponse struct {
	DoctorID uuid.UUID `json:"doctor_id"`
	Date     string    `json:"date"`
	Slots    []string  `json:"slots"`
	Reason   string    `json:"reason_if_empty,omitempty"`
}
