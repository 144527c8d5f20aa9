package entity

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityWindow represents one day of a doctor's recurring weekly schedule.
// A doctor always has exactly 7 windows, one per day of week (0=Sunday .. 6=Saturday).
// Times are naive local time-of-day strings in 24h HH:MM format.
type AvailabilityWindow struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_availability_doctor_day" json:"doctor_id"`
	DayOfWeek int       `gorm:"not null;uniqueIndex:uq_availability_doctor_day" json:"day_of_week"`
	StartTime string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime   string    `gorm:"type:varchar(5);not null" json:"end_time"`
	IsOpen    bool      `gorm:"not null;default:true" json:"is_available"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (AvailabilityWindow) TableName() string {
	return "availability_windows"
}

// Default template applied when a doctor profile is created.
const (
	DefaultWindowStart = "09:00"
	DefaultWindowEnd   = "19:00"
)

// DefaultAvailabilityTemplate returns the initial 7-day template for a new doctor:
// open every day 09:00-19:00.
func DefaultAvailabilityTemplate(doctorID uuid.UUID) []AvailabilityWindow {
	windows := make([]AvailabilityWindow, 7)
	for day := 0; day < 7; day++ {
		windows[day] = AvailabilityWindow{
			DoctorID:  doctorID,
			DayOfWeek: day,
			StartTime: DefaultWindowStart,
			EndTime:   DefaultWindowEnd,
			IsOpen:    true,
		}
	}
	return windows
}
