package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Prescription is created by a doctor when an appointment is completed.
// Each appointment has at most one prescription.
type Prescription struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"appointment_id"`
	Diagnosis     string    `gorm:"type:text;not null" json:"diagnosis"`
	Medicines     Medicines `gorm:"type:jsonb;not null" json:"medicines"`
	Notes         string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

// Medicine is one entry of a prescription's ordered medicine list
type Medicine struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration,omitempty"`
}

// Medicines is stored as a JSONB array, preserving order
type Medicines []Medicine

// Value implements driver.Valuer
func (m Medicines) Value() (driver.Value, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner
func (m *Medicines) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	var result []Medicine
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*m = Medicines(result)
	return nil
}
