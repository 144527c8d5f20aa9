package entity

import (
	"testing"

	"github.com/google/uuid"
)

func TestDefaultAvailabilityTemplate(t *testing.T) {
	doctorID := uuid.New()
	windows := DefaultAvailabilityTemplate(doctorID)

	if len(windows) != 7 {
		t.Fatalf("got %d windows, want 7", len(windows))
	}
	for i, w := range windows {
		if w.DoctorID != doctorID {
			t.Errorf("window %d doctor = %v, want %v", i, w.DoctorID, doctorID)
		}
		if w.DayOfWeek != i {
			t.Errorf("window %d day = %d, want %d", i, w.DayOfWeek, i)
		}
		if w.StartTime != DefaultWindowStart || w.EndTime != DefaultWindowEnd {
			t.Errorf("window %d times = %s-%s, want %s-%s", i, w.StartTime, w.EndTime, DefaultWindowStart, DefaultWindowEnd)
		}
		if !w.IsOpen {
			t.Errorf("window %d should be open", i)
		}
	}
}

func TestValidAppointmentType(t *testing.T) {
	for _, valid := range []AppointmentType{
		AppointmentTypeGeneralCheckup,
		AppointmentTypeFollowUp,
		AppointmentTypeConsultation,
		AppointmentTypeEmergency,
	} {
		if !ValidAppointmentType(valid) {
			t.Errorf("%q should be valid", valid)
		}
	}
	if ValidAppointmentType("Surgery") {
		t.Error("unknown type should be invalid")
	}
}

func TestRoleNameForID(t *testing.T) {
	tests := []struct {
		id   int
		want string
	}{
		{RoleIDAdmin, RoleAdmin},
		{RoleIDDoctor, RoleDoctor},
		{RoleIDPatient, RolePatient},
		{99, ""},
	}
	for _, tt := range tests {
		if got := RoleNameForID(tt.id); got != tt.want {
			t.Errorf("RoleNameForID(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
