package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestValidateTransition(t *testing.T) {
	doctorID := uuid.New()
	patientID := uuid.New()
	adminID := uuid.New()
	otherID := uuid.New()

	today := DateOnly(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))

	appointment := func(status AppointmentStatus, date time.Time) *Appointment {
		return &Appointment{
			ID:        uuid.New(),
			PatientID: patientID,
			DoctorID:  doctorID,
			Date:      date,
			TimeSlot:  "09:00",
			Status:    status,
		}
	}

	tests := []struct {
		name    string
		a       *Appointment
		req     TransitionRequest
		wantErr error
	}{
		{
			name: "doctor confirms own pending appointment",
			a:    appointment(AppointmentStatusPending, today),
			req:  TransitionRequest{Target: AppointmentStatusConfirmed, ActorID: doctorID, ActorRole: RoleDoctor, Today: today},
		},
		{
			name:    "doctor cannot confirm another doctor's appointment",
			a:       appointment(AppointmentStatusPending, today),
			req:     TransitionRequest{Target: AppointmentStatusConfirmed, ActorID: otherID, ActorRole: RoleDoctor, Today: today},
			wantErr: ErrForbiddenTransition,
		},
		{
			name:    "patient cannot confirm",
			a:       appointment(AppointmentStatusPending, today),
			req:     TransitionRequest{Target: AppointmentStatusConfirmed, ActorID: patientID, ActorRole: RolePatient, Today: today},
			wantErr: ErrForbiddenTransition,
		},
		{
			name: "patient cancels own pending appointment with reason",
			a:    appointment(AppointmentStatusPending, today),
			req:  TransitionRequest{Target: AppointmentStatusCancelled, ActorID: patientID, ActorRole: RolePatient, Reason: "schedule conflict", Today: today},
		},
		{
			name:    "cancellation requires a reason",
			a:       appointment(AppointmentStatusConfirmed, today),
			req:     TransitionRequest{Target: AppointmentStatusCancelled, ActorID: patientID, ActorRole: RolePatient, Today: today},
			wantErr: ErrCancellationReasonRequired,
		},
		{
			name:    "blank reason does not count",
			a:       appointment(AppointmentStatusPending, today),
			req:     TransitionRequest{Target: AppointmentStatusCancelled, ActorID: doctorID, ActorRole: RoleDoctor, Reason: "   ", Today: today},
			wantErr: ErrCancellationReasonRequired,
		},
		{
			name:    "patient cannot cancel someone else's appointment",
			a:       appointment(AppointmentStatusPending, today),
			req:     TransitionRequest{Target: AppointmentStatusCancelled, ActorID: otherID, ActorRole: RolePatient, Reason: "nope", Today: today},
			wantErr: ErrForbiddenTransition,
		},
		{
			name: "doctor completes own confirmed appointment",
			a:    appointment(AppointmentStatusConfirmed, today),
			req:  TransitionRequest{Target: AppointmentStatusCompleted, ActorID: doctorID, ActorRole: RoleDoctor, Today: today},
		},
		{
			name:    "doctor cannot complete a pending appointment",
			a:       appointment(AppointmentStatusPending, today),
			req:     TransitionRequest{Target: AppointmentStatusCompleted, ActorID: doctorID, ActorRole: RoleDoctor, Today: today},
			wantErr: ErrForbiddenTransition,
		},
		{
			name: "admin may complete a pending appointment directly",
			a:    appointment(AppointmentStatusPending, today),
			req:  TransitionRequest{Target: AppointmentStatusCompleted, ActorID: adminID, ActorRole: RoleAdmin, Today: today},
		},
		{
			name:    "completed is terminal",
			a:       appointment(AppointmentStatusCompleted, today),
			req:     TransitionRequest{Target: AppointmentStatusCancelled, ActorID: adminID, ActorRole: RoleAdmin, Reason: "mistake", Today: today},
			wantErr: ErrStaleTransition,
		},
		{
			name:    "cancelling a cancelled appointment is stale",
			a:       appointment(AppointmentStatusCancelled, today),
			req:     TransitionRequest{Target: AppointmentStatusCancelled, ActorID: adminID, ActorRole: RoleAdmin, Reason: "again", Today: today},
			wantErr: ErrStaleTransition,
		},
		{
			name: "admin reverts a cancelled appointment dated today",
			a:    appointment(AppointmentStatusCancelled, today),
			req:  TransitionRequest{Target: AppointmentStatusConfirmed, ActorID: adminID, ActorRole: RoleAdmin, Today: today},
		},
		{
			name: "admin reverts a cancelled appointment dated tomorrow",
			a:    appointment(AppointmentStatusCancelled, today.AddDate(0, 0, 1)),
			req:  TransitionRequest{Target: AppointmentStatusConfirmed, ActorID: adminID, ActorRole: RoleAdmin, Today: today},
		},
		{
			name:    "revert of a past-dated cancellation is rejected",
			a:       appointment(AppointmentStatusCancelled, today.AddDate(0, 0, -1)),
			req:     TransitionRequest{Target: AppointmentStatusConfirmed, ActorID: adminID, ActorRole: RoleAdmin, Today: today},
			wantErr: ErrRevertPastAppointment,
		},
		{
			name:    "doctor cannot revert a cancellation",
			a:       appointment(AppointmentStatusCancelled, today.AddDate(0, 0, 1)),
			req:     TransitionRequest{Target: AppointmentStatusConfirmed, ActorID: doctorID, ActorRole: RoleDoctor, Today: today},
			wantErr: ErrForbiddenTransition,
		},
		{
			name:    "unknown role is forbidden",
			a:       appointment(AppointmentStatusPending, today),
			req:     TransitionRequest{Target: AppointmentStatusConfirmed, ActorID: otherID, ActorRole: "", Today: today},
			wantErr: ErrForbiddenTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.a.ValidateTransition(tt.req)
			if err != tt.wantErr {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2025, 3, 12, 17, 45, 12, 999, time.UTC)
	got := DateOnly(in)
	want := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOnly = %v, want %v", got, want)
	}
}
