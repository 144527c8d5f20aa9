package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrStaleTransition means the requested target is never reachable from the current status
	ErrStaleTransition = errors.New("transition not allowed from current status")
	// ErrForbiddenTransition means the actor's role or ownership does not permit the transition
	ErrForbiddenTransition = errors.New("actor is not allowed to perform this transition")
	// ErrCancellationReasonRequired means a cancellation was requested without a reason
	ErrCancellationReasonRequired = errors.New("cancellation reason is required")
	// ErrRevertPastAppointment means an admin tried to revert a cancelled appointment dated in the past
	ErrRevertPastAppointment = errors.New("cannot revert a cancelled appointment dated in the past")
)

// TransitionRequest carries everything needed to decide whether a status change is legal.
// Today must be a date-only value (see DateOnly).
type TransitionRequest struct {
	Target    AppointmentStatus
	ActorID   uuid.UUID
	ActorRole string
	Reason    string
	Today     time.Time
}

type transitionRule struct {
	roles []string
	guard func(a *Appointment, req TransitionRequest) error
}

func reasonRequired(_ *Appointment, req TransitionRequest) error {
	if strings.TrimSpace(req.Reason) == "" {
		return ErrCancellationReasonRequired
	}
	return nil
}

func revertDateGuard(a *Appointment, req TransitionRequest) error {
	if DateOnly(a.Date).Before(req.Today) {
		return ErrRevertPastAppointment
	}
	return nil
}

// transitions is the authoritative status table. Completed is terminal; cancelled can
// only be reverted to confirmed by an admin while the appointment date has not passed.
// pending -> completed is an admin-only bypass; the doctor flow must confirm first.
var transitions = map[AppointmentStatus]map[AppointmentStatus]transitionRule{
	AppointmentStatusPending: {
		AppointmentStatusConfirmed: {roles: []string{RoleAdmin, RoleDoctor}},
		AppointmentStatusCancelled: {roles: []string{RoleAdmin, RoleDoctor, RolePatient}, guard: reasonRequired},
		AppointmentStatusCompleted: {roles: []string{RoleAdmin}},
	},
	AppointmentStatusConfirmed: {
		AppointmentStatusCancelled: {roles: []string{RoleAdmin, RoleDoctor, RolePatient}, guard: reasonRequired},
		AppointmentStatusCompleted: {roles: []string{RoleAdmin, RoleDoctor}},
	},
	AppointmentStatusCancelled: {
		AppointmentStatusConfirmed: {roles: []string{RoleAdmin}, guard: revertDateGuard},
	},
}

// ValidateTransition checks the status table, the actor's role, ownership, and any
// per-transition guard. It does not mutate the appointment.
func (a *Appointment) ValidateTransition(req TransitionRequest) error {
	targets, ok := transitions[a.Status]
	if !ok {
		return ErrStaleTransition
	}
	rule, ok := targets[req.Target]
	if !ok {
		return ErrStaleTransition
	}

	allowed := false
	for _, role := range rule.roles {
		if role == req.ActorRole {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrForbiddenTransition
	}

	// Non-admin actors may only act on their own appointments
	switch req.ActorRole {
	case RoleDoctor:
		if a.DoctorID != req.ActorID {
			return ErrForbiddenTransition
		}
	case RolePatient:
		if a.PatientID != req.ActorID {
			return ErrForbiddenTransition
		}
	}

	if rule.guard != nil {
		if err := rule.guard(a, req); err != nil {
			return err
		}
	}
	return nil
}
