package usecase

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsDuplicateKeyError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{
			name:       "unique violation on matching constraint",
			err:        &pgconn.PgError{Code: "23505", ConstraintName: "uq_appointments_active_slot"},
			constraint: "active_slot",
			want:       true,
		},
		{
			name:       "constraint match is case insensitive",
			err:        &pgconn.PgError{Code: "23505", ConstraintName: "UQ_Appointments_Active_Slot"},
			constraint: "active_slot",
			want:       true,
		},
		{
			name:       "wrapped error is unwrapped",
			err:        fmt.Errorf("create: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}),
			constraint: "email",
			want:       true,
		},
		{
			name:       "unique violation on a different constraint",
			err:        &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"},
			constraint: "active_slot",
			want:       false,
		},
		{
			name:       "foreign key violation is not a duplicate",
			err:        &pgconn.PgError{Code: "23503", ConstraintName: "uq_appointments_active_slot"},
			constraint: "active_slot",
			want:       false,
		},
		{
			name:       "plain error",
			err:        errors.New("connection refused"),
			constraint: "active_slot",
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDuplicateKeyError(tt.err, tt.constraint); got != tt.want {
				t.Errorf("isDuplicateKeyError = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsForeignKeyError(t *testing.T) {
	fkErr := &pgconn.PgError{Code: "23503", ConstraintName: "appointments_patient_id_fkey"}

	if !isForeignKeyError(fkErr, "patient") {
		t.Error("expected foreign key violation to match")
	}
	if isForeignKeyError(fkErr, "doctor") {
		t.Error("expected mismatched constraint to fail")
	}
	if isForeignKeyError(&pgconn.PgError{Code: "23505", ConstraintName: "appointments_patient_id_fkey"}, "patient") {
		t.Error("expected unique violation to fail the foreign key check")
	}
}
