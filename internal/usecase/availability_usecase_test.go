package usecase

import (
	"errors"
	"testing"

	"hospital-management-backend/internal/delivery/dto"

	"github.com/google/uuid"
)

func day(d int) *int {
	return &d
}

func fullWeek() []dto.AvailabilityWindowPayload {
	windows := make([]dto.AvailabilityWindowPayload, 7)
	for i := 0; i < 7; i++ {
		windows[i] = dto.AvailabilityWindowPayload{
			DayOfWeek:   day(i),
			StartTime:   "09:00",
			EndTime:     "17:00",
			IsAvailable: true,
		}
	}
	return windows
}

func TestBuildWindows(t *testing.T) {
	doctorID := uuid.New()

	t.Run("valid full week", func(t *testing.T) {
		windows, err := buildWindows(doctorID, fullWeek())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
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
		}
	})

	t.Run("closed days keep their times", func(t *testing.T) {
		payloads := fullWeek()
		payloads[0].IsAvailable = false
		windows, err := buildWindows(doctorID, payloads)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if windows[0].IsOpen {
			t.Error("expected Sunday to stay closed")
		}
	})

	t.Run("duplicate day", func(t *testing.T) {
		payloads := fullWeek()
		payloads[6].DayOfWeek = day(0)
		_, err := buildWindows(doctorID, payloads)
		if !errors.Is(err, ErrDuplicateDayOfWeek) {
			t.Errorf("err = %v, want ErrDuplicateDayOfWeek", err)
		}
	})

	t.Run("start after end", func(t *testing.T) {
		payloads := fullWeek()
		payloads[2].StartTime = "17:00"
		payloads[2].EndTime = "09:00"
		_, err := buildWindows(doctorID, payloads)
		if !errors.Is(err, ErrWindowStartAfterEnd) {
			t.Errorf("err = %v, want ErrWindowStartAfterEnd", err)
		}
	})

	t.Run("start equals end", func(t *testing.T) {
		payloads := fullWeek()
		payloads[2].StartTime = "09:00"
		payloads[2].EndTime = "09:00"
		_, err := buildWindows(doctorID, payloads)
		if !errors.Is(err, ErrWindowStartAfterEnd) {
			t.Errorf("err = %v, want ErrWindowStartAfterEnd", err)
		}
	})

	t.Run("unparseable time", func(t *testing.T) {
		payloads := fullWeek()
		payloads[4].StartTime = "9am"
		_, err := buildWindows(doctorID, payloads)
		if !errors.Is(err, ErrInvalidTimeFormat) {
			t.Errorf("err = %v, want ErrInvalidTimeFormat", err)
		}
	})

	t.Run("off-grid time", func(t *testing.T) {
		payloads := fullWeek()
		payloads[5].StartTime = "09:15"
		_, err := buildWindows(doctorID, payloads)
		if !errors.Is(err, ErrWindowNotSlotAligned) {
			t.Errorf("err = %v, want ErrWindowNotSlotAligned", err)
		}
	})
}
