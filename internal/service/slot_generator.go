package service

import (
	"fmt"
	"time"

	"hospital-management-backend/internal/domain/entity"
)

// SlotMinutes is the fixed bookable slot length
const SlotMinutes = 30

// SlotReason explains why a slot listing came back empty
type SlotReason string

const (
	ReasonNone           SlotReason = ""
	ReasonPastDate       SlotReason = "PAST_DATE"
	ReasonDayUnavailable SlotReason = "DAY_UNAVAILABLE"
)

// SlotGenerator derives bookable time slots for a calendar date from a doctor's
// weekly availability window. Output is deterministic given (window, date, clock).
type SlotGenerator struct {
	clock Clock
}

func NewSlotGenerator(clock Clock) *SlotGenerator {
	return &SlotGenerator{clock: clock}
}

// Generate walks the window from start to end in 30-minute steps using half-open
// [start, end) semantics: a slot is emitted only if it fits entirely before end.
// Past dates short-circuit with PAST_DATE before availability is consulted; for
// today, slots not strictly after the current wall-clock time are dropped.
func (g *SlotGenerator) Generate(window *entity.AvailabilityWindow, date time.Time) ([]string, SlotReason) {
	now := g.clock.Now()
	today := entity.DateOnly(now)
	day := entity.DateOnly(date)

	if day.Before(today) {
		return nil, ReasonPastDate
	}

	if window == nil || !window.IsOpen {
		return nil, ReasonDayUnavailable
	}

	start, err := ParseTimeOfDay(window.StartTime)
	if err != nil {
		return nil, ReasonDayUnavailable
	}
	end, err := ParseTimeOfDay(window.EndTime)
	if err != nil {
		return nil, ReasonDayUnavailable
	}

	nowMinute := now.Hour()*60 + now.Minute()
	sameDay := day.Equal(today)

	var slots []string
	for minute := start; minute+SlotMinutes <= end; minute += SlotMinutes {
		if sameDay && minute <= nowMinute {
			continue
		}
		slots = append(slots, FormatTimeOfDay(minute))
	}

	return slots, ReasonNone
}

// FilterElapsed applies the same-day rule to a previously computed listing:
// for today, slots not strictly after the current wall-clock time are dropped.
// Other dates pass through unchanged.
func (g *SlotGenerator) FilterElapsed(date time.Time, slots []string) []string {
	now := g.clock.Now()
	if !entity.DateOnly(date).Equal(entity.DateOnly(now)) {
		return slots
	}

	nowMinute := now.Hour()*60 + now.Minute()
	filtered := make([]string, 0, len(slots))
	for _, slot := range slots {
		minute, err := ParseTimeOfDay(slot)
		if err != nil {
			continue
		}
		if minute <= nowMinute {
			continue
		}
		filtered = append(filtered, slot)
	}
	return filtered
}

// ParseTimeOfDay converts an HH:MM 24h string to minutes since midnight
func ParseTimeOfDay(value string) (int, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", value, err)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// FormatTimeOfDay converts minutes since midnight back to HH:MM
func FormatTimeOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
