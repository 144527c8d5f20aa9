package service

import (
	"reflect"
	"testing"
	"time"

	"hospital-management-backend/internal/domain/entity"
)

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time {
	return c.now
}

func window(start, end string, open bool) *entity.AvailabilityWindow {
	return &entity.AvailabilityWindow{
		DayOfWeek: 3,
		StartTime: start,
		EndTime:   end,
		IsOpen:    open,
	}
}

func TestSlotGeneratorGenerate(t *testing.T) {
	// A Monday, well before any window opens
	now := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		window     *entity.AvailabilityWindow
		date       time.Time
		wantSlots  []string
		wantReason SlotReason
	}{
		{
			name:       "one hour window yields two slots",
			window:     window("09:00", "10:00", true),
			date:       now.AddDate(0, 0, 2),
			wantSlots:  []string{"09:00", "09:30"},
			wantReason: ReasonNone,
		},
		{
			name:       "slot must fit entirely before end",
			window:     window("09:00", "09:45", true),
			date:       now.AddDate(0, 0, 2),
			wantSlots:  []string{"09:00"},
			wantReason: ReasonNone,
		},
		{
			name:       "window shorter than a slot yields nothing",
			window:     window("09:00", "09:15", true),
			date:       now.AddDate(0, 0, 2),
			wantSlots:  nil,
			wantReason: ReasonNone,
		},
		{
			name:       "closed day",
			window:     window("09:00", "17:00", false),
			date:       now.AddDate(0, 0, 2),
			wantSlots:  nil,
			wantReason: ReasonDayUnavailable,
		},
		{
			name:       "missing window",
			window:     nil,
			date:       now.AddDate(0, 0, 2),
			wantSlots:  nil,
			wantReason: ReasonDayUnavailable,
		},
		{
			name:       "past date short-circuits before availability",
			window:     nil,
			date:       now.AddDate(0, 0, -1),
			wantSlots:  nil,
			wantReason: ReasonPastDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewSlotGenerator(fakeClock{now: now})
			slots, reason := g.Generate(tt.window, tt.date)
			if !reflect.DeepEqual(slots, tt.wantSlots) {
				t.Errorf("slots = %v, want %v", slots, tt.wantSlots)
			}
			if reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", reason, tt.wantReason)
			}
		})
	}
}

func TestSlotGeneratorSameDayFiltering(t *testing.T) {
	// 10:00 sharp on the requested day
	now := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	g := NewSlotGenerator(fakeClock{now: now})

	slots, reason := g.Generate(window("09:00", "11:30", true), now)
	if reason != ReasonNone {
		t.Fatalf("reason = %q, want none", reason)
	}

	// 10:00 itself is not strictly after now and is dropped
	want := []string{"10:30", "11:00"}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("slots = %v, want %v", slots, want)
	}
}

func TestSlotGeneratorFilterElapsed(t *testing.T) {
	now := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	g := NewSlotGenerator(fakeClock{now: now})

	tests := []struct {
		name  string
		date  time.Time
		slots []string
		want  []string
	}{
		{
			name:  "same day drops elapsed slots",
			date:  now,
			slots: []string{"09:00", "09:30", "10:00", "10:30", "11:00"},
			want:  []string{"10:30", "11:00"},
		},
		{
			name:  "future date passes through",
			date:  now.AddDate(0, 0, 1),
			slots: []string{"09:00", "09:30"},
			want:  []string{"09:00", "09:30"},
		},
		{
			name:  "same day with everything elapsed",
			date:  now,
			slots: []string{"08:00", "08:30"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.FilterElapsed(tt.date, tt.slots)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("slots = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSlotGeneratorFullDayCount(t *testing.T) {
	now := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)
	g := NewSlotGenerator(fakeClock{now: now})

	slots, _ := g.Generate(window(entity.DefaultWindowStart, entity.DefaultWindowEnd, true), now.AddDate(0, 0, 1))
	if len(slots) != 20 {
		t.Errorf("default 09:00-19:00 window yields %d slots, want 20", len(slots))
	}
	if slots[0] != "09:00" || slots[len(slots)-1] != "18:30" {
		t.Errorf("slot bounds = %s..%s, want 09:00..18:30", slots[0], slots[len(slots)-1])
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"9am", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("minutes = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFormatTimeOfDay(t *testing.T) {
	if got := FormatTimeOfDay(570); got != "09:30" {
		t.Errorf("FormatTimeOfDay(570) = %q, want 09:30", got)
	}
	if got := FormatTimeOfDay(0); got != "00:00" {
		t.Errorf("FormatTimeOfDay(0) = %q, want 00:00", got)
	}
}
