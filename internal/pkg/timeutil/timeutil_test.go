package timeutil

import (
	"testing"
	"time"
)

func TestIsValidHHMM(t *testing.T) {
	valid := []string{"00:00", "08:00", "8:00", "17:30", "23:59"}
	for _, s := range valid {
		if !IsValidHHMM(s) {
			t.Errorf("IsValidHHMM(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "24:00", "12:60", "9", "9:5", "ab:cd", "12:345", "-1:00"}
	for _, s := range invalid {
		if IsValidHHMM(s) {
			t.Errorf("IsValidHHMM(%q) = true, want false", s)
		}
	}
}

func TestMinutesOfDay(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"08:30", 510},
		{"8:30", 510},
		{"23:59", 1439},
	}
	for _, tt := range tests {
		got, err := MinutesOfDay(tt.in)
		if err != nil {
			t.Errorf("MinutesOfDay(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("MinutesOfDay(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}

	if _, err := MinutesOfDay("25:00"); err == nil {
		t.Error("MinutesOfDay(\"25:00\") should fail")
	}
}

func TestDurationHours(t *testing.T) {
	tests := []struct {
		start, end string
		want       float64
	}{
		{"09:00", "17:00", 8},
		{"18:00", "22:00", 4},
		{"09:00", "09:30", 0.5},
		{"22:00", "06:00", 8}, // wraps past midnight
		{"09:00", "09:00", 0},
	}
	for _, tt := range tests {
		got, err := DurationHours(tt.start, tt.end)
		if err != nil {
			t.Errorf("DurationHours(%q, %q) error: %v", tt.start, tt.end, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DurationHours(%q, %q) = %v, want %v", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestWeekStart(t *testing.T) {
	// 2025-09-01 is a Monday.
	monday := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		date    time.Time
		weekday int
		want    time.Time
	}{
		{"friday week holding a monday", monday, 5, time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC)},
		{"date on the week start day", time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC), 5, time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC)},
		{"sunday start", monday, 0, time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)},
		{"monday start", monday.AddDate(0, 0, 3), 1, monday},
		{"time component discarded", monday.Add(15 * time.Hour), 1, monday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekStart(tt.date, tt.weekday)
			if !got.Equal(tt.want) {
				t.Errorf("WeekStart(%v, %d) = %v, want %v", tt.date, tt.weekday, got, tt.want)
			}
		})
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2025, 9, 1, 14, 30, 45, 123, time.UTC)
	want := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	if got := DateOnly(in); !got.Equal(want) {
		t.Errorf("DateOnly(%v) = %v, want %v", in, got, want)
	}
}

func TestSameDate(t *testing.T) {
	a := time.Date(2025, 9, 1, 23, 59, 0, 0, time.UTC)
	b := time.Date(2025, 9, 1, 0, 1, 0, 0, time.UTC)
	c := time.Date(2025, 9, 2, 0, 1, 0, 0, time.UTC)

	if !SameDate(a, b) {
		t.Error("Same calendar day with different times must match")
	}
	if SameDate(a, c) {
		t.Error("Different calendar days must not match")
	}
}
