package timeutil

import (
	"fmt"
	"regexp"
	"time"
)

// hhmmPattern matches zero-padded or single-digit-hour 24-hour times,
// e.g. "08:00", "8:00", "23:59".
var hhmmPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// IsValidHHMM reports whether s is a valid HH:MM 24-hour time literal.
func IsValidHHMM(s string) bool {
	return hhmmPattern.MatchString(s)
}

// MinutesOfDay converts an HH:MM string to minutes since midnight.
// Times are compared in minute space rather than lexicographically so
// that unpadded hours ("8:00") order correctly.
func MinutesOfDay(s string) (int, error) {
	if !hhmmPattern.MatchString(s) {
		return 0, fmt.Errorf("invalid time %q: must be HH:MM 24-hour format", s)
	}
	var hour, minute int
	fmt.Sscanf(s, "%d:%d", &hour, &minute)
	return hour*60 + minute, nil
}

// Hour returns the integer hour component of an HH:MM string.
func Hour(s string) (int, error) {
	minutes, err := MinutesOfDay(s)
	if err != nil {
		return 0, err
	}
	return minutes / 60, nil
}

// DurationHours returns the span between start and end in hours.
// An end before the start is treated as wrapping past midnight, so an
// overnight 22:00-06:00 shift is 8 hours.
func DurationHours(start, end string) (float64, error) {
	startMin, err := MinutesOfDay(start)
	if err != nil {
		return 0, err
	}
	endMin, err := MinutesOfDay(end)
	if err != nil {
		return 0, err
	}
	if endMin < startMin {
		endMin += 24 * 60
	}
	return float64(endMin-startMin) / 60, nil
}

// WeekStart truncates date to the most recent occurrence of the given
// weekday (0=Sunday .. 6=Saturday) at midnight UTC. Used to bucket
// shifts into scheduling weeks.
func WeekStart(date time.Time, weekday int) time.Time {
	d := date.UTC()
	offset := (int(d.Weekday()) - weekday + 7) % 7
	d = d.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// DateOnly truncates t to midnight UTC. Shift and time-off dates are
// compared at day granularity.
func DateOnly(t time.Time) time.Time {
	d := t.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether a and b fall on the same calendar day (UTC).
func SameDate(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}
