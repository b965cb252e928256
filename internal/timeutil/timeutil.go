package timeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidClock indicates a time-of-day string is not in HH:MM form.
var ErrInvalidClock = errors.New("timeutil: invalid clock value")

// ParseClock splits an "HH:MM" string into its hour and minute components.
func ParseClock(value string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	return hour, minute, nil
}

// NextWeekdayTime resolves an "HH:MM" clock value on the next occurrence of
// weekday at or after the calendar day containing reference. The same day
// counts as an occurrence even when the clock value is earlier than the
// reference instant; callers that want strictly future results normalize the
// reference to midnight and filter afterwards.
func NextWeekdayTime(clock string, weekday time.Weekday, reference time.Time) (time.Time, error) {
	hour, minute, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}

	day := StartOfDay(reference)
	offset := (int(weekday) - int(day.Weekday()) + 7) % 7
	target := day.AddDate(0, 0, offset)
	return time.Date(target.Year(), target.Month(), target.Day(), hour, minute, 0, 0, target.Location()), nil
}

// IntervalsOverlap reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. An interval ending exactly when the other starts
// does not overlap.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// StartOfDay truncates an instant to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayBounds returns the [midnight, next-midnight) interval containing t.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := StartOfDay(t)
	return start, start.AddDate(0, 0, 1)
}

// SameDay reports whether two instants fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b))
}
