package timeutil

import (
	"errors"
	"testing"
	"time"
)

func date(t *testing.T, year int, month time.Month, day, hour, minute int) time.Time {
	t.Helper()
	return time.Date(year, month, day, hour, minute, 0, 0, time.Local)
}

func TestParseClock(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		value   string
		hour    int
		minute  int
		wantErr bool
	}{
		{name: "morning", value: "09:30", hour: 9, minute: 30},
		{name: "midnight", value: "00:00", hour: 0, minute: 0},
		{name: "end of day", value: "23:59", hour: 23, minute: 59},
		{name: "padded", value: " 08:15 ", hour: 8, minute: 15},
		{name: "missing minutes", value: "09", wantErr: true},
		{name: "hour out of range", value: "24:00", wantErr: true},
		{name: "minute out of range", value: "12:60", wantErr: true},
		{name: "not numeric", value: "ab:cd", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			hour, minute, err := ParseClock(tc.value)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidClock) {
					t.Fatalf("expected ErrInvalidClock, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if hour != tc.hour || minute != tc.minute {
				t.Fatalf("got %02d:%02d, want %02d:%02d", hour, minute, tc.hour, tc.minute)
			}
		})
	}
}

func TestNextWeekdayTime(t *testing.T) {
	t.Parallel()

	// Wednesday 2025-06-11.
	reference := date(t, 2025, time.June, 11, 15, 0)

	cases := []struct {
		name    string
		clock   string
		weekday time.Weekday
		want    time.Time
	}{
		{
			name:    "later weekday this week",
			clock:   "19:00",
			weekday: time.Friday,
			want:    date(t, 2025, time.June, 13, 19, 0),
		},
		{
			name:    "earlier weekday wraps to next week",
			clock:   "10:00",
			weekday: time.Monday,
			want:    date(t, 2025, time.June, 16, 10, 0),
		},
		{
			name:    "same weekday resolves to same day",
			clock:   "09:00",
			weekday: time.Wednesday,
			want:    date(t, 2025, time.June, 11, 9, 0),
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := NextWeekdayTime(tc.clock, tc.weekday, reference)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			if got.Weekday() != tc.weekday {
				t.Fatalf("got weekday %v, want %v", got.Weekday(), tc.weekday)
			}
			dayStart := StartOfDay(reference)
			if got.Before(dayStart) {
				t.Fatalf("result %v precedes start of reference day %v", got, dayStart)
			}
		})
	}

	t.Run("invalid clock", func(t *testing.T) {
		t.Parallel()

		if _, err := NextWeekdayTime("25:00", time.Monday, reference); !errors.Is(err, ErrInvalidClock) {
			t.Fatalf("expected ErrInvalidClock, got %v", err)
		}
	})
}

func TestIntervalsOverlap(t *testing.T) {
	t.Parallel()

	nine := date(t, 2025, time.June, 11, 9, 0)
	ten := date(t, 2025, time.June, 11, 10, 0)
	eleven := date(t, 2025, time.June, 11, 11, 0)
	halfTen := date(t, 2025, time.June, 11, 10, 30)

	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{name: "adjacent intervals do not overlap", aStart: nine, aEnd: ten, bStart: ten, bEnd: eleven, want: false},
		{name: "partial overlap", aStart: nine, aEnd: halfTen, bStart: ten, bEnd: eleven, want: true},
		{name: "containment", aStart: nine, aEnd: eleven, bStart: ten, bEnd: halfTen, want: true},
		{name: "identical", aStart: nine, aEnd: ten, bStart: nine, bEnd: ten, want: true},
		{name: "disjoint", aStart: nine, aEnd: ten, bStart: halfTen, bEnd: eleven, want: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := IntervalsOverlap(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Fatalf("IntervalsOverlap = %v, want %v", got, tc.want)
			}
			// Overlap is symmetric.
			if got := IntervalsOverlap(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd); got != tc.want {
				t.Fatalf("reversed IntervalsOverlap = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDayBounds(t *testing.T) {
	t.Parallel()

	instant := date(t, 2025, time.June, 11, 15, 42)
	start, end := DayBounds(instant)

	if !start.Equal(date(t, 2025, time.June, 11, 0, 0)) {
		t.Fatalf("start = %v", start)
	}
	if !end.Equal(date(t, 2025, time.June, 12, 0, 0)) {
		t.Fatalf("end = %v", end)
	}
	if !SameDay(instant, start) {
		t.Fatal("instant and midnight should share a day")
	}
	if SameDay(instant, end) {
		t.Fatal("next midnight belongs to the following day")
	}
}
