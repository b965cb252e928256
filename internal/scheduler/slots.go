package scheduler

import (
	"errors"
	"time"

	"github.com/example/session-planner/internal/timeutil"
)

// TickInterval is the fixed granularity at which availability windows are
// tiled into candidate slots. It bounds candidate volume and matches the
// half-hour granularity people actually plan at; it is deliberately not
// configurable.
const TickInterval = 30 * time.Minute

// Window describes a recurring weekly availability interval. Start and End
// are "HH:MM" clock values with Start < End, enforced at the storage
// boundary.
type Window struct {
	ID      string
	Weekday time.Weekday
	Start   string
	End     string
}

// Slot is a concrete, dated candidate interval produced from a window. It has
// not yet been conflict-checked or scored.
type Slot struct {
	Start   time.Time
	End     time.Time
	Weekday time.Weekday
}

// ErrInvalidDuration indicates the requested session duration is not positive.
var ErrInvalidDuration = errors.New("scheduler: session duration must be positive")

// ErrInvalidHorizon indicates the lookahead horizon is not positive.
var ErrInvalidHorizon = errors.New("scheduler: lookahead horizon must be positive")

// GenerateSlots expands weekly availability windows into candidate slots over
// the next horizonDays calendar days, starting with the day containing now.
//
// Each matching window is tiled at TickInterval; a slot [t, t+duration) is
// emitted for every tick where the slot still fits inside the window and t is
// strictly after now. Windows wholly in the past contribute nothing, as do
// days with no matching window. Slots are returned in generation order: day
// ascending, then window order, then tick ascending. Overlapping windows may
// yield duplicate slot instants; they are not deduplicated.
func GenerateSlots(windows []Window, durationMinutes, horizonDays int, now time.Time) ([]Slot, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if horizonDays <= 0 {
		return nil, ErrInvalidHorizon
	}

	duration := time.Duration(durationMinutes) * time.Minute
	today := timeutil.StartOfDay(now)

	var slots []Slot
	for offset := 0; offset < horizonDays; offset++ {
		day := today.AddDate(0, 0, offset)
		weekday := day.Weekday()

		for _, window := range windows {
			if window.Weekday != weekday {
				continue
			}

			windowStart, err := timeutil.NextWeekdayTime(window.Start, weekday, day)
			if err != nil {
				return nil, err
			}
			windowEnd, err := timeutil.NextWeekdayTime(window.End, weekday, day)
			if err != nil {
				return nil, err
			}
			if !windowEnd.After(now) {
				continue
			}

			for tick := windowStart; !tick.Add(duration).After(windowEnd); tick = tick.Add(TickInterval) {
				if !tick.After(now) {
					continue
				}
				slots = append(slots, Slot{
					Start:   tick,
					End:     tick.Add(duration),
					Weekday: weekday,
				})
			}
		}
	}

	return slots, nil
}
