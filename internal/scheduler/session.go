package scheduler

import "time"

// Session is the slice of a stored session that the planning algorithms need:
// when it happens, how long it lasts, and how important its activity is. All
// core components share this one shape instead of passing storage records
// around.
type Session struct {
	ID              string
	TypeID          string
	TypeName        string
	TypePriority    int
	Start           time.Time
	DurationMinutes int
	Completed       bool
}

// End returns the exclusive end instant of the session's interval.
func (s Session) End() time.Time {
	return s.Start.Add(time.Duration(s.DurationMinutes) * time.Minute)
}
