package persistence

import "time"

// SessionType represents a reusable category of recurring activity.
type SessionType struct {
	ID        string
	Name      string
	Category  string
	Priority  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Session represents one booked occurrence of a session type.
type Session struct {
	ID              string
	TypeID          string
	Start           time.Time
	DurationMinutes int
	Completed       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AvailabilityWindow represents a recurring weekly interval during which
// sessions may be scheduled. Weekday follows time.Weekday numbering
// (0 = Sunday); Start and End are "HH:MM" clock values with Start < End.
type AvailabilityWindow struct {
	ID        string
	Weekday   int
	Start     string
	End       string
	CreatedAt time.Time
	UpdatedAt time.Time
}
