package application

import (
	"time"

	"github.com/example/session-planner/internal/stats"
)

// SessionType represents a reusable activity category exposed by the services.
type SessionType struct {
	ID                string
	Name              string
	Category          string
	Priority          int
	CompletedSessions int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SessionTypeInput captures caller provided session type fields.
type SessionTypeInput struct {
	Name     string
	Category string
	Priority int
}

// Session represents one booked occurrence of a session type.
type Session struct {
	ID              string
	TypeID          string
	TypeName        string
	Start           time.Time
	DurationMinutes int
	Completed       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SessionInput captures caller provided session fields.
type SessionInput struct {
	TypeID          string
	Start           time.Time
	DurationMinutes int
	Completed       bool
}

// CreateSessionParams wraps the data required to book a session.
// CheckConflict selects the guarded insert: when set, an overlapping existing
// session blocks the booking and the overlaps come back as a ConflictResult.
type CreateSessionParams struct {
	Input         SessionInput
	CheckConflict bool
}

// UpdateSessionParams wraps the data required to change an existing session.
type UpdateSessionParams struct {
	SessionID     string
	Input         SessionInput
	CheckConflict bool
}

// ListSessionsParams narrows session listings.
type ListSessionsParams struct {
	TypeID   string
	Upcoming bool
	From     *time.Time
	To       *time.Time
}

// ConflictingSession describes one existing session that overlaps a proposal.
type ConflictingSession struct {
	SessionID       string
	TypeName        string
	Start           time.Time
	DurationMinutes int
}

// ConflictResult is the structured outcome of a conflict check. It is a
// value, not an error: callers present alternatives instead of failing.
type ConflictResult struct {
	Conflict bool
	Sessions []ConflictingSession
}

// AvailabilityWindow represents a recurring weekly interval open for
// scheduling.
type AvailabilityWindow struct {
	ID        string
	Weekday   int
	Start     string
	End       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AvailabilityWindowInput captures caller provided window fields.
type AvailabilityWindowInput struct {
	Weekday int
	Start   string
	End     string
}

// SuggestParams wraps the inputs of a suggestion request. Zero values for
// DurationMinutes, DaysAhead, and Limit select the defaults (60, 7, 5).
type SuggestParams struct {
	TypeID          string
	DurationMinutes int
	DaysAhead       int
	Limit           int
}

// RankedSuggestion is one scored, ranked candidate slot.
type RankedSuggestion struct {
	Rank            int
	Start           time.Time
	End             time.Time
	DurationMinutes int
	Score           int
	Reasons         []string
}

// TypeStatsSummary gives display context about the suggested type's history.
type TypeStatsSummary struct {
	Name               string
	Category           string
	Priority           int
	LastScheduled      *time.Time
	UpcomingCount      int
	CompletedCount     int
	AverageSpacingDays *float64
}

// SuggestionResult is the full response of a suggestion request. Message is
// set when no candidate survives filtering; an empty suggestion list is a
// normal outcome, not an error.
type SuggestionResult struct {
	Suggestions []RankedSuggestion
	TypeStats   TypeStatsSummary
	Message     string
}

// StatsOverview is the full statistics response: rich per-type histories plus
// the aggregate counters and derived spacing/streak metrics.
type StatsOverview struct {
	Types     []stats.TypeStats
	Aggregate stats.AggregateStats
}
