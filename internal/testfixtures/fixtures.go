package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/session-planner/internal/persistence"
)

var (
	typeCounter    uint64
	sessionCounter uint64
	windowCounter  uint64
)

// June 2, 2025 is a Monday, which keeps weekday arithmetic in fixtures easy
// to reason about.
var referenceTime = time.Date(2025, time.June, 2, 8, 0, 0, 0, time.Local)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// SessionTypeOption configures a generated session type fixture.
type SessionTypeOption func(*persistence.SessionType)

// NewSessionType returns a deterministic session type record with optional
// overrides.
func NewSessionType(opts ...SessionTypeOption) persistence.SessionType {
	idx := atomic.AddUint64(&typeCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := persistence.SessionType{
		ID:        fmt.Sprintf("type-%03d", idx),
		Name:      fmt.Sprintf("Activity %03d", idx),
		Category:  "general",
		Priority:  3,
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithTypeID overrides the generated type identifier.
func WithTypeID(id string) SessionTypeOption {
	return func(f *persistence.SessionType) { f.ID = id }
}

// WithTypeName overrides the generated name.
func WithTypeName(name string) SessionTypeOption {
	return func(f *persistence.SessionType) { f.Name = name }
}

// WithTypePriority overrides the default priority.
func WithTypePriority(priority int) SessionTypeOption {
	return func(f *persistence.SessionType) { f.Priority = priority }
}

// WithTypeCategory overrides the default category.
func WithTypeCategory(category string) SessionTypeOption {
	return func(f *persistence.SessionType) { f.Category = category }
}

// SessionOption configures a generated session fixture.
type SessionOption func(*persistence.Session)

// NewSession returns a deterministic session record tied to the given type.
// Consecutive fixtures land on consecutive days so they never overlap.
func NewSession(typeID string, opts ...SessionOption) persistence.Session {
	idx := atomic.AddUint64(&sessionCounter, 1)
	start := referenceTime.AddDate(0, 0, int(idx)).Add(time.Hour)
	fixture := persistence.Session{
		ID:              fmt.Sprintf("session-%03d", idx),
		TypeID:          typeID,
		Start:           start,
		DurationMinutes: 60,
		CreatedAt:       referenceTime,
		UpdatedAt:       referenceTime,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithSessionID overrides the generated session identifier.
func WithSessionID(id string) SessionOption {
	return func(f *persistence.Session) { f.ID = id }
}

// WithSessionStart overrides the generated start time.
func WithSessionStart(start time.Time) SessionOption {
	return func(f *persistence.Session) { f.Start = start }
}

// WithSessionDuration overrides the default duration.
func WithSessionDuration(minutes int) SessionOption {
	return func(f *persistence.Session) { f.DurationMinutes = minutes }
}

// WithSessionCompleted marks the fixture as completed.
func WithSessionCompleted() SessionOption {
	return func(f *persistence.Session) { f.Completed = true }
}

// WindowOption configures a generated availability window fixture.
type WindowOption func(*persistence.AvailabilityWindow)

// NewWindow returns a deterministic weekly availability window.
func NewWindow(opts ...WindowOption) persistence.AvailabilityWindow {
	idx := atomic.AddUint64(&windowCounter, 1)
	fixture := persistence.AvailabilityWindow{
		ID:        fmt.Sprintf("window-%03d", idx),
		Weekday:   int(idx % 7),
		Start:     "09:00",
		End:       "12:00",
		CreatedAt: referenceTime,
		UpdatedAt: referenceTime,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithWindowWeekday overrides the generated weekday.
func WithWindowWeekday(weekday int) WindowOption {
	return func(f *persistence.AvailabilityWindow) { f.Weekday = weekday }
}

// WithWindowClocks overrides the start and end clocks.
func WithWindowClocks(start, end string) WindowOption {
	return func(f *persistence.AvailabilityWindow) {
		f.Start = start
		f.End = end
	}
}
