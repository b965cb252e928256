package scheduler

import (
	"time"

	"github.com/example/session-planner/internal/timeutil"
)

// Conflict identifies an existing session that overlaps a proposed interval.
type Conflict struct {
	SessionID       string
	TypeName        string
	Start           time.Time
	DurationMinutes int
}

// DetectConflicts returns every existing session whose interval overlaps the
// proposed [start, start+duration) interval under half-open semantics: a
// session ending exactly when the proposal starts does not conflict.
// Sessions matching excludeID are skipped so update-in-place checks do not
// report a session as conflicting with itself.
func DetectConflicts(existing []Session, start time.Time, durationMinutes int, excludeID string) []Conflict {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	var conflicts []Conflict
	for _, session := range existing {
		if excludeID != "" && session.ID == excludeID {
			continue
		}
		if !timeutil.IntervalsOverlap(start, end, session.Start, session.End()) {
			continue
		}
		conflicts = append(conflicts, Conflict{
			SessionID:       session.ID,
			TypeName:        session.TypeName,
			Start:           session.Start,
			DurationMinutes: session.DurationMinutes,
		})
	}
	return conflicts
}

// HasConflict reports whether the proposed interval overlaps any existing
// session. Equivalent to len(DetectConflicts(...)) > 0 without building the
// detail list.
func HasConflict(existing []Session, start time.Time, durationMinutes int, excludeID string) bool {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	for _, session := range existing {
		if excludeID != "" && session.ID == excludeID {
			continue
		}
		if timeutil.IntervalsOverlap(start, end, session.Start, session.End()) {
			return true
		}
	}
	return false
}
