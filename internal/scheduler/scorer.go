package scheduler

import (
	"fmt"
	"math"
	"time"

	"github.com/example/session-planner/internal/timeutil"
)

// ScoreContext carries everything one slot evaluation needs beyond the slot
// itself: the target activity's statistics and the universe of already-booked
// sessions used for load and buffer checks.
type ScoreContext struct {
	TypeName           string
	Priority           int
	LastScheduled      *time.Time
	AverageSpacingDays *float64
	Existing           []Session
	Now                time.Time
}

// ScoredSlot is a candidate slot annotated with its score and the reasons for
// the dominant contributing factors.
type ScoredSlot struct {
	Slot
	Score   float64
	Reasons []string
}

const day = 24 * time.Hour

// ScoreSlot evaluates one candidate slot. Seven additive factors run
// unconditionally in a fixed order; each appends a reason only when its
// threshold condition holds, so identical inputs always produce an identical
// score and reason list.
func ScoreSlot(slot Slot, sc ScoreContext) ScoredSlot {
	score := 0.0
	var reasons []string

	// Priority weight.
	score += 20 * float64(sc.Priority)
	if sc.Priority >= 4 {
		reasons = append(reasons, fmt.Sprintf("high priority activity (%d/5)", sc.Priority))
	}

	// Recency: reward slots the longer it has been since the last session of
	// this type. A future "last" session makes the delta negative on purpose.
	if sc.LastScheduled != nil {
		daysSince := float64(slot.Start.Sub(*sc.LastScheduled)) / float64(day)
		score += math.Min(5*daysSince, 50)
		if daysSince >= 2 {
			reasons = append(reasons, fmt.Sprintf("%d days since your last %s session", int(daysSince), sc.TypeName))
		}
	} else {
		score += 30
		reasons = append(reasons, "first time scheduling this activity")
	}

	// Spacing consistency: bonus shrinks as the slot drifts from the
	// historical rhythm.
	if sc.AverageSpacingDays != nil && sc.LastScheduled != nil {
		daysSince := float64(slot.Start.Sub(*sc.LastScheduled)) / float64(day)
		drift := math.Abs(daysSince - *sc.AverageSpacingDays)
		score += math.Max(0, 30-5*drift)
		if drift < 0.5 {
			reasons = append(reasons, fmt.Sprintf("matches your usual rhythm of every %.1f days", *sc.AverageSpacingDays))
		}
	}

	// Daily load: penalize crowded days by session count and by the combined
	// priority weight already booked.
	sameDayCount := 0
	priorityLoad := 0
	for _, session := range sc.Existing {
		if timeutil.SameDay(session.Start, slot.Start) {
			sameDayCount++
			priorityLoad += session.TypePriority
		}
	}
	score -= 15 * float64(sameDayCount)
	score -= 5 * float64(priorityLoad)
	if sameDayCount == 0 {
		reasons = append(reasons, "no other sessions this day")
	}
	if sameDayCount >= 3 {
		reasons = append(reasons, fmt.Sprintf("busy day: %d sessions already scheduled", sameDayCount))
	}
	if priorityLoad >= 15 {
		reasons = append(reasons, "heavy priority load on this day")
	}

	// Time-of-day fit: high priority work belongs in the morning, low
	// priority in the afternoon.
	hour := slot.Start.Hour()
	switch {
	case sc.Priority >= 4 && hour >= 6 && hour <= 10:
		score += 10
		reasons = append(reasons, "morning slot suits a high priority activity")
	case sc.Priority <= 2 && hour >= 14 && hour <= 18:
		score += 10
		reasons = append(reasons, "afternoon slot suits a lighter activity")
	}

	// Urgency: sooner slots score higher. Silent factor.
	daysUntil := float64(slot.Start.Sub(sc.Now)) / float64(day)
	score += math.Max(0, 40-3*daysUntil)

	// Buffer: reward slots with breathing room on both sides.
	if hasBuffer(slot, sc.Existing) {
		score += 15
		reasons = append(reasons, "free buffer before and after")
	}

	return ScoredSlot{Slot: slot, Score: score, Reasons: reasons}
}

// hasBuffer reports whether no existing session ends in the 30 minutes before
// the slot starts and none starts in the 30 minutes after it ends.
func hasBuffer(slot Slot, existing []Session) bool {
	bufferStart := slot.Start.Add(-TickInterval)
	bufferEnd := slot.End.Add(TickInterval)

	for _, session := range existing {
		end := session.End()
		if end.After(bufferStart) && !end.After(slot.Start) {
			return false
		}
		if !session.Start.Before(slot.End) && session.Start.Before(bufferEnd) {
			return false
		}
	}
	return true
}
