package scheduler

import (
	"math"
	"reflect"
	"testing"
	"time"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScoreSlotPriorityFactor(t *testing.T) {
	t.Parallel()

	now := at(t, 11, 6, 0)
	slot := Slot{Start: at(t, 11, 12, 0), End: at(t, 11, 13, 0), Weekday: time.Wednesday}

	low := ScoreSlot(slot, ScoreContext{TypeName: "Reading", Priority: 3, Now: now})
	high := ScoreSlot(slot, ScoreContext{TypeName: "Deep Work", Priority: 5, Now: now})

	if !almostEqual(high.Score-low.Score, 40) {
		t.Fatalf("priority delta = %v, want 40", high.Score-low.Score)
	}
	if !containsReason(high.Reasons, "high priority activity (5/5)") {
		t.Fatalf("missing high priority reason: %v", high.Reasons)
	}
	if containsReason(low.Reasons, "high priority activity (3/5)") {
		t.Fatalf("priority 3 must not emit a priority reason: %v", low.Reasons)
	}
}

func TestScoreSlotFirstTimeBonus(t *testing.T) {
	t.Parallel()

	now := at(t, 11, 6, 0)
	slot := Slot{Start: at(t, 11, 12, 0), End: at(t, 11, 13, 0), Weekday: time.Wednesday}

	scored := ScoreSlot(slot, ScoreContext{TypeName: "Yoga", Priority: 3, Now: now})
	if !containsReason(scored.Reasons, "first time scheduling this activity") {
		t.Fatalf("expected first-time reason, got %v", scored.Reasons)
	}

	// Priority 60 + first time 30 + no other sessions + urgency (slot is
	// 6 hours out: 40 - 3*0.25 = 39.25) + buffer 15.
	want := 60.0 + 30 + 39.25 + 15
	if !almostEqual(scored.Score, want) {
		t.Fatalf("score = %v, want %v", scored.Score, want)
	}
}

func TestScoreSlotRecency(t *testing.T) {
	t.Parallel()

	now := at(t, 11, 6, 0)
	slot := Slot{Start: at(t, 11, 12, 0), End: at(t, 11, 13, 0), Weekday: time.Wednesday}

	t.Run("recent session gives small bonus and no reason", func(t *testing.T) {
		t.Parallel()

		last := at(t, 10, 12, 0) // exactly one day before the slot
		scored := ScoreSlot(slot, ScoreContext{TypeName: "Run", Priority: 3, LastScheduled: &last, Now: now})
		base := ScoreSlot(slot, ScoreContext{TypeName: "Run", Priority: 3, Now: now})
		// base includes the flat +30 first-time bonus, recency adds 5*1.
		if !almostEqual(base.Score-scored.Score, 25) {
			t.Fatalf("delta = %v, want 25", base.Score-scored.Score)
		}
		for _, r := range scored.Reasons {
			if r == "first time scheduling this activity" {
				t.Fatal("first-time reason must not appear when a last session exists")
			}
		}
	})

	t.Run("long gap emits reason and caps at 50", func(t *testing.T) {
		t.Parallel()

		last := slot.Start.AddDate(0, 0, -20)
		scored := ScoreSlot(slot, ScoreContext{TypeName: "Run", Priority: 3, LastScheduled: &last, Now: now})
		if !containsReason(scored.Reasons, "20 days since your last Run session") {
			t.Fatalf("missing recency reason: %v", scored.Reasons)
		}
		none := ScoreSlot(slot, ScoreContext{TypeName: "Run", Priority: 3, Now: now})
		// Capped recency (+50) versus first-time (+30).
		if !almostEqual(scored.Score-none.Score, 20) {
			t.Fatalf("delta = %v, want 20", scored.Score-none.Score)
		}
	})

	t.Run("future last session subtracts without clamping", func(t *testing.T) {
		t.Parallel()

		last := slot.Start.AddDate(0, 0, 2) // "last" session is after the slot
		scored := ScoreSlot(slot, ScoreContext{TypeName: "Run", Priority: 3, LastScheduled: &last, Now: now})
		none := ScoreSlot(slot, ScoreContext{TypeName: "Run", Priority: 3, Now: now})
		// -10 recency versus +30 first-time.
		if !almostEqual(none.Score-scored.Score, 40) {
			t.Fatalf("delta = %v, want 40", none.Score-scored.Score)
		}
	})
}

func TestScoreSlotSpacingConsistency(t *testing.T) {
	t.Parallel()

	now := at(t, 11, 6, 0)
	slot := Slot{Start: at(t, 11, 12, 0), End: at(t, 11, 13, 0), Weekday: time.Wednesday}
	avg := 3.0

	t.Run("on rhythm gets full bonus and reason", func(t *testing.T) {
		t.Parallel()

		last := slot.Start.AddDate(0, 0, -3)
		with := ScoreSlot(slot, ScoreContext{TypeName: "Run", Priority: 3, LastScheduled: &last, AverageSpacingDays: &avg, Now: now})
		without := ScoreSlot(slot, ScoreContext{TypeName: "Run", Priority: 3, LastScheduled: &last, Now: now})
		if !almostEqual(with.Score-without.Score, 30) {
			t.Fatalf("delta = %v, want 30", with.Score-without.Score)
		}
		if !containsReason(with.Reasons, "matches your usual rhythm of every 3.0 days") {
			t.Fatalf("missing rhythm reason: %v", with.Reasons)
		}
	})

	t.Run("far off rhythm gets nothing", func(t *testing.T) {
		t.Parallel()

		last := slot.Start.AddDate(0, 0, -10)
		with := ScoreSlot(slot, ScoreContext{TypeName: "Run", Priority: 3, LastScheduled: &last, AverageSpacingDays: &avg, Now: now})
		without := ScoreSlot(slot, ScoreContext{TypeName: "Run", Priority: 3, LastScheduled: &last, Now: now})
		if !almostEqual(with.Score, without.Score) {
			t.Fatalf("expected no spacing contribution, delta = %v", with.Score-without.Score)
		}
	})

	t.Run("no last session means no spacing factor", func(t *testing.T) {
		t.Parallel()

		with := ScoreSlot(slot, ScoreContext{TypeName: "Run", Priority: 3, AverageSpacingDays: &avg, Now: now})
		without := ScoreSlot(slot, ScoreContext{TypeName: "Run", Priority: 3, Now: now})
		if !almostEqual(with.Score, without.Score) {
			t.Fatalf("spacing must require a last session, delta = %v", with.Score-without.Score)
		}
	})
}

func TestScoreSlotDailyLoad(t *testing.T) {
	t.Parallel()

	now := at(t, 11, 6, 0)
	slot := Slot{Start: at(t, 12, 12, 0), End: at(t, 12, 13, 0), Weekday: time.Thursday}

	sameDay := []Session{
		{ID: "a", TypePriority: 5, Start: at(t, 12, 7, 0), DurationMinutes: 60},
		{ID: "b", TypePriority: 5, Start: at(t, 12, 8, 30), DurationMinutes: 60},
		{ID: "c", TypePriority: 5, Start: at(t, 12, 15, 0), DurationMinutes: 60},
	}

	loaded := ScoreSlot(slot, ScoreContext{TypeName: "Run", Priority: 3, Existing: sameDay, Now: now})
	empty := ScoreSlot(slot, ScoreContext{TypeName: "Run", Priority: 3, Now: now})

	// 3 sessions * 15 + priority load 15 * 5 = 120. The buffer bonus applies
	// on both sides of the comparison: the nearest loaded session ends 09:30
	// and the next starts 15:00, both clear of the noon slot.
	if !almostEqual(empty.Score-loaded.Score, 120) {
		t.Fatalf("delta = %v, want 120", empty.Score-loaded.Score)
	}
	if !containsReason(empty.Reasons, "no other sessions this day") {
		t.Fatalf("missing empty-day reason: %v", empty.Reasons)
	}
	if !containsReason(loaded.Reasons, "busy day: 3 sessions already scheduled") {
		t.Fatalf("missing busy-day warning: %v", loaded.Reasons)
	}
	if !containsReason(loaded.Reasons, "heavy priority load on this day") {
		t.Fatalf("missing priority-load warning: %v", loaded.Reasons)
	}
	if containsReason(loaded.Reasons, "no other sessions this day") {
		t.Fatalf("loaded day must not claim to be empty: %v", loaded.Reasons)
	}
}

func TestScoreSlotTimeOfDayFit(t *testing.T) {
	t.Parallel()

	now := at(t, 11, 5, 0)
	morning := Slot{Start: at(t, 11, 8, 0), End: at(t, 11, 9, 0), Weekday: time.Wednesday}
	afternoon := Slot{Start: at(t, 11, 15, 0), End: at(t, 11, 16, 0), Weekday: time.Wednesday}
	evening := Slot{Start: at(t, 11, 20, 0), End: at(t, 11, 21, 0), Weekday: time.Wednesday}

	highMorning := ScoreSlot(morning, ScoreContext{TypeName: "Deep Work", Priority: 5, Now: now})
	if !containsReason(highMorning.Reasons, "morning slot suits a high priority activity") {
		t.Fatalf("missing morning fit reason: %v", highMorning.Reasons)
	}

	lowAfternoon := ScoreSlot(afternoon, ScoreContext{TypeName: "Reading", Priority: 2, Now: now})
	if !containsReason(lowAfternoon.Reasons, "afternoon slot suits a lighter activity") {
		t.Fatalf("missing afternoon fit reason: %v", lowAfternoon.Reasons)
	}

	highEvening := ScoreSlot(evening, ScoreContext{TypeName: "Deep Work", Priority: 5, Now: now})
	for _, r := range highEvening.Reasons {
		if r == "morning slot suits a high priority activity" || r == "afternoon slot suits a lighter activity" {
			t.Fatalf("evening slot must not get a time-of-day bonus: %v", highEvening.Reasons)
		}
	}
}

func TestScoreSlotUrgencyDecay(t *testing.T) {
	t.Parallel()

	now := at(t, 11, 12, 0)
	near := Slot{Start: at(t, 12, 12, 0), End: at(t, 12, 13, 0), Weekday: time.Thursday}
	far := Slot{Start: at(t, 17, 12, 0), End: at(t, 17, 13, 0), Weekday: time.Tuesday}

	nearScore := ScoreSlot(near, ScoreContext{TypeName: "Run", Priority: 3, Now: now})
	farScore := ScoreSlot(far, ScoreContext{TypeName: "Run", Priority: 3, Now: now})

	// 1 day out: 40-3 = 37; 6 days out: 40-18 = 22.
	if !almostEqual(nearScore.Score-farScore.Score, 15) {
		t.Fatalf("urgency delta = %v, want 15", nearScore.Score-farScore.Score)
	}
}

func TestScoreSlotBuffer(t *testing.T) {
	t.Parallel()

	now := at(t, 11, 6, 0)
	slot := Slot{Start: at(t, 11, 12, 0), End: at(t, 11, 13, 0), Weekday: time.Wednesday}

	cases := []struct {
		name     string
		existing []Session
		want     bool
	}{
		{name: "no neighbours", existing: nil, want: true},
		{
			name:     "session ends just before slot",
			existing: []Session{{ID: "a", Start: at(t, 11, 10, 45), DurationMinutes: 60}}, // ends 11:45
			want:     false,
		},
		{
			name:     "session ends exactly 30 minutes before",
			existing: []Session{{ID: "a", Start: at(t, 11, 10, 30), DurationMinutes: 60}}, // ends 11:30
			want:     true,
		},
		{
			name:     "session starts just after slot",
			existing: []Session{{ID: "a", Start: at(t, 11, 13, 15), DurationMinutes: 60}},
			want:     false,
		},
		{
			name:     "session starts exactly 30 minutes after",
			existing: []Session{{ID: "a", Start: at(t, 11, 13, 30), DurationMinutes: 60}},
			want:     true,
		},
		{
			name:     "distant sessions leave the buffer intact",
			existing: []Session{{ID: "a", Start: at(t, 11, 8, 0), DurationMinutes: 60}, {ID: "b", Start: at(t, 11, 16, 0), DurationMinutes: 60}},
			want:     true,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			scored := ScoreSlot(slot, ScoreContext{TypeName: "Run", Priority: 3, Existing: tc.existing, Now: now})
			if got := containsReason(scored.Reasons, "free buffer before and after"); got != tc.want {
				t.Fatalf("buffer reason present = %v, want %v (reasons %v)", got, tc.want, scored.Reasons)
			}
		})
	}
}

func TestScoreSlotDeterministic(t *testing.T) {
	t.Parallel()

	now := at(t, 11, 6, 0)
	slot := Slot{Start: at(t, 11, 8, 0), End: at(t, 11, 9, 0), Weekday: time.Wednesday}
	last := at(t, 9, 8, 0)
	avg := 2.0
	sc := ScoreContext{
		TypeName:           "Deep Work",
		Priority:           5,
		LastScheduled:      &last,
		AverageSpacingDays: &avg,
		Existing: []Session{
			{ID: "a", TypePriority: 2, Start: at(t, 12, 15, 0), DurationMinutes: 30},
		},
		Now: now,
	}

	first := ScoreSlot(slot, sc)
	for i := 0; i < 10; i++ {
		again := ScoreSlot(slot, sc)
		if !almostEqual(first.Score, again.Score) {
			t.Fatalf("score drifted: %v vs %v", first.Score, again.Score)
		}
		if !reflect.DeepEqual(first.Reasons, again.Reasons) {
			t.Fatalf("reasons drifted: %v vs %v", first.Reasons, again.Reasons)
		}
	}

	// Reasons appear in factor order: priority, recency, spacing, load,
	// time-of-day, buffer.
	want := []string{
		"high priority activity (5/5)",
		"2 days since your last Deep Work session",
		"matches your usual rhythm of every 2.0 days",
		"no other sessions this day",
		"morning slot suits a high priority activity",
		"free buffer before and after",
	}
	if !reflect.DeepEqual(first.Reasons, want) {
		t.Fatalf("reasons = %v, want %v", first.Reasons, want)
	}
}

func containsReason(reasons []string, want string) bool {
	for _, r := range reasons {
		if r == want {
			return true
		}
	}
	return false
}
