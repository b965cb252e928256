// Package stats derives spacing, streak, and completion metrics from stored
// sessions. Everything here is pure computation over in-memory values; the
// caller supplies the session universe and the reference instant.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/example/session-planner/internal/scheduler"
	"github.com/example/session-planner/internal/timeutil"
)

// TypeStats summarises one session type's history for display and scoring.
type TypeStats struct {
	TypeID             string
	Name               string
	Category           string
	Priority           int
	LastScheduled      *time.Time
	UpcomingCount      int
	CompletedCount     int
	AverageSpacingDays *float64
}

// ForType computes statistics for one session type. The sessions slice must
// contain only sessions of that type; the caller filters. LastScheduled is
// the most recent start across past and future sessions alike.
func ForType(typeID, name, category string, priority int, sessions []scheduler.Session, now time.Time) TypeStats {
	ts := TypeStats{
		TypeID:   typeID,
		Name:     name,
		Category: category,
		Priority: priority,
	}

	var completed []time.Time
	for _, session := range sessions {
		start := session.Start
		if ts.LastScheduled == nil || start.After(*ts.LastScheduled) {
			ts.LastScheduled = &start
		}
		if session.Completed {
			ts.CompletedCount++
			completed = append(completed, session.Start)
		} else if !session.Start.Before(now) {
			ts.UpcomingCount++
		}
	}

	ts.AverageSpacingDays = averageSpacing(completed)
	return ts
}

// averageSpacing returns the mean gap in days between consecutive completed
// session starts, or nil with fewer than two completions.
func averageSpacing(starts []time.Time) *float64 {
	if len(starts) < 2 {
		return nil
	}
	sorted := make([]time.Time, len(starts))
	copy(sorted, starts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	total := 0.0
	for i := 1; i < len(sorted); i++ {
		total += sorted[i].Sub(sorted[i-1]).Hours() / 24
	}
	avg := total / float64(len(sorted)-1)
	return &avg
}

// Overview holds the four headline counters, either globally or per type.
type Overview struct {
	Total          int
	Completed      int
	Upcoming       int
	CompletionRate float64
}

// TypeBreakdown scopes the overview counters to one session type.
type TypeBreakdown struct {
	TypeID   string
	TypeName string
	Overview
}

// DerivedMetrics carries the cross-type spacing and streak figures.
type DerivedMetrics struct {
	AverageSpacingDays    *float64
	CurrentStreak         int
	LongestStreak         int
	MostProductiveWeekday *time.Weekday
	DistinctCompletedDays int
}

// AggregateStats is the full statistics response across all sessions.
type AggregateStats struct {
	Overview Overview
	ByType   []TypeBreakdown
	Derived  DerivedMetrics
}

// Aggregate computes overview counters, per-type breakdowns, and derived
// spacing/streak metrics over the whole session collection.
func Aggregate(sessions []scheduler.Session, now time.Time) AggregateStats {
	agg := AggregateStats{}
	byType := make(map[string]*TypeBreakdown)
	var typeOrder []string
	var completedStarts []time.Time

	for _, session := range sessions {
		agg.Overview.Total++

		tb, ok := byType[session.TypeID]
		if !ok {
			tb = &TypeBreakdown{TypeID: session.TypeID, TypeName: session.TypeName}
			byType[session.TypeID] = tb
			typeOrder = append(typeOrder, session.TypeID)
		}
		tb.Total++

		if session.Completed {
			agg.Overview.Completed++
			tb.Completed++
			completedStarts = append(completedStarts, session.Start)
		} else if !session.Start.Before(now) {
			agg.Overview.Upcoming++
			tb.Upcoming++
		}
	}

	if agg.Overview.Total > 0 {
		agg.Overview.CompletionRate = float64(agg.Overview.Completed) / float64(agg.Overview.Total)
	}

	sort.Strings(typeOrder)
	for _, id := range typeOrder {
		tb := byType[id]
		if tb.Total > 0 {
			tb.CompletionRate = float64(tb.Completed) / float64(tb.Total)
		}
		agg.ByType = append(agg.ByType, *tb)
	}

	if avg := averageSpacing(completedStarts); avg != nil {
		rounded := math.Round(*avg*10) / 10
		agg.Derived.AverageSpacingDays = &rounded
	}

	days := distinctDays(completedStarts)
	agg.Derived.DistinctCompletedDays = len(days)
	agg.Derived.CurrentStreak = currentStreak(days, now)
	agg.Derived.LongestStreak = longestStreak(days)
	agg.Derived.MostProductiveWeekday = mostProductiveWeekday(completedStarts)

	return agg
}

// distinctDays returns the unique day-truncated instants of the given starts,
// sorted ascending.
func distinctDays(starts []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(starts))
	var days []time.Time
	for _, start := range starts {
		day := timeutil.StartOfDay(start)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// currentStreak walks backward day by day from today. A checked day with at
// least one completed session extends the streak; the first empty day stops
// the walk, so an empty today yields zero regardless of earlier history.
func currentStreak(days []time.Time, now time.Time) int {
	set := make(map[time.Time]struct{}, len(days))
	for _, day := range days {
		set[day] = struct{}{}
	}

	streak := 0
	check := timeutil.StartOfDay(now)
	for {
		if _, ok := set[check]; !ok {
			return streak
		}
		streak++
		check = check.AddDate(0, 0, -1)
	}
}

// longestStreak scans distinct completed days in chronological order and
// tracks the longest run of exactly-consecutive days.
func longestStreak(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, 1).Equal(days[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// mostProductiveWeekday returns the weekday with the most completed sessions,
// or nil when there are none. The lowest weekday index wins ties.
func mostProductiveWeekday(starts []time.Time) *time.Weekday {
	if len(starts) == 0 {
		return nil
	}

	var counts [7]int
	for _, start := range starts {
		counts[int(start.Weekday())]++
	}

	best := 0
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	weekday := time.Weekday(best)
	return &weekday
}
