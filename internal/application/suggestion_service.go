package application

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/example/session-planner/internal/persistence"
	"github.com/example/session-planner/internal/scheduler"
	"github.com/example/session-planner/internal/stats"
)

const (
	defaultSuggestionDuration  = 60
	defaultSuggestionDaysAhead = 7
	defaultSuggestionLimit     = 5
)

// SuggestionService generates ranked scheduling suggestions for one session
// type from the configured availability windows.
type SuggestionService struct {
	sessions SessionRepository
	types    SessionTypeRepository
	windows  AvailabilityRepository
	now      func() time.Time
	logger   *slog.Logger
}

// NewSuggestionService wires dependencies for the suggestion engine.
func NewSuggestionService(sessions SessionRepository, types SessionTypeRepository, windows AvailabilityRepository, now func() time.Time) *SuggestionService {
	return NewSuggestionServiceWithLogger(sessions, types, windows, now, nil)
}

// NewSuggestionServiceWithLogger wires dependencies including a base logger.
func NewSuggestionServiceWithLogger(sessions SessionRepository, types SessionTypeRepository, windows AvailabilityRepository, now func() time.Time, logger *slog.Logger) *SuggestionService {
	if now == nil {
		now = time.Now
	}
	return &SuggestionService{
		sessions: sessions,
		types:    types,
		windows:  windows,
		now:      now,
		logger:   defaultLogger(logger),
	}
}

// Suggest produces up to Limit ranked candidate slots for the given type.
// Candidates are drawn from the weekly availability windows over the horizon,
// filtered against every session starting at or after now, then scored and
// sorted. Equal scores keep chronological order.
func (s *SuggestionService) Suggest(ctx context.Context, params SuggestParams) (SuggestionResult, error) {
	if s == nil {
		return SuggestionResult{}, fmt.Errorf("SuggestionService is nil")
	}

	if params.DurationMinutes == 0 {
		params.DurationMinutes = defaultSuggestionDuration
	}
	if params.DaysAhead == 0 {
		params.DaysAhead = defaultSuggestionDaysAhead
	}
	if params.Limit == 0 {
		params.Limit = defaultSuggestionLimit
	}
	if err := validateSuggestParams(params); err != nil {
		return SuggestionResult{}, err
	}

	sessionType, err := s.types.GetSessionType(ctx, params.TypeID)
	if err != nil {
		return SuggestionResult{}, mapRepoError(err)
	}

	now := s.now()

	universe, history, err := s.sessionSets(ctx, params.TypeID, now)
	if err != nil {
		return SuggestionResult{}, err
	}

	typeStats := stats.ForType(sessionType.ID, sessionType.Name, sessionType.Category, sessionType.Priority, history, now)

	result := SuggestionResult{
		TypeStats: TypeStatsSummary{
			Name:               typeStats.Name,
			Category:           typeStats.Category,
			Priority:           typeStats.Priority,
			LastScheduled:      typeStats.LastScheduled,
			UpcomingCount:      typeStats.UpcomingCount,
			CompletedCount:     typeStats.CompletedCount,
			AverageSpacingDays: typeStats.AverageSpacingDays,
		},
	}

	storedWindows, err := s.windows.ListWindows(ctx)
	if err != nil {
		return SuggestionResult{}, mapRepoError(err)
	}
	if len(storedWindows) == 0 {
		result.Message = "no availability windows configured; add windows to receive suggestions"
		return result, nil
	}

	windows := make([]scheduler.Window, 0, len(storedWindows))
	for _, window := range storedWindows {
		windows = append(windows, scheduler.Window{
			ID:      window.ID,
			Weekday: time.Weekday(window.Weekday),
			Start:   window.Start,
			End:     window.End,
		})
	}

	slots, err := scheduler.GenerateSlots(windows, params.DurationMinutes, params.DaysAhead, now)
	if err != nil {
		vErr := &ValidationError{}
		switch err {
		case scheduler.ErrInvalidDuration:
			vErr.add("duration_minutes", "duration must be positive")
		case scheduler.ErrInvalidHorizon:
			vErr.add("days_ahead", "days ahead must be positive")
		default:
			return SuggestionResult{}, err
		}
		return SuggestionResult{}, vErr
	}

	scoreCtx := scheduler.ScoreContext{
		TypeName:           sessionType.Name,
		Priority:           sessionType.Priority,
		LastScheduled:      typeStats.LastScheduled,
		AverageSpacingDays: typeStats.AverageSpacingDays,
		Existing:           universe,
		Now:                now,
	}

	scored := make([]scheduler.ScoredSlot, 0, len(slots))
	for _, slot := range slots {
		if scheduler.HasConflict(universe, slot.Start, params.DurationMinutes, "") {
			continue
		}
		scored = append(scored, scheduler.ScoreSlot(slot, scoreCtx))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > params.Limit {
		scored = scored[:params.Limit]
	}

	for rank, candidate := range scored {
		result.Suggestions = append(result.Suggestions, RankedSuggestion{
			Rank:            rank + 1,
			Start:           candidate.Start,
			End:             candidate.End,
			DurationMinutes: params.DurationMinutes,
			Score:           int(math.Round(candidate.Score)),
			Reasons:         candidate.Reasons,
		})
	}

	if len(result.Suggestions) == 0 {
		result.Message = "no free slots match your availability in the requested horizon"
	}

	logger := serviceLogger(ctx, s.logger, "suggestion", "suggest", "type_id", params.TypeID)
	logger.InfoContext(ctx, "suggestions generated",
		"candidates", len(slots),
		"returned", len(result.Suggestions))
	return result, nil
}

// sessionSets loads the two session views the engine needs. The universe is
// every session starting at or after now, across all types; candidates are
// conflict-checked and load/buffer-scored against it. The history is the full
// past-and-future record of the requested type only, which feeds its
// statistics.
func (s *SuggestionService) sessionSets(ctx context.Context, typeID string, now time.Time) (universe, history []scheduler.Session, err error) {
	future, err := s.sessions.ListSessions(ctx, persistence.SessionFilter{StartsAt: &now})
	if err != nil {
		return nil, nil, mapRepoError(err)
	}
	typed, err := s.sessions.ListSessions(ctx, persistence.SessionFilter{TypeID: typeID})
	if err != nil {
		return nil, nil, mapRepoError(err)
	}
	typesStored, err := s.types.ListSessionTypes(ctx)
	if err != nil {
		return nil, nil, mapRepoError(err)
	}
	index := make(map[string]persistence.SessionType, len(typesStored))
	for _, sessionType := range typesStored {
		index[sessionType.ID] = sessionType
	}
	return toSchedulerSessions(future, index), toSchedulerSessions(typed, index), nil
}

func validateSuggestParams(params SuggestParams) error {
	vErr := &ValidationError{}
	if params.TypeID == "" {
		vErr.add("type_id", "session type is required")
	}
	if params.DurationMinutes < 0 {
		vErr.add("duration_minutes", "duration must be positive")
	}
	if params.DaysAhead < 0 {
		vErr.add("days_ahead", "days ahead must be positive")
	}
	if params.Limit < 0 {
		vErr.add("limit", "limit must be positive")
	}
	if vErr.HasErrors() {
		return vErr
	}
	return nil
}
