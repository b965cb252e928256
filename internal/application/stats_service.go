package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/example/session-planner/internal/persistence"
	"github.com/example/session-planner/internal/scheduler"
	"github.com/example/session-planner/internal/stats"
)

// StatsService computes the statistics overview: per-type history and the
// aggregate metrics derived from completed sessions.
type StatsService struct {
	sessions SessionRepository
	types    SessionTypeRepository
	now      func() time.Time
	logger   *slog.Logger
	cache    *statsCache
}

// NewStatsService wires dependencies for the statistics overview.
func NewStatsService(sessions SessionRepository, types SessionTypeRepository, now func() time.Time) *StatsService {
	return NewStatsServiceWithOptions(sessions, types, now, nil, 0)
}

// NewStatsServiceWithOptions wires dependencies including a base logger and a
// cache TTL for computed overviews. A non-positive TTL selects the default.
func NewStatsServiceWithOptions(sessions SessionRepository, types SessionTypeRepository, now func() time.Time, logger *slog.Logger, cacheTTL time.Duration) *StatsService {
	if now == nil {
		now = time.Now
	}
	return &StatsService{
		sessions: sessions,
		types:    types,
		now:      now,
		logger:   defaultLogger(logger),
		cache:    newStatsCache(cacheTTL, now),
	}
}

// InvalidateCache drops any cached overview. Mutating services call this
// through their OnMutation hooks.
func (s *StatsService) InvalidateCache() {
	if s != nil {
		s.cache.Invalidate()
	}
}

// Overview aggregates the full session history into per-type statistics and
// derived metrics.
func (s *StatsService) Overview(ctx context.Context) (StatsOverview, error) {
	if s == nil {
		return StatsOverview{}, fmt.Errorf("StatsService is nil")
	}

	now := s.now()
	key := statsCacheKey(now)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	storedSessions, err := s.sessions.ListSessions(ctx, persistence.SessionFilter{})
	if err != nil {
		return StatsOverview{}, mapRepoError(err)
	}
	storedTypes, err := s.types.ListSessionTypes(ctx)
	if err != nil {
		return StatsOverview{}, mapRepoError(err)
	}

	index := make(map[string]persistence.SessionType, len(storedTypes))
	for _, sessionType := range storedTypes {
		index[sessionType.ID] = sessionType
	}
	sessions := toSchedulerSessions(storedSessions, index)

	// ForType expects a pre-filtered slice; bucket once instead of rescanning
	// the full history per type.
	byType := make(map[string][]scheduler.Session, len(storedTypes))
	for _, session := range sessions {
		byType[session.TypeID] = append(byType[session.TypeID], session)
	}

	overview := StatsOverview{
		Types:     make([]stats.TypeStats, 0, len(storedTypes)),
		Aggregate: stats.Aggregate(sessions, now),
	}
	for _, sessionType := range storedTypes {
		overview.Types = append(overview.Types, stats.ForType(
			sessionType.ID, sessionType.Name, sessionType.Category, sessionType.Priority, byType[sessionType.ID], now))
	}
	sort.Slice(overview.Types, func(i, j int) bool {
		return overview.Types[i].TypeID < overview.Types[j].TypeID
	})

	s.cache.Store(key, overview)

	logger := serviceLogger(ctx, s.logger, "stats", "overview")
	logger.DebugContext(ctx, "statistics aggregated",
		"types", len(overview.Types),
		"sessions", len(sessions))
	return overview, nil
}
