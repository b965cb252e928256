package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/session-planner/internal/persistence"
	"github.com/example/session-planner/internal/scheduler"
)

// SessionService orchestrates booking, rescheduling, and conflict checking.
type SessionService struct {
	sessions    SessionRepository
	types       SessionTypeRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
	onMutation  func()
}

// NewSessionService wires dependencies for session operations.
func NewSessionService(sessions SessionRepository, types SessionTypeRepository, idGenerator func() string, now func() time.Time) *SessionService {
	return NewSessionServiceWithLogger(sessions, types, idGenerator, now, nil)
}

// NewSessionServiceWithLogger wires dependencies including a base logger.
func NewSessionServiceWithLogger(sessions SessionRepository, types SessionTypeRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *SessionService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &SessionService{
		sessions:    sessions,
		types:       types,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

// OnMutation registers a callback invoked after every successful write, used
// to invalidate derived caches.
func (s *SessionService) OnMutation(fn func()) {
	if s != nil {
		s.onMutation = fn
	}
}

func (s *SessionService) notifyMutation() {
	if s.onMutation != nil {
		s.onMutation()
	}
}

// CreateSession books a session. With CheckConflict set, an overlap with any
// existing session blocks the booking: the zero Session comes back together
// with a ConflictResult listing the overlaps. The overlap check and insert
// are atomic at the store, so racing acceptances cannot double-book.
func (s *SessionService) CreateSession(ctx context.Context, params CreateSessionParams) (Session, ConflictResult, error) {
	if s == nil {
		return Session{}, ConflictResult{}, fmt.Errorf("SessionService is nil")
	}
	input := params.Input

	if err := validateSessionInput(input); err != nil {
		return Session{}, ConflictResult{}, err
	}

	sessionType, err := s.types.GetSessionType(ctx, input.TypeID)
	if err != nil {
		return Session{}, ConflictResult{}, mapRepoError(err)
	}

	stored := persistence.Session{
		ID:              s.idGenerator(),
		TypeID:          input.TypeID,
		Start:           input.Start,
		DurationMinutes: input.DurationMinutes,
		Completed:       input.Completed,
	}

	logger := serviceLogger(ctx, s.logger, "session", "create", "type_id", input.TypeID)

	if params.CheckConflict {
		conflicting, err := s.sessions.CreateSessionIfFree(ctx, stored)
		if err != nil {
			return Session{}, ConflictResult{}, mapRepoError(err)
		}
		if len(conflicting) > 0 {
			result, err := s.describeConflicts(ctx, conflicting)
			if err != nil {
				return Session{}, ConflictResult{}, err
			}
			logger.InfoContext(ctx, "booking blocked by conflict", "conflicts", len(result.Sessions))
			return Session{}, result, nil
		}
	} else {
		if err := s.sessions.CreateSession(ctx, stored); err != nil {
			return Session{}, ConflictResult{}, mapRepoError(err)
		}
	}

	created, err := s.sessions.GetSession(ctx, stored.ID)
	if err != nil {
		return Session{}, ConflictResult{}, mapRepoError(err)
	}

	s.notifyMutation()
	logger.InfoContext(ctx, "session booked", "session_id", created.ID)
	return toApplicationSession(created, sessionType.Name), ConflictResult{}, nil
}

// UpdateSession reschedules, resizes, or toggles completion on a session.
// With CheckConflict set, the new interval is validated against every other
// session first and an overlap aborts the update.
func (s *SessionService) UpdateSession(ctx context.Context, params UpdateSessionParams) (Session, ConflictResult, error) {
	if s == nil {
		return Session{}, ConflictResult{}, fmt.Errorf("SessionService is nil")
	}

	existing, err := s.sessions.GetSession(ctx, params.SessionID)
	if err != nil {
		return Session{}, ConflictResult{}, mapRepoError(err)
	}

	input := params.Input
	if input.TypeID != "" && input.TypeID != existing.TypeID {
		vErr := &ValidationError{}
		vErr.add("type_id", "session type cannot be changed")
		return Session{}, ConflictResult{}, vErr
	}
	input.TypeID = existing.TypeID
	if err := validateSessionInput(input); err != nil {
		return Session{}, ConflictResult{}, err
	}

	if params.CheckConflict {
		result, err := s.CheckConflict(ctx, input.Start, input.DurationMinutes, existing.ID)
		if err != nil {
			return Session{}, ConflictResult{}, err
		}
		if result.Conflict {
			return Session{}, result, nil
		}
	}

	existing.Start = input.Start
	existing.DurationMinutes = input.DurationMinutes
	existing.Completed = input.Completed

	if err := s.sessions.UpdateSession(ctx, existing); err != nil {
		return Session{}, ConflictResult{}, mapRepoError(err)
	}

	updated, err := s.sessions.GetSession(ctx, existing.ID)
	if err != nil {
		return Session{}, ConflictResult{}, mapRepoError(err)
	}

	sessionType, err := s.types.GetSessionType(ctx, updated.TypeID)
	if err != nil {
		return Session{}, ConflictResult{}, mapRepoError(err)
	}

	s.notifyMutation()
	return toApplicationSession(updated, sessionType.Name), ConflictResult{}, nil
}

// GetSession retrieves one session.
func (s *SessionService) GetSession(ctx context.Context, id string) (Session, error) {
	if s == nil {
		return Session{}, fmt.Errorf("SessionService is nil")
	}

	stored, err := s.sessions.GetSession(ctx, id)
	if err != nil {
		return Session{}, mapRepoError(err)
	}

	sessionType, err := s.types.GetSessionType(ctx, stored.TypeID)
	if err != nil {
		return Session{}, mapRepoError(err)
	}
	return toApplicationSession(stored, sessionType.Name), nil
}

// ListSessions enumerates sessions matching the given filters, ordered by
// start time ascending.
func (s *SessionService) ListSessions(ctx context.Context, params ListSessionsParams) ([]Session, error) {
	if s == nil {
		return nil, fmt.Errorf("SessionService is nil")
	}

	filter := persistence.SessionFilter{TypeID: params.TypeID}
	if params.Upcoming {
		now := s.now()
		filter.StartsAt = &now
	}
	if params.From != nil {
		filter.StartsAt = params.From
	}
	if params.To != nil {
		filter.StartsBelow = params.To
	}

	stored, err := s.sessions.ListSessions(ctx, filter)
	if err != nil {
		return nil, mapRepoError(err)
	}

	types, err := s.typeIndex(ctx)
	if err != nil {
		return nil, err
	}

	sessions := make([]Session, 0, len(stored))
	for _, session := range stored {
		name := ""
		if sessionType, ok := types[session.TypeID]; ok {
			name = sessionType.Name
		}
		sessions = append(sessions, toApplicationSession(session, name))
	}
	return sessions, nil
}

// DeleteSession removes a session.
func (s *SessionService) DeleteSession(ctx context.Context, id string) error {
	if s == nil {
		return fmt.Errorf("SessionService is nil")
	}

	if err := s.sessions.DeleteSession(ctx, id); err != nil {
		return mapRepoError(err)
	}
	s.notifyMutation()
	return nil
}

// CheckConflict tests a proposed interval against every stored session,
// optionally ignoring one session's own identifier for update-in-place
// checks. The outcome is a structured result, never an error.
func (s *SessionService) CheckConflict(ctx context.Context, start time.Time, durationMinutes int, excludeID string) (ConflictResult, error) {
	if s == nil {
		return ConflictResult{}, fmt.Errorf("SessionService is nil")
	}

	vErr := &ValidationError{}
	if durationMinutes <= 0 {
		vErr.add("duration_minutes", "duration must be positive")
	}
	if start.IsZero() {
		vErr.add("start", "start is required")
	}
	if vErr.HasErrors() {
		return ConflictResult{}, vErr
	}

	universe, err := s.schedulerUniverse(ctx)
	if err != nil {
		return ConflictResult{}, err
	}

	conflicts := scheduler.DetectConflicts(universe, start, durationMinutes, excludeID)
	return toConflictResult(conflicts), nil
}

func (s *SessionService) describeConflicts(ctx context.Context, conflicting []persistence.Session) (ConflictResult, error) {
	types, err := s.typeIndex(ctx)
	if err != nil {
		return ConflictResult{}, err
	}
	converted := toSchedulerSessions(conflicting, types)

	result := ConflictResult{Conflict: true}
	for _, session := range converted {
		result.Sessions = append(result.Sessions, ConflictingSession{
			SessionID:       session.ID,
			TypeName:        session.TypeName,
			Start:           session.Start,
			DurationMinutes: session.DurationMinutes,
		})
	}
	return result, nil
}

func (s *SessionService) schedulerUniverse(ctx context.Context) ([]scheduler.Session, error) {
	stored, err := s.sessions.ListSessions(ctx, persistence.SessionFilter{})
	if err != nil {
		return nil, mapRepoError(err)
	}
	types, err := s.typeIndex(ctx)
	if err != nil {
		return nil, err
	}
	return toSchedulerSessions(stored, types), nil
}

func (s *SessionService) typeIndex(ctx context.Context) (map[string]persistence.SessionType, error) {
	stored, err := s.types.ListSessionTypes(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}
	index := make(map[string]persistence.SessionType, len(stored))
	for _, sessionType := range stored {
		index[sessionType.ID] = sessionType
	}
	return index, nil
}

func validateSessionInput(input SessionInput) error {
	vErr := &ValidationError{}
	if input.TypeID == "" {
		vErr.add("type_id", "session type is required")
	}
	if input.Start.IsZero() {
		vErr.add("start", "start is required")
	}
	if input.DurationMinutes <= 0 {
		vErr.add("duration_minutes", "duration must be positive")
	}
	if vErr.HasErrors() {
		return vErr
	}
	return nil
}
