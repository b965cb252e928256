package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/session-planner/internal/persistence"
)

// SessionTypeService orchestrates validation and persistence for session type
// operations.
type SessionTypeService struct {
	types       SessionTypeRepository
	sessions    SessionRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewSessionTypeService wires dependencies for session type operations.
func NewSessionTypeService(types SessionTypeRepository, sessions SessionRepository, idGenerator func() string, now func() time.Time) *SessionTypeService {
	return NewSessionTypeServiceWithLogger(types, sessions, idGenerator, now, nil)
}

// NewSessionTypeServiceWithLogger wires dependencies including a base logger.
func NewSessionTypeServiceWithLogger(types SessionTypeRepository, sessions SessionRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *SessionTypeService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &SessionTypeService{
		types:       types,
		sessions:    sessions,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

// CreateSessionType validates and stores a new session type.
func (s *SessionTypeService) CreateSessionType(ctx context.Context, input SessionTypeInput) (SessionType, error) {
	if s == nil {
		return SessionType{}, fmt.Errorf("SessionTypeService is nil")
	}

	if err := validateSessionTypeInput(input); err != nil {
		return SessionType{}, err
	}

	stored := persistence.SessionType{
		ID:       s.idGenerator(),
		Name:     strings.TrimSpace(input.Name),
		Category: strings.TrimSpace(input.Category),
		Priority: input.Priority,
	}

	if err := s.types.CreateSessionType(ctx, stored); err != nil {
		return SessionType{}, mapRepoError(err)
	}

	created, err := s.types.GetSessionType(ctx, stored.ID)
	if err != nil {
		return SessionType{}, mapRepoError(err)
	}

	serviceLogger(ctx, s.logger, "session_type", "create", "type_id", created.ID).
		InfoContext(ctx, "session type created")
	return toApplicationSessionType(created), nil
}

// UpdateSessionType rewrites the editable fields of an existing type.
func (s *SessionTypeService) UpdateSessionType(ctx context.Context, id string, input SessionTypeInput) (SessionType, error) {
	if s == nil {
		return SessionType{}, fmt.Errorf("SessionTypeService is nil")
	}

	if err := validateSessionTypeInput(input); err != nil {
		return SessionType{}, err
	}

	existing, err := s.types.GetSessionType(ctx, id)
	if err != nil {
		return SessionType{}, mapRepoError(err)
	}

	existing.Name = strings.TrimSpace(input.Name)
	existing.Category = strings.TrimSpace(input.Category)
	existing.Priority = input.Priority

	if err := s.types.UpdateSessionType(ctx, existing); err != nil {
		return SessionType{}, mapRepoError(err)
	}

	updated, err := s.types.GetSessionType(ctx, id)
	if err != nil {
		return SessionType{}, mapRepoError(err)
	}
	return s.withCompletedCount(ctx, updated)
}

// GetSessionType retrieves one session type with its completed-session count.
func (s *SessionTypeService) GetSessionType(ctx context.Context, id string) (SessionType, error) {
	if s == nil {
		return SessionType{}, fmt.Errorf("SessionTypeService is nil")
	}

	stored, err := s.types.GetSessionType(ctx, id)
	if err != nil {
		return SessionType{}, mapRepoError(err)
	}
	return s.withCompletedCount(ctx, stored)
}

// ListSessionTypes returns every session type with completed-session counts.
func (s *SessionTypeService) ListSessionTypes(ctx context.Context) ([]SessionType, error) {
	if s == nil {
		return nil, fmt.Errorf("SessionTypeService is nil")
	}

	stored, err := s.types.ListSessionTypes(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}

	counts, err := s.completedCounts(ctx)
	if err != nil {
		return nil, err
	}

	types := make([]SessionType, 0, len(stored))
	for _, sessionType := range stored {
		converted := toApplicationSessionType(sessionType)
		converted.CompletedSessions = counts[sessionType.ID]
		types = append(types, converted)
	}
	return types, nil
}

// DeleteSessionType removes a type; its sessions cascade away with it.
func (s *SessionTypeService) DeleteSessionType(ctx context.Context, id string) error {
	if s == nil {
		return fmt.Errorf("SessionTypeService is nil")
	}

	if err := s.types.DeleteSessionType(ctx, id); err != nil {
		return mapRepoError(err)
	}
	serviceLogger(ctx, s.logger, "session_type", "delete", "type_id", id).
		InfoContext(ctx, "session type deleted")
	return nil
}

func (s *SessionTypeService) withCompletedCount(ctx context.Context, stored persistence.SessionType) (SessionType, error) {
	converted := toApplicationSessionType(stored)
	if s.sessions == nil {
		return converted, nil
	}

	sessions, err := s.sessions.ListSessions(ctx, persistence.SessionFilter{TypeID: stored.ID})
	if err != nil {
		return SessionType{}, mapRepoError(err)
	}
	for _, session := range sessions {
		if session.Completed {
			converted.CompletedSessions++
		}
	}
	return converted, nil
}

func (s *SessionTypeService) completedCounts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	if s.sessions == nil {
		return counts, nil
	}

	sessions, err := s.sessions.ListSessions(ctx, persistence.SessionFilter{})
	if err != nil {
		return nil, mapRepoError(err)
	}
	for _, session := range sessions {
		if session.Completed {
			counts[session.TypeID]++
		}
	}
	return counts, nil
}

func validateSessionTypeInput(input SessionTypeInput) error {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if input.Priority < 1 || input.Priority > 5 {
		vErr.add("priority", "priority must be between 1 and 5")
	}
	if vErr.HasErrors() {
		return vErr
	}
	return nil
}
