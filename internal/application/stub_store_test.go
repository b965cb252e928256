package application

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/example/session-planner/internal/persistence"
	"github.com/example/session-planner/internal/timeutil"
)

// stubStore is an in-memory stand-in for the sqlite store, implementing all
// three repository interfaces so the services can be tested without a
// database.
type stubStore struct {
	types    map[string]persistence.SessionType
	sessions map[string]persistence.Session
	windows  map[string]persistence.AvailabilityWindow

	typeErr    error
	sessionErr error
	windowErr  error
}

func newStubStore() *stubStore {
	return &stubStore{
		types:    make(map[string]persistence.SessionType),
		sessions: make(map[string]persistence.Session),
		windows:  make(map[string]persistence.AvailabilityWindow),
	}
}

func (s *stubStore) CreateSessionType(ctx context.Context, sessionType persistence.SessionType) error {
	if s.typeErr != nil {
		return s.typeErr
	}
	if _, ok := s.types[sessionType.ID]; ok {
		return persistence.ErrDuplicate
	}
	s.types[sessionType.ID] = sessionType
	return nil
}

func (s *stubStore) UpdateSessionType(ctx context.Context, sessionType persistence.SessionType) error {
	if s.typeErr != nil {
		return s.typeErr
	}
	if _, ok := s.types[sessionType.ID]; !ok {
		return persistence.ErrNotFound
	}
	s.types[sessionType.ID] = sessionType
	return nil
}

func (s *stubStore) GetSessionType(ctx context.Context, id string) (persistence.SessionType, error) {
	if s.typeErr != nil {
		return persistence.SessionType{}, s.typeErr
	}
	sessionType, ok := s.types[id]
	if !ok {
		return persistence.SessionType{}, persistence.ErrNotFound
	}
	return sessionType, nil
}

func (s *stubStore) ListSessionTypes(ctx context.Context) ([]persistence.SessionType, error) {
	if s.typeErr != nil {
		return nil, s.typeErr
	}
	out := make([]persistence.SessionType, 0, len(s.types))
	for _, sessionType := range s.types {
		out = append(out, sessionType)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *stubStore) DeleteSessionType(ctx context.Context, id string) error {
	if s.typeErr != nil {
		return s.typeErr
	}
	if _, ok := s.types[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.types, id)
	for sessionID, session := range s.sessions {
		if session.TypeID == id {
			delete(s.sessions, sessionID)
		}
	}
	return nil
}

func (s *stubStore) CreateSession(ctx context.Context, session persistence.Session) error {
	if s.sessionErr != nil {
		return s.sessionErr
	}
	if _, ok := s.sessions[session.ID]; ok {
		return persistence.ErrDuplicate
	}
	if _, ok := s.types[session.TypeID]; !ok {
		return persistence.ErrForeignKeyViolation
	}
	s.sessions[session.ID] = session
	return nil
}

func (s *stubStore) CreateSessionIfFree(ctx context.Context, session persistence.Session) ([]persistence.Session, error) {
	if s.sessionErr != nil {
		return nil, s.sessionErr
	}
	end := session.Start.Add(time.Duration(session.DurationMinutes) * time.Minute)
	var conflicting []persistence.Session
	for _, existing := range s.sessions {
		existingEnd := existing.Start.Add(time.Duration(existing.DurationMinutes) * time.Minute)
		if timeutil.IntervalsOverlap(session.Start, end, existing.Start, existingEnd) {
			conflicting = append(conflicting, existing)
		}
	}
	if len(conflicting) > 0 {
		sort.Slice(conflicting, func(i, j int) bool { return conflicting[i].Start.Before(conflicting[j].Start) })
		return conflicting, nil
	}
	return nil, s.CreateSession(ctx, session)
}

func (s *stubStore) UpdateSession(ctx context.Context, session persistence.Session) error {
	if s.sessionErr != nil {
		return s.sessionErr
	}
	if _, ok := s.sessions[session.ID]; !ok {
		return persistence.ErrNotFound
	}
	s.sessions[session.ID] = session
	return nil
}

func (s *stubStore) GetSession(ctx context.Context, id string) (persistence.Session, error) {
	if s.sessionErr != nil {
		return persistence.Session{}, s.sessionErr
	}
	session, ok := s.sessions[id]
	if !ok {
		return persistence.Session{}, persistence.ErrNotFound
	}
	return session, nil
}

func (s *stubStore) ListSessions(ctx context.Context, filter persistence.SessionFilter) ([]persistence.Session, error) {
	if s.sessionErr != nil {
		return nil, s.sessionErr
	}
	out := make([]persistence.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		if filter.TypeID != "" && session.TypeID != filter.TypeID {
			continue
		}
		if filter.ExcludeID != "" && session.ID == filter.ExcludeID {
			continue
		}
		if filter.StartsAt != nil && session.Start.Before(*filter.StartsAt) {
			continue
		}
		if filter.StartsBelow != nil && !session.Start.Before(*filter.StartsBelow) {
			continue
		}
		out = append(out, session)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (s *stubStore) DeleteSession(ctx context.Context, id string) error {
	if s.sessionErr != nil {
		return s.sessionErr
	}
	if _, ok := s.sessions[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *stubStore) CreateWindow(ctx context.Context, window persistence.AvailabilityWindow) error {
	if s.windowErr != nil {
		return s.windowErr
	}
	if _, ok := s.windows[window.ID]; ok {
		return persistence.ErrDuplicate
	}
	s.windows[window.ID] = window
	return nil
}

func (s *stubStore) UpdateWindow(ctx context.Context, window persistence.AvailabilityWindow) error {
	if s.windowErr != nil {
		return s.windowErr
	}
	if _, ok := s.windows[window.ID]; !ok {
		return persistence.ErrNotFound
	}
	s.windows[window.ID] = window
	return nil
}

func (s *stubStore) GetWindow(ctx context.Context, id string) (persistence.AvailabilityWindow, error) {
	if s.windowErr != nil {
		return persistence.AvailabilityWindow{}, s.windowErr
	}
	window, ok := s.windows[id]
	if !ok {
		return persistence.AvailabilityWindow{}, persistence.ErrNotFound
	}
	return window, nil
}

func (s *stubStore) ListWindows(ctx context.Context) ([]persistence.AvailabilityWindow, error) {
	if s.windowErr != nil {
		return nil, s.windowErr
	}
	out := make([]persistence.AvailabilityWindow, 0, len(s.windows))
	for _, window := range s.windows {
		out = append(out, window)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weekday != out[j].Weekday {
			return out[i].Weekday < out[j].Weekday
		}
		return out[i].Start < out[j].Start
	})
	return out, nil
}

func (s *stubStore) DeleteWindow(ctx context.Context, id string) error {
	if s.windowErr != nil {
		return s.windowErr
	}
	if _, ok := s.windows[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.windows, id)
	return nil
}

var (
	_ SessionTypeRepository  = (*stubStore)(nil)
	_ SessionRepository      = (*stubStore)(nil)
	_ AvailabilityRepository = (*stubStore)(nil)
)

func sequentialIDs(prefix string) func() string {
	next := 0
	return func() string {
		next++
		return fmt.Sprintf("%s-%d", prefix, next)
	}
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
