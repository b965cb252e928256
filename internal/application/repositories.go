package application

import (
	"context"

	"github.com/example/session-planner/internal/persistence"
)

// SessionTypeRepository captures the persistence interactions needed by the
// session type service.
type SessionTypeRepository interface {
	CreateSessionType(ctx context.Context, sessionType persistence.SessionType) error
	UpdateSessionType(ctx context.Context, sessionType persistence.SessionType) error
	GetSessionType(ctx context.Context, id string) (persistence.SessionType, error)
	ListSessionTypes(ctx context.Context) ([]persistence.SessionType, error)
	DeleteSessionType(ctx context.Context, id string) error
}

// SessionRepository captures the persistence interactions needed by the
// session and suggestion services.
type SessionRepository interface {
	CreateSession(ctx context.Context, session persistence.Session) error
	// CreateSessionIfFree must run its overlap check and insert atomically so
	// two racing bookings cannot both land.
	CreateSessionIfFree(ctx context.Context, session persistence.Session) ([]persistence.Session, error)
	UpdateSession(ctx context.Context, session persistence.Session) error
	GetSession(ctx context.Context, id string) (persistence.Session, error)
	ListSessions(ctx context.Context, filter persistence.SessionFilter) ([]persistence.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

// AvailabilityRepository captures the persistence interactions needed by the
// availability service.
type AvailabilityRepository interface {
	CreateWindow(ctx context.Context, window persistence.AvailabilityWindow) error
	UpdateWindow(ctx context.Context, window persistence.AvailabilityWindow) error
	GetWindow(ctx context.Context, id string) (persistence.AvailabilityWindow, error)
	ListWindows(ctx context.Context) ([]persistence.AvailabilityWindow, error)
	DeleteWindow(ctx context.Context, id string) error
}
