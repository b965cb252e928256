package persistence

import (
	"context"
	"time"
)

// SessionFilter narrows session queries.
type SessionFilter struct {
	TypeID      string
	StartsAt    *time.Time
	StartsBelow *time.Time
	ExcludeID   string
}

// SessionTypeRepository exposes CRUD operations for session types.
type SessionTypeRepository interface {
	CreateSessionType(ctx context.Context, sessionType SessionType) error
	UpdateSessionType(ctx context.Context, sessionType SessionType) error
	GetSessionType(ctx context.Context, id string) (SessionType, error)
	ListSessionTypes(ctx context.Context) ([]SessionType, error)
	// DeleteSessionType removes the type and cascades to its sessions.
	DeleteSessionType(ctx context.Context, id string) error
}

// SessionRepository stores booked sessions.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) error
	UpdateSession(ctx context.Context, session Session) error
	GetSession(ctx context.Context, id string) (Session, error)
	ListSessions(ctx context.Context, filter SessionFilter) ([]Session, error)
	DeleteSession(ctx context.Context, id string) error
}

// AvailabilityRepository stores recurring weekly availability windows.
type AvailabilityRepository interface {
	CreateWindow(ctx context.Context, window AvailabilityWindow) error
	UpdateWindow(ctx context.Context, window AvailabilityWindow) error
	GetWindow(ctx context.Context, id string) (AvailabilityWindow, error)
	ListWindows(ctx context.Context) ([]AvailabilityWindow, error)
	DeleteWindow(ctx context.Context, id string) error
}
