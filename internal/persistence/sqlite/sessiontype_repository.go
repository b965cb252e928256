package sqlite

import (
	"context"
	"time"

	"github.com/example/session-planner/internal/persistence"
)

// CreateSessionType inserts a new session type.
func (s *Store) CreateSessionType(ctx context.Context, sessionType persistence.SessionType) error {
	if sessionType.ID == "" {
		return persistence.ErrConstraintViolation
	}

	now := time.Now()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session_types (id, name, category, priority, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		sessionType.ID,
		sessionType.Name,
		sessionType.Category,
		sessionType.Priority,
		now.Format(time.RFC3339),
		now.Format(time.RFC3339),
	)
	return mapError(err)
}

// UpdateSessionType updates the editable fields of an existing session type.
func (s *Store) UpdateSessionType(ctx context.Context, sessionType persistence.SessionType) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE session_types SET name = ?, category = ?, priority = ?, updated_at = ?
		WHERE id = ?`,
		sessionType.Name,
		sessionType.Category,
		sessionType.Priority,
		time.Now().Format(time.RFC3339),
		sessionType.ID,
	)
	if err != nil {
		return mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// GetSessionType retrieves a session type by ID.
func (s *Store) GetSessionType(ctx context.Context, id string) (persistence.SessionType, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, category, priority, created_at, updated_at
		FROM session_types WHERE id = ?`, id)
	return scanSessionType(row)
}

// ListSessionTypes returns all session types ordered by name, then ID.
func (s *Store) ListSessionTypes(ctx context.Context) ([]persistence.SessionType, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, priority, created_at, updated_at
		FROM session_types ORDER BY name, id`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var types []persistence.SessionType
	for rows.Next() {
		sessionType, err := scanSessionType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, sessionType)
	}
	return types, rows.Err()
}

// DeleteSessionType removes a session type; the schema cascades the delete to
// its sessions.
func (s *Store) DeleteSessionType(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM session_types WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSessionType(row rowScanner) (persistence.SessionType, error) {
	var sessionType persistence.SessionType
	var createdAt, updatedAt string
	if err := row.Scan(
		&sessionType.ID,
		&sessionType.Name,
		&sessionType.Category,
		&sessionType.Priority,
		&createdAt,
		&updatedAt,
	); err != nil {
		return persistence.SessionType{}, mapError(err)
	}

	var err error
	if sessionType.CreatedAt, err = parseStoredTime(createdAt); err != nil {
		return persistence.SessionType{}, err
	}
	if sessionType.UpdatedAt, err = parseStoredTime(updatedAt); err != nil {
		return persistence.SessionType{}, err
	}
	return sessionType, nil
}

func parseStoredTime(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(time.RFC3339, value, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return parsed, nil
}

var _ persistence.SessionTypeRepository = (*Store)(nil)
