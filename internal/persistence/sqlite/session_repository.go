package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/session-planner/internal/persistence"
)

// CreateSession inserts a new session without any conflict guard.
func (s *Store) CreateSession(ctx context.Context, session persistence.Session) error {
	if session.ID == "" {
		return persistence.ErrConstraintViolation
	}
	return s.withTransaction(ctx, func(tx *sql.Tx) error {
		return insertSession(ctx, tx, session)
	})
}

// CreateSessionIfFree inserts the session only when its interval overlaps no
// existing session. The overlap check and the insert run in one transaction
// so two racing bookings cannot both succeed. A non-empty return value lists
// the conflicting sessions and means nothing was inserted.
func (s *Store) CreateSessionIfFree(ctx context.Context, session persistence.Session) ([]persistence.Session, error) {
	if session.ID == "" {
		return nil, persistence.ErrConstraintViolation
	}

	var conflicts []persistence.Session
	err := s.withTransaction(ctx, func(tx *sql.Tx) error {
		end := sessionEnd(session)
		rows, err := tx.QueryContext(ctx, `
			SELECT id, type_id, start_time, end_time, duration_minutes, completed, created_at, updated_at
			FROM sessions
			WHERE start_time < ? AND end_time > ?
			ORDER BY start_time, id`,
			end.Format(time.RFC3339),
			session.Start.Format(time.RFC3339),
		)
		if err != nil {
			return mapError(err)
		}
		defer rows.Close()

		for rows.Next() {
			conflicting, err := scanSession(rows)
			if err != nil {
				return err
			}
			conflicts = append(conflicts, conflicting)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return nil
		}
		return insertSession(ctx, tx, session)
	})
	if err != nil {
		return nil, err
	}
	return conflicts, nil
}

// UpdateSession rewrites a session's schedule, duration, and completion flag.
func (s *Store) UpdateSession(ctx context.Context, session persistence.Session) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE sessions
		SET start_time = ?, end_time = ?, duration_minutes = ?, completed = ?, updated_at = ?
		WHERE id = ?`,
		session.Start.Format(time.RFC3339),
		sessionEnd(session).Format(time.RFC3339),
		session.DurationMinutes,
		boolToInt(session.Completed),
		time.Now().Format(time.RFC3339),
		session.ID,
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

// GetSession retrieves a session by ID.
func (s *Store) GetSession(ctx context.Context, id string) (persistence.Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, type_id, start_time, end_time, duration_minutes, completed, created_at, updated_at
		FROM sessions WHERE id = ?`, id)
	return scanSession(row)
}

// ListSessions returns sessions matching the filter ordered by start time,
// then ID.
func (s *Store) ListSessions(ctx context.Context, filter persistence.SessionFilter) ([]persistence.Session, error) {
	query := `
		SELECT id, type_id, start_time, end_time, duration_minutes, completed, created_at, updated_at
		FROM sessions WHERE 1 = 1`
	var args []any

	if filter.TypeID != "" {
		query += " AND type_id = ?"
		args = append(args, filter.TypeID)
	}
	if filter.StartsAt != nil {
		query += " AND start_time >= ?"
		args = append(args, filter.StartsAt.Format(time.RFC3339))
	}
	if filter.StartsBelow != nil {
		query += " AND start_time < ?"
		args = append(args, filter.StartsBelow.Format(time.RFC3339))
	}
	if filter.ExcludeID != "" {
		query += " AND id != ?"
		args = append(args, filter.ExcludeID)
	}
	query += " ORDER BY start_time, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var sessions []persistence.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// DeleteSession removes a session by ID.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
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

func insertSession(ctx context.Context, tx *sql.Tx, session persistence.Session) error {
	now := time.Now()
	_, err := tx.ExecContext(ctx, `
		INSERT INTO sessions (id, type_id, start_time, end_time, duration_minutes, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.TypeID,
		session.Start.Format(time.RFC3339),
		sessionEnd(session).Format(time.RFC3339),
		session.DurationMinutes,
		boolToInt(session.Completed),
		now.Format(time.RFC3339),
		now.Format(time.RFC3339),
	)
	return mapError(err)
}

func scanSession(row rowScanner) (persistence.Session, error) {
	var session persistence.Session
	var startTime, endTime, createdAt, updatedAt string
	var completed int
	if err := row.Scan(
		&session.ID,
		&session.TypeID,
		&startTime,
		&endTime,
		&session.DurationMinutes,
		&completed,
		&createdAt,
		&updatedAt,
	); err != nil {
		return persistence.Session{}, mapError(err)
	}
	session.Completed = completed != 0

	var err error
	if session.Start, err = parseStoredTime(startTime); err != nil {
		return persistence.Session{}, err
	}
	if session.CreatedAt, err = parseStoredTime(createdAt); err != nil {
		return persistence.Session{}, err
	}
	if session.UpdatedAt, err = parseStoredTime(updatedAt); err != nil {
		return persistence.Session{}, err
	}
	return session, nil
}

func sessionEnd(session persistence.Session) time.Time {
	return session.Start.Add(time.Duration(session.DurationMinutes) * time.Minute)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ persistence.SessionRepository = (*Store)(nil)
