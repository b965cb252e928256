package sqlite

import (
	"context"
	"time"

	"github.com/example/session-planner/internal/persistence"
)

// CreateWindow inserts a new availability window.
func (s *Store) CreateWindow(ctx context.Context, window persistence.AvailabilityWindow) error {
	if window.ID == "" {
		return persistence.ErrConstraintViolation
	}

	now := time.Now()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO availability_windows (id, weekday, start_clock, end_clock, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		window.ID,
		window.Weekday,
		window.Start,
		window.End,
		now.Format(time.RFC3339),
		now.Format(time.RFC3339),
	)
	return mapError(err)
}

// UpdateWindow rewrites an existing availability window.
func (s *Store) UpdateWindow(ctx context.Context, window persistence.AvailabilityWindow) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE availability_windows SET weekday = ?, start_clock = ?, end_clock = ?, updated_at = ?
		WHERE id = ?`,
		window.Weekday,
		window.Start,
		window.End,
		time.Now().Format(time.RFC3339),
		window.ID,
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

// GetWindow retrieves an availability window by ID.
func (s *Store) GetWindow(ctx context.Context, id string) (persistence.AvailabilityWindow, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, weekday, start_clock, end_clock, created_at, updated_at
		FROM availability_windows WHERE id = ?`, id)
	return scanWindow(row)
}

// ListWindows returns all windows ordered by weekday, then start clock.
func (s *Store) ListWindows(ctx context.Context) ([]persistence.AvailabilityWindow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, weekday, start_clock, end_clock, created_at, updated_at
		FROM availability_windows ORDER BY weekday, start_clock, id`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var windows []persistence.AvailabilityWindow
	for rows.Next() {
		window, err := scanWindow(rows)
		if err != nil {
			return nil, err
		}
		windows = append(windows, window)
	}
	return windows, rows.Err()
}

// DeleteWindow removes an availability window by ID.
func (s *Store) DeleteWindow(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM availability_windows WHERE id = ?`, id)
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

func scanWindow(row rowScanner) (persistence.AvailabilityWindow, error) {
	var window persistence.AvailabilityWindow
	var createdAt, updatedAt string
	if err := row.Scan(
		&window.ID,
		&window.Weekday,
		&window.Start,
		&window.End,
		&createdAt,
		&updatedAt,
	); err != nil {
		return persistence.AvailabilityWindow{}, mapError(err)
	}

	var err error
	if window.CreatedAt, err = parseStoredTime(createdAt); err != nil {
		return persistence.AvailabilityWindow{}, err
	}
	if window.UpdatedAt, err = parseStoredTime(updatedAt); err != nil {
		return persistence.AvailabilityWindow{}, err
	}
	return window, nil
}

var _ persistence.AvailabilityRepository = (*Store)(nil)
