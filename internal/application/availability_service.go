package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/session-planner/internal/persistence"
	"github.com/example/session-planner/internal/timeutil"
)

// AvailabilityService manages the weekly availability windows that seed the
// suggestion engine.
type AvailabilityService struct {
	windows     AvailabilityRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewAvailabilityService wires dependencies for availability operations.
func NewAvailabilityService(windows AvailabilityRepository, idGenerator func() string, now func() time.Time) *AvailabilityService {
	return NewAvailabilityServiceWithLogger(windows, idGenerator, now, nil)
}

// NewAvailabilityServiceWithLogger wires dependencies including a base logger.
func NewAvailabilityServiceWithLogger(windows AvailabilityRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *AvailabilityService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &AvailabilityService{
		windows:     windows,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

// CreateWindow registers a weekly availability window.
func (s *AvailabilityService) CreateWindow(ctx context.Context, input AvailabilityWindowInput) (AvailabilityWindow, error) {
	if s == nil {
		return AvailabilityWindow{}, fmt.Errorf("AvailabilityService is nil")
	}

	if err := validateWindowInput(input); err != nil {
		return AvailabilityWindow{}, err
	}

	window := persistence.AvailabilityWindow{
		ID:      s.idGenerator(),
		Weekday: input.Weekday,
		Start:   input.Start,
		End:     input.End,
	}
	if err := s.windows.CreateWindow(ctx, window); err != nil {
		return AvailabilityWindow{}, mapRepoError(err)
	}

	created, err := s.windows.GetWindow(ctx, window.ID)
	if err != nil {
		return AvailabilityWindow{}, mapRepoError(err)
	}

	logger := serviceLogger(ctx, s.logger, "availability", "create")
	logger.InfoContext(ctx, "availability window added",
		"window_id", created.ID,
		"weekday", time.Weekday(created.Weekday).String())
	return toApplicationWindow(created), nil
}

// UpdateWindow replaces a window's weekday and clock range.
func (s *AvailabilityService) UpdateWindow(ctx context.Context, id string, input AvailabilityWindowInput) (AvailabilityWindow, error) {
	if s == nil {
		return AvailabilityWindow{}, fmt.Errorf("AvailabilityService is nil")
	}

	if err := validateWindowInput(input); err != nil {
		return AvailabilityWindow{}, err
	}

	existing, err := s.windows.GetWindow(ctx, id)
	if err != nil {
		return AvailabilityWindow{}, mapRepoError(err)
	}

	existing.Weekday = input.Weekday
	existing.Start = input.Start
	existing.End = input.End
	if err := s.windows.UpdateWindow(ctx, existing); err != nil {
		return AvailabilityWindow{}, mapRepoError(err)
	}

	updated, err := s.windows.GetWindow(ctx, id)
	if err != nil {
		return AvailabilityWindow{}, mapRepoError(err)
	}
	return toApplicationWindow(updated), nil
}

// ListWindows enumerates all windows, ordered by weekday then start clock.
func (s *AvailabilityService) ListWindows(ctx context.Context) ([]AvailabilityWindow, error) {
	if s == nil {
		return nil, fmt.Errorf("AvailabilityService is nil")
	}

	stored, err := s.windows.ListWindows(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}

	windows := make([]AvailabilityWindow, 0, len(stored))
	for _, window := range stored {
		windows = append(windows, toApplicationWindow(window))
	}
	return windows, nil
}

// DeleteWindow removes a window.
func (s *AvailabilityService) DeleteWindow(ctx context.Context, id string) error {
	if s == nil {
		return fmt.Errorf("AvailabilityService is nil")
	}

	if err := s.windows.DeleteWindow(ctx, id); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func validateWindowInput(input AvailabilityWindowInput) error {
	vErr := &ValidationError{}
	if input.Weekday < 0 || input.Weekday > 6 {
		vErr.add("weekday", "weekday must be between 0 (Sunday) and 6 (Saturday)")
	}

	startHour, startMinute, startErr := timeutil.ParseClock(input.Start)
	if startErr != nil {
		vErr.add("start", "start must be a valid HH:MM clock")
	}
	endHour, endMinute, endErr := timeutil.ParseClock(input.End)
	if endErr != nil {
		vErr.add("end", "end must be a valid HH:MM clock")
	}
	if startErr == nil && endErr == nil {
		if startHour*60+startMinute >= endHour*60+endMinute {
			vErr.add("end", "end must be after start")
		}
	}

	if vErr.HasErrors() {
		return vErr
	}
	return nil
}
