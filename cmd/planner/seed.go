package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/session-planner/internal/application"
	"github.com/example/session-planner/internal/config"
)

// at pins a date to a specific local clock time.
func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.Local)
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with a starter catalog",
	Long: `seed creates a small set of session types, past sessions, and weekly
availability windows so suggestions work out of the box. Existing data is left
untouched; rerunning adds duplicates.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		svcs, err := buildServices(cmd, cfg, logger)
		if err != nil {
			return err
		}
		defer svcs.store.Close()

		ctx := cmd.Context()

		types := []application.SessionTypeInput{
			{Name: "Deep Work", Category: "focus", Priority: 5},
			{Name: "Exercise", Category: "health", Priority: 4},
			{Name: "Reading", Category: "leisure", Priority: 2},
		}
		created := make([]application.SessionType, 0, len(types))
		for _, input := range types {
			sessionType, err := svcs.types.CreateSessionType(ctx, input)
			if err != nil {
				return fmt.Errorf("seed session type %q: %w", input.Name, err)
			}
			created = append(created, sessionType)
		}

		windows := []application.AvailabilityWindowInput{
			{Weekday: int(time.Monday), Start: "07:00", End: "09:00"},
			{Weekday: int(time.Monday), Start: "18:00", End: "21:00"},
			{Weekday: int(time.Wednesday), Start: "18:00", End: "21:00"},
			{Weekday: int(time.Friday), Start: "07:00", End: "09:00"},
			{Weekday: int(time.Saturday), Start: "09:00", End: "13:00"},
			{Weekday: int(time.Sunday), Start: "09:00", End: "13:00"},
		}
		for _, input := range windows {
			if _, err := svcs.availability.CreateWindow(ctx, input); err != nil {
				return fmt.Errorf("seed availability window: %w", err)
			}
		}

		// A little history so the first suggestion run has spacing and streak
		// data to score against.
		now := time.Now()
		if !cfg.ReferenceTime.IsZero() {
			now = cfg.ReferenceTime
		}
		lastMonday := now.AddDate(0, 0, -int((now.Weekday()+6)%7)-7)
		sessions := []application.SessionInput{
			{TypeID: created[0].ID, Start: at(lastMonday, 7, 0), DurationMinutes: 90, Completed: true},
			{TypeID: created[0].ID, Start: at(lastMonday.AddDate(0, 0, 2), 18, 0), DurationMinutes: 60, Completed: true},
			{TypeID: created[1].ID, Start: at(lastMonday.AddDate(0, 0, 5), 9, 0), DurationMinutes: 45, Completed: true},
		}
		for _, input := range sessions {
			if _, _, err := svcs.sessions.CreateSession(ctx, application.CreateSessionParams{Input: input}); err != nil {
				return fmt.Errorf("seed session: %w", err)
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d session types, %d sessions and %d availability windows\n",
			len(created), len(sessions), len(windows))
		return nil
	},
}
