package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/example/session-planner/internal/application"
	"github.com/example/session-planner/internal/config"
	"github.com/example/session-planner/internal/persistence/sqlite"
)

var rootCmd = &cobra.Command{
	Use:   "planner",
	Short: "A personal session planner",
	Long: `planner manages reusable session types, booked sessions, and weekly
availability windows, and suggests the best free slots for an activity based
on your history and schedule load.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(suggestCmd)
}

type services struct {
	store        *sqlite.Store
	types        *application.SessionTypeService
	sessions     *application.SessionService
	availability *application.AvailabilityService
	suggestions  *application.SuggestionService
	stats        *application.StatsService
}

// buildServices opens the store, applies the schema, and wires the service
// graph the same way for every subcommand.
func buildServices(cmd *cobra.Command, cfg config.Config, logger *slog.Logger) (*services, error) {
	store, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(cmd.Context()); err != nil {
		store.Close()
		return nil, err
	}

	idGenerator := uuid.NewString
	now := time.Now
	if !cfg.ReferenceTime.IsZero() {
		reference := cfg.ReferenceTime
		now = func() time.Time { return reference }
	}

	svcs := &services{
		store:        store,
		types:        application.NewSessionTypeServiceWithLogger(store, store, idGenerator, now, logger),
		sessions:     application.NewSessionServiceWithLogger(store, store, idGenerator, now, logger),
		availability: application.NewAvailabilityServiceWithLogger(store, idGenerator, now, logger),
		suggestions:  application.NewSuggestionServiceWithLogger(store, store, store, now, logger),
		stats:        application.NewStatsServiceWithOptions(store, store, now, logger, cfg.StatsCacheTTL),
	}
	svcs.sessions.OnMutation(svcs.stats.InvalidateCache)
	return svcs, nil
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
