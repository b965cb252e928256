package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/session-planner/internal/config"
	httptransport "github.com/example/session-planner/internal/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the planner HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := config.Load()
		if err != nil {
			logger.Error("failed to load configuration", "error", err)
			return err
		}

		svcs, err := buildServices(cmd, cfg, logger)
		if err != nil {
			logger.Error("failed to open storage", "error", err)
			return err
		}
		defer func() {
			if cerr := svcs.store.Close(); cerr != nil {
				logger.Error("failed to close storage", "error", cerr)
			}
		}()

		router := httptransport.NewRouter(httptransport.RouterConfig{
			SessionTypes: httptransport.NewSessionTypeHandler(svcs.types, logger),
			Sessions:     httptransport.NewSessionHandler(svcs.sessions, logger),
			Availability: httptransport.NewAvailabilityHandler(svcs.availability, logger),
			Suggestions:  httptransport.NewSuggestionHandler(svcs.suggestions, logger),
			Stats:        httptransport.NewStatsHandler(svcs.stats, logger),
			Middleware: []func(http.Handler) http.Handler{
				httptransport.RequestLogger(logger),
			},
		})

		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("failed to shutdown server", "error", err)
			}
		}()

		logger.Info("planner API listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server encountered error", "error", err)
			return err
		}
		return nil
	},
}
