// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/ojakgyo/internal/api"
	"github.com/tomtom215/ojakgyo/internal/app"
	"github.com/tomtom215/ojakgyo/internal/config"
	"github.com/tomtom215/ojakgyo/internal/logging"
	"github.com/tomtom215/ojakgyo/internal/middleware"
	"github.com/tomtom215/ojakgyo/internal/supervisor"
	"github.com/tomtom215/ojakgyo/internal/supervisor/services"
)

const (
	perfMonitorSize   = 1000
	slowRequestCutoff = time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("driver", cfg.Database.Driver).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Ojakgyo")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := logging.Logger()
	a, err := app.Open(ctx, cfg, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize data store")
	}
	defer func() {
		if err := a.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing data store")
		}
	}()

	counts := a.Catalog.Counts()
	logging.Info().
		Int("restaurants", counts.Restaurants).
		Int("attractions", counts.Attractions).
		Int("cafes", counts.Cafes).
		Msg("Catalog loaded")

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if a.DB != nil {
		tree.AddDataService(services.NewCheckpointService(a.DB, services.DefaultCheckpointInterval, logger))
	}

	perfMon := middleware.NewPerformanceMonitor(perfMonitorSize, slowRequestCutoff, logger)
	handler := api.NewHandler(a.Engine, a.Store, perfMon, cfg.API.RequestTimeout)
	chiMiddleware := api.NewChiMiddleware(api.ChiMiddlewareConfigFromAPI(cfg.API))
	if cfg.API.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	server := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           api.NewRouter(handler, chiMiddleware).SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	var treeErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Received shutdown signal, waiting for supervisor to finish")
		treeErr = <-errCh
	case treeErr = <-errCh:
	}
	if treeErr != nil && !errors.Is(treeErr, context.Canceled) {
		logging.Error().Err(treeErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Ojakgyo stopped gracefully")
}
