// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/bookvibe/internal/api"
	"github.com/tomtom215/bookvibe/internal/config"
	"github.com/tomtom215/bookvibe/internal/logging"
	"github.com/tomtom215/bookvibe/internal/supervisor"
	"github.com/tomtom215/bookvibe/internal/supervisor/services"
)

// httpShutdownTimeout bounds the wait for in-flight requests on shutdown.
const httpShutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

// run starts the server and blocks until SIGINT or SIGTERM. It returns a
// non-zero exit code only when the configuration cannot be used.
//
//nolint:gocyclo // Sequential setup steps
func run() int {
	// Load configuration first to get logging settings
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Error().Err(err).Msg("Failed to load configuration")
		return 1
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
		File: logging.FileConfig{
			Path:       cfg.Logging.File.Path,
			MaxSizeMB:  cfg.Logging.File.MaxSizeMB,
			MaxBackups: cfg.Logging.File.MaxBackups,
			MaxAgeDays: cfg.Logging.File.MaxAgeDays,
			Compress:   cfg.Logging.File.Compress,
		},
	})
	defer func() {
		if err := logging.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing log file")
		}
	}()

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("source", cfg.Data.Source).
		Bool("watch", cfg.Data.Watch).
		Dur("reload_interval", cfg.Data.ReloadInterval).
		Msg("Starting BookVibe with supervisor tree")

	if cfg.API.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*); set explicit origins in production")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create supervisor tree")
		return 1
	}

	rc, err := initRecommend(cfg, logging.Logger(), tree)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to initialize recommendation engine")
		return 1
	}

	// Hot-reload weights and limits from the config file, if there is one.
	if path := config.ConfigFile(); path != "" {
		logger := logging.WithComponent("config")
		unwatch, err := config.WatchConfigFile(path, func() {
			reloadEngineConfig(path, rc.Engine, logger)
		})
		if err != nil {
			logger.Warn().Err(err).Msg("Config file watching disabled")
		} else {
			defer func() {
				if err := unwatch(); err != nil {
					logger.Debug().Err(err).Msg("Error stopping config watcher")
				}
			}()
			logger.Info().Str("path", path).Msg("Watching config file for recommendation settings")
		}
	}

	handler := api.NewHandler(rc.Engine, rc.Reloader, cfg.API.RequestTimeout)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromAPI(cfg.API)), api.RouterConfig{
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, httpShutdownTimeout, logging.WithComponent("http")))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
	return 0
}
