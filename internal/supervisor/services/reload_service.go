// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/bookvibe/internal/metrics"
	"github.com/tomtom215/bookvibe/internal/recommend"
)

// Reloader rebuilds the recommendation snapshot from its data source.
// Satisfied by *recommend.Loader.
type Reloader interface {
	Reload(ctx context.Context) (recommend.Status, error)
}

// ReloadServiceConfig holds configuration for the reload service.
type ReloadServiceConfig struct {
	// ReloadOnStartup loads the first snapshot when the service starts.
	ReloadOnStartup bool

	// Interval is how often to reload on a schedule. Zero disables the schedule.
	Interval time.Duration

	// MinGap is the minimum time between two reloads. Requests arriving
	// sooner are deferred, not dropped. Zero disables throttling.
	MinGap time.Duration

	// Timeout bounds a single reload.
	Timeout time.Duration
}

// ReloadService owns the snapshot lifecycle: the startup load, scheduled
// reloads, and reloads requested through Trigger by the file watcher or the
// HTTP API. A failed reload leaves the previous snapshot serving.
type ReloadService struct {
	reloader Reloader
	config   ReloadServiceConfig
	limiter  *rate.Limiter
	trigger  chan struct{}
	logger   zerolog.Logger
	name     string
}

// NewReloadService creates a new reload service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewReloadService(reloader Reloader, cfg ReloadServiceConfig, logger zerolog.Logger) *ReloadService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}

	limit := rate.Inf
	if cfg.MinGap > 0 {
		limit = rate.Every(cfg.MinGap)
	}

	return &ReloadService{
		reloader: reloader,
		config:   cfg,
		limiter:  rate.NewLimiter(limit, 1),
		trigger:  make(chan struct{}, 1),
		logger:   logger.With().Str("service", "reload").Logger(),
		name:     "reload-service",
	}
}

// Trigger requests a reload without blocking. Requests made while one is
// already pending collapse into it.
func (s *ReloadService) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Serve implements the suture.Service interface.
func (s *ReloadService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("reload_on_startup", s.config.ReloadOnStartup).
		Dur("interval", s.config.Interval).
		Dur("min_gap", s.config.MinGap).
		Msg("reload service starting")

	if s.config.ReloadOnStartup {
		s.limiter.Allow()
		s.reload(ctx, "startup")
	}

	var tick <-chan time.Time
	if s.config.Interval > 0 {
		ticker := time.NewTicker(s.config.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	// deferred fires when a throttled request's reservation matures.
	var deferred <-chan time.Time
	var deferredTimer *time.Timer
	defer func() {
		if deferredTimer != nil {
			deferredTimer.Stop()
		}
	}()

	request := func(reason string) {
		if deferred != nil {
			// A reload is already scheduled and will see the latest data.
			metrics.RecordReloadThrottled()
			return
		}
		r := s.limiter.Reserve()
		delay := r.Delay()
		if delay == 0 {
			s.reload(ctx, reason)
			return
		}
		metrics.RecordReloadThrottled()
		s.logger.Debug().Str("reason", reason).Dur("delay", delay).Msg("reload throttled, deferring")
		deferredTimer = time.NewTimer(delay)
		deferred = deferredTimer.C
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("reload service shutting down")
			return ctx.Err()

		case <-tick:
			request("scheduled")

		case <-s.trigger:
			request("requested")

		case <-deferred:
			deferred = nil
			deferredTimer = nil
			s.reload(ctx, "deferred")
		}
	}
}

// reload runs one reload with its own timeout.
func (s *ReloadService) reload(ctx context.Context, reason string) {
	reloadCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	status, err := s.reloader.Reload(reloadCtx)
	duration := time.Since(start)

	metrics.RecordReload(duration, metrics.SnapshotStats{
		Version:        status.Version,
		Items:          status.Items,
		Users:          status.Users,
		DroppedRatings: status.DroppedRatings,
	}, err)

	if err != nil {
		s.logger.Warn().Err(err).
			Str("reason", reason).
			Int64("serving_version", status.Version).
			Msg("snapshot reload failed, keeping current snapshot")
		return
	}

	s.logger.Info().
		Str("reason", reason).
		Int64("version", status.Version).
		Int("items", status.Items).
		Int("users", status.Users).
		Str("origin", status.Origin).
		Dur("duration", duration).
		Msg("snapshot reloaded")
}

// String returns the service name for logging.
func (s *ReloadService) String() string {
	return s.name
}
