// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/bookvibe/internal/metrics"
	"github.com/tomtom215/bookvibe/internal/recommend"
)

// BreakerSettings configures the circuit breaker guarding the primary source.
type BreakerSettings struct {
	// Failures is the number of consecutive primary failures that opens the breaker.
	Failures uint32

	// Timeout is how long the breaker stays open before a trial load.
	Timeout time.Duration
}

// FallbackSource loads from a primary source and switches to a fallback
// when the primary fails. A circuit breaker stops hammering a primary that
// keeps failing (a missing file, a locked database) until Timeout elapses.
type FallbackSource struct {
	primary  Source
	fallback Source
	breaker  *gobreaker.CircuitBreaker[*recommend.Dataset]
	logger   zerolog.Logger
}

// NewFallbackSource wraps primary with a breaker and a fallback.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewFallbackSource(primary, fallback Source, s BreakerSettings, logger zerolog.Logger) *FallbackSource {
	if s.Failures == 0 {
		s.Failures = 1
	}

	f := &FallbackSource{
		primary:  primary,
		fallback: fallback,
		logger:   logger.With().Str("source", primary.Name()).Logger(),
	}

	f.breaker = gobreaker.NewCircuitBreaker[*recommend.Dataset](gobreaker.Settings{
		Name:        primary.Name(),
		MaxRequests: 1,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.Failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.RecordBreakerTransition(name, from.String(), to.String(), breakerGauge(to))
			f.logger.Warn().
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Data source circuit breaker changed state")
		},
		// A cancelled load says nothing about the health of the source.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
	})
	metrics.DataSourceBreakerState.WithLabelValues(primary.Name()).Set(metrics.BreakerClosed)

	return f
}

// Name reports the primary source name.
func (f *FallbackSource) Name() string {
	return f.primary.Name()
}

// State reports the breaker state: "closed", "half-open", or "open".
func (f *FallbackSource) State() string {
	return f.breaker.State().String()
}

// Load tries the primary through the breaker and falls back on any failure,
// including an open breaker. The returned dataset's Origin names the source
// that actually produced it.
func (f *FallbackSource) Load(ctx context.Context) (*recommend.Dataset, error) {
	ds, err := f.breaker.Execute(func() (*recommend.Dataset, error) {
		return f.primary.Load(ctx)
	})
	if !errors.Is(err, gobreaker.ErrOpenState) && !errors.Is(err, gobreaker.ErrTooManyRequests) {
		metrics.RecordSourceLoad(f.primary.Name(), err)
	}
	if err == nil {
		return ds, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	f.logger.Warn().Err(err).
		Str("fallback", f.fallback.Name()).
		Str("breaker", f.State()).
		Msg("Primary data source unavailable, using fallback")
	metrics.RecordSourceFallback(f.primary.Name())

	ds, fbErr := f.fallback.Load(ctx)
	metrics.RecordSourceLoad(f.fallback.Name(), fbErr)
	if fbErr != nil {
		return nil, fmt.Errorf("load data: %w", errors.Join(err, fbErr))
	}
	return ds, nil
}

func breakerGauge(state gobreaker.State) int {
	switch state {
	case gobreaker.StateOpen:
		return metrics.BreakerOpen
	case gobreaker.StateHalfOpen:
		return metrics.BreakerHalfOpen
	default:
		return metrics.BreakerClosed
	}
}
