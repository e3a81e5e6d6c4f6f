// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package catalog

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/bookvibe/internal/metrics"
	"github.com/tomtom215/bookvibe/internal/recommend"
)

// stubSource implements Source for testing.
type stubSource struct {
	mu    sync.Mutex
	name  string
	err   error
	calls int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Load(ctx context.Context) (*recommend.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &recommend.Dataset{Origin: s.name}, nil
}

func (s *stubSource) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *stubSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestFallbackSource_PrimaryHealthy(t *testing.T) {
	primary := &stubSource{name: "fb-healthy"}
	fallback := &stubSource{name: "sample"}
	src := NewFallbackSource(primary, fallback, BreakerSettings{Failures: 2, Timeout: time.Hour}, zerolog.Nop())

	ds, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ds.Origin != "fb-healthy" {
		t.Errorf("Origin = %q, want fb-healthy", ds.Origin)
	}
	if fallback.callCount() != 0 {
		t.Errorf("fallback calls = %d, want 0", fallback.callCount())
	}
	if src.Name() != "fb-healthy" {
		t.Errorf("Name() = %q, want fb-healthy", src.Name())
	}
}

func TestFallbackSource_OpensBreaker(t *testing.T) {
	primary := &stubSource{name: "fb-open", err: errors.New("file missing")}
	fallback := &stubSource{name: "sample"}
	src := NewFallbackSource(primary, fallback, BreakerSettings{Failures: 2, Timeout: time.Hour}, zerolog.Nop())

	before := testutil.ToFloat64(metrics.DataSourceFallbacksTotal.WithLabelValues("fb-open"))

	for i := 0; i < 4; i++ {
		ds, err := src.Load(context.Background())
		if err != nil {
			t.Fatalf("Load() #%d error = %v", i, err)
		}
		if ds.Origin != "sample" {
			t.Errorf("Load() #%d origin = %q, want sample", i, ds.Origin)
		}
	}

	if got := primary.callCount(); got != 2 {
		t.Errorf("primary calls = %d, want 2 before the breaker opened", got)
	}
	if src.State() != "open" {
		t.Errorf("State() = %q, want open", src.State())
	}
	if got := testutil.ToFloat64(metrics.DataSourceBreakerState.WithLabelValues("fb-open")); got != metrics.BreakerOpen {
		t.Errorf("breaker state gauge = %v, want %v", got, metrics.BreakerOpen)
	}
	if got := testutil.ToFloat64(metrics.DataSourceFallbacksTotal.WithLabelValues("fb-open")) - before; got != 4 {
		t.Errorf("fallbacks recorded = %v, want 4", got)
	}
}

func TestFallbackSource_Recovers(t *testing.T) {
	primary := &stubSource{name: "fb-recover", err: errors.New("locked")}
	fallback := &stubSource{name: "sample"}
	src := NewFallbackSource(primary, fallback, BreakerSettings{Failures: 1, Timeout: 20 * time.Millisecond}, zerolog.Nop())

	if _, err := src.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if src.State() != "open" {
		t.Fatalf("State() = %q, want open", src.State())
	}

	primary.setErr(nil)
	time.Sleep(40 * time.Millisecond)

	ds, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ds.Origin != "fb-recover" {
		t.Errorf("Origin = %q, want fb-recover after timeout", ds.Origin)
	}
	if src.State() != "closed" {
		t.Errorf("State() = %q, want closed", src.State())
	}
}

func TestFallbackSource_BothFail(t *testing.T) {
	primary := &stubSource{name: "fb-both", err: errors.New("primary down")}
	fallback := &stubSource{name: "sample", err: errors.New("fallback down")}
	src := NewFallbackSource(primary, fallback, BreakerSettings{Failures: 3, Timeout: time.Hour}, zerolog.Nop())

	_, err := src.Load(context.Background())
	if err == nil {
		t.Fatal("Load() error = nil, want error")
	}
	for _, want := range []string{"primary down", "fallback down"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Load() error = %v, want containing %q", err, want)
		}
	}
}

func TestFallbackSource_CancelledContext(t *testing.T) {
	primary := &stubSource{name: "fb-cancel", err: context.Canceled}
	fallback := &stubSource{name: "sample"}
	src := NewFallbackSource(primary, fallback, BreakerSettings{Failures: 1, Timeout: time.Hour}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := src.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
	if fallback.callCount() != 0 {
		t.Errorf("fallback calls = %d, want 0", fallback.callCount())
	}
	if src.State() != "closed" {
		t.Errorf("State() = %q, want closed after cancellation", src.State())
	}
}
