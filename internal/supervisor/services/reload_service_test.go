// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/bookvibe/internal/metrics"
	"github.com/tomtom215/bookvibe/internal/recommend"
)

// mockReloader is a mock implementation for testing.
type mockReloader struct {
	mu      sync.Mutex
	calls   int
	err     error
	delay   time.Duration
	version int64
}

func (m *mockReloader) Reload(ctx context.Context) (recommend.Status, error) {
	m.mu.Lock()
	m.calls++
	delay, err := m.delay, m.err
	if err == nil {
		m.version++
	}
	status := recommend.Status{Ready: m.version > 0, Version: m.version, Items: 10, Users: 3}
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return status, ctx.Err()
		case <-time.After(delay):
		}
	}
	return status, err
}

func (m *mockReloader) getCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// runService starts s and returns a stop function that waits for Serve to return.
func runService(t *testing.T, s *ReloadService) func() error {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()
	return func() error {
		cancel()
		select {
		case err := <-done:
			return err
		case <-time.After(2 * time.Second):
			t.Fatal("Serve() did not return after cancel")
			return nil
		}
	}
}

func waitForCalls(t *testing.T, m *mockReloader, want int, within time.Duration) {
	t.Helper()
	deadline := time.Now().Add(within)
	for time.Now().Before(deadline) {
		if m.getCalls() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Reload() called %d times, want >= %d", m.getCalls(), want)
}

func TestReloadService_String(t *testing.T) {
	service := NewReloadService(&mockReloader{}, ReloadServiceConfig{}, zerolog.Nop())
	if got := service.String(); got != "reload-service" {
		t.Errorf("String() = %q, want %q", got, "reload-service")
	}
}

func TestReloadService_ReloadOnStartup(t *testing.T) {
	reloader := &mockReloader{}
	service := NewReloadService(reloader, ReloadServiceConfig{ReloadOnStartup: true}, zerolog.Nop())

	before := testutil.ToFloat64(metrics.SnapshotReloadsTotal.WithLabelValues("success"))
	stop := runService(t, service)
	waitForCalls(t, reloader, 1, time.Second)

	if err := stop(); !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() returned %v, want context.Canceled", err)
	}
	if got := reloader.getCalls(); got != 1 {
		t.Errorf("Reload() called %d times, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.SnapshotReloadsTotal.WithLabelValues("success")) - before; got != 1 {
		t.Errorf("successful reloads recorded = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.SnapshotVersion); got != 1 {
		t.Errorf("snapshot version gauge = %v, want 1", got)
	}
}

func TestReloadService_NoReloadOnStartup(t *testing.T) {
	reloader := &mockReloader{}
	service := NewReloadService(reloader, ReloadServiceConfig{}, zerolog.Nop())

	stop := runService(t, service)
	time.Sleep(50 * time.Millisecond)
	_ = stop()

	if got := reloader.getCalls(); got != 0 {
		t.Errorf("Reload() called %d times, want 0", got)
	}
}

func TestReloadService_ScheduledReload(t *testing.T) {
	reloader := &mockReloader{}
	service := NewReloadService(reloader, ReloadServiceConfig{Interval: 30 * time.Millisecond}, zerolog.Nop())

	stop := runService(t, service)
	waitForCalls(t, reloader, 2, time.Second)
	_ = stop()
}

func TestReloadService_Trigger(t *testing.T) {
	reloader := &mockReloader{}
	service := NewReloadService(reloader, ReloadServiceConfig{}, zerolog.Nop())

	stop := runService(t, service)
	defer func() { _ = stop() }()

	service.Trigger()
	waitForCalls(t, reloader, 1, time.Second)
}

func TestReloadService_TriggerCoalesces(t *testing.T) {
	reloader := &mockReloader{delay: 100 * time.Millisecond}
	service := NewReloadService(reloader, ReloadServiceConfig{}, zerolog.Nop())

	stop := runService(t, service)
	defer func() { _ = stop() }()

	service.Trigger()
	waitForCalls(t, reloader, 1, time.Second)

	// While the first reload runs, a burst collapses into one pending request.
	for i := 0; i < 5; i++ {
		service.Trigger()
	}

	waitForCalls(t, reloader, 2, time.Second)
	time.Sleep(250 * time.Millisecond)
	if got := reloader.getCalls(); got != 2 {
		t.Errorf("Reload() called %d times, want 2", got)
	}
}

func TestReloadService_TriggerDoesNotBlock(t *testing.T) {
	service := NewReloadService(&mockReloader{}, ReloadServiceConfig{}, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			service.Trigger()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Trigger() blocked without a running service")
	}
}

func TestReloadService_MinGapDefersReload(t *testing.T) {
	reloader := &mockReloader{}
	service := NewReloadService(reloader, ReloadServiceConfig{
		ReloadOnStartup: true,
		MinGap:          150 * time.Millisecond,
	}, zerolog.Nop())

	before := testutil.ToFloat64(metrics.SnapshotReloadsTotal.WithLabelValues("throttled"))

	stop := runService(t, service)
	defer func() { _ = stop() }()

	waitForCalls(t, reloader, 1, time.Second)
	service.Trigger()

	time.Sleep(50 * time.Millisecond)
	if got := reloader.getCalls(); got != 1 {
		t.Errorf("Reload() called %d times inside the gap, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.SnapshotReloadsTotal.WithLabelValues("throttled")) - before; got != 1 {
		t.Errorf("throttled reloads recorded = %v, want 1", got)
	}

	// The deferred request runs once the gap has passed.
	waitForCalls(t, reloader, 2, time.Second)
}

func TestReloadService_FailureKeepsRunning(t *testing.T) {
	reloader := &mockReloader{err: errors.New("books.csv: missing required column Title")}
	service := NewReloadService(reloader, ReloadServiceConfig{
		ReloadOnStartup: true,
		Interval:        20 * time.Millisecond,
	}, zerolog.Nop())

	before := testutil.ToFloat64(metrics.SnapshotReloadsTotal.WithLabelValues("failure"))

	stop := runService(t, service)
	waitForCalls(t, reloader, 2, time.Second)
	if err := stop(); !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() returned %v, want context.Canceled", err)
	}

	if got := testutil.ToFloat64(metrics.SnapshotReloadsTotal.WithLabelValues("failure")) - before; got < 2 {
		t.Errorf("failed reloads recorded = %v, want >= 2", got)
	}
}

func TestReloadService_GracefulShutdown(t *testing.T) {
	reloader := &mockReloader{delay: time.Second}
	service := NewReloadService(reloader, ReloadServiceConfig{ReloadOnStartup: true}, zerolog.Nop())

	stop := runService(t, service)
	time.Sleep(20 * time.Millisecond)

	start := time.Now()
	if err := stop(); !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() returned %v, want context.Canceled", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("shutdown took %v, want the in-flight reload cancelled", elapsed)
	}
}
