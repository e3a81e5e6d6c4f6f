// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestNewWatcher_NoPaths(t *testing.T) {
	_, err := NewWatcher(nil, time.Second, func() {}, zerolog.Nop())
	if !errors.Is(err, ErrNoWatchPaths) {
		t.Errorf("NewWatcher() error = %v, want ErrNoWatchPaths", err)
	}
}

func TestWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	books := writeFile(t, dir, "books.csv", testBooksCSV)
	other := writeFile(t, dir, "notes.txt", "x")

	notified := make(chan struct{}, 10)
	w, err := NewWatcher([]string{books}, 50*time.Millisecond, func() { notified <- struct{}{} }, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	if w.String() != "data-file-watcher" {
		t.Errorf("String() = %q", w.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Serve(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(other, []byte("ignored"), 0o600); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(books, []byte(testBooksCSV), 0o600); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-notified:
	case <-time.After(5 * time.Second):
		t.Fatal("notify was not called after writes")
	}

	// The burst collapses into a single notification.
	select {
	case <-notified:
		t.Error("notify called more than once for a single burst")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_StopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.csv")
	w, err := NewWatcher([]string{path}, 0, func() {}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Serve(ctx) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}
