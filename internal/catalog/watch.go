// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/tomtom215/bookvibe/internal/metrics"
)

// ErrNoWatchPaths is returned by NewWatcher when there is nothing to watch.
var ErrNoWatchPaths = errors.New("no paths to watch")

// Watcher calls notify once a burst of changes to the watched files has
// settled for the debounce period. It watches the parent directories rather
// than the files, so editors that replace a file by rename are still seen.
//
// Watcher implements suture.Service.
type Watcher struct {
	files    map[string]string // absolute path -> base name for metrics
	dirs     []string
	debounce time.Duration
	notify   func()
	logger   zerolog.Logger
}

// NewWatcher creates a watcher for paths.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewWatcher(paths []string, debounce time.Duration, notify func(), logger zerolog.Logger) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, ErrNoWatchPaths
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	w := &Watcher{
		files:    make(map[string]string, len(paths)),
		debounce: debounce,
		notify:   notify,
		logger:   logger,
	}

	seen := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		w.files[abs] = filepath.Base(abs)
		dir := filepath.Dir(abs)
		if !seen[dir] {
			seen[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}

	return w, nil
}

// Serve watches until ctx is cancelled.
func (w *Watcher) Serve(ctx context.Context) (err error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if closeErr := fw.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	w.logger.Info().Strs("dirs", w.dirs).Dur("debounce", w.debounce).Msg("Watching data files")

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			name, watched := w.files[filepath.Clean(event.Name)]
			if !watched || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			metrics.RecordFileWatchEvent(name)
			w.logger.Debug().Str("file", name).Str("op", event.Op.String()).Msg("Data file changed")
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("File watcher error")

		case <-timer.C:
			w.logger.Info().Msg("Data files changed, requesting reload")
			w.notify()
		}
	}
}

// String implements fmt.Stringer for suture logging.
func (w *Watcher) String() string {
	return "data-file-watcher"
}
