// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package recommend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// DatasetSource produces datasets for the engine.
// It is typically implemented by the catalog package.
type DatasetSource interface {
	// Name identifies the source in logs.
	Name() string

	// Load reads a complete dataset.
	Load(ctx context.Context) (*Dataset, error)
}

// Loader reads a dataset from a source and loads it into an engine.
type Loader struct {
	engine *Engine
	source DatasetSource
	logger zerolog.Logger
}

// NewLoader creates a Loader.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewLoader(engine *Engine, source DatasetSource, logger zerolog.Logger) *Loader {
	return &Loader{
		engine: engine,
		source: source,
		logger: logger.With().Str("component", "loader").Str("source", source.Name()).Logger(),
	}
}

// Reload reads the source and publishes a new snapshot. The returned Status
// describes the engine after the attempt.
func (l *Loader) Reload(ctx context.Context) (Status, error) {
	ds, err := l.source.Load(ctx)
	if err != nil {
		return l.engine.Status(), fmt.Errorf("load dataset from %s: %w", l.source.Name(), err)
	}

	l.logger.Debug().
		Int("items", len(ds.Items)).
		Int("ratings", len(ds.Ratings)).
		Str("origin", ds.Origin).
		Msg("dataset read")

	if err := l.engine.Load(ctx, ds); err != nil {
		return l.engine.Status(), err
	}
	return l.engine.Status(), nil
}

// Engine returns the engine the loader publishes into.
func (l *Loader) Engine() *Engine {
	return l.engine
}
