// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/bookvibe/internal/config"
	"github.com/tomtom215/bookvibe/internal/recommend"
)

// Column names of the on-disk contract, matched case-insensitively.
const (
	ColumnBookID = "Book_ID"
	ColumnTitle  = "Title"
	ColumnAuthor = "Author"
	ColumnGenre  = "Genre"
	ColumnUserID = "User_ID"
	ColumnRating = "Rating"
)

// ErrUnknownSource is returned by NewSource for an unsupported source kind.
var ErrUnknownSource = errors.New("unknown data source")

// Source produces a complete dataset. Implementations must be safe for
// concurrent use; each Load reads the backing store afresh.
type Source interface {
	// Name identifies the source in logs, metrics, and dataset origins.
	Name() string

	// Load reads the catalog and ratings.
	Load(ctx context.Context) (*recommend.Dataset, error)
}

// NewSource builds the source chain described by cfg: the primary source,
// wrapped in a FallbackSource serving the sample dataset when
// cfg.FallbackToSample is set.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSource(cfg config.DataConfig, logger zerolog.Logger) (Source, error) {
	var primary Source
	switch cfg.Source {
	case config.SourceCSV:
		primary = &CSVSource{BooksPath: cfg.BooksPath, RatingsPath: cfg.RatingsPath}
	case config.SourceDuckDB:
		primary = &DuckDBSource{Path: cfg.DuckDBPath, BooksTable: cfg.BooksTable, RatingsTable: cfg.RatingsTable}
	case config.SourceSample:
		return SampleSource{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
	}

	if !cfg.FallbackToSample {
		return primary, nil
	}

	return NewFallbackSource(primary, SampleSource{}, BreakerSettings{
		Failures: cfg.BreakerFailures,
		Timeout:  cfg.BreakerTimeout,
	}, logger), nil
}

// WatchPaths lists the files whose changes should trigger a reload.
func WatchPaths(cfg config.DataConfig) []string {
	switch cfg.Source {
	case config.SourceCSV:
		paths := []string{cfg.BooksPath}
		if cfg.RatingsPath != "" {
			paths = append(paths, cfg.RatingsPath)
		}
		return paths
	case config.SourceDuckDB:
		return []string{cfg.DuckDBPath}
	default:
		return nil
	}
}
