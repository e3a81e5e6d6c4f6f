// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/bookvibe/internal/config"
	"github.com/tomtom215/bookvibe/internal/recommend"
)

// ErrMissingColumn is returned when a CSV header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// utf8BOM is stripped from the first header cell.
const utf8BOM = "\ufeff"

// CSVSource reads books and ratings from two CSV files with headers
// Book_ID,Title,Author,Genre and User_ID,Book_ID,Rating. Extra columns are
// ignored and column order is free. An empty RatingsPath loads the catalog
// alone, which leaves only content recommendations available.
type CSVSource struct {
	BooksPath   string
	RatingsPath string
}

// Name implements Source.
func (s *CSVSource) Name() string {
	return config.SourceCSV
}

// Load reads both files concurrently.
func (s *CSVSource) Load(ctx context.Context) (*recommend.Dataset, error) {
	var (
		items   []recommend.Item
		ratings []recommend.Rating
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = readBooks(ctx, s.BooksPath)
		return err
	})
	if s.RatingsPath != "" {
		g.Go(func() error {
			var err error
			ratings, err = readRatings(ctx, s.RatingsPath)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &recommend.Dataset{Items: items, Ratings: ratings, Origin: s.Name()}, nil
}

func readBooks(ctx context.Context, path string) ([]recommend.Item, error) {
	var items []recommend.Item
	err := readTable(ctx, path, []string{ColumnBookID, ColumnTitle, ColumnAuthor, ColumnGenre},
		func(line int, cols []string) error {
			id, err := parseID(cols[0])
			if err != nil {
				return fmt.Errorf("%s:%d: %s: %w", path, line, ColumnBookID, err)
			}
			items = append(items, recommend.Item{
				ID:     id,
				Title:  cols[1],
				Author: cols[2],
				Genre:  cols[3],
			})
			return nil
		})
	return items, err
}

func readRatings(ctx context.Context, path string) ([]recommend.Rating, error) {
	var ratings []recommend.Rating
	err := readTable(ctx, path, []string{ColumnUserID, ColumnBookID, ColumnRating},
		func(line int, cols []string) error {
			userID, err := parseID(cols[0])
			if err != nil {
				return fmt.Errorf("%s:%d: %s: %w", path, line, ColumnUserID, err)
			}
			itemID, err := parseID(cols[1])
			if err != nil {
				return fmt.Errorf("%s:%d: %s: %w", path, line, ColumnBookID, err)
			}
			value, err := parseRating(cols[2])
			if err != nil {
				return fmt.Errorf("%s:%d: %s: %w", path, line, ColumnRating, err)
			}
			ratings = append(ratings, recommend.Rating{UserID: userID, ItemID: itemID, Value: value})
			return nil
		})
	return ratings, err
}

// readTable opens path, maps the wanted columns by header name, and calls
// row with the trimmed values in wanted order. Blank lines are skipped.
func readTable(ctx context.Context, path string, wanted []string, row func(line int, cols []string) error) error {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%s: empty file", path)
		}
		return fmt.Errorf("read header of %s: %w", path, err)
	}

	positions, err := columnPositions(header, wanted)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	cols := make([]string, len(wanted))
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		line, _ := r.FieldPos(0)
		if isBlank(record) {
			continue
		}

		for i, pos := range positions {
			if pos >= len(record) {
				return fmt.Errorf("%s:%d: expected at least %d fields, got %d", path, line, pos+1, len(record))
			}
			cols[i] = strings.TrimSpace(record[pos])
		}
		if err := row(line, cols); err != nil {
			return err
		}
	}
}

// columnPositions maps each wanted column to its index in header.
func columnPositions(header, wanted []string) ([]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		key := strings.ToLower(strings.TrimSpace(name))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	positions := make([]int, len(wanted))
	for i, name := range wanted {
		pos, ok := index[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("%w %s", ErrMissingColumn, name)
		}
		positions[i] = pos
	}
	return positions, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		// Accept "3.0", which spreadsheet exports produce for integer columns.
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			return 0, fmt.Errorf("invalid integer %q", s)
		}
		return int(f), nil
	}
	return id, nil
}

func parseRating(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid rating %q", s)
	}
	return v, nil
}
