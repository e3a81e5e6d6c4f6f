// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // registers the "duckdb" driver

	"github.com/tomtom215/bookvibe/internal/config"
	"github.com/tomtom215/bookvibe/internal/recommend"
)

// DuckDBSource reads books and ratings from two tables of a DuckDB file.
// The tables use the same column names as the CSV files. Rows are read in
// rowid order so positional indices match insertion order.
type DuckDBSource struct {
	Path         string
	BooksTable   string
	RatingsTable string
}

// Name implements Source.
func (s *DuckDBSource) Name() string {
	return config.SourceDuckDB
}

// Load opens the database read-only for the duration of the read, so an
// operator can keep writing to it between reloads.
func (s *DuckDBSource) Load(ctx context.Context) (*recommend.Dataset, error) {
	// Disable auto-install/auto-load to prevent hangs in restricted network environments
	connStr := fmt.Sprintf("%s?access_mode=read_only&autoinstall_known_extensions=false&autoload_known_extensions=false", s.Path)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("open duckdb %s: %w", s.Path, err)
	}
	defer func() { _ = conn.Close() }()

	if err := conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("open duckdb %s: %w", s.Path, err)
	}

	items, err := s.queryItems(ctx, conn)
	if err != nil {
		return nil, err
	}

	var ratings []recommend.Rating
	if s.RatingsTable != "" {
		ratings, err = s.queryRatings(ctx, conn)
		if err != nil {
			return nil, err
		}
	}

	return &recommend.Dataset{Items: items, Ratings: ratings, Origin: s.Name()}, nil
}

func (s *DuckDBSource) queryItems(ctx context.Context, conn *sql.DB) ([]recommend.Item, error) {
	//nolint:gosec // table name is quoted by quoteIdent
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s ORDER BY rowid`,
		quoteIdent(ColumnBookID), quoteIdent(ColumnTitle), quoteIdent(ColumnAuthor), quoteIdent(ColumnGenre),
		quoteIdent(s.BooksTable))

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []recommend.Item
	for rows.Next() {
		var (
			id     int64
			title  sql.NullString
			author sql.NullString
			genre  sql.NullString
		)
		if err := rows.Scan(&id, &title, &author, &genre); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, recommend.Item{
			ID:     int(id),
			Title:  strings.TrimSpace(title.String),
			Author: strings.TrimSpace(author.String),
			Genre:  strings.TrimSpace(genre.String),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

func (s *DuckDBSource) queryRatings(ctx context.Context, conn *sql.DB) ([]recommend.Rating, error) {
	//nolint:gosec // table name is quoted by quoteIdent
	query := fmt.Sprintf(`SELECT %s, %s, CAST(%s AS DOUBLE) FROM %s WHERE %s IS NOT NULL ORDER BY rowid`,
		quoteIdent(ColumnUserID), quoteIdent(ColumnBookID), quoteIdent(ColumnRating),
		quoteIdent(s.RatingsTable), quoteIdent(ColumnRating))

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	defer rows.Close()

	var ratings []recommend.Rating
	for rows.Next() {
		var (
			userID int64
			itemID int64
			value  float64
		)
		if err := rows.Scan(&userID, &itemID, &value); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, fmt.Errorf("rating for user %d item %d is not finite", userID, itemID)
		}
		ratings = append(ratings, recommend.Rating{UserID: int(userID), ItemID: int(itemID), Value: value})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return ratings, nil
}

// quoteIdent quotes a SQL identifier. DuckDB identifiers are
// case-insensitive, so Book_ID matches book_id.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
