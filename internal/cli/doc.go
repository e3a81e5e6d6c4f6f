// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

// Package cli implements the bookvibe command line tool.
//
// Each invocation loads the catalog through the same source chain the server
// uses (CSV or DuckDB, falling back to the built-in sample), builds a
// snapshot, runs one query, and prints a table or JSON:
//
//	bookvibe titles
//	bookvibe users
//	bookvibe content "The Hobbit" --k 5
//	bookvibe user 2 --json
//	bookvibe hybrid 3 --user 1 --books books.csv --ratings ratings.csv
//
// Item arguments accept a Book_ID or an exact title (case-insensitive).
package cli
