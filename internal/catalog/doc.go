// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

/*
Package catalog loads book catalogs and ratings into recommend.Dataset values.

Sources:

  - CSVSource: books.csv (Book_ID,Title,Author,Genre) and ratings.csv
    (User_ID,Book_ID,Rating), read concurrently. Headers are matched
    case-insensitively and extra columns are ignored.
  - DuckDBSource: the same columns from two tables of a DuckDB file opened
    read-only.
  - SampleSource: a fixed ten-book dataset used for demos and as a fallback.

NewSource builds the configured source and, when data.fallback_to_sample is
enabled, wraps it in a FallbackSource. The fallback's circuit breaker opens
after data.breaker_failures consecutive primary failures and serves the
sample dataset until data.breaker_timeout elapses.

Watcher observes the data files and calls back after a debounce period so
the reload service can rebuild the snapshot when an operator edits a file.
*/
package catalog
