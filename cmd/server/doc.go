// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

// Package main is the entry point for the BookVibe server.
//
// BookVibe serves content-based, collaborative, and hybrid book
// recommendations over a JSON HTTP API.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, optional config.yaml, environment (Koanf v2)
//  2. Logging: zerolog, optionally tee'd to a rotating file
//  3. Recommendation engine and the catalog source chain (CSV or DuckDB,
//     with the built-in sample behind a circuit breaker)
//  4. Reload service and, with DATA_WATCH=true, the data file watcher
//  5. HTTP server: chi router with CORS, rate limiting, and Prometheus metrics
//
// Services run under a suture supervisor tree with a data layer and an API
// layer. The HTTP server starts immediately; readiness turns green once the
// first snapshot is published.
//
// # Configuration
//
// Common environment variables:
//   - BOOKS_CSV, RATINGS_CSV: CSV input files (DATA_SOURCE=csv)
//   - DATA_SOURCE=duckdb, DUCKDB_PATH: read from a DuckDB database instead
//   - DATA_RELOAD_INTERVAL: periodic reload (0 disables)
//   - RECOMMEND_CONTENT_WEIGHT, RECOMMEND_RATING_WEIGHT: hybrid weights
//   - HTTP_HOST, HTTP_PORT: listen address
//
// When a config file is in use, changes to its recommend section are applied
// to the running engine without a restart.
//
// # Signal Handling
//
// SIGINT and SIGTERM stop the supervisor tree; in-flight requests get 10s to
// complete. The process exits non-zero only when the configuration is invalid.
//
// # Example Usage
//
//	export BOOKS_CSV=/data/books.csv
//	export RATINGS_CSV=/data/ratings.csv
//	export DATA_WATCH=true
//	./bookvibe-server
//
//	curl localhost:8501/api/v1/recommendations/hybrid?item_id=3\&user_id=1
package main
