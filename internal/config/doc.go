// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

/*
Package config provides centralized configuration management for BookVibe.

# Configuration Sources

Configuration is layered with Koanf v2; later layers win:
  - Built-in defaults (defaultConfig)
  - An optional YAML file: CONFIG_PATH, then ./config.yaml, then /etc/bookvibe/config.yaml
  - Environment variables, mapped explicitly by envTransformFunc

Unmapped environment variables are ignored.

# Configuration Structure

  - ServerConfig: HTTP listener (host, port, timeout)
  - LoggingConfig: zerolog level and format plus optional rotating file
  - DataConfig: primary source (csv, duckdb, sample), reload cadence, circuit breaker
  - RecommendConfig: k limits, neighbour count, hybrid weights, duplicate policy
  - APIConfig: CORS origins and rate limiting
  - MetricsConfig: Prometheus endpoint

# Environment Variables

Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8501)
  - SERVER_TIMEOUT: Read/write timeout (default: 30s)

Data:
  - DATA_SOURCE: csv, duckdb, or sample (default: csv)
  - BOOKS_CSV: Books file (default: books.csv)
  - RATINGS_CSV: Ratings file (default: ratings.csv)
  - DUCKDB_PATH: DuckDB database file (default: bookvibe.duckdb)
  - DATA_FALLBACK_TO_SAMPLE: Serve the sample dataset on failure (default: true)
  - DATA_WATCH: Reload on file change (default: false)
  - DATA_RELOAD_INTERVAL: Periodic reload, 0 disables (default: 0)
  - DATA_RELOAD_MIN_GAP: Minimum time between reloads (default: 5s)

Recommendation engine:
  - RECOMMEND_DEFAULT_K: Results when k is omitted (default: 3)
  - RECOMMEND_MAX_K: Upper bound for k (default: 50)
  - RECOMMEND_NEIGHBORS: Similar users consulted (default: 3)
  - RECOMMEND_CONTENT_WEIGHT / RECOMMEND_RATING_WEIGHT: Hybrid weights (default: 0.6 / 0.4)
  - RECOMMEND_DUPLICATE_POLICY: last or mean (default: last)
  - RECOMMEND_CACHE_SIZE / RECOMMEND_CACHE_TTL: Result cache, 0 disables (default: 1024 / 10m)

API and observability:
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS / RATE_LIMIT_WINDOW: Per-IP limit (default: 100 per 1m)
  - DISABLE_RATE_LIMIT: Turn rate limiting off
  - LOG_LEVEL, LOG_FORMAT, LOG_FILE
  - METRICS_ENABLED, METRICS_PATH

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    log.Fatalf("invalid configuration: %v", err)
	}

# Hot Reload

WatchConfigFile re-runs a callback whenever the YAML file changes. The server
uses it to push new recommendation weights into a running engine.
*/
package config
