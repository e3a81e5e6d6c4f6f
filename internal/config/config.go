// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package config

import "time"

// Config holds all application configuration.
// It is populated by LoadWithKoanf from defaults, an optional YAML file,
// and environment variables, in increasing order of priority.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	API       APIConfig       `koanf:"api"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// JSON is recommended for production (structured, machine-parseable).
	// Console is human-readable for development.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`

	// File configures an optional rotating log file.
	File LogFileConfig `koanf:"file"`
}

// LogFileConfig configures rotating file output. An empty Path disables it.
type LogFileConfig struct {
	Path       string `koanf:"path"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
	Compress   bool   `koanf:"compress"`
}

// Data source kinds.
const (
	SourceCSV    = "csv"
	SourceDuckDB = "duckdb"
	SourceSample = "sample"
)

// DataConfig controls where the catalog and ratings come from and how
// often they are reloaded.
type DataConfig struct {
	// Source selects the primary loader: csv, duckdb, or sample.
	// Default: csv
	Source string `koanf:"source"`

	BooksPath   string `koanf:"books_path"`
	RatingsPath string `koanf:"ratings_path"`

	DuckDBPath   string `koanf:"duckdb_path"`
	BooksTable   string `koanf:"books_table"`
	RatingsTable string `koanf:"ratings_table"`

	// FallbackToSample serves the built-in sample dataset when the
	// primary source fails.
	// Default: true
	FallbackToSample bool `koanf:"fallback_to_sample"`

	// Watch reloads when the source files change on disk.
	Watch         bool          `koanf:"watch"`
	WatchDebounce time.Duration `koanf:"watch_debounce"`

	// ReloadInterval is the periodic reload period. Zero disables it.
	ReloadInterval time.Duration `koanf:"reload_interval"`

	// ReloadMinGap is the minimum time between two reloads.
	ReloadMinGap time.Duration `koanf:"reload_min_gap"`

	// BreakerFailures is the number of consecutive primary failures
	// that open the circuit breaker.
	BreakerFailures uint32 `koanf:"breaker_failures"`

	// BreakerTimeout is how long the breaker stays open before probing.
	BreakerTimeout time.Duration `koanf:"breaker_timeout"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	DefaultK        int           `koanf:"default_k"`
	MaxK            int           `koanf:"max_k"`
	Neighbors       int           `koanf:"neighbors"`
	ContentWeight   float64       `koanf:"content_weight"`
	RatingWeight    float64       `koanf:"rating_weight"`
	DuplicatePolicy string        `koanf:"duplicate_policy"` // last or mean
	Epsilon         float64       `koanf:"epsilon"`
	Workers         int           `koanf:"workers"` // 0 = runtime.NumCPU()
	BuildTimeout    time.Duration `koanf:"build_timeout"`
	CacheSize       int           `koanf:"cache_size"` // 0 disables the result cache
	CacheTTL        time.Duration `koanf:"cache_ttl"`
}

// APIConfig holds HTTP API settings.
type APIConfig struct {
	CORSAllowedOrigins []string      `koanf:"cors_origins"`
	RateLimitRequests  int           `koanf:"rate_limit_requests"`
	RateLimitWindow    time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled  bool          `koanf:"rate_limit_disabled"`
	RequestTimeout     time.Duration `koanf:"request_timeout"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}
