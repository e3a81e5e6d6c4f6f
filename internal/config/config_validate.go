// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package config

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Validate checks that the configuration is usable and returns the
// first violation found.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateData(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateRateLimits(); err != nil {
		return err
	}

	if err := c.validateMetrics(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates the HTTP listener settings
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("SERVER_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	return nil
}

// validSources defines the allowed primary data sources
var validSources = map[string]bool{
	SourceCSV:    true,
	SourceDuckDB: true,
	SourceSample: true,
}

// validateData validates data source selection and reload timing
func (c *Config) validateData() error {
	if !validSources[c.Data.Source] {
		return fmt.Errorf("DATA_SOURCE must be one of: csv, duckdb, sample")
	}

	switch c.Data.Source {
	case SourceCSV:
		if c.Data.BooksPath == "" {
			return fmt.Errorf("BOOKS_CSV is required when DATA_SOURCE=csv")
		}
	case SourceDuckDB:
		if c.Data.DuckDBPath == "" {
			return fmt.Errorf("DUCKDB_PATH is required when DATA_SOURCE=duckdb")
		}
		if c.Data.BooksTable == "" || c.Data.RatingsTable == "" {
			return fmt.Errorf("DUCKDB_BOOKS_TABLE and DUCKDB_RATINGS_TABLE are required when DATA_SOURCE=duckdb")
		}
	}

	if c.Data.ReloadInterval < 0 {
		return fmt.Errorf("DATA_RELOAD_INTERVAL must not be negative, got %v", c.Data.ReloadInterval)
	}
	if c.Data.ReloadMinGap < 0 {
		return fmt.Errorf("DATA_RELOAD_MIN_GAP must not be negative, got %v", c.Data.ReloadMinGap)
	}
	if c.Data.Watch && c.Data.WatchDebounce <= 0 {
		return fmt.Errorf("DATA_WATCH_DEBOUNCE must be positive when DATA_WATCH=true")
	}
	if c.Data.BreakerFailures == 0 {
		return fmt.Errorf("DATA_BREAKER_FAILURES must be at least 1")
	}
	if c.Data.BreakerTimeout <= 0 {
		return fmt.Errorf("DATA_BREAKER_TIMEOUT must be positive, got %v", c.Data.BreakerTimeout)
	}
	return nil
}

// validDuplicatePolicies defines how repeated (user, item) ratings merge
var validDuplicatePolicies = map[string]bool{
	"last": true,
	"mean": true,
}

// validateRecommend validates engine tuning
func (c *Config) validateRecommend() error {
	r := c.Recommend

	if r.DefaultK < 1 {
		return fmt.Errorf("recommend.default_k must be positive, got %d", r.DefaultK)
	}
	if r.MaxK < r.DefaultK {
		return fmt.Errorf("recommend.max_k (%d) must be >= recommend.default_k (%d)", r.MaxK, r.DefaultK)
	}
	if r.Neighbors < 1 {
		return fmt.Errorf("recommend.neighbors must be positive, got %d", r.Neighbors)
	}
	if err := validateWeight("recommend.content_weight", r.ContentWeight); err != nil {
		return err
	}
	if err := validateWeight("recommend.rating_weight", r.RatingWeight); err != nil {
		return err
	}
	if r.ContentWeight+r.RatingWeight == 0 {
		return fmt.Errorf("recommend.content_weight and recommend.rating_weight cannot both be zero")
	}
	if !validDuplicatePolicies[strings.ToLower(r.DuplicatePolicy)] {
		return fmt.Errorf("recommend.duplicate_policy must be one of: last, mean")
	}
	if r.Epsilon <= 0 {
		return fmt.Errorf("recommend.epsilon must be positive, got %g", r.Epsilon)
	}
	if r.Workers < 0 {
		return fmt.Errorf("recommend.workers must not be negative, got %d", r.Workers)
	}
	if r.BuildTimeout <= 0 {
		return fmt.Errorf("recommend.build_timeout must be positive, got %v", r.BuildTimeout)
	}
	if r.CacheSize < 0 {
		return fmt.Errorf("recommend.cache_size must not be negative, got %d", r.CacheSize)
	}
	if r.CacheTTL < 0 {
		return fmt.Errorf("recommend.cache_ttl must not be negative, got %v", r.CacheTTL)
	}
	return nil
}

func validateWeight(name string, w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return fmt.Errorf("%s must be a non-negative number, got %g", name, w)
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.API.RateLimitDisabled {
		return nil
	}

	if c.API.RateLimitRequests < minRateLimitRequests || c.API.RateLimitRequests > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.API.RateLimitWindow < minRateLimitWindow || c.API.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validateMetrics validates the metrics endpoint path
func (c *Config) validateMetrics() error {
	if !c.Metrics.Enabled {
		return nil
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("METRICS_PATH must start with '/', got %q", c.Metrics.Path)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	if c.Logging.File.Path != "" && c.Logging.File.MaxSizeMB < 1 {
		return fmt.Errorf("LOG_FILE_MAX_SIZE_MB must be at least 1 when LOG_FILE is set")
	}
	return nil
}

// HasWildcardCORS reports whether any origin may call the API.
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.API.CORSAllowedOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
