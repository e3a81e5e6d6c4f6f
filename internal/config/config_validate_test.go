// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package config

import (
	"math"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"zero server timeout", func(c *Config) { c.Server.Timeout = 0 }, true},
		{"unknown source", func(c *Config) { c.Data.Source = "postgres" }, true},
		{"csv without books path", func(c *Config) { c.Data.BooksPath = "" }, true},
		{"duckdb without path", func(c *Config) {
			c.Data.Source = SourceDuckDB
			c.Data.DuckDBPath = ""
		}, true},
		{"duckdb without tables", func(c *Config) {
			c.Data.Source = SourceDuckDB
			c.Data.BooksTable = ""
		}, true},
		{"sample needs no paths", func(c *Config) {
			c.Data.Source = SourceSample
			c.Data.BooksPath = ""
		}, false},
		{"negative reload interval", func(c *Config) { c.Data.ReloadInterval = -time.Second }, true},
		{"watch without debounce", func(c *Config) {
			c.Data.Watch = true
			c.Data.WatchDebounce = 0
		}, true},
		{"zero breaker failures", func(c *Config) { c.Data.BreakerFailures = 0 }, true},
		{"zero default k", func(c *Config) { c.Recommend.DefaultK = 0 }, true},
		{"max k below default", func(c *Config) { c.Recommend.MaxK = 2 }, true},
		{"zero neighbors", func(c *Config) { c.Recommend.Neighbors = 0 }, true},
		{"cache disabled", func(c *Config) { c.Recommend.CacheSize = 0 }, false},
		{"negative cache size", func(c *Config) { c.Recommend.CacheSize = -1 }, true},
		{"negative content weight", func(c *Config) { c.Recommend.ContentWeight = -0.1 }, true},
		{"NaN rating weight", func(c *Config) { c.Recommend.RatingWeight = math.NaN() }, true},
		{"both weights zero", func(c *Config) {
			c.Recommend.ContentWeight = 0
			c.Recommend.RatingWeight = 0
		}, true},
		{"content only", func(c *Config) {
			c.Recommend.ContentWeight = 1
			c.Recommend.RatingWeight = 0
		}, false},
		{"mean policy", func(c *Config) { c.Recommend.DuplicatePolicy = "mean" }, false},
		{"unknown policy", func(c *Config) { c.Recommend.DuplicatePolicy = "first" }, true},
		{"zero epsilon", func(c *Config) { c.Recommend.Epsilon = 0 }, true},
		{"negative workers", func(c *Config) { c.Recommend.Workers = -1 }, true},
		{"rate limit too high", func(c *Config) { c.API.RateLimitRequests = 200000 }, true},
		{"rate limit window too short", func(c *Config) { c.API.RateLimitWindow = time.Millisecond }, true},
		{"rate limit disabled skips bounds", func(c *Config) {
			c.API.RateLimitDisabled = true
			c.API.RateLimitRequests = 0
		}, false},
		{"metrics path without slash", func(c *Config) { c.Metrics.Path = "metrics" }, true},
		{"metrics disabled ignores path", func(c *Config) {
			c.Metrics.Enabled = false
			c.Metrics.Path = ""
		}, false},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"log file without size", func(c *Config) {
			c.Logging.File.Path = "/tmp/bookvibe.log"
			c.Logging.File.MaxSizeMB = 0
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHasWildcardCORS(t *testing.T) {
	cfg := defaultConfig()
	if !cfg.HasWildcardCORS() {
		t.Error("HasWildcardCORS() = false, want true for default origins")
	}

	cfg.API.CORSAllowedOrigins = []string{"https://books.example.com"}
	if cfg.HasWildcardCORS() {
		t.Error("HasWildcardCORS() = true, want false for explicit origins")
	}
}
