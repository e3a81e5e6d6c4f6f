// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/bookvibe/config.yaml",
	"/etc/bookvibe/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    8501,
			Host:    "0.0.0.0",
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
			File: LogFileConfig{
				MaxSizeMB:  100,
				MaxBackups: 3,
				MaxAgeDays: 28,
			},
		},
		Data: DataConfig{
			Source:           SourceCSV,
			BooksPath:        "books.csv",
			RatingsPath:      "ratings.csv",
			DuckDBPath:       "bookvibe.duckdb",
			BooksTable:       "books",
			RatingsTable:     "ratings",
			FallbackToSample: true,
			Watch:            false,
			WatchDebounce:    500 * time.Millisecond,
			ReloadInterval:   0, // Disabled; reload via watcher or API
			ReloadMinGap:     5 * time.Second,
			BreakerFailures:  3,
			BreakerTimeout:   time.Minute,
		},
		Recommend: RecommendConfig{
			DefaultK:        3,
			MaxK:            50,
			Neighbors:       3,
			ContentWeight:   0.6,
			RatingWeight:    0.4,
			DuplicatePolicy: "last",
			Epsilon:         1e-8,
			Workers:         0, // 0 = use runtime.NumCPU()
			BuildTimeout:    2 * time.Minute,
			CacheSize:       1024,
			CacheTTL:        10 * time.Minute,
		},
		API: APIConfig{
			CORSAllowedOrigins: []string{"*"},
			RateLimitRequests:  100,
			RateLimitWindow:    time.Minute,
			RateLimitDisabled:  false,
			RequestTimeout:     15 * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// Precedence is ENV > File > Defaults. The result is validated.
func LoadWithKoanf() (*Config, error) {
	return load(findConfigFile())
}

// LoadFile is LoadWithKoanf with an explicit config file path.
// An empty path skips the file layer.
func LoadFile(path string) (*Config, error) {
	return load(path)
}

func load(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// BOOKS_CSV -> data.books_path
	// RECOMMEND_CONTENT_WEIGHT -> recommend.content_weight
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// ConfigFile returns the config file LoadWithKoanf would read, or "".
func ConfigFile() string {
	return findConfigFile()
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"api.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML or defaults)
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_host":      "server.host",
	"http_port":      "server.port",
	"server_timeout": "server.timeout",

	// Logging
	"log_level":            "logging.level",
	"log_format":           "logging.format",
	"log_caller":           "logging.caller",
	"log_file":             "logging.file.path",
	"log_file_max_size_mb": "logging.file.max_size_mb",
	"log_file_max_backups": "logging.file.max_backups",
	"log_file_max_age":     "logging.file.max_age_days",
	"log_file_compress":    "logging.file.compress",

	// Data sources
	"data_source":             "data.source",
	"books_csv":               "data.books_path",
	"ratings_csv":             "data.ratings_path",
	"duckdb_path":             "data.duckdb_path",
	"duckdb_books_table":      "data.books_table",
	"duckdb_ratings_table":    "data.ratings_table",
	"data_fallback_to_sample": "data.fallback_to_sample",
	"data_watch":              "data.watch",
	"data_watch_debounce":     "data.watch_debounce",
	"data_reload_interval":    "data.reload_interval",
	"data_reload_min_gap":     "data.reload_min_gap",
	"data_breaker_failures":   "data.breaker_failures",
	"data_breaker_timeout":    "data.breaker_timeout",

	// Recommendation engine
	"recommend_default_k":        "recommend.default_k",
	"recommend_max_k":            "recommend.max_k",
	"recommend_neighbors":        "recommend.neighbors",
	"recommend_content_weight":   "recommend.content_weight",
	"recommend_rating_weight":    "recommend.rating_weight",
	"recommend_duplicate_policy": "recommend.duplicate_policy",
	"recommend_epsilon":          "recommend.epsilon",
	"recommend_workers":          "recommend.workers",
	"recommend_build_timeout":    "recommend.build_timeout",
	"recommend_cache_size":       "recommend.cache_size",
	"recommend_cache_ttl":        "recommend.cache_ttl",

	// API
	"cors_origins":        "api.cors_origins",
	"rate_limit_requests": "api.rate_limit_requests",
	"rate_limit_window":   "api.rate_limit_window",
	"disable_rate_limit":  "api.rate_limit_disabled",
	"api_request_timeout": "api.request_timeout",

	// Metrics
	"metrics_enabled": "metrics.enabled",
	"metrics_path":    "metrics.path",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - LOG_LEVEL -> logging.level
//   - BOOKS_CSV -> data.books_path
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// Unmapped keys are skipped so unrelated environment variables
	// cannot pollute the config.
	return ""
}

// WatchConfigFile sets up a file watcher for hot-reload capability.
// The callback runs on every change; the caller is responsible for
// synchronizing access to whatever it updates.
//
//	err := config.WatchConfigFile(path, func() {
//	    cfg, err := config.LoadFile(path)
//	    if err != nil {
//	        logging.Warn().Err(err).Msg("Config reload failed")
//	        return
//	    }
//	    engine.UpdateConfig(toRecommendConfig(cfg))
//	})
func WatchConfigFile(path string, callback func()) (stop func() error, err error) {
	provider := file.Provider(path)

	err = provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
	if err != nil {
		return nil, fmt.Errorf("watch config file %s: %w", path, err)
	}
	return provider.Unwatch, nil
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
