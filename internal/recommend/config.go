// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/bookvibe/internal/recommend/algorithms"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights defines the hybrid fusion weights.
	Weights Weights `json:"weights"`

	// Limits contains result size limits.
	Limits LimitsConfig `json:"limits"`

	// Neighbors is the number of similar users consulted by the
	// collaborative strategy.
	// Default: 3.
	Neighbors int `json:"neighbors"`

	// DuplicatePolicy decides how repeated (user, item) ratings collapse.
	// Default: "last".
	DuplicatePolicy algorithms.DuplicatePolicy `json:"duplicate_policy"`

	// Epsilon guards min-max normalization against a zero range.
	// Default: 1e-8.
	Epsilon float64 `json:"epsilon"`

	// Workers is the similarity builder parallelism. Zero uses GOMAXPROCS.
	Workers int `json:"workers"`

	// BuildTimeout bounds a single snapshot build.
	// Default: 2m.
	BuildTimeout time.Duration `json:"build_timeout"`

	// ResultCacheSize is the number of query results memoized per engine.
	// Zero disables the cache.
	// Default: 1024.
	ResultCacheSize int `json:"result_cache_size"`

	// ResultCacheTTL bounds how long a memoized result is served.
	// Default: 10m.
	ResultCacheTTL time.Duration `json:"result_cache_ttl"`
}

// Weights defines the relative contribution of content similarity and the
// user's own ratings in the hybrid strategy. They are applied as given.
type Weights struct {
	// Content is the weight for normalized content similarity.
	// Default: 0.6.
	Content float64 `json:"content"`

	// Rating is the weight for the user's normalized ratings.
	// Default: 0.4.
	Rating float64 `json:"rating"`
}

// LimitsConfig contains result size limits.
type LimitsConfig struct {
	// DefaultK is used when a request asks for k <= 0.
	// Default: 3.
	DefaultK int `json:"default_k"`

	// MaxK caps the number of results returned.
	// Default: 50.
	MaxK int `json:"max_k"`
}

// DefaultConfig returns a Config with the standard BookVibe defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: Weights{
			Content: 0.6,
			Rating:  0.4,
		},
		Limits: LimitsConfig{
			DefaultK: 3,
			MaxK:     50,
		},
		Neighbors:       3,
		DuplicatePolicy: algorithms.DuplicateLast,
		Epsilon:         algorithms.DefaultEpsilon,
		Workers:         0,
		BuildTimeout:    2 * time.Minute,
		ResultCacheSize: 1024,
		ResultCacheTTL:  10 * time.Minute,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Weights.Content < 0 {
		return fmt.Errorf("weights.content must be non-negative, got %f", c.Weights.Content)
	}
	if c.Weights.Rating < 0 {
		return fmt.Errorf("weights.rating must be non-negative, got %f", c.Weights.Rating)
	}
	if c.Weights.Content+c.Weights.Rating == 0 {
		return fmt.Errorf("weights must not all be zero")
	}

	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}

	if c.Neighbors < 1 {
		return fmt.Errorf("neighbors must be positive, got %d", c.Neighbors)
	}
	if _, err := algorithms.ParseDuplicatePolicy(string(c.DuplicatePolicy)); err != nil {
		return fmt.Errorf("duplicate_policy: %w", err)
	}
	if c.Epsilon < 0 {
		return fmt.Errorf("epsilon must be non-negative, got %g", c.Epsilon)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if c.BuildTimeout <= 0 {
		return fmt.Errorf("build_timeout must be positive, got %v", c.BuildTimeout)
	}
	if c.ResultCacheSize < 0 {
		return fmt.Errorf("result_cache_size must be non-negative, got %d", c.ResultCacheSize)
	}
	if c.ResultCacheTTL < 0 {
		return fmt.Errorf("result_cache_ttl must be non-negative, got %v", c.ResultCacheTTL)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// All fields are value types.
	clone := *c
	return &clone
}

// ResolveK applies the default and the upper bound to a requested k.
func (c *Config) ResolveK(k int) int {
	if k <= 0 {
		return c.Limits.DefaultK
	}
	if k > c.Limits.MaxK {
		return c.Limits.MaxK
	}
	return k
}
