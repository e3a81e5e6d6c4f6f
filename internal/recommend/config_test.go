// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package recommend

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("hybrid weights", func(t *testing.T) {
		if cfg.Weights.Content != 0.6 {
			t.Errorf("Weights.Content = %f, want 0.6", cfg.Weights.Content)
		}
		if cfg.Weights.Rating != 0.4 {
			t.Errorf("Weights.Rating = %f, want 0.4", cfg.Weights.Rating)
		}
	})

	t.Run("limits config has valid defaults", func(t *testing.T) {
		if cfg.Limits.DefaultK != 3 {
			t.Errorf("Limits.DefaultK = %d, want 3", cfg.Limits.DefaultK)
		}
		if cfg.Limits.MaxK != 50 {
			t.Errorf("Limits.MaxK = %d, want 50", cfg.Limits.MaxK)
		}
	})

	t.Run("collaborative defaults", func(t *testing.T) {
		if cfg.Neighbors != 3 {
			t.Errorf("Neighbors = %d, want 3", cfg.Neighbors)
		}
		if cfg.DuplicatePolicy != "last" {
			t.Errorf("DuplicatePolicy = %q, want %q", cfg.DuplicatePolicy, "last")
		}
	})

	t.Run("default config validates", func(t *testing.T) {
		if err := cfg.Validate(); err != nil {
			t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "valid default", modify: func(c *Config) {}, wantErr: false},
		{name: "negative content weight", modify: func(c *Config) { c.Weights.Content = -0.1 }, wantErr: true},
		{name: "negative rating weight", modify: func(c *Config) { c.Weights.Rating = -1 }, wantErr: true},
		{name: "all weights zero", modify: func(c *Config) { c.Weights = Weights{} }, wantErr: true},
		{name: "content only", modify: func(c *Config) { c.Weights = Weights{Content: 1} }, wantErr: false},
		{name: "zero default k", modify: func(c *Config) { c.Limits.DefaultK = 0 }, wantErr: true},
		{name: "max k below default", modify: func(c *Config) { c.Limits.MaxK = 2 }, wantErr: true},
		{name: "zero neighbors", modify: func(c *Config) { c.Neighbors = 0 }, wantErr: true},
		{name: "mean policy", modify: func(c *Config) { c.DuplicatePolicy = "mean" }, wantErr: false},
		{name: "unknown policy", modify: func(c *Config) { c.DuplicatePolicy = "first" }, wantErr: true},
		{name: "negative epsilon", modify: func(c *Config) { c.Epsilon = -1e-8 }, wantErr: true},
		{name: "negative workers", modify: func(c *Config) { c.Workers = -2 }, wantErr: true},
		{name: "zero build timeout", modify: func(c *Config) { c.BuildTimeout = 0 }, wantErr: true},
		{name: "cache disabled", modify: func(c *Config) { c.ResultCacheSize = 0 }, wantErr: false},
		{name: "negative cache size", modify: func(c *Config) { c.ResultCacheSize = -1 }, wantErr: true},
		{name: "negative cache ttl", modify: func(c *Config) { c.ResultCacheTTL = -time.Second }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	original := DefaultConfig()
	clone := original.Clone()

	clone.Weights.Content = 0.9
	clone.Limits.MaxK = 7
	clone.BuildTimeout = time.Second

	if original.Weights.Content != 0.6 {
		t.Errorf("original Weights.Content = %f, want 0.6", original.Weights.Content)
	}
	if original.Limits.MaxK != 50 {
		t.Errorf("original Limits.MaxK = %d, want 50", original.Limits.MaxK)
	}
	if original.BuildTimeout != 2*time.Minute {
		t.Errorf("original BuildTimeout = %v, want 2m", original.BuildTimeout)
	}
}

func TestConfig_ResolveK(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		k    int
		want int
	}{
		{name: "zero uses default", k: 0, want: 3},
		{name: "negative uses default", k: -4, want: 3},
		{name: "within bounds", k: 7, want: 7},
		{name: "at max", k: 50, want: 50},
		{name: "above max is clamped", k: 500, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.ResolveK(tt.k); got != tt.want {
				t.Errorf("ResolveK(%d) = %d, want %d", tt.k, got, tt.want)
			}
		})
	}
}
