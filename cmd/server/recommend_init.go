// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/bookvibe/internal/catalog"
	"github.com/tomtom215/bookvibe/internal/config"
	"github.com/tomtom215/bookvibe/internal/recommend"
	"github.com/tomtom215/bookvibe/internal/recommend/algorithms"
	"github.com/tomtom215/bookvibe/internal/supervisor"
	"github.com/tomtom215/bookvibe/internal/supervisor/services"
)

// RecommendComponents holds all recommendation-related components.
type RecommendComponents struct {
	Engine   *recommend.Engine
	Source   catalog.Source
	Reloader *services.ReloadService

	// Watcher is nil unless data.watch is enabled.
	Watcher *catalog.Watcher
}

// initRecommend builds the engine, its data source chain, and the services
// that keep the snapshot current, and adds those services to the data layer.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, logger zerolog.Logger, tree *supervisor.SupervisorTree) (*RecommendComponents, error) {
	engineCfg, err := buildEngineConfig(cfg)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("source", cfg.Data.Source).
		Bool("fallback_to_sample", cfg.Data.FallbackToSample).
		Float64("content_weight", engineCfg.Weights.Content).
		Float64("rating_weight", engineCfg.Weights.Rating).
		Int("neighbors", engineCfg.Neighbors).
		Msg("initializing recommendation engine")

	engine, err := recommend.NewEngine(engineCfg, logger.With().Str("component", "recommend").Logger())
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}

	source, err := catalog.NewSource(cfg.Data, logger.With().Str("component", "catalog").Logger())
	if err != nil {
		return nil, fmt.Errorf("create data source: %w", err)
	}

	loader := recommend.NewLoader(engine, source, logger)
	reloader := services.NewReloadService(loader, services.ReloadServiceConfig{
		ReloadOnStartup: true,
		Interval:        cfg.Data.ReloadInterval,
		MinGap:          cfg.Data.ReloadMinGap,
		Timeout:         engineCfg.BuildTimeout,
	}, logger)
	tree.AddDataService(reloader)

	components := &RecommendComponents{
		Engine:   engine,
		Source:   source,
		Reloader: reloader,
	}

	if cfg.Data.Watch {
		watcher, err := catalog.NewWatcher(catalog.WatchPaths(cfg.Data), cfg.Data.WatchDebounce, reloader.Trigger,
			logger.With().Str("component", "watcher").Logger())
		switch {
		case errors.Is(err, catalog.ErrNoWatchPaths):
			logger.Info().Str("source", cfg.Data.Source).Msg("data source has no files to watch")
		case err != nil:
			return nil, fmt.Errorf("create data file watcher: %w", err)
		default:
			tree.AddDataService(watcher)
			components.Watcher = watcher
		}
	}

	return components, nil
}

// buildEngineConfig maps the recommend section onto the engine configuration.
func buildEngineConfig(cfg *config.Config) (*recommend.Config, error) {
	policy, err := algorithms.ParseDuplicatePolicy(strings.ToLower(strings.TrimSpace(cfg.Recommend.DuplicatePolicy)))
	if err != nil {
		return nil, fmt.Errorf("recommend.duplicate_policy: %w", err)
	}

	engineCfg := recommend.DefaultConfig()
	engineCfg.Weights = recommend.Weights{
		Content: cfg.Recommend.ContentWeight,
		Rating:  cfg.Recommend.RatingWeight,
	}
	engineCfg.Limits = recommend.LimitsConfig{
		DefaultK: cfg.Recommend.DefaultK,
		MaxK:     cfg.Recommend.MaxK,
	}
	engineCfg.Neighbors = cfg.Recommend.Neighbors
	engineCfg.DuplicatePolicy = policy
	engineCfg.Epsilon = cfg.Recommend.Epsilon
	engineCfg.Workers = cfg.Recommend.Workers
	if cfg.Recommend.BuildTimeout > 0 {
		engineCfg.BuildTimeout = cfg.Recommend.BuildTimeout
	}
	engineCfg.ResultCacheSize = cfg.Recommend.CacheSize
	engineCfg.ResultCacheTTL = cfg.Recommend.CacheTTL

	if err := engineCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommend configuration: %w", err)
	}
	return engineCfg, nil
}

// reloadEngineConfig re-reads path and applies the recommend section to the
// running engine. Errors leave the current configuration in place.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func reloadEngineConfig(path string, engine *recommend.Engine, logger zerolog.Logger) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Config reload failed, keeping current settings")
		return
	}

	engineCfg, err := buildEngineConfig(cfg)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Config reload rejected, keeping current settings")
		return
	}

	if err := engine.UpdateConfig(engineCfg); err != nil {
		logger.Warn().Err(err).Msg("Engine rejected reloaded config")
		return
	}
	logger.Info().Str("path", path).Msg("Recommendation settings reloaded")
}
