// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

// Package logging provides centralized zerolog-based structured logging for BookVibe.
//
// # Overview
//
// The package provides:
//   - A global zerolog logger configured once at startup via Init
//   - JSON output for production and console output for development
//   - Optional rotating file output (lumberjack) tee'd with the console stream
//   - Context-aware logging with request and correlation ID propagation
//   - An slog adapter so the supervisor (sutureslog) logs through zerolog
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	    File:   logging.FileConfig{Path: "/var/log/bookvibe/bookvibe.log", MaxSizeMB: 50},
//	})
//	defer logging.Close()
//
//	logging.Info().Str("addr", addr).Msg("Server starting")
//	logging.Ctx(ctx).Warn().Str("reason", reason).Msg("hybrid fallback")
//
// Component loggers are derived once and passed by value:
//
//	engine, err := recommend.NewEngine(cfg, logging.WithComponent("recommend"))
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
package logging
