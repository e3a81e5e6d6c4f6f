// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got '%s'", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("expected default format 'json', got '%s'", cfg.Format)
	}
	if cfg.Caller {
		t.Error("expected default caller to be false")
	}
	if !cfg.Timestamp {
		t.Error("expected default timestamp to be true")
	}
	if cfg.File.Path != "" {
		t.Errorf("expected file output disabled by default, got path %q", cfg.File.Path)
	}
}

func TestInit(t *testing.T) {
	defer Init(DefaultConfig())

	var buf bytes.Buffer
	Init(Config{
		Level:     "debug",
		Format:    "json",
		Timestamp: true,
		Output:    &buf,
	})

	Info().Str("component", "test").Msg("test message")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("expected output to contain 'test message', got: %s", output)
	}
	if !strings.Contains(output, `"level":"info"`) {
		t.Errorf("expected output to contain level, got: %s", output)
	}
	if !strings.Contains(output, `"component":"test"`) {
		t.Errorf("expected output to contain component field, got: %s", output)
	}
}

func TestInit_LevelFilters(t *testing.T) {
	defer Init(DefaultConfig())

	var buf bytes.Buffer
	Init(Config{Level: "warn", Output: &buf})

	Info().Msg("hidden")
	Warn().Msg("shown")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("info message emitted at warn level: %s", output)
	}
	if !strings.Contains(output, "shown") {
		t.Errorf("warn message missing: %s", output)
	}
}

func TestInit_RotatingFile(t *testing.T) {
	defer Init(DefaultConfig())

	path := filepath.Join(t.TempDir(), "bookvibe.log")
	var console bytes.Buffer

	Init(Config{
		Level:  "info",
		Format: "console",
		Output: &console,
		File:   FileConfig{Path: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1},
	})

	Info().Int("items", 10).Msg("snapshot loaded")

	if err := Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `"message":"snapshot loaded"`) {
		t.Errorf("log file missing JSON record, got: %s", data)
	}
	if !strings.Contains(console.String(), "snapshot loaded") {
		t.Errorf("console output missing record, got: %s", console.String())
	}
}

func TestClose_NoFile(t *testing.T) {
	if err := Close(); err != nil {
		t.Errorf("Close() without file output = %v, want nil", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"disabled", zerolog.Disabled},
		{"DEBUG", zerolog.DebugLevel},
		{"invalid", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestWithComponent(t *testing.T) {
	defer Init(DefaultConfig())

	var buf bytes.Buffer
	Init(Config{Level: "info", Output: &buf})

	logger := WithComponent("recommend")
	logger.Info().Msg("ready")

	if !strings.Contains(buf.String(), `"component":"recommend"`) {
		t.Errorf("expected component field, got: %s", buf.String())
	}
}
