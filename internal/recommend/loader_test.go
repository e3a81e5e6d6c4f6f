// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package recommend

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// mockSource implements DatasetSource for testing.
type mockSource struct {
	mu      sync.Mutex
	dataset *Dataset
	err     error
	calls   int
}

func (m *mockSource) Name() string { return "mock" }

func (m *mockSource) Load(ctx context.Context) (*Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.dataset, nil
}

func TestLoader_Reload(t *testing.T) {
	engine := newTestEngine(t, nil)
	source := &mockSource{dataset: testSampleDataset()}
	loader := NewLoader(engine, source, zerolog.Nop())

	status, err := loader.Reload(context.Background())
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if !status.Ready || status.Version != 1 {
		t.Errorf("Reload() status = %+v, want ready version 1", status)
	}
	if loader.Engine() != engine {
		t.Error("Engine() returned a different engine")
	}
}

func TestLoader_ReloadSourceError(t *testing.T) {
	engine := newTestEngine(t, nil)
	source := &mockSource{dataset: testSampleDataset()}
	loader := NewLoader(engine, source, zerolog.Nop())

	if _, err := loader.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	sourceErr := errors.New("disk on fire")
	source.mu.Lock()
	source.err = sourceErr
	source.mu.Unlock()

	status, err := loader.Reload(context.Background())
	if !errors.Is(err, sourceErr) {
		t.Errorf("Reload() error = %v, want %v", err, sourceErr)
	}
	if status.Version != 1 {
		t.Errorf("Reload() status version = %d, want 1 (previous snapshot kept)", status.Version)
	}
}

func TestLoader_ReloadBuildError(t *testing.T) {
	engine := newTestEngine(t, nil)
	source := &mockSource{dataset: &Dataset{}}
	loader := NewLoader(engine, source, zerolog.Nop())

	status, err := loader.Reload(context.Background())
	if !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("Reload() error = %v, want ErrEmptyCatalog", err)
	}
	if status.Ready {
		t.Error("Reload() status ready after failed first load")
	}
}
