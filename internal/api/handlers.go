// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package api

import (
	"context"
	"time"

	"github.com/tomtom215/bookvibe/internal/recommend"
)

// Recommender is the engine surface the handlers use.
// Satisfied by *recommend.Engine.
type Recommender interface {
	RecommendByContent(ctx context.Context, itemID, k int) (*recommend.Result, error)
	RecommendForUser(ctx context.Context, userID, k int) (*recommend.Result, error)
	RecommendHybrid(ctx context.Context, req recommend.HybridRequest) (*recommend.Result, error)
	ListItems() ([]recommend.Item, error)
	ListUserIDs() ([]int, error)
	Status() recommend.Status
	Metrics() recommend.Metrics
	Config() *recommend.Config
}

// ReloadTrigger requests an asynchronous snapshot reload.
// Satisfied by *services.ReloadService.
type ReloadTrigger interface {
	Trigger()
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: liveness and readiness probes
//   - handlers_recommend.go: catalog, recommendation, status, and reload endpoints
type Handler struct {
	engine         Recommender
	reloader       ReloadTrigger
	requestTimeout time.Duration
	startTime      time.Time
}

// NewHandler creates a handler. reloader may be nil, in which case the
// reload endpoint answers 503. requestTimeout bounds each recommendation.
func NewHandler(engine Recommender, reloader ReloadTrigger, requestTimeout time.Duration) *Handler {
	if requestTimeout <= 0 {
		requestTimeout = 15 * time.Second
	}
	return &Handler{
		engine:         engine,
		reloader:       reloader,
		requestTimeout: requestTimeout,
		startTime:      time.Now(),
	}
}
