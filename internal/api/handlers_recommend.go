// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/bookvibe/internal/logging"
	"github.com/tomtom215/bookvibe/internal/metrics"
	"github.com/tomtom215/bookvibe/internal/models"
	"github.com/tomtom215/bookvibe/internal/recommend"
)

// Books handles GET /api/v1/books.
// Returns the catalog in item order, both as a title list and full records.
func (h *Handler) Books(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	items, err := h.engine.ListItems()
	if err != nil {
		status, code, message := engineError(err)
		respondError(w, r, status, code, message, err)
		return
	}

	resp := models.BooksResponse{
		Titles: make([]string, len(items)),
		Books:  make([]models.Book, len(items)),
		Count:  len(items),
	}
	for i, it := range items {
		resp.Titles[i] = it.Title
		resp.Books[i] = toBook(it)
	}

	md := newMetadata(r, start)
	md.SnapshotVersion = h.engine.Status().Version
	respondSuccess(w, r, http.StatusOK, resp, md)
}

// Users handles GET /api/v1/users.
// Returns the IDs of users with ratings; empty when fewer than two exist.
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	users, err := h.engine.ListUserIDs()
	if err != nil {
		status, code, message := engineError(err)
		respondError(w, r, status, code, message, err)
		return
	}
	if users == nil {
		users = []int{}
	}

	snap := h.engine.Status()
	md := newMetadata(r, start)
	md.SnapshotVersion = snap.Version
	respondSuccess(w, r, http.StatusOK, models.UsersResponse{
		Users:                  users,
		Count:                  len(users),
		CollaborativeAvailable: snap.CollaborativeAvailable,
	}, md)
}

// ContentRecommendations handles GET /api/v1/recommendations/content/{itemID}.
func (h *Handler) ContentRecommendations(w http.ResponseWriter, r *http.Request) {
	itemID, err := parseIntParam(chi.URLParam(r, "itemID"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeInvalidItemID, "Invalid item ID", err)
		return
	}
	k, apiErr := parseK(r)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	req := ContentRequest{ItemID: itemID, K: k}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	h.recommend(w, r, recommend.StrategyContent, &req.ItemID, nil, func(ctx context.Context) (*recommend.Result, error) {
		return h.engine.RecommendByContent(ctx, req.ItemID, req.K)
	})
}

// UserRecommendations handles GET /api/v1/recommendations/user/{userID}.
func (h *Handler) UserRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIntParam(chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeInvalidUserID, "Invalid user ID", err)
		return
	}
	k, apiErr := parseK(r)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	req := UserRequest{UserID: userID, K: k}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	h.recommend(w, r, recommend.StrategyCollaborative, nil, &req.UserID, func(ctx context.Context) (*recommend.Result, error) {
		return h.engine.RecommendForUser(ctx, req.UserID, req.K)
	})
}

// HybridRecommendations handles GET /api/v1/recommendations/hybrid?item_id=&user_id=&k=.
// Without a usable user the response carries fallback and warning.
func (h *Handler) HybridRecommendations(w http.ResponseWriter, r *http.Request) {
	itemID, err := parseOptionalIntParam(r, "item_id")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeInvalidItemID, "Invalid item ID", err)
		return
	}
	userID, err := parseOptionalIntParam(r, "user_id")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeInvalidUserID, "Invalid user ID", err)
		return
	}
	k, apiErr := parseK(r)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	req := HybridRequest{ItemID: itemID, UserID: userID, K: k}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	h.recommend(w, r, recommend.StrategyHybrid, req.ItemID, req.UserID, func(ctx context.Context) (*recommend.Result, error) {
		return h.engine.RecommendHybrid(ctx, recommend.HybridRequest{
			ItemID: *req.ItemID,
			UserID: req.UserID,
			K:      req.K,
		})
	})
}

// recommend runs query with the request timeout, records metrics, and
// writes the response.
func (h *Handler) recommend(w http.ResponseWriter, r *http.Request, strategy recommend.Strategy,
	itemID, userID *int, query func(ctx context.Context) (*recommend.Result, error)) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	result, err := query(ctx)
	duration := time.Since(start)

	if err != nil {
		metrics.RecordRecommendation(strategy.String(), recommendOutcome(err), duration)
		status, code, message := engineError(err)
		respondError(w, r, status, code, message, err)
		return
	}

	outcome := "success"
	if result.Fallback {
		outcome = "fallback"
		metrics.RecordFallback(result.FallbackReason)
	}
	metrics.RecordRecommendation(strategy.String(), outcome, duration)

	logging.Ctx(r.Context()).Debug().
		Str("strategy", strategy.String()).
		Int("returned", len(result.Items)).
		Bool("fallback", result.Fallback).
		Dur("duration", duration).
		Msg("Recommendations served")

	md := newMetadata(r, start)
	md.SnapshotVersion = result.SnapshotVersion
	respondSuccess(w, r, http.StatusOK, models.RecommendationResponse{
		Strategy:        result.Strategy.String(),
		ItemID:          itemID,
		UserID:          userID,
		K:               len(result.Items),
		Recommendations: toRecommendations(result.Items),
		Fallback:        result.Fallback,
		FallbackReason:  result.FallbackReason,
		Warning:         result.Warning,
	}, md)
}

// Status handles GET /api/v1/recommendations/status.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	status := h.engine.Status()
	cfg := h.engine.Config()
	counters := h.engine.Metrics()

	resp := models.EngineStatusResponse{
		Ready:                  status.Ready,
		Version:                status.Version,
		Items:                  status.Items,
		Users:                  status.Users,
		Ratings:                status.Ratings,
		DroppedRatings:         status.DroppedRatings,
		CollaborativeAvailable: status.CollaborativeAvailable,
		Origin:                 status.Origin,
		BuildDurationMS:        status.BuildDuration.Milliseconds(),
		ContentWeight:          cfg.Weights.Content,
		RatingWeight:           cfg.Weights.Rating,
		Neighbors:              cfg.Neighbors,
		DefaultK:               cfg.Limits.DefaultK,
		MaxK:                   cfg.Limits.MaxK,
		Counters: models.EngineCounters{
			Requests:     counters.Requests,
			Errors:       counters.Errors,
			Fallbacks:    counters.Fallbacks,
			Loads:        counters.Loads,
			LoadFailures: counters.LoadFailures,
			CacheHits:    counters.CacheHits,
			CacheMisses:  counters.CacheMisses,
		},
	}
	if !status.BuiltAt.IsZero() {
		builtAt := status.BuiltAt.UTC()
		resp.BuiltAt = &builtAt
	}

	md := newMetadata(r, time.Time{})
	md.SnapshotVersion = status.Version
	respondSuccess(w, r, http.StatusOK, resp, md)
}

// Reload handles POST /api/v1/recommendations/reload.
// The reload runs asynchronously; poll the status endpoint for the new version.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	if h.reloader == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeNotReady, "Reloading is not available", nil)
		return
	}

	h.reloader.Trigger()
	logging.Ctx(r.Context()).Info().Msg("Snapshot reload requested via API")

	version := h.engine.Status().Version
	md := newMetadata(r, time.Time{})
	md.SnapshotVersion = version
	respondSuccess(w, r, http.StatusAccepted, models.ReloadResponse{
		Accepted:       true,
		CurrentVersion: version,
	}, md)
}

// recommendOutcome labels a failed recommendation for metrics.
func recommendOutcome(err error) string {
	switch {
	case errors.Is(err, recommend.ErrNotFound):
		return "not_found"
	case errors.Is(err, recommend.ErrUnavailable):
		return "unavailable"
	case errors.Is(err, recommend.ErrNotReady):
		return "not_ready"
	default:
		return "error"
	}
}

//nolint:gocritic // hugeParam: small struct copied once per item
func toBook(it recommend.Item) models.Book {
	return models.Book{ID: it.ID, Title: it.Title, Author: it.Author, Genre: it.Genre}
}

func toRecommendations(items []recommend.ScoredItem) []models.Recommendation {
	recs := make([]models.Recommendation, len(items))
	for i, it := range items {
		recs[i] = models.Recommendation{
			Rank:  i + 1,
			Book:  toBook(it.Item),
			Score: it.Score,
		}
	}
	return recs
}
