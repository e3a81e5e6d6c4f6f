// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package models

import "time"

// Book is a catalog entry as returned by the API.
type Book struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
}

// BooksResponse lists the catalog in load order.
// Titles mirrors Books and feeds selection widgets directly.
type BooksResponse struct {
	Titles []string `json:"titles"`
	Books  []Book   `json:"books"`
	Count  int      `json:"count"`
}

// UsersResponse lists user IDs in first-seen order.
// Users is empty when collaborative filtering is unavailable.
type UsersResponse struct {
	Users                  []int `json:"users"`
	Count                  int   `json:"count"`
	CollaborativeAvailable bool  `json:"collaborative_available"`
}

// Recommendation is one ranked book with its strategy-specific score.
//
// Example:
//
//	{"rank": 1, "score": 0.41,
//	 "book": {"id": 5, "title": "Brave New World", "author": "Aldous Huxley", "genre": "Dystopian"}}
type Recommendation struct {
	Rank  int     `json:"rank"`
	Book  Book    `json:"book"`
	Score float64 `json:"score"`
}

// RecommendationResponse is the payload of every recommendation endpoint.
//
// Fields:
//   - Strategy: content, collaborative, or hybrid
//   - ItemID / UserID: the query inputs (omitted when not part of the query)
//   - Fallback: true when a hybrid query used content scores only
//   - FallbackReason: no_user, too_few_users, unknown_user, or no_ratings
//   - Warning: human-readable fallback explanation
type RecommendationResponse struct {
	Strategy        string           `json:"strategy"`
	ItemID          *int             `json:"item_id,omitempty"`
	UserID          *int             `json:"user_id,omitempty"`
	K               int              `json:"k"`
	Recommendations []Recommendation `json:"recommendations"`
	Fallback        bool             `json:"fallback"`
	FallbackReason  string           `json:"fallback_reason,omitempty"`
	Warning         string           `json:"warning,omitempty"`
}

// EngineCounters mirrors the engine's lifetime counters.
type EngineCounters struct {
	Requests     int64 `json:"requests"`
	Errors       int64 `json:"errors"`
	Fallbacks    int64 `json:"fallbacks"`
	Loads        int64 `json:"loads"`
	LoadFailures int64 `json:"load_failures"`
	CacheHits    int64 `json:"cache_hits"`
	CacheMisses  int64 `json:"cache_misses"`
}

// EngineStatusResponse describes the live snapshot and engine tuning.
type EngineStatusResponse struct {
	Ready                  bool           `json:"ready"`
	Version                int64          `json:"version"`
	Items                  int            `json:"items"`
	Users                  int            `json:"users"`
	Ratings                int            `json:"ratings"`
	DroppedRatings         int            `json:"dropped_ratings"`
	CollaborativeAvailable bool           `json:"collaborative_available"`
	Origin                 string         `json:"origin,omitempty"`
	BuiltAt                *time.Time     `json:"built_at,omitempty"`
	BuildDurationMS        int64          `json:"build_duration_ms"`
	ContentWeight          float64        `json:"content_weight"`
	RatingWeight           float64        `json:"rating_weight"`
	Neighbors              int            `json:"neighbors"`
	DefaultK               int            `json:"default_k"`
	MaxK                   int            `json:"max_k"`
	Counters               EngineCounters `json:"counters"`
}

// ReloadResponse acknowledges an asynchronous reload request.
type ReloadResponse struct {
	Accepted       bool  `json:"accepted"`
	CurrentVersion int64 `json:"current_version"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status          string `json:"status"` // "ok" or "not_ready"
	Ready           bool   `json:"ready"`
	SnapshotVersion int64  `json:"snapshot_version"`
	Uptime          string `json:"uptime"`
}
