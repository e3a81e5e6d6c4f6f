// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package recommend

import "time"

// Item is a book in the catalog.
type Item struct {
	// ID is the catalog identifier (Book_ID).
	ID int `json:"id"`

	// Title is the book title.
	Title string `json:"title"`

	// Author is the book author.
	Author string `json:"author"`

	// Genre is the book genre.
	Genre string `json:"genre"`
}

// FeatureText returns the text the content encoder is fit on.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (it Item) FeatureText() string {
	return it.Title + " " + it.Author + " " + it.Genre
}

// Rating is a single user rating event.
type Rating struct {
	UserID int     `json:"user_id"`
	ItemID int     `json:"item_id"`
	Value  float64 `json:"rating"`
}

// Dataset is the raw input to a snapshot build.
type Dataset struct {
	Items   []Item   `json:"items"`
	Ratings []Rating `json:"ratings"`

	// Origin names the source that produced the dataset
	// (e.g. "csv", "duckdb", "sample").
	Origin string `json:"origin"`
}

// Strategy identifies the scoring strategy that produced a result.
type Strategy string

const (
	// StrategyContent ranks by item feature similarity.
	StrategyContent Strategy = "content"

	// StrategyCollaborative ranks by mean rating among similar users.
	StrategyCollaborative Strategy = "collaborative"

	// StrategyHybrid fuses content similarity with the user's ratings.
	StrategyHybrid Strategy = "hybrid"
)

// String returns the strategy name.
func (s Strategy) String() string {
	return string(s)
}

// Fallback reasons reported by the hybrid strategy.
const (
	FallbackNoUser      = "no_user"
	FallbackUnknownUser = "unknown_user"
	FallbackTooFewUsers = "too_few_users"
	FallbackNoRatings   = "no_ratings"
)

// ScoredItem is a recommended item with its score.
type ScoredItem struct {
	Item

	// Score is strategy specific: cosine similarity for content, mean
	// neighbour rating for collaborative, fused score for hybrid.
	Score float64 `json:"score"`
}

// Result is the output of a recommendation query.
//
// Results may be shared between callers through the result cache and must
// not be modified.
type Result struct {
	// Items holds at most k entries in rank order.
	Items []ScoredItem `json:"items"`

	// Strategy is the strategy that was requested.
	Strategy Strategy `json:"strategy"`

	// Fallback is true when the hybrid strategy returned content-only scores.
	Fallback bool `json:"fallback"`

	// FallbackReason is one of the Fallback* constants when Fallback is set.
	FallbackReason string `json:"fallback_reason,omitempty"`

	// Warning is a human-readable explanation of a fallback.
	Warning string `json:"warning,omitempty"`

	// SnapshotVersion identifies the snapshot the query ran against.
	SnapshotVersion int64 `json:"snapshot_version"`
}

// HybridRequest is the input to RecommendHybrid.
type HybridRequest struct {
	// ItemID is the seed book.
	ItemID int

	// UserID is optional. Nil selects content-only scoring.
	UserID *int

	// K is the number of results. Zero selects the default.
	K int
}

// Status describes the currently published snapshot.
type Status struct {
	// Ready is false until the first successful Load.
	Ready bool `json:"ready"`

	// Version increases by one on every successful Load.
	Version int64 `json:"version"`

	Items          int `json:"items"`
	Users          int `json:"users"`
	Ratings        int `json:"ratings"`
	DroppedRatings int `json:"dropped_ratings"`

	// CollaborativeAvailable is true when at least two users exist.
	CollaborativeAvailable bool `json:"collaborative_available"`

	// Origin is the dataset origin the snapshot was built from.
	Origin string `json:"origin"`

	BuiltAt       time.Time     `json:"built_at"`
	BuildDuration time.Duration `json:"build_duration"`
}

// Metrics contains engine counters since process start.
type Metrics struct {
	Requests     int64 `json:"requests"`
	Errors       int64 `json:"errors"`
	Fallbacks    int64 `json:"fallbacks"`
	Loads        int64 `json:"loads"`
	LoadFailures int64 `json:"load_failures"`
	CacheHits    int64 `json:"cache_hits"`
	CacheMisses  int64 `json:"cache_misses"`
}
