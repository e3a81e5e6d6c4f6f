// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package recommend

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/bookvibe/internal/cache"
	"github.com/tomtom215/bookvibe/internal/recommend/algorithms"
)

// Note: This package does not import the metrics or catalog packages.
// Callers record Prometheus metrics from Result and Status values, and data
// reaches the engine through Load or a Loader.

// Engine answers recommendation queries against the current snapshot.
// It is safe for concurrent use.
type Engine struct {
	settings atomic.Pointer[settings]
	logger   zerolog.Logger

	// results memoizes query results; nil when caching is disabled.
	results *cache.LRU[*Result]

	// Published snapshot; nil until the first successful Load.
	snapshot atomic.Pointer[Snapshot]

	// loadMu serializes Load. version is guarded by loadMu.
	loadMu  sync.Mutex
	version int64

	// Metrics
	requestCount  atomic.Int64
	errorCount    atomic.Int64
	fallbackCount atomic.Int64
	loadCount     atomic.Int64
	loadFailures  atomic.Int64
}

// settings pairs a configuration with the generation it was stored at.
// Cached results are keyed by generation so a config change never serves
// rankings computed under the previous weights.
type settings struct {
	cfg *Config
	gen int64
}

// NewEngine creates a new recommendation engine with no snapshot loaded.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		logger: logger.With().Str("component", "recommend").Logger(),
	}
	e.settings.Store(&settings{cfg: cfg.Clone()})
	if cfg.ResultCacheSize > 0 {
		e.results = cache.NewLRU[*Result](cfg.ResultCacheSize, cfg.ResultCacheTTL)
	}
	return e, nil
}

// Load builds a new snapshot from ds and publishes it. On failure the
// previous snapshot stays live.
func (e *Engine) Load(ctx context.Context, ds *Dataset) error {
	e.loadMu.Lock()
	defer e.loadMu.Unlock()

	cfg := e.settings.Load().cfg

	buildCtx, cancel := context.WithTimeout(ctx, cfg.BuildTimeout)
	defer cancel()

	snap, err := buildSnapshot(buildCtx, ds, cfg, e.version+1)
	if err != nil {
		e.loadFailures.Add(1)
		e.logger.Error().Err(err).Msg("snapshot build failed, keeping previous snapshot")
		return fmt.Errorf("build snapshot: %w", err)
	}

	e.version = snap.version
	e.snapshot.Store(snap)
	e.loadCount.Add(1)

	if dropped := snap.ratings.Dropped(); dropped > 0 {
		e.logger.Debug().
			Int("dropped", dropped).
			Msg("dropped zero-valued ratings")
	}
	if !snap.collaborative() {
		e.logger.Warn().
			Int("users", snap.ratings.NumUsers()).
			Msg("fewer than two users, collaborative filtering unavailable")
	}

	e.logger.Info().
		Int64("version", snap.version).
		Int("items", len(snap.items)).
		Int("users", snap.ratings.NumUsers()).
		Int("ratings", snap.ratingCount).
		Str("origin", snap.origin).
		Dur("build_duration", snap.buildDuration).
		Msg("snapshot loaded")

	return nil
}

// current returns the published snapshot or ErrNotReady.
func (e *Engine) current() (*Snapshot, error) {
	snap := e.snapshot.Load()
	if snap == nil {
		return nil, ErrNotReady
	}
	return snap, nil
}

// begin counts a request and resolves the snapshot and settings it runs with.
func (e *Engine) begin(ctx context.Context) (*Snapshot, *settings, error) {
	e.requestCount.Add(1)

	if err := ctx.Err(); err != nil {
		e.errorCount.Add(1)
		return nil, nil, err
	}

	snap, err := e.current()
	if err != nil {
		e.errorCount.Add(1)
		return nil, nil, err
	}
	return snap, e.settings.Load(), nil
}

// fail counts an error and returns it.
func (e *Engine) fail(err error) error {
	e.errorCount.Add(1)
	return err
}

// RecommendByContent returns the k items most similar to itemID by title,
// author and genre. Scores are raw cosine similarities.
func (e *Engine) RecommendByContent(ctx context.Context, itemID, k int) (*Result, error) {
	snap, st, err := e.begin(ctx)
	if err != nil {
		return nil, err
	}
	k = st.cfg.ResolveK(k)

	key := resultKey(StrategyContent, snap.version, st.gen, itemID, nil, k)
	if res, ok := e.cachedResult(key); ok {
		return res, nil
	}

	idx, ok := snap.itemIndex[itemID]
	if !ok {
		return nil, e.fail(fmt.Errorf("item %d: %w", itemID, ErrNotFound))
	}

	scores := snap.itemSim.SimilarityRow(idx)
	items := rankExcluding(snap, scores, idx, k)

	e.logger.Debug().
		Str("strategy", StrategyContent.String()).
		Int("item_id", itemID).
		Int("k", k).
		Int("returned", len(items)).
		Msg("recommendation complete")

	res := &Result{
		Items:           items,
		Strategy:        StrategyContent,
		SnapshotVersion: snap.version,
	}
	e.storeResult(key, res)
	return res, nil
}

// RecommendForUser returns up to k items the user has not rated, ranked by
// mean rating among the user's most similar neighbours.
func (e *Engine) RecommendForUser(ctx context.Context, userID, k int) (*Result, error) {
	snap, st, err := e.begin(ctx)
	if err != nil {
		return nil, err
	}
	cfg := st.cfg
	k = cfg.ResolveK(k)

	if !snap.collaborative() {
		return nil, e.fail(fmt.Errorf("user %d: %w", userID, ErrUnavailable))
	}

	u, ok := snap.ratings.UserIndex(userID)
	if !ok {
		return nil, e.fail(fmt.Errorf("user %d: %w", userID, ErrNotFound))
	}

	key := resultKey(StrategyCollaborative, snap.version, st.gen, 0, &userID, k)
	if res, ok := e.cachedResult(key); ok {
		return res, nil
	}

	neighbors, _ := snap.userSim.SimilarUsers(userID, cfg.Neighbors)
	rows := make([]int, 0, len(neighbors))
	for _, n := range neighbors {
		if r, ok := snap.ratings.UserIndex(n.UserID); ok {
			rows = append(rows, r)
		}
	}

	means, present := snap.ratings.ColumnMeans(rows)
	itemIDs := snap.ratings.Items()

	candidates := make([]int, 0, len(itemIDs))
	for c := range itemIDs {
		if !present[c] || snap.ratings.Value(u, c) > 0 {
			continue
		}
		candidates = append(candidates, c)
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return means[candidates[a]] > means[candidates[b]]
	})

	items := make([]ScoredItem, 0, k)
	for _, c := range candidates {
		if len(items) == k {
			break
		}
		// Rated items missing from the catalog cannot be rendered.
		idx, ok := snap.itemIndex[itemIDs[c]]
		if !ok {
			continue
		}
		items = append(items, snap.scoredItem(idx, means[c]))
	}

	e.logger.Debug().
		Str("strategy", StrategyCollaborative.String()).
		Int("user_id", userID).
		Int("neighbors", len(neighbors)).
		Int("candidates", len(candidates)).
		Int("returned", len(items)).
		Msg("recommendation complete")

	res := &Result{
		Items:           items,
		Strategy:        StrategyCollaborative,
		SnapshotVersion: snap.version,
	}
	e.storeResult(key, res)
	return res, nil
}

// RecommendHybrid fuses normalized content similarity to req.ItemID with the
// user's normalized ratings. When no usable rating data exists for the user
// it falls back to raw content scores and sets Fallback and Warning.
func (e *Engine) RecommendHybrid(ctx context.Context, req HybridRequest) (*Result, error) {
	snap, st, err := e.begin(ctx)
	if err != nil {
		return nil, err
	}
	cfg := st.cfg
	k := cfg.ResolveK(req.K)

	idx, ok := snap.itemIndex[req.ItemID]
	if !ok {
		return nil, e.fail(fmt.Errorf("item %d: %w", req.ItemID, ErrNotFound))
	}

	key := resultKey(StrategyHybrid, snap.version, st.gen, req.ItemID, req.UserID, k)
	if res, ok := e.cachedResult(key); ok {
		return res, nil
	}

	content := snap.itemSim.SimilarityRow(idx)

	res := &Result{
		Strategy:        StrategyHybrid,
		SnapshotVersion: snap.version,
	}

	scores, reason := fuseScores(snap, cfg, content, req.UserID)
	if reason != "" {
		scores = content
		res.Fallback = true
		res.FallbackReason = reason
		res.Warning = fallbackWarning(reason, req.UserID)
		e.fallbackCount.Add(1)

		e.logger.Warn().
			Int("item_id", req.ItemID).
			Str("reason", reason).
			Msg("hybrid recommendation fell back to content scores")
	}

	res.Items = rankExcluding(snap, scores, idx, k)

	e.logger.Debug().
		Str("strategy", StrategyHybrid.String()).
		Int("item_id", req.ItemID).
		Bool("fallback", res.Fallback).
		Int("returned", len(res.Items)).
		Msg("recommendation complete")

	e.storeResult(key, res)
	return res, nil
}

// resultKey identifies a query within one snapshot and config generation.
func resultKey(strategy Strategy, version, gen int64, itemID int, userID *int, k int) string {
	user := "-"
	if userID != nil {
		user = strconv.Itoa(*userID)
	}
	return fmt.Sprintf("%s/%d/%d/%d/%s/%d", strategy, version, gen, itemID, user, k)
}

// cachedResult returns a memoized result. A cached fallback still counts
// toward the fallback counter.
func (e *Engine) cachedResult(key string) (*Result, bool) {
	if e.results == nil {
		return nil, false
	}
	res, ok := e.results.Get(key)
	if ok && res.Fallback {
		e.fallbackCount.Add(1)
	}
	return res, ok
}

func (e *Engine) storeResult(key string, res *Result) {
	if e.results != nil {
		e.results.Add(key, res)
	}
}

// fuseScores returns the fused hybrid scores, or a fallback reason when the
// user's ratings cannot be used.
//
//nolint:gocritic // hugeParam: cfg read only
func fuseScores(snap *Snapshot, cfg *Config, content []float64, userID *int) ([]float64, string) {
	if userID == nil {
		return nil, FallbackNoUser
	}
	if !snap.collaborative() {
		return nil, FallbackTooFewUsers
	}
	u, ok := snap.ratings.UserIndex(*userID)
	if !ok {
		return nil, FallbackUnknownUser
	}

	aligned := make([]float64, len(snap.items))
	hasRating := false
	for i, it := range snap.items {
		c, ok := snap.ratings.ItemIndex(it.ID)
		if !ok {
			continue
		}
		aligned[i] = snap.ratings.Value(u, c)
	}
	for _, v := range snap.ratings.Row(u) {
		if v != 0 {
			hasRating = true
			break
		}
	}
	if !hasRating {
		return nil, FallbackNoRatings
	}

	contentNorm := algorithms.MinMax(content, cfg.Epsilon)
	ratingNorm := algorithms.MinMax(aligned, cfg.Epsilon)

	fused := make([]float64, len(content))
	for i := range fused {
		fused[i] = cfg.Weights.Content*contentNorm[i] + cfg.Weights.Rating*ratingNorm[i]
	}
	return fused, ""
}

// fallbackWarning renders the user-facing explanation of a fallback.
func fallbackWarning(reason string, userID *int) string {
	switch reason {
	case FallbackNoUser:
		return "no user selected; using content-based recommendations"
	case FallbackTooFewUsers:
		return "not enough user data for rating fusion; using content-based recommendations"
	case FallbackUnknownUser:
		return fmt.Sprintf("user %d has no rating data; using content-based recommendations", *userID)
	case FallbackNoRatings:
		return fmt.Sprintf("user %d hasn't rated any books yet; using content-based recommendations", *userID)
	default:
		return "using content-based recommendations"
	}
}

// rankExcluding ranks scores descending (ties to the lower index), drops
// exclude and returns the first k as scored items.
func rankExcluding(snap *Snapshot, scores []float64, exclude, k int) []ScoredItem {
	order := algorithms.RankDescending(scores)

	items := make([]ScoredItem, 0, k)
	for _, i := range order {
		if len(items) == k {
			break
		}
		if i == exclude {
			continue
		}
		items = append(items, snap.scoredItem(i, scores[i]))
	}
	return items
}

// ListItemTitles returns the catalog titles in item order.
func (e *Engine) ListItemTitles() ([]string, error) {
	snap, err := e.current()
	if err != nil {
		return nil, err
	}

	titles := make([]string, len(snap.items))
	for i, it := range snap.items {
		titles[i] = it.Title
	}
	return titles, nil
}

// ListItems returns a copy of the catalog in item order.
func (e *Engine) ListItems() ([]Item, error) {
	snap, err := e.current()
	if err != nil {
		return nil, err
	}

	items := make([]Item, len(snap.items))
	copy(items, snap.items)
	return items, nil
}

// ListUserIDs returns the rating users in matrix row order. It is empty when
// collaborative filtering is unavailable.
func (e *Engine) ListUserIDs() ([]int, error) {
	snap, err := e.current()
	if err != nil {
		return nil, err
	}

	if !snap.collaborative() {
		return []int{}, nil
	}
	return snap.ratings.Users(), nil
}

// Status returns a description of the published snapshot.
func (e *Engine) Status() Status {
	snap := e.snapshot.Load()
	if snap == nil {
		return Status{}
	}
	return snap.status()
}

// Metrics returns a copy of the engine counters.
func (e *Engine) Metrics() Metrics {
	m := Metrics{
		Requests:     e.requestCount.Load(),
		Errors:       e.errorCount.Load(),
		Fallbacks:    e.fallbackCount.Load(),
		Loads:        e.loadCount.Load(),
		LoadFailures: e.loadFailures.Load(),
	}
	if e.results != nil {
		stats := e.results.Stats()
		m.CacheHits = stats.Hits
		m.CacheMisses = stats.Misses
	}
	return m
}

// Config returns a copy of the current configuration.
func (e *Engine) Config() *Config {
	return e.settings.Load().cfg.Clone()
}

// UpdateConfig replaces the configuration. Query parameters (weights,
// limits, neighbours, epsilon) apply immediately; build parameters apply on
// the next Load. The result cache keeps the size it was created with.
func (e *Engine) UpdateConfig(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	next := &settings{cfg: cfg.Clone()}
	for {
		prev := e.settings.Load()
		next.gen = prev.gen + 1
		if e.settings.CompareAndSwap(prev, next) {
			break
		}
	}

	e.logger.Info().
		Float64("content_weight", cfg.Weights.Content).
		Float64("rating_weight", cfg.Weights.Rating).
		Msg("configuration updated")
	return nil
}

// LoadedAt returns when the current snapshot was built, or the zero time.
func (e *Engine) LoadedAt() time.Time {
	if snap := e.snapshot.Load(); snap != nil {
		return snap.builtAt
	}
	return time.Time{}
}
