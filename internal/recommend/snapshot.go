// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/bookvibe/internal/recommend/algorithms"
)

// Snapshot holds every matrix derived from one dataset.
// It is never mutated after buildSnapshot returns.
type Snapshot struct {
	version int64

	items     []Item
	itemIndex map[int]int

	itemSim *algorithms.ItemSimilarity
	ratings *algorithms.UserItemMatrix

	// userSim is nil when fewer than two users exist.
	userSim *algorithms.UserSimilarity

	ratingCount   int
	origin        string
	builtAt       time.Time
	buildDuration time.Duration
}

// buildSnapshot validates ds and derives all similarity matrices from it.
//
//nolint:gocritic // hugeParam: cfg read only
func buildSnapshot(ctx context.Context, ds *Dataset, cfg *Config, version int64) (*Snapshot, error) {
	start := time.Now()

	if ds == nil || len(ds.Items) == 0 {
		return nil, ErrEmptyCatalog
	}

	items := make([]Item, len(ds.Items))
	copy(items, ds.Items)

	itemIndex := make(map[int]int, len(items))
	docs := make([]string, len(items))
	for i, it := range items {
		if _, dup := itemIndex[it.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateItem, it.ID)
		}
		itemIndex[it.ID] = i
		docs[i] = it.FeatureText()
	}

	features := algorithms.NewTFIDFEncoder().FitTransform(docs)
	itemSim, err := algorithms.NewItemSimilarity(ctx, features, cfg.Workers)
	if err != nil {
		return nil, err
	}

	triples := make([]algorithms.Triple, len(ds.Ratings))
	for i, r := range ds.Ratings {
		triples[i] = algorithms.Triple{UserID: r.UserID, ItemID: r.ItemID, Value: r.Value}
	}
	ratings := algorithms.BuildUserItemMatrix(triples, cfg.DuplicatePolicy)

	userSim, err := algorithms.NewUserSimilarity(ctx, ratings, cfg.Workers)
	if err != nil {
		if !errors.Is(err, algorithms.ErrTooFewUsers) {
			return nil, err
		}
		userSim = nil
	}

	return &Snapshot{
		version:       version,
		items:         items,
		itemIndex:     itemIndex,
		itemSim:       itemSim,
		ratings:       ratings,
		userSim:       userSim,
		ratingCount:   len(ds.Ratings),
		origin:        ds.Origin,
		builtAt:       time.Now(),
		buildDuration: time.Since(start),
	}, nil
}

// collaborative reports whether user similarity is available.
func (s *Snapshot) collaborative() bool {
	return s.userSim != nil
}

// scoredItem pairs the item at positional index i with score.
func (s *Snapshot) scoredItem(i int, score float64) ScoredItem {
	return ScoredItem{Item: s.items[i], Score: score}
}

// status summarizes the snapshot.
func (s *Snapshot) status() Status {
	return Status{
		Ready:                  true,
		Version:                s.version,
		Items:                  len(s.items),
		Users:                  s.ratings.NumUsers(),
		Ratings:                s.ratingCount,
		DroppedRatings:         s.ratings.Dropped(),
		CollaborativeAvailable: s.collaborative(),
		Origin:                 s.origin,
		BuiltAt:                s.builtAt,
		BuildDuration:          s.buildDuration,
	}
}
