// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

// Package algorithms implements the numeric building blocks of the
// recommendation engine.
//
// The package has no dependency on the recommend package. It works on plain
// slices, integer IDs and rating triples so the engine can assemble the pieces
// into an immutable snapshot without import cycles.
//
// # Components
//
// Content side:
//   - TFIDFEncoder: per-item text vectors with smooth IDF and L2 row norms
//   - ItemSimilarity: N x N cosine matrix over encoded rows
//
// Collaborative side:
//   - UserItemMatrix: dense user x item rating pivot, 0 marks "unrated"
//   - UserSimilarity: M x M cosine matrix over user rows
//
// Shared:
//   - MinMax: min-max normalization with an epsilon guard
//   - RankDescending: stable descending index ordering
//
// # Determinism
//
// Every builder is deterministic for identical input. Vocabulary columns are
// sorted lexicographically, user rows and item columns keep first-seen input
// order, and rankings break ties by the lower index.
//
// # Thread Safety
//
// All matrices are read-only after construction and safe for concurrent use.
// Construction itself fans out over a bounded number of goroutines and
// observes context cancellation between rows.
package algorithms
