// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

// Package recommend implements the book recommendation engine.
//
// # Architecture
//
// The engine answers three kinds of queries against a loaded catalog:
//
//   - Content: books whose title, author and genre text is most similar
//     to a given book (TF-IDF + cosine similarity)
//   - Collaborative: books rated highly by the readers most similar to a
//     given reader (user-user cosine similarity over ratings)
//   - Hybrid: a weighted fusion of min-max normalized content similarity
//     and the reader's own ratings, falling back to content when no usable
//     rating data exists for the reader
//
// All derived matrices live in an immutable Snapshot. Load builds a new
// snapshot off to the side and publishes it atomically, so queries never
// take a lock and in-flight requests keep the snapshot they started with.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	if err := engine.Load(ctx, dataset); err != nil {
//	    return err
//	}
//
//	res, err := engine.RecommendByContent(ctx, 3, 5)
//
// # Errors
//
// Queries return ErrNotFound for unknown IDs, ErrUnavailable when
// collaborative data is insufficient and ErrNotReady before the first
// successful load. An empty result is not an error.
//
// # Result Cache
//
// Successful results are memoized in an LRU keyed by snapshot version and
// configuration generation, so a reload or UpdateConfig never serves a stale
// ranking. Set Config.ResultCacheSize to 0 to disable it.
//
// # Thread Safety
//
// The engine is safe for concurrent use. Load calls are serialized; queries
// run concurrently with each other and with Load.
package recommend
