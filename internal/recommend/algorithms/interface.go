// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package algorithms

import (
	"context"
	"math"
	"runtime"
	"sort"

	"github.com/sourcegraph/conc"
)

// Neighbor is a similar user with its similarity score.
type Neighbor struct {
	UserID     int     `json:"user_id"`
	Similarity float64 `json:"similarity"`
}

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// RankDescending returns the indices of scores ordered by descending score.
// Equal scores keep ascending index order.
func RankDescending(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	return order
}

// cosineSimilarity computes cosine similarity between two vectors.
// Returns 0 when either vector has zero norm.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// vectorNorm returns the Euclidean norm of v.
func vectorNorm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// resolveWorkers clamps the requested worker count to [1, rows].
func resolveWorkers(requested, rows int) int {
	workers := requested
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > rows {
		workers = rows
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// pairwiseCosine builds a flat n x n cosine matrix over vectors.
//
// Rows are striped across workers. Each worker owns row i and writes both
// (i, j) and (j, i) for j > i, so no two workers touch the same cell and the
// result is exactly symmetric. The diagonal is fixed at 1.0.
func pairwiseCosine(ctx context.Context, vectors [][]float64, workers int) ([]float64, error) {
	n := len(vectors)
	values := make([]float64, n*n)
	if n == 0 {
		return values, nil
	}

	norms := make([]float64, n)
	for i, v := range vectors {
		norms[i] = vectorNorm(v)
	}

	workers = resolveWorkers(workers, n)

	var wg conc.WaitGroup
	for w := 0; w < workers; w++ {
		offset := w
		wg.Go(func() {
			for i := offset; i < n; i += workers {
				if ContextCancelled(ctx) {
					return
				}
				values[i*n+i] = 1.0
				for j := i + 1; j < n; j++ {
					sim := 0.0
					if norms[i] != 0 && norms[j] != 0 {
						sim = dot(vectors[i], vectors[j]) / (norms[i] * norms[j])
					}
					values[i*n+j] = sim
					values[j*n+i] = sim
				}
			}
		})
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return values, nil
}

// dot returns the dot product of two equal-length vectors.
func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
