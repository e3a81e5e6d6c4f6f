// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package algorithms

import (
	"context"
	"fmt"
)

// ItemSimilarity is an immutable N x N cosine similarity matrix over item
// feature rows. Entry (i, j) equals entry (j, i) and the diagonal is 1.0.
type ItemSimilarity struct {
	n      int
	values []float64
}

// NewItemSimilarity computes pairwise cosine similarity of all feature rows.
// workers <= 0 uses GOMAXPROCS goroutines.
func NewItemSimilarity(ctx context.Context, features *FeatureMatrix, workers int) (*ItemSimilarity, error) {
	if features == nil {
		return &ItemSimilarity{}, nil
	}

	values, err := pairwiseCosine(ctx, features.rows, workers)
	if err != nil {
		return nil, fmt.Errorf("item similarity: %w", err)
	}

	return &ItemSimilarity{
		n:      features.Len(),
		values: values,
	}, nil
}

// Len returns the number of items.
func (s *ItemSimilarity) Len() int {
	return s.n
}

// At returns the similarity between items i and j.
func (s *ItemSimilarity) At(i, j int) float64 {
	return s.values[i*s.n+j]
}

// SimilarityRow returns a copy of the N similarity scores for item i.
func (s *ItemSimilarity) SimilarityRow(i int) []float64 {
	row := make([]float64, s.n)
	copy(row, s.values[i*s.n:(i+1)*s.n])
	return row
}
