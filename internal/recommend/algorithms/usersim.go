// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package algorithms

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// ErrTooFewUsers is returned when fewer than two users exist.
var ErrTooFewUsers = errors.New("at least two users are required for user similarity")

// UserSimilarity is an immutable M x M cosine similarity matrix over the rows
// of a UserItemMatrix. Unrated cells count as 0.
type UserSimilarity struct {
	users  []int
	index  map[int]int
	n      int
	values []float64
}

// NewUserSimilarity computes cosine similarity between every pair of users.
// It returns ErrTooFewUsers when the matrix has fewer than two rows.
func NewUserSimilarity(ctx context.Context, m *UserItemMatrix, workers int) (*UserSimilarity, error) {
	if m == nil || m.NumUsers() < 2 {
		return nil, ErrTooFewUsers
	}

	values, err := pairwiseCosine(ctx, m.cells, workers)
	if err != nil {
		return nil, fmt.Errorf("user similarity: %w", err)
	}

	index := make(map[int]int, len(m.users))
	for u, id := range m.users {
		index[id] = u
	}

	return &UserSimilarity{
		users:  m.Users(),
		index:  index,
		n:      len(m.users),
		values: values,
	}, nil
}

// Len returns the number of users.
func (s *UserSimilarity) Len() int {
	return s.n
}

// At returns the similarity between rows u and v.
func (s *UserSimilarity) At(u, v int) float64 {
	return s.values[u*s.n+v]
}

// SimilarUsers returns up to k users most similar to userID, ordered by
// descending similarity and excluding userID itself. Ties keep row order.
// The bool is false when userID is unknown.
func (s *UserSimilarity) SimilarUsers(userID, k int) ([]Neighbor, bool) {
	row, ok := s.index[userID]
	if !ok {
		return nil, false
	}
	if k <= 0 {
		return []Neighbor{}, true
	}

	neighbors := make([]Neighbor, 0, s.n-1)
	for v := 0; v < s.n; v++ {
		if v == row {
			continue
		}
		neighbors = append(neighbors, Neighbor{
			UserID:     s.users[v],
			Similarity: s.At(row, v),
		})
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Similarity > neighbors[j].Similarity
	})

	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors, true
}
