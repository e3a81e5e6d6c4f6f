// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package algorithms

// DefaultEpsilon guards min-max normalization against a zero range.
const DefaultEpsilon = 1e-8

// MinMax rescales scores to [0, 1] with (x - min) / (max - min + eps).
// A constant input maps to all zeros. The input slice is not modified.
func MinMax(scores []float64, eps float64) []float64 {
	out := make([]float64, len(scores))
	if len(scores) == 0 {
		return out
	}

	minScore, maxScore := scores[0], scores[0]
	for _, s := range scores[1:] {
		if s < minScore {
			minScore = s
		}
		if s > maxScore {
			maxScore = s
		}
	}

	denom := maxScore - minScore + eps
	if denom == 0 {
		return out
	}

	for i, s := range scores {
		out[i] = (s - minScore) / denom
	}
	return out
}
