// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package algorithms

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// minTokenLength matches the classic \b\w\w+\b token pattern.
const minTokenLength = 2

// FeatureMatrix holds one TF-IDF row per document.
// Row i corresponds to input document i.
type FeatureMatrix struct {
	vocabulary []string
	rows       [][]float64
}

// Len returns the number of rows.
func (f *FeatureMatrix) Len() int {
	return len(f.rows)
}

// Vocabulary returns the sorted term list that indexes the columns.
func (f *FeatureMatrix) Vocabulary() []string {
	out := make([]string, len(f.vocabulary))
	copy(out, f.vocabulary)
	return out
}

// Row returns a copy of row i.
func (f *FeatureMatrix) Row(i int) []float64 {
	out := make([]float64, len(f.rows[i]))
	copy(out, f.rows[i])
	return out
}

// TFIDFEncoder turns item feature texts into TF-IDF vectors.
//
// The vocabulary and IDF weights are derived purely from the batch passed to
// FitTransform. Weighting is raw term count times smooth IDF:
//
//	idf(t) = ln((1 + n) / (1 + df(t))) + 1
//
// and every non-empty row is L2-normalized.
type TFIDFEncoder struct{}

// NewTFIDFEncoder creates a new encoder.
func NewTFIDFEncoder() *TFIDFEncoder {
	return &TFIDFEncoder{}
}

// FitTransform builds the vocabulary from docs and encodes each of them.
func (e *TFIDFEncoder) FitTransform(docs []string) *FeatureMatrix {
	tokenized := make([][]string, len(docs))
	docFreq := make(map[string]int)

	for i, doc := range docs {
		tokens := Tokenize(doc)
		tokenized[i] = tokens

		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			docFreq[tok]++
		}
	}

	vocabulary := make([]string, 0, len(docFreq))
	for term := range docFreq {
		vocabulary = append(vocabulary, term)
	}
	sort.Strings(vocabulary)

	column := make(map[string]int, len(vocabulary))
	idf := make([]float64, len(vocabulary))
	n := float64(len(docs))
	for j, term := range vocabulary {
		column[term] = j
		idf[j] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	rows := make([][]float64, len(docs))
	for i, tokens := range tokenized {
		row := make([]float64, len(vocabulary))
		for _, tok := range tokens {
			row[column[tok]]++
		}
		for j := range row {
			row[j] *= idf[j]
		}
		if norm := vectorNorm(row); norm > 0 {
			for j := range row {
				row[j] /= norm
			}
		}
		rows[i] = row
	}

	return &FeatureMatrix{
		vocabulary: vocabulary,
		rows:       rows,
	}
}

// Tokenize lowercases text and splits it into runs of word characters
// (letters, digits, underscore). Runs shorter than two characters are dropped.
func Tokenize(text string) []string {
	lower := strings.ToLower(text)

	var tokens []string
	var current strings.Builder
	runes := 0

	flush := func() {
		if runes >= minTokenLength {
			tokens = append(tokens, current.String())
		}
		current.Reset()
		runes = 0
	}

	for _, r := range lower {
		if isWordRune(r) {
			current.WriteRune(r)
			runes++
			continue
		}
		flush()
	}
	flush()

	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}
