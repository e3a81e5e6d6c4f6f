// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package algorithms

import (
	"math"
	"reflect"
	"testing"
)

const tolerance = 1e-9

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and splits on punctuation",
			text: "The Great Gatsby F. Scott Fitzgerald Fiction",
			want: []string{"the", "great", "gatsby", "scott", "fitzgerald", "fiction"},
		},
		{
			name: "drops single character runs",
			text: "J.D. Salinger",
			want: []string{"salinger"},
		},
		{
			name: "keeps digits",
			text: "1984 George Orwell",
			want: []string{"1984", "george", "orwell"},
		},
		{
			name: "keeps accented letters inside a token",
			text: "Charlotte Brontë",
			want: []string{"charlotte", "brontë"},
		},
		{
			name: "underscore is a word character",
			text: "sci_fi a",
			want: []string{"sci_fi"},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTFIDFEncoder_Vocabulary(t *testing.T) {
	enc := NewTFIDFEncoder()
	fm := enc.FitTransform([]string{"Dune SciFi", "Foundation SciFi"})

	want := []string{"dune", "foundation", "scifi"}
	if got := fm.Vocabulary(); !reflect.DeepEqual(got, want) {
		t.Errorf("Vocabulary() = %v, want %v", got, want)
	}
	if fm.Len() != 2 {
		t.Errorf("Len() = %d, want 2", fm.Len())
	}
}

func TestTFIDFEncoder_Weights(t *testing.T) {
	enc := NewTFIDFEncoder()
	fm := enc.FitTransform([]string{"dune scifi", "foundation scifi"})

	// n = 2: df(scifi) = 2, df(dune) = 1
	idfScifi := math.Log(3.0/3.0) + 1
	idfDune := math.Log(3.0/2.0) + 1
	norm := math.Sqrt(idfScifi*idfScifi + idfDune*idfDune)

	row := fm.Row(0) // columns: dune, foundation, scifi
	if !approxEqual(row[0], idfDune/norm, tolerance) {
		t.Errorf("row[0][dune] = %f, want %f", row[0], idfDune/norm)
	}
	if row[1] != 0 {
		t.Errorf("row[0][foundation] = %f, want 0", row[1])
	}
	if !approxEqual(row[2], idfScifi/norm, tolerance) {
		t.Errorf("row[0][scifi] = %f, want %f", row[2], idfScifi/norm)
	}
}

func TestTFIDFEncoder_RowNorms(t *testing.T) {
	docs := []string{
		"The Great Gatsby F. Scott Fitzgerald Fiction",
		"To Kill a Mockingbird Harper Lee Fiction",
		"a b c",
		"",
	}
	fm := NewTFIDFEncoder().FitTransform(docs)

	tests := []struct {
		name     string
		row      int
		wantNorm float64
	}{
		{name: "first document is unit length", row: 0, wantNorm: 1},
		{name: "second document is unit length", row: 1, wantNorm: 1},
		{name: "document without tokens stays zero", row: 2, wantNorm: 0},
		{name: "empty document stays zero", row: 3, wantNorm: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := vectorNorm(fm.Row(tt.row)); !approxEqual(got, tt.wantNorm, tolerance) {
				t.Errorf("norm(row %d) = %f, want %f", tt.row, got, tt.wantNorm)
			}
		})
	}
}

func TestTFIDFEncoder_RepeatedTermsCount(t *testing.T) {
	fm := NewTFIDFEncoder().FitTransform([]string{"war war peace", "peace"})

	// columns: peace, war
	row := fm.Row(0)
	if row[1] <= row[0] {
		t.Errorf("repeated term weight %f should exceed single term weight %f", row[1], row[0])
	}
}

func TestTFIDFEncoder_Deterministic(t *testing.T) {
	docs := []string{
		"Dune F. Herbert SciFi",
		"Foundation I. Asimov SciFi",
		"Emma J. Austen Romance",
	}

	first := NewTFIDFEncoder().FitTransform(docs)
	second := NewTFIDFEncoder().FitTransform(docs)

	if !reflect.DeepEqual(first.Vocabulary(), second.Vocabulary()) {
		t.Fatalf("vocabulary differs between runs")
	}
	for i := 0; i < first.Len(); i++ {
		if !reflect.DeepEqual(first.Row(i), second.Row(i)) {
			t.Errorf("row %d differs between runs", i)
		}
	}
}

func TestFeatureMatrix_RowIsCopy(t *testing.T) {
	fm := NewTFIDFEncoder().FitTransform([]string{"alpha beta"})

	row := fm.Row(0)
	row[0] = 42

	if fm.Row(0)[0] == 42 {
		t.Error("Row() exposed internal storage")
	}
}
