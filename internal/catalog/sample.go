// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package catalog

import (
	"context"

	"github.com/tomtom215/bookvibe/internal/config"
	"github.com/tomtom215/bookvibe/internal/recommend"
)

// sampleItems and sampleRatings are the fixed demonstration dataset:
// ten classics and eight ratings from three readers.
var (
	sampleItems = []recommend.Item{
		{ID: 1, Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Genre: "Fiction"},
		{ID: 2, Title: "To Kill a Mockingbird", Author: "Harper Lee", Genre: "Fiction"},
		{ID: 3, Title: "1984", Author: "George Orwell", Genre: "Dystopian"},
		{ID: 4, Title: "Pride and Prejudice", Author: "Jane Austen", Genre: "Romance"},
		{ID: 5, Title: "The Catcher in the Rye", Author: "J.D. Salinger", Genre: "Fiction"},
		{ID: 6, Title: "Lord of the Flies", Author: "William Golding", Genre: "Fiction"},
		{ID: 7, Title: "Jane Eyre", Author: "Charlotte Brontë", Genre: "Romance"},
		{ID: 8, Title: "Wuthering Heights", Author: "Emily Brontë", Genre: "Romance"},
		{ID: 9, Title: "The Hobbit", Author: "J.R.R. Tolkien", Genre: "Fantasy"},
		{ID: 10, Title: "Fahrenheit 451", Author: "Ray Bradbury", Genre: "Science Fiction"},
	}

	sampleRatings = []recommend.Rating{
		{UserID: 1, ItemID: 1, Value: 5},
		{UserID: 1, ItemID: 2, Value: 4},
		{UserID: 1, ItemID: 3, Value: 5},
		{UserID: 2, ItemID: 1, Value: 3},
		{UserID: 2, ItemID: 4, Value: 4},
		{UserID: 3, ItemID: 2, Value: 5},
		{UserID: 3, ItemID: 5, Value: 4},
		{UserID: 3, ItemID: 6, Value: 3},
	}
)

// SampleDataset returns a fresh copy of the built-in dataset.
func SampleDataset() *recommend.Dataset {
	items := make([]recommend.Item, len(sampleItems))
	copy(items, sampleItems)
	ratings := make([]recommend.Rating, len(sampleRatings))
	copy(ratings, sampleRatings)

	return &recommend.Dataset{Items: items, Ratings: ratings, Origin: config.SourceSample}
}

// SampleSource serves SampleDataset. It never fails.
type SampleSource struct{}

// Name implements Source.
func (SampleSource) Name() string {
	return config.SourceSample
}

// Load implements Source.
func (SampleSource) Load(ctx context.Context) (*recommend.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return SampleDataset(), nil
}
