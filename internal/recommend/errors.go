// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package recommend

import "errors"

var (
	// ErrNotFound is returned for an unknown item or user ID.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable is returned when collaborative data is insufficient
	// (fewer than two users).
	ErrUnavailable = errors.New("collaborative filtering unavailable")

	// ErrNotReady is returned by queries before the first successful Load.
	ErrNotReady = errors.New("recommendation engine not ready")

	// ErrEmptyCatalog is returned by Load when the dataset has no items.
	ErrEmptyCatalog = errors.New("catalog has no items")

	// ErrDuplicateItem is returned by Load when two items share an ID.
	ErrDuplicateItem = errors.New("duplicate item id")
)
