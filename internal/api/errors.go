// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/bookvibe/internal/recommend"
)

// Error codes for API responses
const (
	ErrCodeInvalidItemID    = "INVALID_ITEM_ID"
	ErrCodeInvalidUserID    = "INVALID_USER_ID"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeNotReady         = "NOT_READY"
	ErrCodeUnavailable      = "COLLABORATIVE_UNAVAILABLE"
	ErrCodeTimeout          = "TIMEOUT"
	ErrCodeRateLimited      = "RATE_LIMIT_EXCEEDED"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// engineError maps an engine error to an HTTP status, code, and client message.
func engineError(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, recommend.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound, err.Error()
	case errors.Is(err, recommend.ErrUnavailable):
		return http.StatusServiceUnavailable, ErrCodeUnavailable,
			"Collaborative filtering needs ratings from at least two users"
	case errors.Is(err, recommend.ErrNotReady):
		return http.StatusServiceUnavailable, ErrCodeNotReady, "Recommendation data is still loading"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ErrCodeTimeout, "Recommendation timed out"
	default:
		return http.StatusInternalServerError, ErrCodeInternal, "Failed to generate recommendations"
	}
}
