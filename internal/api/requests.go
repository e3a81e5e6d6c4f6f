// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package api

import (
	"net/http"

	"github.com/tomtom215/bookvibe/internal/models"
	"github.com/tomtom215/bookvibe/internal/validation"
)

// MaxK is the largest k a client may request. The engine further clamps k
// to its configured maximum.
const MaxK = 100

// ContentRequest holds the validated parameters of a content recommendation.
// K of zero selects the engine default.
type ContentRequest struct {
	ItemID int `query:"itemID"`
	K      int `query:"k" validate:"min=0,max=100"`
}

// UserRequest holds the validated parameters of a collaborative recommendation.
type UserRequest struct {
	UserID int `query:"userID"`
	K      int `query:"k" validate:"min=0,max=100"`
}

// HybridRequest holds the validated parameters of a hybrid recommendation.
// UserID is optional; without it the engine falls back to content scores.
type HybridRequest struct {
	ItemID *int `query:"item_id" validate:"required"`
	UserID *int `query:"user_id"`
	K      int  `query:"k" validate:"min=0,max=100"`
}

// parseK reads the optional k query parameter.
func parseK(r *http.Request) (int, *models.APIError) {
	k, err := parseOptionalIntParam(r, "k")
	if err != nil {
		return 0, integerFieldError("k", r.URL.Query().Get("k"))
	}
	if k == nil {
		return 0, nil
	}
	return *k, nil
}

// integerFieldError reports a parameter that is not an integer.
func integerFieldError(field, value string) *models.APIError {
	return validation.NewFieldError(field, "integer", value, field+" must be an integer").ToAPIError()
}
