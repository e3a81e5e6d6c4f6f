// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

/*
Package validation provides request validation using go-playground/validator v10.

A single validator instance is created lazily and shared; it caches struct
metadata, so building one per request would be wasteful. Field names in error
messages come from the field's query tag (or json tag), so a client sending
?k=500 sees "k must be at most 100" rather than the Go field name.

Usage:

	type contentRequest struct {
	    ItemID int `query:"itemID"`
	    K      int `query:"k" validate:"min=0,max=100"`
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
	    respondAPIError(w, http.StatusBadRequest, verr.ToAPIError())
	    return
	}

Every failure maps to the VALIDATION_ERROR code. A single failing field puts
field, tag, and value in Details; several failing fields produce a "fields"
list.
*/
package validation
