// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package api

import (
	"fmt"
	"hash/fnv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/bookvibe/internal/logging"
	"github.com/tomtom215/bookvibe/internal/models"
	"github.com/tomtom215/bookvibe/internal/validation"
)

// sanitizeLogValue escapes control characters so request data cannot forge
// log lines.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// newMetadata builds response metadata for r. A zero start omits the query time.
func newMetadata(r *http.Request, start time.Time) models.Metadata {
	md := models.Metadata{
		Timestamp: time.Now().UTC(),
		RequestID: logging.RequestIDFromContext(r.Context()),
	}
	if !start.IsZero() {
		md.QueryTimeMS = time.Since(start).Milliseconds()
	}
	return md
}

// respondJSON writes response with an ETag. A GET whose If-None-Match
// matches gets 304 with no body.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")

	if status == http.StatusOK && r.Method == http.MethodGet {
		etag := generateETag(response.Data)
		w.Header().Set("ETag", etag)
		if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag hashes the response payload. Metadata is excluded since it
// carries a timestamp and would change on every request.
func generateETag(payload interface{}) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	h := fnv.New64a()
	_, _ = h.Write(data)
	return `"` + strconv.FormatUint(h.Sum64(), 16) + `"`
}

// respondSuccess writes a success envelope.
func respondSuccess(w http.ResponseWriter, r *http.Request, status int, data interface{}, md models.Metadata) {
	respondJSON(w, r, status, &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     data,
		Metadata: md,
	})
}

// respondError sends an error response. err, when set, is logged but never
// sent to the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	respondAPIError(w, r, status, &models.APIError{Code: code, Message: message}, err)
}

// respondAPIError sends apiErr as an error envelope.
func respondAPIError(w http.ResponseWriter, r *http.Request, status int, apiErr *models.APIError, err error) {
	if err != nil {
		event := logging.Ctx(r.Context()).Warn()
		if status >= http.StatusInternalServerError {
			event = logging.Ctx(r.Context()).Error()
		}
		event.Str("code", sanitizeLogValue(apiErr.Code)).
			Str("error", sanitizeLogValue(err.Error())).
			Int("status", status).
			Msg("API Error")
	}

	respondJSON(w, r, status, &models.APIResponse{
		Status:   models.StatusError,
		Data:     nil,
		Metadata: newMetadata(r, time.Time{}),
		Error:    apiErr,
	})
}

// validateRequest validates a struct using go-playground/validator.
func validateRequest(v interface{}) *models.APIError {
	if verr := validation.ValidateStruct(v); verr != nil {
		return verr.ToAPIError()
	}
	return nil
}

// parseIntParam parses a required integer parameter. Surrounding whitespace
// is ignored.
func parseIntParam(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", value)
	}
	return n, nil
}

// parseOptionalIntParam parses an optional integer query parameter. An empty
// value returns nil.
func parseOptionalIntParam(r *http.Request, key string) (*int, error) {
	value := r.URL.Query().Get(key)
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	n, err := parseIntParam(value)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
