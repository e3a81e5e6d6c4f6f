// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"strategy": "content", "items": [...]},
//	  "metadata": {
//	    "timestamp": "2026-10-19T12:00:00Z",
//	    "query_time_ms": 1,
//	    "snapshot_version": 3
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "NOT_FOUND",
//	    "message": "item 42 not found"
//	  },
//	  "metadata": {"timestamp": "2026-10-19T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
//
// Fields:
//   - Timestamp: Server time when response was generated (RFC3339 format)
//   - QueryTimeMS: Engine query time in milliseconds
//   - SnapshotVersion: Snapshot the answer was computed from (omitted when not applicable)
//   - RequestID: Echo of the X-Request-ID header
type Metadata struct {
	Timestamp       time.Time `json:"timestamp"`
	QueryTimeMS     int64     `json:"query_time_ms,omitempty"`
	SnapshotVersion int64     `json:"snapshot_version,omitempty"`
	RequestID       string    `json:"request_id,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid query or path parameters
//   - NOT_FOUND: Unknown item or user
//   - COLLABORATIVE_UNAVAILABLE: Fewer than two users have ratings
//   - NOT_READY: No snapshot has been loaded yet
//   - RATE_LIMIT_EXCEEDED: Too many requests
//   - INTERNAL_ERROR: Unexpected failure
//
// Example:
//
//	{
//	  "code": "VALIDATION_ERROR",
//	  "message": "K must be at most 100",
//	  "details": {"field": "K", "tag": "max", "value": 500}
//	}
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
