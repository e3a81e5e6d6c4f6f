// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/bookvibe/internal/models"
)

// HealthLive handles liveness probe requests.
// Returns 200 OK whenever the process is serving HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	status := h.engine.Status()
	respondSuccess(w, r, http.StatusOK, models.HealthResponse{
		Status:          "ok",
		Ready:           status.Ready,
		SnapshotVersion: status.Version,
		Uptime:          time.Since(h.startTime).Round(time.Second).String(),
	}, newMetadata(r, time.Time{}))
}

// HealthReady handles readiness probe requests.
// Returns 200 OK once a snapshot is published, 503 before.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	status := h.engine.Status()
	health := models.HealthResponse{
		Status:          "ok",
		Ready:           status.Ready,
		SnapshotVersion: status.Version,
		Uptime:          time.Since(h.startTime).Round(time.Second).String(),
	}

	code := http.StatusOK
	if !status.Ready {
		health.Status = "not_ready"
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, r, code, &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     health,
		Metadata: newMetadata(r, time.Time{}),
	})
}
