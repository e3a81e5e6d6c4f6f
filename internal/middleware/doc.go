// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

/*
Package middleware provides HTTP middleware components for the API server.

Key Components:

  - Request ID: UUID-based request tracking, propagated into the logging context
  - Prometheus Metrics: request count, latency, and in-flight gauge keyed by chi route pattern
  - Access Log: per-request zerolog line, warn on slow requests, error on 5xx

All middleware use the standard func(http.Handler) http.Handler shape and
plug directly into chi:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(time.Second))
	r.Use(middleware.PrometheusMetrics)

RequestID must run before AccessLog so log lines carry request_id.
*/
package middleware
