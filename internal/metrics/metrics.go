// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - API endpoint latency and throughput
// - Recommendation queries per strategy
// - Snapshot reloads
// - Data source fallbacks and circuit breaker state

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}, // In-memory queries are fast
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation queries",
		},
		[]string{"strategy", "outcome"}, // outcome: "ok", "fallback", "not_found", "unavailable", "not_ready", "error"
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Duration of recommendation queries in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"strategy"},
	)

	RecommendFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_fallbacks_total",
			Help: "Total number of hybrid queries answered with content scores only",
		},
		[]string{"reason"},
	)

	// Snapshot Metrics
	SnapshotReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_reloads_total",
			Help: "Total number of snapshot reload attempts",
		},
		[]string{"result"}, // result: "success", "failure", "throttled"
	)

	SnapshotBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "snapshot_build_duration_seconds",
			Help:    "Duration of snapshot builds (load + similarity) in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 120}, // Large catalogs take minutes
		},
	)

	SnapshotVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_version",
			Help: "Version of the live recommendation snapshot",
		},
	)

	SnapshotItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_items",
			Help: "Number of catalog items in the live snapshot",
		},
	)

	SnapshotUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_users",
			Help: "Number of distinct raters in the live snapshot",
		},
	)

	SnapshotDroppedRatings = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_dropped_ratings",
			Help: "Rating events ignored by the last build (zero values)",
		},
	)

	// Data Source Metrics
	DataSourceLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "data_source_loads_total",
			Help: "Total number of dataset loads per source",
		},
		[]string{"source", "result"},
	)

	DataSourceFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "data_source_fallbacks_total",
			Help: "Total number of loads served by the fallback source",
		},
		[]string{"source"},
	)

	// Circuit Breaker Metrics
	DataSourceBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "data_source_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	DataSourceBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "data_source_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Watcher Metrics
	FileWatchEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "data_file_watch_events_total",
			Help: "Total number of debounced file change signals",
		},
		[]string{"file"},
	)
)

// Breaker state gauge values.
const (
	BreakerClosed   = 0
	BreakerHalfOpen = 1
	BreakerOpen     = 2
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements active request counter
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a 429 response for an endpoint
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordRecommendation records a single recommendation query
func RecordRecommendation(strategy, outcome string, duration time.Duration) {
	RecommendRequestsTotal.WithLabelValues(strategy, outcome).Inc()
	RecommendDuration.WithLabelValues(strategy).Observe(duration.Seconds())
}

// RecordFallback counts a hybrid query that degraded to content only
func RecordFallback(reason string) {
	RecommendFallbacksTotal.WithLabelValues(reason).Inc()
}

// SnapshotStats is the subset of engine status exported as gauges.
type SnapshotStats struct {
	Version        int64
	Items          int
	Users          int
	DroppedRatings int
}

// RecordReload records the outcome of a snapshot reload. Gauges are only
// updated on success, since a failed reload leaves the old snapshot live.
func RecordReload(duration time.Duration, stats SnapshotStats, err error) {
	if err != nil {
		SnapshotReloadsTotal.WithLabelValues("failure").Inc()
		return
	}
	SnapshotReloadsTotal.WithLabelValues("success").Inc()
	SnapshotBuildDuration.Observe(duration.Seconds())
	SnapshotVersion.Set(float64(stats.Version))
	SnapshotItems.Set(float64(stats.Items))
	SnapshotUsers.Set(float64(stats.Users))
	SnapshotDroppedRatings.Set(float64(stats.DroppedRatings))
}

// RecordReloadThrottled counts a reload request rejected by the rate limiter
func RecordReloadThrottled() {
	SnapshotReloadsTotal.WithLabelValues("throttled").Inc()
}

// RecordSourceLoad records one load attempt against a named source
func RecordSourceLoad(source string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	DataSourceLoads.WithLabelValues(source, result).Inc()
}

// RecordSourceFallback counts a load served by the fallback source
func RecordSourceFallback(source string) {
	DataSourceFallbacksTotal.WithLabelValues(source).Inc()
}

// RecordBreakerTransition records a circuit breaker state change
func RecordBreakerTransition(name, from, to string, toState int) {
	DataSourceBreakerTransitions.WithLabelValues(name, from, to).Inc()
	DataSourceBreakerState.WithLabelValues(name).Set(float64(toState))
}

// RecordFileWatchEvent counts a debounced change signal for a file
func RecordFileWatchEvent(file string) {
	FileWatchEvents.WithLabelValues(file).Inc()
}
