// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

/*
Package metrics provides Prometheus metrics collection and export for observability.

Collectors are package-level promauto values registered with the default
registry. Callers use the Record* helpers rather than touching collectors
directly.

# Metrics Endpoint

Metrics are exposed at the configured path (default /metrics) in Prometheus
text format:

	curl http://localhost:8501/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: 429 responses (counter)
    Labels: endpoint

Recommendation Metrics:
  - recommend_requests_total: Queries (counter)
    Labels: strategy (content, collaborative, hybrid), outcome
  - recommend_duration_seconds: Query latency (histogram)
    Labels: strategy
  - recommend_fallbacks_total: Hybrid queries answered by content only (counter)
    Labels: reason (no_user, too_few_users, unknown_user, no_ratings)

Snapshot Metrics:
  - snapshot_reloads_total: Reload attempts (counter)
    Labels: result (success, failure, throttled)
  - snapshot_build_duration_seconds: Load and build time (histogram)
  - snapshot_version, snapshot_items, snapshot_users, snapshot_dropped_ratings (gauges)

Data Source Metrics:
  - data_source_loads_total: Loads per source (counter)
    Labels: source, result
  - data_source_fallbacks_total: Loads served by the fallback (counter)
    Labels: source
  - data_source_breaker_state: Breaker state (gauge)
    Labels: name
    Values: 0=closed, 1=half-open, 2=open
  - data_file_watch_events_total: Debounced file change signals (counter)
    Labels: file

# Example PromQL

Fallback ratio over five minutes:

	sum(rate(recommend_fallbacks_total[5m])) /
	sum(rate(recommend_requests_total{strategy="hybrid"}[5m]))

Reload failures in the last hour:

	increase(snapshot_reloads_total{result="failure"}[1h])
*/
package metrics
