// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

/*
Package api provides the HTTP REST API layer for BookVibe.

The API exposes the recommendation engine over JSON. Every response uses the
models.APIResponse envelope with status, data, metadata, and error fields.

Endpoints:

  - GET  /api/v1/health/live                       liveness probe
  - GET  /api/v1/health/ready                      503 until a snapshot is published
  - GET  /api/v1/books                             catalog titles and records
  - GET  /api/v1/users                             user IDs with ratings
  - GET  /api/v1/recommendations/content/{itemID}  similar books
  - GET  /api/v1/recommendations/user/{userID}     collaborative filtering
  - GET  /api/v1/recommendations/hybrid            item_id, optional user_id
  - GET  /api/v1/recommendations/status            snapshot and engine counters
  - POST /api/v1/recommendations/reload            asynchronous reload (202)
  - GET  /metrics                                  Prometheus exposition

All recommendation endpoints accept an optional k query parameter in
[0, 100]; zero selects the engine default.

Middleware:

The chi router applies request IDs, real IP extraction, panic recovery, CORS,
and access logging globally. Data endpoints additionally get security
headers, Prometheus metrics, compression, and an httprate limiter keyed by
client IP. Health probes are not rate limited.

Error mapping:

	recommend.ErrNotFound     404 NOT_FOUND
	recommend.ErrUnavailable  503 COLLABORATIVE_UNAVAILABLE
	recommend.ErrNotReady     503 NOT_READY
	context deadline          504 TIMEOUT
	bad ID                    400 INVALID_ITEM_ID / INVALID_USER_ID
	bad k, missing item_id    400 VALIDATION_ERROR

Successful GET responses carry an ETag computed over the data payload, and a
matching If-None-Match yields 304.
*/
package api
