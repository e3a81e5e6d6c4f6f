// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

/*
Package models defines the JSON shapes of the BookVibe HTTP API.

Key Components:

  - APIResponse: Standard response envelope (status, data, metadata, error)
  - APIError: Machine-readable error code plus message and details
  - Metadata: Timestamp, query time, snapshot version, request ID
  - Book, BooksResponse, UsersResponse: Catalog listings
  - RecommendationResponse: Ranked results for every strategy, including hybrid fallback fields
  - EngineStatusResponse, ReloadResponse, HealthResponse: Operational endpoints

The engine's own types live in internal/recommend; handlers translate them
into these structs so the wire format can evolve independently.
*/
package models
