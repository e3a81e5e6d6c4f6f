// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/bookvibe/internal/middleware"
)

// DefaultMetricsPath is where Prometheus metrics are exposed unless configured otherwise.
const DefaultMetricsPath = "/metrics"

// RouterConfig controls the optional parts of the route table.
type RouterConfig struct {
	// MetricsEnabled mounts the Prometheus handler at MetricsPath.
	MetricsEnabled bool

	// MetricsPath defaults to DefaultMetricsPath.
	MetricsPath string
}

// Router wires handlers and middleware into a chi route tree.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	config        RouterConfig
}

// NewRouter creates a router. A nil chiMiddleware uses the defaults.
func NewRouter(handler *Handler, chiMiddleware *ChiMiddleware, cfg RouterConfig) *Router {
	if chiMiddleware == nil {
		chiMiddleware = NewChiMiddleware(nil)
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = DefaultMetricsPath
	}
	return &Router{
		handler:       handler,
		chiMiddleware: chiMiddleware,
		config:        cfg,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)        // X-Request-ID and logging context
	r.Use(chimiddleware.RealIP)        // Extract real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer)     // Recover from panics
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight
	r.Use(middleware.AccessLog(middleware.DefaultSlowRequestThreshold))

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	// ========================
	// Health Endpoints
	// ========================
	// Not rate limited so probes never see 429.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// Core API Endpoints
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(chimiddleware.Compress(5))
		r.Use(router.chiMiddleware.RateLimit())

		r.Get("/api/v1/books", router.handler.Books)
		r.Get("/api/v1/users", router.handler.Users)

		r.Route("/api/v1/recommendations", func(r chi.Router) {
			r.Get("/content/{itemID}", router.handler.ContentRecommendations)
			r.Get("/user/{userID}", router.handler.UserRecommendations)
			r.Get("/hybrid", router.handler.HybridRecommendations)
			r.Get("/status", router.handler.Status)
			r.Post("/reload", router.handler.Reload)
		})
	})

	// ========================
	// Metrics
	// ========================
	if router.config.MetricsEnabled {
		r.Handle(router.config.MetricsPath, promhttp.Handler())
	}

	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
}
