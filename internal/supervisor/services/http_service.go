// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// HTTPServer is the subset of *http.Server the service drives.
type HTTPServer interface {
	Serve(l net.Listener) error
	Shutdown(ctx context.Context) error
}

// HTTPServerService runs an HTTP server under supervision.
//
// The listener is bound inside Serve, so a port conflict surfaces as a
// service failure that suture backs off from, and the bound address is
// available from Addr once the server is listening (useful with port 0).
type HTTPServerService struct {
	server          HTTPServer
	addr            string
	shutdownTimeout time.Duration
	logger          zerolog.Logger
	name            string

	mu    sync.RWMutex
	bound net.Addr
	ready chan struct{}
}

// NewHTTPServerService creates a service serving server on addr.
// shutdownTimeout bounds connection draining on shutdown.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHTTPServerService(server HTTPServer, addr string, shutdownTimeout time.Duration, logger zerolog.Logger) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPServerService{
		server:          server,
		addr:            addr,
		shutdownTimeout: shutdownTimeout,
		logger:          logger.With().Str("service", "http").Logger(),
		name:            "http-server",
		ready:           make(chan struct{}),
	}
}

// Serve implements suture.Service. It returns ctx.Err() after a graceful
// shutdown and an error if binding or serving fails.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", h.addr)
	if err != nil {
		return fmt.Errorf("http server listen on %s: %w", h.addr, err)
	}
	h.setBound(ln.Addr())
	h.logger.Info().Str("addr", ln.Addr().String()).Msg("HTTP server listening")

	errCh := make(chan error, 1)
	go func() {
		if err := h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		// The original context is already canceled.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
		defer cancel()

		h.logger.Info().Dur("timeout", h.shutdownTimeout).Msg("HTTP server shutting down")
		if err := h.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}

		<-errCh
		return ctx.Err()
	}
}

// Ready is closed once the listener is bound for the first time.
func (h *HTTPServerService) Ready() <-chan struct{} {
	return h.ready
}

// Addr reports the bound listener address, or nil before the first bind.
func (h *HTTPServerService) Addr() net.Addr {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.bound
}

func (h *HTTPServerService) setBound(addr net.Addr) {
	h.mu.Lock()
	defer h.mu.Unlock()
	first := h.bound == nil
	h.bound = addr
	if first {
		close(h.ready)
	}
}

// String implements fmt.Stringer for suture logging.
func (h *HTTPServerService) String() string {
	return h.name
}
