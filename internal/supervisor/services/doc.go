// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

/*
Package services provides suture.Service wrappers for BookVibe components.

Each wrapper implements the suture.Service interface and identifies itself
through fmt.Stringer:

	type Service interface {
	    Serve(ctx context.Context) error
	}

# Available Services

HTTP Server (HTTPServerService):
  - Binds the listener inside Serve so bind failures are restarted with backoff
  - Graceful shutdown with a drain timeout
  - Addr and Ready expose the bound address

Snapshot Reload (ReloadService):
  - Loads the first snapshot on startup
  - Reloads on a fixed interval and on Trigger
  - Throttles reloads with a token bucket; throttled requests are deferred
  - Keeps the previous snapshot serving when a reload fails

The data file watcher lives in the catalog package and is supervised
directly; it calls ReloadService.Trigger.

# Shutdown

Every service returns ctx.Err() after a graceful stop so suture does not
count the shutdown as a failure.
*/
package services
