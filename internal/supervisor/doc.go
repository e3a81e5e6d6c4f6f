// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

/*
Package supervisor provides process supervision for BookVibe using suture v4.

# Overview

The supervisor tree organizes long-running services into two layers:

	RootSupervisor ("bookvibe")
	├── DataSupervisor ("data-layer")
	│   ├── ReloadService
	│   └── Watcher (if data.watch is enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A watcher that keeps failing (for example because the data directory was
removed) backs off inside the data layer while the API keeps answering from
the last published snapshot.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}

	tree.AddDataService(reloadSvc)
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	errCh := tree.ServeBackground(ctx)

# Configuration

Default values match suture's defaults:
  - FailureThreshold: 5 failures
  - FailureDecay: 30 seconds
  - FailureBackoff: 15 seconds
  - ShutdownTimeout: 10 seconds

# Service Interface

All services implement suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Return nil to stop without restart, an error to be restarted, and return
promptly when the context is canceled.

# What Is NOT Supervised

The recommendation engine itself is a plain value. It owns no goroutines;
builds run inside whichever service calls Engine.Load.

# Debugging Shutdown Issues

	report, err := tree.UnstoppedServiceReport()
	for _, svc := range report {
	    log.Printf("Service didn't stop: %v", svc)
	}
*/
package supervisor
