// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

/*
Package supervisor runs the simulator's long-lived goroutines under suture v4.

# Overview

	RootSupervisor ("minirec")
	├── WorkloadSupervisor ("workload-layer")
	│   ├── WorkloadService("index-updater")
	│   └── WorkloadService("query-agent-N"), one per queries line
	└── APISupervisor ("api-layer")
	    └── HTTPServerService (if HTTP_ENABLED)

Workload services run to completion: once the wrapped task returns they tell
suture not to restart them and mark themselves done on a shared WaitGroup.
The API layer keeps serving until the root context is cancelled.

Supervisor events (service panics, restarts, backoff) go through sutureslog
into the zerolog-backed slog handler from internal/logging.

# Usage Example

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{})
	if err != nil {
	    return err
	}

	var done sync.WaitGroup
	tree.AddWorkloadService(services.NewWorkloadService("index-updater", updater, &done, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	errCh := tree.ServeBackground(ctx)
	done.Wait()
	cancel()
	<-errCh
*/
package supervisor
