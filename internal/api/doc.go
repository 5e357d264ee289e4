// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

// Package api exposes the simulator's observability endpoints over HTTP.
//
// Routes:
//
//	GET /healthz   liveness, always 200 while the process runs
//	GET /stats     JSON snapshot of history store and workload counters
//	GET /metrics   Prometheus exposition
//
// All routes share a per-IP rate limit (go-chi/httprate) and carry a request
// ID in the logging context.
package api
