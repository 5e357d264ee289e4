// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/minirec/internal/history"
)

// StatsSource reports store activity. Satisfied by *history.Store.
type StatsSource interface {
	Stats() history.Stats
}

// WorkloadSource reports request counters. Satisfied by *recommend.Recommender.
type WorkloadSource interface {
	Counts() (requests, failures int64)
}

// RouterConfig configures NewRouter.
type RouterConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// NewRouter builds the observability router. Either source may be nil.
func NewRouter(cfg RouterConfig, store StatsSource, workload WorkloadSource) http.Handler {
	h := &Handler{
		store:     store,
		workload:  workload,
		startTime: time.Now(),
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(RequestIDWithLogging())
	r.Use(PrometheusMetrics)
	r.Use(RateLimitByIP(cfg.RateLimitRequests, cfg.RateLimitWindow))

	r.Get("/healthz", h.Health)
	r.Get("/stats", h.Stats)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
