// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/minirec/internal/history"
	"github.com/tomtom215/minirec/internal/logging"
)

// Handler serves the observability endpoints.
type Handler struct {
	store     StatsSource
	workload  WorkloadSource
	startTime time.Time
}

// HealthResponse is the /healthz body.
type HealthResponse struct {
	Status string  `json:"status"`
	Uptime float64 `json:"uptime_seconds"`
}

// StatsResponse is the /stats body.
type StatsResponse struct {
	History  *history.Stats `json:"history,omitempty"`
	Requests int64          `json:"requests"`
	Failures int64          `json:"failures"`
	Time     time.Time      `json:"timestamp"`
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: time.Since(h.startTime).Seconds(),
	})
}

// Stats reports history store and request counters.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	resp := StatsResponse{Time: time.Now().UTC()}
	if h.store != nil {
		s := h.store.Stats()
		resp.History = &s
	}
	if h.workload != nil {
		resp.Requests, resp.Failures = h.workload.Counts()
	}
	respondJSON(w, r, http.StatusOK, resp)
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to write JSON response")
	}
}
