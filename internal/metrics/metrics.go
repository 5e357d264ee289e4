// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// History Store Metrics
	HistoryReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_reads_total",
			Help: "Total number of history reads",
		},
		[]string{"result"}, // "hit", "miss"
	)

	HistoryAppends = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_appends_total",
			Help: "Total number of history appends",
		},
		[]string{"result"}, // "applied", "empty"
	)

	HistoryAppendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "history_append_duration_seconds",
			Help:    "Duration of applied history appends in seconds, including lock wait and remote write",
			Buckets: []float64{0.001, 0.002, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	HistoryEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "history_evictions_total",
			Help: "Total number of appends that evicted items from the head of a history line",
		},
	)

	HistoryEvictedBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "history_evicted_bytes_total",
			Help: "Total number of bytes removed from history lines by eviction",
		},
	)

	HistoryOversizeItems = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "history_oversize_items_total",
			Help: "Total number of appends whose new items alone exceeded the capacity",
		},
	)

	HistoryUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "history_users",
			Help: "Current number of users held by the history store",
		},
	)

	// Index Metrics
	IndexItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "index_items",
			Help: "Current number of items in the embedding index",
		},
	)

	IndexUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "index_updates_total",
			Help: "Total number of index update lines processed",
		},
		[]string{"result"}, // "applied", "rejected"
	)

	// Recommender Metrics
	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"result"}, // "ok", "empty", "error"
	)

	RecommendServedItems = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_served_items_total",
			Help: "Total number of items returned by the recommender",
		},
	)

	RecommendFilteredItems = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_filtered_items_total",
			Help: "Total number of candidates dropped because the user was already exposed to them",
		},
	)

	// Workload Metrics
	UpdaterLag = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "updater_lag_seconds",
			Help: "Delay of the index updater behind its configured schedule",
		},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of observability endpoint requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Observability endpoint request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of in-flight observability endpoint requests",
		},
	)
)

// RecordHistoryRead records a history read. found is false for unknown users.
func RecordHistoryRead(found bool) {
	if found {
		HistoryReads.WithLabelValues("hit").Inc()
		return
	}
	HistoryReads.WithLabelValues("miss").Inc()
}

// RecordHistoryEmptyAppend records an append that was a no-op because it carried no items.
func RecordHistoryEmptyAppend() {
	HistoryAppends.WithLabelValues("empty").Inc()
}

// RecordHistoryAppend records an applied append. evictedBytes is zero when
// nothing was removed from the head of the line.
func RecordHistoryAppend(duration time.Duration, evictedBytes int, oversize bool) {
	HistoryAppends.WithLabelValues("applied").Inc()
	HistoryAppendDuration.Observe(duration.Seconds())
	if evictedBytes > 0 {
		HistoryEvictions.Inc()
		HistoryEvictedBytes.Add(float64(evictedBytes))
	}
	if oversize {
		HistoryOversizeItems.Inc()
	}
}

// RecordIndexUpdate records the outcome of one index update line.
func RecordIndexUpdate(err error) {
	if err != nil {
		IndexUpdates.WithLabelValues("rejected").Inc()
		return
	}
	IndexUpdates.WithLabelValues("applied").Inc()
}

// RecordRecommend records a finished recommendation request.
func RecordRecommend(duration time.Duration, served, filtered int, err error) {
	RecommendDuration.Observe(duration.Seconds())
	RecommendFilteredItems.Add(float64(filtered))

	switch {
	case err != nil:
		RecommendRequests.WithLabelValues("error").Inc()
	case served == 0:
		RecommendRequests.WithLabelValues("empty").Inc()
	default:
		RecommendRequests.WithLabelValues("ok").Inc()
		RecommendServedItems.Add(float64(served))
	}
}

// RecordAPIRequest records a finished HTTP request. route is the matched route
// pattern, not the raw path.
func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight request gauge.
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
