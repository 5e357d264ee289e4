// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

/*
Package metrics provides Prometheus instrumentation for the serving pipeline.

Collectors are registered with the default registry through promauto and are
exposed by the optional observability endpoint (see internal/api):

	curl http://127.0.0.1:9090/metrics

# Available Metrics

History store:
  - history_reads_total: Read calls (counter)
    Labels: result (hit, miss)
  - history_appends_total: Append calls (counter)
    Labels: result (applied, empty)
  - history_append_duration_seconds: Wall time of an applied append, lock wait
    and simulated remote write included (histogram)
  - history_evictions_total: Appends that removed items from the head (counter)
  - history_evicted_bytes_total: Bytes dropped by eviction (counter)
  - history_oversize_items_total: Appends whose single new line exceeded capacity (counter)
  - history_users: Records held by the store (gauge)

Index:
  - index_items: Items in the catalog (gauge)
  - index_updates_total: Update lines processed (counter)
    Labels: result (applied, rejected)

Recommender:
  - recommend_duration_seconds: End-to-end latency of Recommend (histogram)
  - recommend_requests_total: Requests (counter)
    Labels: result (ok, empty, error)
  - recommend_served_items_total: Items returned to callers (counter)
  - recommend_filtered_items_total: Candidates dropped by the exposure filter (counter)

Workload:
  - updater_lag_seconds: How far the updater is behind its schedule (gauge)

API:
  - api_requests_total: Endpoint requests (counter)
    Labels: method, route, status
  - api_request_duration_seconds: Endpoint latency (histogram)
    Labels: method, route
  - api_active_requests: In-flight requests (gauge)
*/
package metrics
