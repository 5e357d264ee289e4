// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Collectors are package-global, so assertions compare deltas rather than absolute values.

func TestRecordHistoryRead(t *testing.T) {
	hitsBefore := testutil.ToFloat64(HistoryReads.WithLabelValues("hit"))
	missesBefore := testutil.ToFloat64(HistoryReads.WithLabelValues("miss"))

	RecordHistoryRead(true)
	RecordHistoryRead(true)
	RecordHistoryRead(false)

	if got := testutil.ToFloat64(HistoryReads.WithLabelValues("hit")) - hitsBefore; got != 2 {
		t.Errorf("hit delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(HistoryReads.WithLabelValues("miss")) - missesBefore; got != 1 {
		t.Errorf("miss delta = %v, want 1", got)
	}
}

func TestRecordHistoryAppend(t *testing.T) {
	tests := []struct {
		name          string
		evictedBytes  int
		oversize      bool
		wantEvictions float64
		wantBytes     float64
		wantOversize  float64
	}{
		{name: "no eviction", evictedBytes: 0},
		{name: "evicted prefix", evictedBytes: 5, wantEvictions: 1, wantBytes: 5},
		{name: "oversize single item", evictedBytes: 8, oversize: true, wantEvictions: 1, wantBytes: 8, wantOversize: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			applied := testutil.ToFloat64(HistoryAppends.WithLabelValues("applied"))
			evictions := testutil.ToFloat64(HistoryEvictions)
			evicted := testutil.ToFloat64(HistoryEvictedBytes)
			oversize := testutil.ToFloat64(HistoryOversizeItems)

			RecordHistoryAppend(time.Millisecond, tt.evictedBytes, tt.oversize)

			if got := testutil.ToFloat64(HistoryAppends.WithLabelValues("applied")) - applied; got != 1 {
				t.Errorf("applied delta = %v, want 1", got)
			}
			if got := testutil.ToFloat64(HistoryEvictions) - evictions; got != tt.wantEvictions {
				t.Errorf("evictions delta = %v, want %v", got, tt.wantEvictions)
			}
			if got := testutil.ToFloat64(HistoryEvictedBytes) - evicted; got != tt.wantBytes {
				t.Errorf("evicted bytes delta = %v, want %v", got, tt.wantBytes)
			}
			if got := testutil.ToFloat64(HistoryOversizeItems) - oversize; got != tt.wantOversize {
				t.Errorf("oversize delta = %v, want %v", got, tt.wantOversize)
			}
		})
	}
}

func TestRecordHistoryEmptyAppend(t *testing.T) {
	before := testutil.ToFloat64(HistoryAppends.WithLabelValues("empty"))
	RecordHistoryEmptyAppend()
	if got := testutil.ToFloat64(HistoryAppends.WithLabelValues("empty")) - before; got != 1 {
		t.Errorf("empty delta = %v, want 1", got)
	}
}

func TestRecordIndexUpdate(t *testing.T) {
	applied := testutil.ToFloat64(IndexUpdates.WithLabelValues("applied"))
	rejected := testutil.ToFloat64(IndexUpdates.WithLabelValues("rejected"))

	RecordIndexUpdate(nil)
	RecordIndexUpdate(errors.New("bad vector"))

	if got := testutil.ToFloat64(IndexUpdates.WithLabelValues("applied")) - applied; got != 1 {
		t.Errorf("applied delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(IndexUpdates.WithLabelValues("rejected")) - rejected; got != 1 {
		t.Errorf("rejected delta = %v, want 1", got)
	}
}

func TestRecordRecommend(t *testing.T) {
	tests := []struct {
		name     string
		served   int
		filtered int
		err      error
		label    string
	}{
		{name: "served items", served: 10, filtered: 3, label: "ok"},
		{name: "nothing to serve", served: 0, filtered: 7, label: "empty"},
		{name: "failed request", err: errors.New("unknown user"), label: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requests := testutil.ToFloat64(RecommendRequests.WithLabelValues(tt.label))
			served := testutil.ToFloat64(RecommendServedItems)
			filtered := testutil.ToFloat64(RecommendFilteredItems)

			RecordRecommend(2*time.Millisecond, tt.served, tt.filtered, tt.err)

			if got := testutil.ToFloat64(RecommendRequests.WithLabelValues(tt.label)) - requests; got != 1 {
				t.Errorf("%s delta = %v, want 1", tt.label, got)
			}
			wantServed := float64(tt.served)
			if tt.err != nil {
				wantServed = 0
			}
			if got := testutil.ToFloat64(RecommendServedItems) - served; got != wantServed {
				t.Errorf("served delta = %v, want %v", got, wantServed)
			}
			if got := testutil.ToFloat64(RecommendFilteredItems) - filtered; got != float64(tt.filtered) {
				t.Errorf("filtered delta = %v, want %v", got, tt.filtered)
			}
		})
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/stats", "200"))

	RecordAPIRequest("GET", "/stats", "200", 3*time.Millisecond)

	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/stats", "200")) - before; got != 1 {
		t.Errorf("requests delta = %v, want 1", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests) - before; got != 2 {
		t.Errorf("active delta = %v, want 2", got)
	}

	TrackActiveRequest(false)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests) - before; got != 0 {
		t.Errorf("active delta after finish = %v, want 0", got)
	}
}
