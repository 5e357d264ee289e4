// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package reranking

import (
	"context"
	"strings"
	"testing"

	"github.com/tomtom215/minirec/internal/recommend"
)

// pairSim scores two items 1.0 when they share a prefix before '-'.
type pairSim struct{}

func (pairSim) Similarity(a, b string) float64 {
	pa, _, _ := strings.Cut(a, "-")
	pb, _, _ := strings.Cut(b, "-")
	if pa == pb {
		return 1
	}
	return 0
}

func TestNewMMR(t *testing.T) {
	tests := []struct {
		name       string
		lambda     float64
		wantLambda float64
	}{
		{"normal value", 0.7, 0.7},
		{"zero value", 0.0, 0.0},
		{"one value", 1.0, 1.0},
		{"negative clamped to zero", -0.5, 0.0},
		{"above one clamped to one", 1.5, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mmr := NewMMR(tt.lambda, pairSim{})
			if mmr.lambda != tt.wantLambda {
				t.Errorf("lambda = %f, want %f", mmr.lambda, tt.wantLambda)
			}
		})
	}
}

func TestMMR_Name(t *testing.T) {
	if got := NewMMR(0.7, nil).Name(); got != "mmr" {
		t.Errorf("Name() = %q, want %q", got, "mmr")
	}
}

func TestMMR_RerankLength(t *testing.T) {
	items := []recommend.ScoredItem{
		{ItemID: "action-1", Score: 1.0},
		{ItemID: "action-2", Score: 0.9},
		{ItemID: "comedy-1", Score: 0.85},
		{ItemID: "action-3", Score: 0.8},
		{ItemID: "drama-1", Score: 0.75},
		{ItemID: "comedy-2", Score: 0.7},
	}

	tests := []struct {
		name    string
		lambda  float64
		k       int
		wantLen int
	}{
		{"pure relevance", 1.0, 3, 3},
		{"balanced", 0.7, 3, 3},
		{"pure diversity", 0.0, 3, 3},
		{"k larger than items", 0.7, 10, 6},
		{"k zero returns input", 0.7, 0, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewMMR(tt.lambda, pairSim{}).Rerank(context.Background(), items, tt.k)
			if len(result) != tt.wantLen {
				t.Errorf("len(result) = %d, want %d", len(result), tt.wantLen)
			}
		})
	}
}

func TestMMR_RerankDiversityEffect(t *testing.T) {
	items := []recommend.ScoredItem{
		{ItemID: "action-1", Score: 1.0},
		{ItemID: "action-2", Score: 0.95},
		{ItemID: "action-3", Score: 0.9},
		{ItemID: "comedy-1", Score: 0.5},
		{ItemID: "drama-1", Score: 0.4},
	}

	t.Run("pure relevance keeps score order", func(t *testing.T) {
		result := NewMMR(1.0, pairSim{}).Rerank(context.Background(), items, 3)
		for i, want := range []string{"action-1", "action-2", "action-3"} {
			if result[i].ItemID != want {
				t.Errorf("result[%d] = %s, want %s", i, result[i].ItemID, want)
			}
		}
	})

	t.Run("low lambda promotes diversity", func(t *testing.T) {
		result := NewMMR(0.3, pairSim{}).Rerank(context.Background(), items, 3)

		if result[0].ItemID != "action-1" {
			t.Errorf("first pick = %s, want action-1", result[0].ItemID)
		}
		groups := make(map[string]bool)
		for _, it := range result {
			g, _, _ := strings.Cut(it.ItemID, "-")
			groups[g] = true
		}
		if len(groups) != 3 {
			t.Errorf("expected 3 distinct groups, got %v", groups)
		}
	})

	t.Run("nil similarity truncates", func(t *testing.T) {
		result := NewMMR(0.3, nil).Rerank(context.Background(), items, 2)
		if len(result) != 2 || result[1].ItemID != "action-2" {
			t.Errorf("result = %+v", result)
		}
	})
}

func TestMMR_RerankEmptyInput(t *testing.T) {
	mmr := NewMMR(0.7, pairSim{})

	if result := mmr.Rerank(context.Background(), nil, 5); len(result) != 0 {
		t.Errorf("expected empty result for nil input, got %d items", len(result))
	}
	if result := mmr.Rerank(context.Background(), []recommend.ScoredItem{}, 5); len(result) != 0 {
		t.Errorf("expected empty result for empty slice, got %d items", len(result))
	}
}

func TestMMR_RerankWithMatrix(t *testing.T) {
	m, err := recommend.ReadSimilarityMatrix(strings.NewReader("a\tb:0.9,c:0.1\n"))
	if err != nil {
		t.Fatalf("ReadSimilarityMatrix() error = %v", err)
	}
	items := []recommend.ScoredItem{
		{ItemID: "a", Score: 1.0},
		{ItemID: "b", Score: 0.9},
		{ItemID: "c", Score: 0.8},
	}

	result := NewMMR(0.5, m).Rerank(context.Background(), items, 2)
	if result[0].ItemID != "a" || result[1].ItemID != "c" {
		t.Errorf("result = %s,%s; want a,c", result[0].ItemID, result[1].ItemID)
	}
}
