// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package reranking

import (
	"context"

	"github.com/tomtom215/minirec/internal/recommend"
)

// maxRerankSize limits slice allocations; k is also bounded by len(items).
const maxRerankSize = 10000

// Similarity scores a pair of items. *recommend.SimilarityMatrix satisfies it.
type Similarity interface {
	Similarity(a, b string) float64
}

// MMR implements Maximal Marginal Relevance reranking.
// It iteratively selects items that are both relevant and dissimilar to
// already selected items:
//
//	MMR = argmax[lambda * score(i) - (1-lambda) * max(sim(i, s)) for s in selected]
//
// Reference:
// Carbonell, J., & Goldstein, J. (1998). "The Use of MMR, Diversity-Based
// Reranking for Reordering Documents and Producing Summaries." SIGIR 1998.
type MMR struct {
	lambda float64
	sim    Similarity
}

// NewMMR creates a new MMR reranker. Lambda is clamped to [0, 1]; a nil
// similarity source treats every pair as unrelated.
func NewMMR(lambda float64, sim Similarity) *MMR {
	if lambda < 0 {
		lambda = 0
	}
	if lambda > 1 {
		lambda = 1
	}
	return &MMR{lambda: lambda, sim: sim}
}

// Name returns the reranker identifier.
func (m *MMR) Name() string {
	return "mmr"
}

// Rerank applies greedy MMR selection and returns at most k items.
func (m *MMR) Rerank(ctx context.Context, items []recommend.ScoredItem, k int) []recommend.ScoredItem {
	if len(items) == 0 || k <= 0 {
		return items
	}

	k = min(k, maxRerankSize, len(items))

	if m.lambda >= 1.0 || m.sim == nil {
		return items[:k]
	}

	// maxSim[i] tracks the highest similarity of item i to anything selected.
	maxSim := make([]float64, len(items))
	taken := make([]bool, len(items))
	selected := make([]recommend.ScoredItem, 0, k)

	for len(selected) < k {
		if ctx.Err() != nil {
			break
		}

		bestIdx := -1
		var bestMMR float64
		for i := range items {
			if taken[i] {
				continue
			}
			score := m.lambda*items[i].Score - (1-m.lambda)*maxSim[i]
			if bestIdx < 0 || score > bestMMR {
				bestMMR = score
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}

		taken[bestIdx] = true
		pick := items[bestIdx]
		selected = append(selected, pick)

		for i := range items {
			if taken[i] {
				continue
			}
			if s := m.sim.Similarity(items[i].ItemID, pick.ItemID); s > maxSim[i] {
				maxSim[i] = s
			}
		}
	}

	return selected
}

// Ensure MMR implements the interface.
var _ recommend.Reranker = (*MMR)(nil)
