// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package recommend

import (
	"context"

	"github.com/tomtom215/minirec/internal/index"
)

// ScoredItem is a candidate item with its ranking score.
type ScoredItem struct {
	ItemID string  `json:"item_id"`
	Score  float64 `json:"score"`
}

// CandidateSource supplies nearest-neighbour candidates.
// Satisfied by *index.Index.
type CandidateSource interface {
	Search(userID string, k int) ([]index.Candidate, error)
}

// HistoryStore is the exposure history the recommender reads and extends.
// Satisfied by *history.Store.
type HistoryStore interface {
	Read(userID string) string
	Append(userID, items string)
}

// Reranker post-processes scored candidates.
type Reranker interface {
	// Name returns the reranker identifier (e.g., "mmr").
	Name() string

	// Rerank receives items sorted by score and returns up to k of them.
	Rerank(ctx context.Context, items []ScoredItem, k int) []ScoredItem
}
