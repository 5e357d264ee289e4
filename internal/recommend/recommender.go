// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/minirec/internal/history"
	"github.com/tomtom215/minirec/internal/logging"
	"github.com/tomtom215/minirec/internal/metrics"
)

var (
	// ErrNotReady is returned by Recommend before the index or history store is set.
	ErrNotReady = errors.New("recommender not ready")
)

// Recommender serves recommendations from an index and an exposure history.
type Recommender struct {
	config *Config
	logger zerolog.Logger

	index    CandidateSource
	history  HistoryStore
	sim      *SimilarityMatrix
	reranker Reranker

	candidateNum atomic.Int64

	requests atomic.Int64
	failures atomic.Int64
}

// New creates a recommender. A nil cfg selects DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg *Config, logger zerolog.Logger) (*Recommender, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	r := &Recommender{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		sim:    NewSimilarityMatrix(),
	}
	r.candidateNum.Store(int64(cfg.CandidateNum))
	return r, nil
}

// SetIndex sets the candidate source.
func (r *Recommender) SetIndex(idx CandidateSource) {
	r.index = idx
}

// SetHistory sets the exposure history store.
func (r *Recommender) SetHistory(h HistoryStore) {
	r.history = h
}

// SetCandidateNum overrides the number of index candidates per request.
// Values below the result size are raised to it.
func (r *Recommender) SetCandidateNum(n int) {
	n = max(n, r.config.ResultSize)
	r.candidateNum.Store(int64(n))
}

// CandidateNum returns the current candidate count.
func (r *Recommender) CandidateNum() int {
	return int(r.candidateNum.Load())
}

// SetReranker installs the post-scoring reranker. Nil means plain truncation.
func (r *Recommender) SetReranker(rr Reranker) {
	r.reranker = rr
}

// LoadSimilarityMatrix loads item-to-item scores from path.
func (r *Recommender) LoadSimilarityMatrix(path string) error {
	m, err := loadSimilarityFile(path)
	if err != nil {
		return fmt.Errorf("load similarity matrix: %w", err)
	}
	r.sim = m
	r.logger.Info().
		Int("items", m.Items()).
		Int("pairs", m.Pairs()).
		Msg("loaded similarity matrix")
	return nil
}

// SetSimilarityMatrix installs an already parsed matrix.
func (r *Recommender) SetSimilarityMatrix(m *SimilarityMatrix) {
	if m == nil {
		m = NewSimilarityMatrix()
	}
	r.sim = m
}

// Similarity returns the loaded matrix.
func (r *Recommender) Similarity() *SimilarityMatrix {
	return r.sim
}

// Recommend returns up to ResultSize unseen items for userID and records
// them in the user's exposure history.
func (r *Recommender) Recommend(ctx context.Context, userID string) ([]string, error) {
	start := time.Now()
	r.requests.Add(1)

	ids, filtered, err := r.recommend(ctx, userID)
	metrics.RecordRecommend(time.Since(start), len(ids), filtered, err)
	if err != nil {
		r.failures.Add(1)
		return nil, err
	}
	return ids, nil
}

func (r *Recommender) recommend(ctx context.Context, userID string) ([]string, int, error) {
	if r.index == nil || r.history == nil {
		return nil, 0, ErrNotReady
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	seen := history.Items(r.history.Read(userID))
	exposure := newExposureFilter(r.config.ExposureFilter, r.config.BloomFPRate, seen)

	candidates, err := r.index.Search(userID, r.CandidateNum())
	if err != nil {
		return nil, 0, fmt.Errorf("search candidates for %s: %w", userID, err)
	}

	anchors := seen
	if w := r.config.RecentWindow; len(anchors) > w {
		anchors = anchors[len(anchors)-w:]
	}

	scored := make([]ScoredItem, 0, len(candidates))
	filtered := 0
	for _, c := range candidates {
		if exposure.Seen(c.ItemID) {
			filtered++
			continue
		}
		scored = append(scored, ScoredItem{
			ItemID: c.ItemID,
			Score:  c.Score + r.sim.MeanSimilarity(c.ItemID, anchors),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	k := r.config.ResultSize
	if r.reranker != nil {
		scored = r.reranker.Rerank(ctx, scored, k)
	}
	if len(scored) > k {
		scored = scored[:k]
	}

	ids := make([]string, len(scored))
	for i, s := range scored {
		ids[i] = s.ItemID
	}

	// Empty payloads are a no-op in the store.
	r.history.Append(userID, strings.Join(ids, string(history.Delimiter)))

	r.logger.Debug().
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Str("user_id", userID).
		Int("candidates", len(candidates)).
		Int("filtered", filtered).
		Int("served", len(ids)).
		Msg("recommendation served")

	return ids, filtered, nil
}

// Counts returns the number of requests and failed requests so far.
func (r *Recommender) Counts() (requests, failures int64) {
	return r.requests.Load(), r.failures.Load()
}
