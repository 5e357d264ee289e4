// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

// Package recommend implements the similarity re-ranking recommender.
//
// # Pipeline
//
// For each request the Recommender:
//
//  1. Reads the user's exposure history from the history store
//  2. Builds an exposure filter over it (exact set or Bloom filter)
//  3. Pulls CandidateNum nearest items from the embedding index
//  4. Drops candidates the user has already been shown
//  5. Scores the rest: index score plus mean item-item similarity against the
//     most recent RecentWindow history items
//  6. Applies the registered Reranker (MMR in production) to ResultSize items
//  7. Appends the served items to the history as one ','-joined payload
//
// # Thread Safety
//
// Recommend is safe for concurrent use once the collaborators and the
// similarity matrix are set. Setters are meant for startup and are not
// synchronized with in-flight requests.
//
// # Usage
//
//	rec, err := recommend.New(recommend.DefaultConfig(), logger)
//	rec.SetIndex(idx)
//	rec.SetHistory(store)
//	rec.SetCandidateNum(512)
//	if err := rec.LoadSimilarityMatrix("data/similarity"); err != nil { ... }
//	rec.SetReranker(reranking.NewMMR(cfg.MMRLambda, rec.Similarity()))
//
//	items, err := rec.Recommend(ctx, "u42")
package recommend
