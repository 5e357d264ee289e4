// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

// Package reranking implements post-processing for recommendation diversity.
//
// Rerankers operate on already-scored candidates and reorder them:
//
//	Index search -> Scoring -> Reranker -> Served list
//	(relevance)               (diversity)
//
// # Maximal Marginal Relevance (MMR)
//
//   - Balances relevance with diversity
//   - Penalizes items similar to already-selected items
//   - Lambda controls the tradeoff (1.0 = pure relevance)
//
// Pairwise similarity comes from a Similarity source, in production the
// item-to-item matrix loaded by the recommender.
package reranking
