// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

// Package index holds user and item embeddings and answers nearest-neighbour
// candidate queries for the recommender.
//
// # File Format
//
// Users, items and streamed updates share one line format:
//
//	<id>\t<f1>,<f2>,...,<fn>
//
// All vectors must have the same dimension; the first vector loaded fixes it.
//
// # Thread Safety
//
// Search takes a shared lock; AddItem takes the exclusive lock, so catalog
// updates from the updater interleave with queries without tearing a vector.
package index
