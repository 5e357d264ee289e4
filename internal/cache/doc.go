// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

/*
Package cache provides the small in-memory data structures used on the
recommendation hot path.

# Overview

  - BloomFilter: probabilistic set membership, used as the exposure filter
    for large histories. No false negatives; a false positive hides an item
    the user has not seen.
  - TopK: bounded min-heap keeping the k highest-scoring values, used by the
    embedding index for nearest-neighbour candidate selection.

Neither structure is safe for concurrent use.
*/
package cache
