// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

// Package history implements the per-user exposure history store.
//
// Each user owns one history line: item identifiers joined by ',' from oldest
// (head) to newest (tail), with no trailing delimiter. The recommender reads
// the line to avoid re-serving items and appends what it served.
//
// # Capacity
//
// Every line is bounded by a byte budget. Append evicts a contiguous prefix of
// whole items from the head before extending the tail, so a line is never cut
// in the middle of an item. The only way a line may exceed the budget is a
// single append whose payload alone is larger than the budget; the line then
// holds exactly that payload.
//
// # Thread Safety
//
// One sync.RWMutex guards the whole map. Reads share it for the lookup only.
// Append holds it exclusively for the whole operation, including the fixed
// delay that models persisting the line to a remote store, so appends for all
// users are serialized. This serialization point is part of the store's
// observable behavior and is kept on purpose.
//
// # Usage
//
//	store := history.NewStore(history.DefaultConfig(), logger)
//	if err := store.Init("data/users"); err != nil {
//	    logger.Warn().Err(err).Msg("history init failed, continuing")
//	}
//	store.SetCapacity(40 << 10)
//
//	line := store.Read("u1")
//	store.Append("u1", "1001,1002,1003")
package history
