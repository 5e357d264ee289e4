// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

// Package workload drives the simulator: an index Updater replaying item
// updates at a fixed rate, and QueryAgents issuing recommendation requests
// for their lists of users.
//
// Updates file: one item per line in the index update format.
// Queries file: one agent per line, user ids separated by tabs.
//
// A Report summarizes a finished run and renders as JSON.
package workload
