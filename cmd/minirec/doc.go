// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

// Package main is the entry point for the minirec simulator.
//
// minirec replays a recommendation workload against an in-memory embedding
// index and a per-user exposure history store, then prints a JSON run report.
//
// # Startup Order
//
//  1. Configuration: defaults, config.yaml, environment (koanf v2)
//  2. Index: user embeddings, then item embeddings (fatal on failure)
//  3. History: bulk load from the users file, then set the byte budget
//     (failures are logged and the run continues with what was loaded)
//  4. Recommender: similarity matrix (fatal on failure), index, history, MMR
//  5. Supervisor tree: index updater, one query agent per queries line, and
//     the optional HTTP endpoint
//
// The process exits after the updater and every agent have finished, or on
// SIGINT/SIGTERM.
//
// # Data Files
//
//	data/users       user_id \t f1,f2,...,fn
//	data/items       item_id \t f1,f2,...,fn
//	data/updates     item_id \t f1,f2,...,fn   (replayed at UPDATE_QPS)
//	data/similarity  item_id \t other:score,other:score,...
//	data/querys      user_id \t user_id \t ...  (one agent per line)
//
// # Example Usage
//
//	HISTORY_CAPACITY_BYTES=4096 UPDATE_QPS=100 LOG_FORMAT=console ./minirec
//
//	HTTP_ENABLED=true HTTP_ADDR=127.0.0.1:9090 ./minirec &
//	curl -s 127.0.0.1:9090/metrics | grep history_
package main
