// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

/*
Package config loads the simulator configuration.

# Configuration Sources

Sources are layered with koanf, later layers overriding earlier ones:

 1. Struct defaults (defaultConfig)
 2. Optional YAML file: $CONFIG_PATH, else config.yaml or config.yml
 3. Environment variables

# Environment Variables

History store:
  - HISTORY_CAPACITY_BYTES: per-user byte budget (default: 40960)
  - HISTORY_WRITE_DELAY: simulated remote write (default: 1ms)
  - HISTORY_SEED_ITEMS: random items per loaded user (default: 100)
  - HISTORY_SEED: random seed, 0 = time based (default: 0)

Data files:
  - USERS_FILE, ITEMS_FILE, UPDATES_FILE, SIMILARITY_FILE, QUERIES_FILE
    (defaults: data/users, data/items, data/updates, data/similarity, data/querys)

Workload and recommender:
  - UPDATE_QPS: index updates per second (default: 10)
  - CANDIDATE_NUM: index candidates per request (default: 512)
  - RESULT_SIZE: items served per request (default: 10)
  - RECENT_WINDOW: history items used as similarity anchors (default: 20)
  - MMR_LAMBDA: relevance vs. diversity (default: 0.7)
  - EXPOSURE_FILTER: exact or bloom (default: exact)
  - BLOOM_FP_RATE: Bloom filter false positive rate (default: 0.01)

HTTP endpoint:
  - HTTP_ENABLED: serve /metrics, /stats and /healthz (default: false)
  - HTTP_ADDR: listen address (default: 127.0.0.1:9090)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW (default: 100 per 1m)

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Validation

Struct rules use go-playground/validator tags through internal/validation;
cross-field rules (seed range, result size vs. candidates) are checked in
Validate.
*/
package config
