// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config files searched, first match wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		History: HistoryConfig{
			CapacityBytes: 40 << 10,
			WriteDelay:    time.Millisecond,
			SeedItems:     100,
			SeedMin:       1_000_000_000,
			SeedMax:       2_000_000_000,
			Seed:          0,
		},
		Data: DataConfig{
			Users:      "data/users",
			Items:      "data/items",
			Updates:    "data/updates",
			Similarity: "data/similarity",
			Queries:    "data/querys",
		},
		Workload: WorkloadConfig{
			UpdateQPS: 10,
		},
		Recommend: RecommendConfig{
			CandidateNum:   512,
			ResultSize:     10,
			RecentWindow:   20,
			MMRLambda:      0.7,
			ExposureFilter: "exact",
			BloomFPRate:    0.01,
		},
		Server: ServerConfig{
			Enabled:           false,
			Addr:              "127.0.0.1:9090",
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			ShutdownTimeout:   10 * time.Second,
		},
		Supervisor: SupervisorConfig{
			FailureThreshold: 5,
			FailureDecay:     30,
			FailureBackoff:   15 * time.Second,
			ShutdownTimeout:  10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads defaults, then the optional config file, then
// environment variables, and validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// HISTORY_CAPACITY_BYTES -> history.capacity_bytes
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

var envMappings = map[string]string{
	// History store
	"history_capacity_bytes": "history.capacity_bytes",
	"history_write_delay":    "history.write_delay",
	"history_seed_items":     "history.seed_items",
	"history_seed_min":       "history.seed_min",
	"history_seed_max":       "history.seed_max",
	"history_seed":           "history.seed",

	// Data files
	"users_file":      "data.users",
	"items_file":      "data.items",
	"updates_file":    "data.updates",
	"similarity_file": "data.similarity",
	"queries_file":    "data.queries",

	"update_qps": "workload.update_qps",

	// Recommender
	"candidate_num":   "recommend.candidate_num",
	"result_size":     "recommend.result_size",
	"recent_window":   "recommend.recent_window",
	"mmr_lambda":      "recommend.mmr_lambda",
	"exposure_filter": "recommend.exposure_filter",
	"bloom_fp_rate":   "recommend.bloom_fp_rate",

	// HTTP endpoint
	"http_enabled":          "server.enabled",
	"http_addr":             "server.addr",
	"rate_limit_requests":   "server.rate_limit_requests",
	"rate_limit_window":     "server.rate_limit_window",
	"http_shutdown_timeout": "server.shutdown_timeout",

	// Supervisor
	"supervisor_failure_threshold": "supervisor.failure_threshold",
	"supervisor_failure_decay":     "supervisor.failure_decay",
	"supervisor_failure_backoff":   "supervisor.failure_backoff",
	"supervisor_shutdown_timeout":  "supervisor.shutdown_timeout",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps known environment variables to koanf paths.
// Unmapped variables return "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
