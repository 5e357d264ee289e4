// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/minirec/internal/validation"
)

// Config is the full process configuration.
type Config struct {
	History    HistoryConfig    `koanf:"history"`
	Data       DataConfig       `koanf:"data"`
	Workload   WorkloadConfig   `koanf:"workload"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Server     ServerConfig     `koanf:"server"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// HistoryConfig configures the exposure history store.
type HistoryConfig struct {
	// CapacityBytes is the per-user history budget.
	// Default: 40 KiB
	CapacityBytes int `koanf:"capacity_bytes" validate:"gt=0"`

	// WriteDelay stands in for the remote write made under the store lock.
	// Default: 1ms
	WriteDelay time.Duration `koanf:"write_delay" validate:"gte=0"`

	// SeedItems is how many random items each loaded user starts with.
	// Default: 100
	SeedItems int `koanf:"seed_items" validate:"gt=0"`

	SeedMin int64 `koanf:"seed_min" validate:"gte=0"`
	SeedMax int64 `koanf:"seed_max" validate:"gte=0"`

	// Seed fixes the random source; 0 seeds from the clock.
	Seed int64 `koanf:"seed"`
}

// DataConfig holds input file paths.
type DataConfig struct {
	Users      string `koanf:"users" validate:"required"`
	Items      string `koanf:"items" validate:"required"`
	Updates    string `koanf:"updates" validate:"required"`
	Similarity string `koanf:"similarity" validate:"required"`
	Queries    string `koanf:"queries" validate:"required"`
}

// WorkloadConfig configures the load driver.
type WorkloadConfig struct {
	// UpdateQPS paces the index updater. 0 disables pacing.
	// Default: 10
	UpdateQPS float64 `koanf:"update_qps" validate:"gte=0"`
}

// RecommendConfig configures the recommender.
type RecommendConfig struct {
	CandidateNum   int     `koanf:"candidate_num" validate:"gt=0"`
	ResultSize     int     `koanf:"result_size" validate:"gt=0"`
	RecentWindow   int     `koanf:"recent_window" validate:"gte=0"`
	MMRLambda      float64 `koanf:"mmr_lambda" validate:"gte=0,lte=1"`
	ExposureFilter string  `koanf:"exposure_filter" validate:"oneof=exact bloom"`
	BloomFPRate    float64 `koanf:"bloom_fp_rate" validate:"gt=0,lt=1"`
}

// ServerConfig configures the observability HTTP endpoint.
type ServerConfig struct {
	Enabled           bool          `koanf:"enabled"`
	Addr              string        `koanf:"addr" validate:"required,hostname_port"`
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gte=0"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout" validate:"gte=0"`
}

// SupervisorConfig mirrors supervisor.TreeConfig.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold" validate:"gte=0"`
	FailureDecay     float64       `koanf:"failure_decay" validate:"gte=0"`
	FailureBackoff   time.Duration `koanf:"failure_backoff" validate:"gte=0"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout" validate:"gte=0"`
}

// LoggingConfig configures zerolog.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`

	// Format is json or console.
	// Default: json
	Format string `koanf:"format" validate:"oneof=json console"`

	Caller bool `koanf:"caller"`
}

// Validate checks struct rules and cross-field constraints.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}
	if c.History.SeedMin > c.History.SeedMax {
		return fmt.Errorf("history.seed_min (%d) must not exceed history.seed_max (%d)",
			c.History.SeedMin, c.History.SeedMax)
	}
	if c.Recommend.ResultSize > c.Recommend.CandidateNum {
		return fmt.Errorf("recommend.result_size (%d) must not exceed recommend.candidate_num (%d)",
			c.Recommend.ResultSize, c.Recommend.CandidateNum)
	}
	return nil
}
