// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package recommend

import "fmt"

// Exposure filter kinds.
const (
	ExposureFilterExact = "exact"
	ExposureFilterBloom = "bloom"
)

// Config contains recommender settings.
type Config struct {
	// CandidateNum is the number of nearest items requested from the index.
	// Default: 512.
	CandidateNum int `json:"candidate_num"`

	// ResultSize is the number of items served per request.
	// Default: 10.
	ResultSize int `json:"result_size"`

	// RecentWindow is how many of the newest history items anchor the
	// similarity score. Zero disables the similarity term.
	// Default: 20.
	RecentWindow int `json:"recent_window"`

	// MMRLambda balances relevance vs. diversity for the MMR reranker.
	// 1.0 = pure relevance, 0.0 = pure diversity.
	// Default: 0.7.
	MMRLambda float64 `json:"mmr_lambda"`

	// ExposureFilter selects how already-shown items are detected: "exact" or "bloom".
	// Default: "exact".
	ExposureFilter string `json:"exposure_filter"`

	// BloomFPRate is the false positive rate of the Bloom exposure filter.
	// Default: 0.01.
	BloomFPRate float64 `json:"bloom_fp_rate"`
}

// DefaultConfig returns the settings used by the simulator.
func DefaultConfig() *Config {
	return &Config{
		CandidateNum:   512,
		ResultSize:     10,
		RecentWindow:   20,
		MMRLambda:      0.7,
		ExposureFilter: ExposureFilterExact,
		BloomFPRate:    0.01,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.CandidateNum < 1 {
		return fmt.Errorf("candidate_num must be positive, got %d", c.CandidateNum)
	}
	if c.ResultSize < 1 {
		return fmt.Errorf("result_size must be positive, got %d", c.ResultSize)
	}
	if c.ResultSize > c.CandidateNum {
		return fmt.Errorf("result_size must be <= candidate_num, got %d > %d", c.ResultSize, c.CandidateNum)
	}
	if c.RecentWindow < 0 {
		return fmt.Errorf("recent_window must be non-negative, got %d", c.RecentWindow)
	}
	if c.MMRLambda < 0 || c.MMRLambda > 1 {
		return fmt.Errorf("mmr_lambda must be in [0, 1], got %f", c.MMRLambda)
	}
	switch c.ExposureFilter {
	case ExposureFilterExact:
	case ExposureFilterBloom:
		if c.BloomFPRate <= 0 || c.BloomFPRate >= 1 {
			return fmt.Errorf("bloom_fp_rate must be in (0, 1), got %f", c.BloomFPRate)
		}
	default:
		return fmt.Errorf("exposure_filter must be %q or %q, got %q",
			ExposureFilterExact, ExposureFilterBloom, c.ExposureFilter)
	}
	return nil
}
