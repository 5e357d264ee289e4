// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/minirec/internal/config"
)

func writeDataFiles(t *testing.T, files map[string]string) config.DataConfig {
	t.Helper()
	dir := t.TempDir()
	path := func(name string) string {
		p := filepath.Join(dir, name)
		if content, ok := files[name]; ok {
			if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
				t.Fatalf("write %s: %v", name, err)
			}
		}
		return p
	}
	return config.DataConfig{
		Users:      path("users"),
		Items:      path("items"),
		Updates:    path("updates"),
		Similarity: path("similarity"),
		Queries:    path("querys"),
	}
}

func testConfig(data config.DataConfig) *config.Config {
	return &config.Config{
		History: config.HistoryConfig{
			CapacityBytes: 40 << 10,
			SeedItems:     5,
			SeedMin:       1_000_000_000,
			SeedMax:       2_000_000_000,
			Seed:          7,
		},
		Data: data,
		Recommend: config.RecommendConfig{
			CandidateNum:   8,
			ResultSize:     2,
			RecentWindow:   4,
			MMRLambda:      0.7,
			ExposureFilter: "exact",
			BloomFPRate:    0.01,
		},
		Server: config.ServerConfig{Addr: "127.0.0.1:0"},
		Supervisor: config.SupervisorConfig{
			FailureBackoff:  10 * time.Millisecond,
			ShutdownTimeout: time.Second,
		},
	}
}

var fullData = map[string]string{
	"users":      "u1\t1,0\nu2\t0,1\n",
	"items":      "i1\t1,0\ni2\t0.5,0.5\ni3\t0,1\ni4\t0.2,0.8\n",
	"updates":    "i5\t1,1\nbroken\ni6\t0.9,0.1\n",
	"similarity": "i1\ti2:0.5,i3:0.1\ni2\ti4:0.3\n",
	"querys":     "u1\tu2\tu1\nu2\tghost\n",
}

func TestRun_FullWorkload(t *testing.T) {
	cfg := testConfig(writeDataFiles(t, fullData))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	report, err := run(ctx, cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if report.Agents != 2 {
		t.Errorf("Agents = %d, want 2", report.Agents)
	}
	if report.Queries != 5 {
		t.Errorf("Queries = %d, want 5", report.Queries)
	}
	// "ghost" has no embedding.
	if report.Failures != 1 {
		t.Errorf("Failures = %d, want 1", report.Failures)
	}
	if report.UpdatesApplied != 2 || report.UpdatesRejected != 1 {
		t.Errorf("updates = %d applied / %d rejected, want 2 / 1",
			report.UpdatesApplied, report.UpdatesRejected)
	}
	if report.History.Appends != 4 {
		t.Errorf("History.Appends = %d, want 4", report.History.Appends)
	}
}

func TestRun_MissingOptionalFiles(t *testing.T) {
	data := map[string]string{
		"users":      fullData["users"],
		"items":      fullData["items"],
		"similarity": fullData["similarity"],
	}
	cfg := testConfig(writeDataFiles(t, data))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	report, err := run(ctx, cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Agents != 0 || report.Queries != 0 {
		t.Errorf("report = %+v, want no agents and no queries", report)
	}
	if report.UpdatesApplied != 0 {
		t.Errorf("UpdatesApplied = %d, want 0", report.UpdatesApplied)
	}
}

func TestRun_FatalLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		drop string
	}{
		{"missing users", "users"},
		{"missing items", "items"},
		{"missing similarity", "similarity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make(map[string]string, len(fullData))
			for k, v := range fullData {
				if k != tt.drop {
					data[k] = v
				}
			}
			cfg := testConfig(writeDataFiles(t, data))

			if _, err := run(context.Background(), cfg); err == nil {
				t.Fatalf("run succeeded without %s", tt.drop)
			}
		})
	}
}
