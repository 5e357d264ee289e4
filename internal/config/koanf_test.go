// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate points CONFIG_PATH at a missing file so a stray config.yaml in the
// package directory cannot leak into the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "absent.yaml"))
}

func TestLoadWithKoanfDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.History.CapacityBytes != 40<<10 {
		t.Errorf("CapacityBytes = %d, want %d", cfg.History.CapacityBytes, 40<<10)
	}
	if cfg.History.WriteDelay != time.Millisecond {
		t.Errorf("WriteDelay = %v, want 1ms", cfg.History.WriteDelay)
	}
	if cfg.Workload.UpdateQPS != 10 {
		t.Errorf("UpdateQPS = %v, want 10", cfg.Workload.UpdateQPS)
	}
	if cfg.Recommend.CandidateNum != 512 {
		t.Errorf("CandidateNum = %d, want 512", cfg.Recommend.CandidateNum)
	}
	if cfg.Data.Queries != "data/querys" {
		t.Errorf("Queries = %q, want data/querys", cfg.Data.Queries)
	}
	if cfg.Server.Enabled {
		t.Error("HTTP endpoint should be disabled by default")
	}
}

func TestLoadWithKoanfFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
history:
  capacity_bytes: 2048
  write_delay: 5ms
workload:
  update_qps: 50
recommend:
  exposure_filter: bloom
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("UPDATE_QPS", "25")
	t.Setenv("HTTP_ENABLED", "true")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.History.CapacityBytes != 2048 {
		t.Errorf("CapacityBytes = %d, want 2048 from file", cfg.History.CapacityBytes)
	}
	if cfg.History.WriteDelay != 5*time.Millisecond {
		t.Errorf("WriteDelay = %v, want 5ms from file", cfg.History.WriteDelay)
	}
	if cfg.Workload.UpdateQPS != 25 {
		t.Errorf("UpdateQPS = %v, want 25 from env", cfg.Workload.UpdateQPS)
	}
	if cfg.Recommend.ExposureFilter != "bloom" {
		t.Errorf("ExposureFilter = %q, want bloom", cfg.Recommend.ExposureFilter)
	}
	if !cfg.Server.Enabled {
		t.Error("HTTP_ENABLED=true should enable the endpoint")
	}
	if cfg.Server.RateLimitWindow != 30*time.Second {
		t.Errorf("RateLimitWindow = %v, want 30s", cfg.Server.RateLimitWindow)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}
	// Untouched keys keep their defaults.
	if cfg.Recommend.ResultSize != 10 {
		t.Errorf("ResultSize = %d, want default 10", cfg.Recommend.ResultSize)
	}
}

func TestLoadWithKoanfEnvCapacity(t *testing.T) {
	isolate(t)
	t.Setenv("HISTORY_CAPACITY_BYTES", "64")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.History.CapacityBytes != 64 {
		t.Errorf("CapacityBytes = %d, want 64", cfg.History.CapacityBytes)
	}
}

func TestLoadWithKoanfInvalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"zero capacity", map[string]string{"HISTORY_CAPACITY_BYTES": "0"}, "history.capacity_bytes"},
		{"bad filter", map[string]string{"EXPOSURE_FILTER": "cuckoo"}, "recommend.exposure_filter"},
		{"bad level", map[string]string{"LOG_LEVEL": "loud"}, "logging.level"},
		{"negative qps", map[string]string{"UPDATE_QPS": "-1"}, "workload.update_qps"},
		{"result exceeds candidates", map[string]string{"RESULT_SIZE": "20", "CANDIDATE_NUM": "10"}, "result_size"},
		{"bad addr", map[string]string{"HTTP_ADDR": "not an address"}, "server.addr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatal("LoadWithKoanf() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadWithKoanfBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("history: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	if _, err := LoadWithKoanf(); err == nil {
		t.Error("LoadWithKoanf() should fail on malformed YAML")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"HISTORY_CAPACITY_BYTES", "history.capacity_bytes"},
		{"UPDATE_QPS", "workload.update_qps"},
		{"LOG_LEVEL", "logging.level"},
		{"QUERIES_FILE", "data.queries"},
		{"PATH", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.key); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
