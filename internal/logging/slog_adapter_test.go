// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestSlogHandlerWritesThroughZerolog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(NewTestLogger(&buf)))

	logger.Warn("service failed",
		slog.String("service", "query-agent-0"),
		slog.Int("restarts", 2),
		slog.Duration("backoff", 15*time.Second),
	)

	output := buf.String()
	for _, want := range []string{
		`"level":"warn"`,
		`"service":"query-agent-0"`,
		`"restarts":2`,
		`"message":"service failed"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output: %s", want, output)
		}
	}
}

func TestSlogHandlerGroupsAndAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(NewTestLogger(&buf))).
		With(slog.String("tree", "minirec")).
		WithGroup("event")

	logger.Info("stop", slog.String("name", "updater"))

	output := buf.String()
	if !strings.Contains(output, `"tree":"minirec"`) || strings.Contains(output, `"event.tree"`) {
		t.Errorf("expected tree attr, got: %s", output)
	}
	if !strings.Contains(output, `"event.name":"updater"`) {
		t.Errorf("expected grouped key, got: %s", output)
	}
}

func TestToZerologLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   slog.Level
		want string
	}{
		{slog.LevelDebug, "debug"},
		{slog.LevelInfo, "info"},
		{slog.LevelWarn, "warn"},
		{slog.LevelError, "error"},
	}
	for _, tt := range tests {
		if got := toZerologLevel(tt.in).String(); got != tt.want {
			t.Errorf("toZerologLevel(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
