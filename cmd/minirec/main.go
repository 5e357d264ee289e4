// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/minirec/internal/config"
	"github.com/tomtom215/minirec/internal/logging"
)

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().
		Int("capacity_bytes", cfg.History.CapacityBytes).
		Float64("update_qps", cfg.Workload.UpdateQPS).
		Int("candidate_num", cfg.Recommend.CandidateNum).
		Bool("http_enabled", cfg.Server.Enabled).
		Msg("Starting minirec")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	report, err := run(ctx, cfg)
	if err != nil {
		cancel()
		logging.Fatal().Err(err).Msg("Simulation failed")
	}

	if err := report.Write(os.Stdout); err != nil {
		logging.Error().Err(err).Msg("Failed to write run report")
	}
	logging.Info().Msg("Simulation finished")
}
