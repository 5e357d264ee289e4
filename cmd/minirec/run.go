// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/minirec/internal/api"
	"github.com/tomtom215/minirec/internal/config"
	"github.com/tomtom215/minirec/internal/history"
	"github.com/tomtom215/minirec/internal/index"
	"github.com/tomtom215/minirec/internal/logging"
	"github.com/tomtom215/minirec/internal/recommend"
	"github.com/tomtom215/minirec/internal/recommend/reranking"
	"github.com/tomtom215/minirec/internal/supervisor"
	"github.com/tomtom215/minirec/internal/supervisor/services"
	"github.com/tomtom215/minirec/internal/workload"
)

// run wires every component, drives the workload to completion and returns
// the run report. Only index and similarity load failures are fatal.
func run(ctx context.Context, cfg *config.Config) (*workload.Report, error) {
	started := time.Now()
	logger := logging.Logger()

	idx := index.New(logger)
	if err := idx.LoadUserEmbeddings(cfg.Data.Users); err != nil {
		return nil, fmt.Errorf("load user embeddings from file failed: %w", err)
	}
	if err := idx.LoadItems(cfg.Data.Items); err != nil {
		return nil, fmt.Errorf("load items from file failed: %w", err)
	}

	store := history.NewStore(historyConfig(&cfg.History), logger)
	if err := store.Init(cfg.Data.Users); err != nil {
		logging.Warn().Err(err).Int("users", store.Len()).Msg("History init incomplete, continuing")
	}
	store.SetCapacity(cfg.History.CapacityBytes)

	rec, err := recommend.New(recommendConfig(&cfg.Recommend), logger)
	if err != nil {
		return nil, err
	}
	if err := rec.LoadSimilarityMatrix(cfg.Data.Similarity); err != nil {
		return nil, fmt.Errorf("load similarity matrix from file failed: %w", err)
	}
	rec.SetIndex(idx)
	rec.SetHistory(store)
	rec.SetCandidateNum(cfg.Recommend.CandidateNum)
	rec.SetReranker(reranking.NewMMR(cfg.Recommend.MMRLambda, rec.Similarity()))

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: cfg.Supervisor.FailureThreshold,
		FailureDecay:     cfg.Supervisor.FailureDecay,
		FailureBackoff:   cfg.Supervisor.FailureBackoff,
		ShutdownTimeout:  cfg.Supervisor.ShutdownTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create supervisor tree: %w", err)
	}

	var done sync.WaitGroup

	updater := workload.NewUpdater(idx, cfg.Data.Updates, cfg.Workload.UpdateQPS, logger)
	tree.AddWorkloadService(services.NewWorkloadService("index-updater", updater, &done, logger))

	agents := startAgents(tree, rec, cfg.Data.Queries, &done)

	if cfg.Server.Enabled {
		router := api.NewRouter(api.RouterConfig{
			RateLimitRequests: cfg.Server.RateLimitRequests,
			RateLimitWindow:   cfg.Server.RateLimitWindow,
		}, store, rec)
		server := services.NewHTTPServer(cfg.Server.Addr, router)
		tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
		logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")
	}

	treeCtx, stop := context.WithCancel(ctx)
	defer stop()
	errCh := tree.ServeBackground(treeCtx)

	finished := make(chan struct{})
	go func() {
		done.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		logging.Info().Int("agents", len(agents)).Msg("Workload complete")
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, stopping workload")
	case err := <-errCh:
		return nil, fmt.Errorf("supervisor tree stopped early: %w", err)
	}

	stop()
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor shutdown error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	report := workload.NewReport(started, updater, agents, store.Stats())
	return &report, nil
}

// startAgents adds one query agent per queries line. A missing queries file
// is logged and the run proceeds with the updater alone.
func startAgents(tree *supervisor.SupervisorTree, rec *recommend.Recommender, path string, done *sync.WaitGroup) []*workload.QueryAgent {
	queries, err := workload.LoadQueries(path)
	if err != nil {
		logging.Error().Err(err).Str("path", path).Msg("open querys file failed")
		return nil
	}

	logger := logging.Logger()
	agents := make([]*workload.QueryAgent, 0, len(queries))
	for i, users := range queries {
		agent := workload.NewQueryAgent(i, rec, users, logger)
		agents = append(agents, agent)
		tree.AddWorkloadService(services.NewWorkloadService(agent.Name(), agent, done, logger))
	}
	logging.Info().Int("agents", len(agents)).Msg("Query agents added")
	return agents
}

func historyConfig(c *config.HistoryConfig) history.Config {
	return history.Config{
		CapacityBytes: c.CapacityBytes,
		WriteDelay:    c.WriteDelay,
		SeedItems:     c.SeedItems,
		SeedMin:       c.SeedMin,
		SeedMax:       c.SeedMax,
		Seed:          c.Seed,
	}
}

func recommendConfig(c *config.RecommendConfig) *recommend.Config {
	return &recommend.Config{
		CandidateNum:   c.CandidateNum,
		ResultSize:     c.ResultSize,
		RecentWindow:   c.RecentWindow,
		MMRLambda:      c.MMRLambda,
		ExposureFilter: c.ExposureFilter,
		BloomFPRate:    c.BloomFPRate,
	}
}
