// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// Task is a finite unit of work. Satisfied by *workload.Updater and
// *workload.QueryAgent.
type Task interface {
	Run(ctx context.Context) error
}

// WorkloadService runs a Task under supervision until it finishes.
//
// When the task returns nil, or the context is cancelled, the service marks
// itself done and asks suture not to restart it. Any other error is returned
// to suture, which restarts the task after its backoff policy.
type WorkloadService struct {
	name   string
	task   Task
	done   *sync.WaitGroup
	once   sync.Once
	logger zerolog.Logger
}

// NewWorkloadService wraps task. It adds one to done; the matching Done call
// happens when the task completes.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewWorkloadService(name string, task Task, done *sync.WaitGroup, logger zerolog.Logger) *WorkloadService {
	done.Add(1)
	return &WorkloadService{
		name:   name,
		task:   task,
		done:   done,
		logger: logger.With().Str("service", name).Logger(),
	}
}

// Serve implements suture.Service.
func (s *WorkloadService) Serve(ctx context.Context) error {
	start := time.Now()
	err := s.task.Run(ctx)

	switch {
	case ctx.Err() != nil:
		s.finish()
		return ctx.Err()
	case err != nil:
		s.logger.Warn().Err(err).Msg("workload task failed, will restart")
		return fmt.Errorf("%s: %w", s.name, err)
	default:
		s.logger.Debug().Dur("elapsed", time.Since(start)).Msg("workload task complete")
		s.finish()
		return suture.ErrDoNotRestart
	}
}

func (s *WorkloadService) finish() {
	s.once.Do(s.done.Done)
}

// String returns the service name for suture events.
func (s *WorkloadService) String() string {
	return s.name
}
