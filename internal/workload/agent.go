// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package workload

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/tomtom215/minirec/internal/logging"
)

// ErrQueriesUnavailable is returned when the queries file cannot be opened.
var ErrQueriesUnavailable = errors.New("queries file unavailable")

// Recommender serves one request. Satisfied by *recommend.Recommender.
type Recommender interface {
	Recommend(ctx context.Context, userID string) ([]string, error)
}

// QueryAgent issues one recommendation request per user id, in order.
type QueryAgent struct {
	id     int
	users  []string
	rec    Recommender
	logger zerolog.Logger

	served atomic.Int64
	failed atomic.Int64
}

// NewQueryAgent creates agent number id over users.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewQueryAgent(id int, rec Recommender, users []string, logger zerolog.Logger) *QueryAgent {
	return &QueryAgent{
		id:     id,
		users:  users,
		rec:    rec,
		logger: logger.With().Str("component", "query_agent").Int("agent", id).Logger(),
	}
}

// Name identifies the agent in supervisor events.
func (a *QueryAgent) Name() string {
	return fmt.Sprintf("query-agent-%d", a.id)
}

// Run issues requests for every user. Failed requests are logged and counted;
// the agent moves on to the next user. It stops early when ctx is done.
func (a *QueryAgent) Run(ctx context.Context) error {
	ctx = logging.ContextWithLogger(ctx, a.logger)
	ctx = logging.ContextWithCorrelationID(ctx, logging.GenerateCorrelationID())

	for _, userID := range a.users {
		if err := ctx.Err(); err != nil {
			return err
		}

		reqCtx := logging.ContextWithNewRequestID(ctx)
		if _, err := a.rec.Recommend(reqCtx, userID); err != nil {
			a.failed.Add(1)
			logging.Ctx(reqCtx).Warn().Err(err).Str("user_id", userID).Msg("recommend failed")
			continue
		}
		a.served.Add(1)
	}

	logging.Ctx(ctx).Info().
		Int64("served", a.served.Load()).
		Int64("failed", a.failed.Load()).
		Msg("query agent exit")
	return nil
}

// Counts returns the number of successful and failed requests.
func (a *QueryAgent) Counts() (served, failed int64) {
	return a.served.Load(), a.failed.Load()
}

// LoadQueries reads the queries file: one agent per non-empty line, user ids
// separated by tabs.
func LoadQueries(path string) ([][]string, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from trusted configuration
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueriesUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var agents [][]string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		var users []string
		for _, field := range strings.Split(line, "\t") {
			if field != "" {
				users = append(users, field)
			}
		}
		if len(users) > 0 {
			agents = append(agents, users)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read queries: %w", err)
	}
	return agents, nil
}
