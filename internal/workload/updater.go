// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package workload

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/minirec/internal/metrics"
)

// ItemAdder applies one index update line. Satisfied by *index.Index.
type ItemAdder interface {
	AddItem(line string) error
}

// Updater replays the updates file into the index at a fixed rate.
type Updater struct {
	adder   ItemAdder
	path    string
	qps     float64
	limiter *rate.Limiter
	logger  zerolog.Logger

	applied  atomic.Int64
	rejected atomic.Int64
}

// NewUpdater creates an updater reading path at qps lines per second.
// A non-positive qps disables pacing.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewUpdater(adder ItemAdder, path string, qps float64, logger zerolog.Logger) *Updater {
	limit := rate.Inf
	if qps > 0 {
		limit = rate.Limit(qps)
	}
	return &Updater{
		adder:   adder,
		path:    path,
		qps:     qps,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger.With().Str("component", "updater").Logger(),
	}
}

// Run replays the updates file until it is exhausted or ctx is done.
// A missing file is logged and treated as an empty update stream.
func (u *Updater) Run(ctx context.Context) error {
	f, err := os.Open(u.path) //nolint:gosec // path comes from trusted configuration
	if err != nil {
		u.logger.Error().Err(err).Str("path", u.path).Msg("open updates file failed")
		return nil
	}
	defer func() { _ = f.Close() }()

	return u.Feed(ctx, f)
}

// Feed replays update lines from r. Lines the index rejects are logged and
// skipped. It returns ctx.Err() if cancelled before r is exhausted.
func (u *Updater) Feed(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	start := time.Now()
	var n int64
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		if err := u.limiter.Wait(ctx); err != nil {
			// Wait fails early when the next slot lies past the deadline.
			<-ctx.Done()
			return ctx.Err()
		}
		n++
		u.recordLag(start, n)

		if err := u.adder.AddItem(line); err != nil {
			u.rejected.Add(1)
			u.logger.Warn().Err(err).Int64("line", n).Msg("add item line failed")
			continue
		}
		u.applied.Add(1)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read updates: %w", err)
	}

	applied, rejected := u.Counts()
	u.logger.Info().
		Int64("applied", applied).
		Int64("rejected", rejected).
		Dur("elapsed", time.Since(start)).
		Msg("updater exit")
	return nil
}

// recordLag publishes how far the n-th update trails its scheduled time.
func (u *Updater) recordLag(start time.Time, n int64) {
	if u.qps <= 0 {
		return
	}
	scheduled := start.Add(time.Duration(float64(n-1) / u.qps * float64(time.Second)))
	lag := max(time.Since(scheduled), 0)
	metrics.UpdaterLag.Set(lag.Seconds())
}

// Counts returns the number of applied and rejected update lines.
func (u *Updater) Counts() (applied, rejected int64) {
	return u.applied.Load(), u.rejected.Load()
}
