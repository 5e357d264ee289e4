// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package workload

import (
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/minirec/internal/history"
)

// Report summarizes a finished run.
type Report struct {
	Started         time.Time     `json:"started"`
	ElapsedMS       int64         `json:"elapsed_ms"`
	Agents          int           `json:"agents"`
	Queries         int64         `json:"queries"`
	Failures        int64         `json:"failures"`
	UpdatesApplied  int64         `json:"updates_applied"`
	UpdatesRejected int64         `json:"updates_rejected"`
	History         history.Stats `json:"history"`
}

// NewReport collects counters from the updater and agents. Either may be nil
// or empty when that part of the workload did not run.
func NewReport(started time.Time, u *Updater, agents []*QueryAgent, h history.Stats) Report {
	r := Report{
		Started:   started.UTC(),
		ElapsedMS: time.Since(started).Milliseconds(),
		Agents:    len(agents),
		History:   h,
	}
	if u != nil {
		r.UpdatesApplied, r.UpdatesRejected = u.Counts()
	}
	for _, a := range agents {
		served, failed := a.Counts()
		r.Queries += served + failed
		r.Failures += failed
	}
	return r
}

// Write renders the report as indented JSON.
func (r *Report) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
