// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package history

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tomtom215/minirec/internal/metrics"
)

// maxRecordBytes bounds a single line of the users file. Lines carry a full
// embedding after the user ID, so the scanner default of 64 KiB is too small.
const maxRecordBytes = 16 << 20

var (
	// ErrSourceUnavailable is returned by Init when the users file cannot be opened.
	// Nothing is loaded in that case.
	ErrSourceUnavailable = errors.New("history source unavailable")

	// ErrMalformedRecord is returned when a line has fewer than two tab-separated
	// fields. Loading stops at that line; records before it stay in the store.
	ErrMalformedRecord = errors.New("malformed user record")
)

// Init bulk-loads the store from a users file. It must complete before any
// concurrent Read or Append.
//
// The outcome is logged either way. A non-nil error is not fatal: the store
// stays usable, empty or partially loaded, and the caller decides whether to go on.
func (s *Store) Init(path string) error {
	f, err := os.Open(path) //nolint:gosec // path comes from trusted configuration
	if err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("open user file failed")
		return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.logger.Warn().Err(cerr).Str("path", path).Msg("close user file failed")
		}
	}()

	_, err = s.Load(f)
	return err
}

// Load reads one user record per line from r and gives every user a freshly
// generated placeholder history, replacing any line the user already had.
// Field 0 of each tab-separated record is the user ID; the other fields are
// ignored. It returns the number of users loaded.
func (s *Store) Load(r io.Reader) (int, error) {
	gen := newSeedGenerator(s.seed)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordBytes)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { metrics.HistoryUsers.Set(float64(len(s.lines))) }()

	loaded := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++

		userID, _, ok := strings.Cut(scanner.Text(), "\t")
		if !ok {
			s.logger.Error().
				Int("line", lineNo).
				Int("loaded", loaded).
				Msg("illegal user file")
			return loaded, fmt.Errorf("%w: line %d has fewer than 2 fields", ErrMalformedRecord, lineNo)
		}

		s.lines[userID] = gen.line()
		loaded++
	}

	if err := scanner.Err(); err != nil {
		s.logger.Error().Err(err).Int("line", lineNo+1).Int("loaded", loaded).Msg("read user file failed")
		return loaded, fmt.Errorf("read user records: %w", err)
	}

	s.logger.Info().Int("users", loaded).Msg("initialized users' history")
	return loaded, nil
}
