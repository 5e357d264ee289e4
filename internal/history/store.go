// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package history

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/minirec/internal/metrics"
)

// Config contains the history store settings.
type Config struct {
	// CapacityBytes is the maximum serialized length of one user's history line.
	// Default: 40 KiB.
	CapacityBytes int

	// WriteDelay is the simulated latency of persisting an updated line to a
	// remote store. It is spent while the exclusive lock is held.
	// Zero disables the delay. Default: 1ms.
	WriteDelay time.Duration

	// SeedItems is the number of placeholder items generated per user by Init.
	// Default: 100.
	SeedItems int

	// SeedMin and SeedMax bound the generated placeholder identifiers (inclusive).
	// Default: 1,000,000,000 and 2,000,000,000.
	SeedMin int64
	SeedMax int64

	// Seed makes placeholder generation reproducible. Zero uses a time-based seed.
	Seed int64
}

// DefaultConfig returns the settings used by the simulator.
func DefaultConfig() Config {
	return Config{
		CapacityBytes: 40 << 10,
		WriteDelay:    time.Millisecond,
		SeedItems:     100,
		SeedMin:       1_000_000_000,
		SeedMax:       2_000_000_000,
	}
}

// Stats is a point-in-time snapshot of store activity.
type Stats struct {
	Users        int   `json:"users"`
	Reads        int64 `json:"reads"`
	Appends      int64 `json:"appends"`
	Evictions    int64 `json:"evictions"`
	EvictedBytes int64 `json:"evicted_bytes"`
}

// Store maps user IDs to history lines. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	lines    map[string]string
	capacity int

	writeDelay time.Duration
	seed       Config
	logger     zerolog.Logger

	reads        atomic.Int64
	appends      atomic.Int64
	evictions    atomic.Int64
	evictedBytes atomic.Int64
}

// NewStore creates an empty store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStore(cfg Config, logger zerolog.Logger) *Store {
	defaults := DefaultConfig()
	if cfg.SeedItems <= 0 {
		cfg.SeedItems = defaults.SeedItems
	}
	if cfg.SeedMin <= 0 && cfg.SeedMax <= 0 {
		cfg.SeedMin = defaults.SeedMin
		cfg.SeedMax = defaults.SeedMax
	}
	if cfg.WriteDelay < 0 {
		cfg.WriteDelay = 0
	}

	return &Store{
		lines:      make(map[string]string),
		capacity:   cfg.CapacityBytes,
		writeDelay: cfg.WriteDelay,
		seed:       cfg,
		logger:     logger.With().Str("component", "history").Logger(),
	}
}

// SetCapacity sets the per-user byte budget. Call it before serving traffic;
// appends already in flight keep the budget they started with.
func (s *Store) SetCapacity(bytes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.capacity = bytes
}

// Capacity returns the per-user byte budget.
func (s *Store) Capacity() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.capacity
}

// Read returns the history line for userID, or "" if the user has none.
// An unknown user is not an error and no record is created for it.
func (s *Store) Read(userID string) string {
	s.mu.RLock()
	line, ok := s.lookup(userID)
	s.mu.RUnlock()

	s.reads.Add(1)
	metrics.RecordHistoryRead(ok)
	return line
}

// Append adds items as the newest entry of the user's line, evicting the
// oldest whole items first if the result would exceed capacity.
//
// An empty payload returns immediately without taking the lock. Otherwise the
// exclusive lock is held for the whole operation, including the simulated
// remote write, so appends for all users are serialized.
func (s *Store) Append(userID, items string) {
	if items == "" {
		metrics.RecordHistoryEmptyAppend()
		return
	}

	start := time.Now()
	evicted, oversize := s.apply(userID, items)

	s.appends.Add(1)
	if evicted > 0 {
		s.evictions.Add(1)
		s.evictedBytes.Add(int64(evicted))
	}
	metrics.RecordHistoryAppend(time.Since(start), evicted, oversize)
}

// apply performs the locked part of Append.
func (s *Store) apply(userID, items string) (evicted int, oversize bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	base, existed := s.lookup(userID)
	base, evicted = trimHead(base, len(items), s.capacity)
	s.lines[userID] = appendItems(base, items)
	if !existed {
		metrics.HistoryUsers.Set(float64(len(s.lines)))
	}

	oversize = len(items) > s.capacity
	if oversize {
		s.logger.Debug().
			Str("user_id", userID).
			Int("payload_bytes", len(items)).
			Int("capacity_bytes", s.capacity).
			Msg("appended payload exceeds capacity on its own")
	}

	s.remoteWrite()
	return evicted, oversize
}

// lookup is the explicit get-with-default step: the second result reports
// whether userID has a record. Callers must hold mu.
func (s *Store) lookup(userID string) (string, bool) {
	line, ok := s.lines[userID]
	if !ok {
		return "", false
	}
	return line, true
}

// remoteWrite stands in for persisting the updated line to a remote store.
// Callers must hold mu exclusively.
func (s *Store) remoteWrite() {
	if s.writeDelay > 0 {
		time.Sleep(s.writeDelay)
	}
}

// Len returns the number of users with a record.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}

// Stats returns a snapshot of store activity.
func (s *Store) Stats() Stats {
	return Stats{
		Users:        s.Len(),
		Reads:        s.reads.Load(),
		Appends:      s.appends.Load(),
		Evictions:    s.evictions.Load(),
		EvictedBytes: s.evictedBytes.Load(),
	}
}
