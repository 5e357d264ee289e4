// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package index

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/minirec/internal/cache"
	"github.com/tomtom215/minirec/internal/metrics"
)

var (
	// ErrUnknownUser is returned by Search for a user without an embedding.
	ErrUnknownUser = errors.New("unknown user")

	// ErrMalformedLine is returned for lines that do not parse as <id>\t<vector>.
	ErrMalformedLine = errors.New("malformed embedding line")

	// ErrDimensionMismatch is returned when a vector's length differs from the index dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

// Candidate is an item returned by Search with its inner-product score.
type Candidate struct {
	ItemID string
	Score  float64
}

// Index stores embeddings. It is safe for concurrent use.
type Index struct {
	mu    sync.RWMutex
	users map[string][]float32
	items map[string][]float32
	dim   int

	logger zerolog.Logger
}

// New creates an empty index.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(logger zerolog.Logger) *Index {
	return &Index{
		users:  make(map[string][]float32),
		items:  make(map[string][]float32),
		logger: logger.With().Str("component", "index").Logger(),
	}
}

// LoadUserEmbeddings loads user vectors from path.
func (x *Index) LoadUserEmbeddings(path string) error {
	n, err := x.loadFile(path, x.users)
	if err != nil {
		return fmt.Errorf("load user embeddings: %w", err)
	}
	x.logger.Info().Int("users", n).Int("dim", x.Dim()).Msg("loaded user embeddings")
	return nil
}

// LoadItems loads item vectors from path.
func (x *Index) LoadItems(path string) error {
	n, err := x.loadFile(path, x.items)
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}
	metrics.IndexItems.Set(float64(x.ItemCount()))
	x.logger.Info().Int("items", n).Int("dim", x.Dim()).Msg("loaded items")
	return nil
}

func (x *Index) loadFile(path string, into map[string][]float32) (int, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from trusted configuration
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	return x.load(f, into)
}

func (x *Index) load(r io.Reader, into map[string][]float32) (int, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	n := 0
	err := scanLines(r, func(_ int, line string) error {
		id, vec, err := parseLine(line)
		if err != nil {
			return err
		}
		if err := x.checkDim(vec); err != nil {
			return err
		}
		into[id] = vec
		n++
		return nil
	})
	return n, err
}

// checkDim fixes the dimension on first use. Callers must hold mu exclusively.
func (x *Index) checkDim(vec []float32) error {
	if x.dim == 0 {
		x.dim = len(vec)
		return nil
	}
	if len(vec) != x.dim {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vec), x.dim)
	}
	return nil
}

// AddItem applies one update line, inserting or replacing an item vector.
func (x *Index) AddItem(line string) error {
	id, vec, err := parseLine(line)
	if err == nil {
		x.mu.Lock()
		err = x.checkDim(vec)
		if err == nil {
			x.items[id] = vec
			metrics.IndexItems.Set(float64(len(x.items)))
		}
		x.mu.Unlock()
	}

	metrics.RecordIndexUpdate(err)
	return err
}

// Search returns up to k items with the highest inner product against the
// user's embedding, best first.
func (x *Index) Search(userID string, k int) ([]Candidate, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	query, ok := x.users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUser, userID)
	}

	top := cache.NewTopK[string](k)
	for id, vec := range x.items {
		top.Push(id, dot(query, vec))
	}

	ranked := top.Sorted()
	out := make([]Candidate, len(ranked))
	for i, r := range ranked {
		out[i] = Candidate{ItemID: r.Value, Score: r.Score}
	}
	return out, nil
}

// ItemCount returns the number of items in the catalog.
func (x *Index) ItemCount() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.items)
}

// UserCount returns the number of users with an embedding.
func (x *Index) UserCount() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.users)
}

// Dim returns the embedding dimension, or 0 before anything is loaded.
func (x *Index) Dim() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.dim
}
