// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package recommend

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrMalformedSimilarity is returned for similarity lines that do not parse.
var ErrMalformedSimilarity = errors.New("malformed similarity line")

// SimilarityMatrix holds sparse item-to-item similarity scores.
// It is read-only after loading and safe for concurrent lookups.
type SimilarityMatrix struct {
	scores map[string]map[string]float64
	pairs  int
}

// NewSimilarityMatrix returns an empty matrix.
func NewSimilarityMatrix() *SimilarityMatrix {
	return &SimilarityMatrix{scores: make(map[string]map[string]float64)}
}

// ReadSimilarityMatrix parses lines of the form
//
//	item_id \t other:score,other:score,...
//
// Blank lines are skipped. An item with no neighbours may omit the tab.
func ReadSimilarityMatrix(r io.Reader) (*SimilarityMatrix, error) {
	m := NewSimilarityMatrix()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if err := m.parseLine(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read similarity: %w", err)
	}
	return m, nil
}

func (m *SimilarityMatrix) parseLine(line string) error {
	item, rest, _ := strings.Cut(line, "\t")
	if item == "" {
		return fmt.Errorf("%w: empty item id", ErrMalformedSimilarity)
	}
	if rest == "" {
		return nil
	}
	for _, pair := range strings.Split(rest, ",") {
		other, raw, ok := strings.Cut(pair, ":")
		if !ok || other == "" {
			return fmt.Errorf("%w: bad pair %q", ErrMalformedSimilarity, pair)
		}
		score, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%w: bad score %q", ErrMalformedSimilarity, raw)
		}
		m.set(item, other, score)
	}
	return nil
}

func (m *SimilarityMatrix) set(a, b string, score float64) {
	row, ok := m.scores[a]
	if !ok {
		row = make(map[string]float64)
		m.scores[a] = row
	}
	if _, exists := row[b]; !exists {
		m.pairs++
	}
	row[b] = score
}

// Similarity returns the score between a and b, looked up in both directions.
// Unknown pairs score 0.
func (m *SimilarityMatrix) Similarity(a, b string) float64 {
	if m == nil {
		return 0
	}
	if s, ok := m.scores[a][b]; ok {
		return s
	}
	return m.scores[b][a]
}

// MeanSimilarity is the average similarity of item against anchors.
func (m *SimilarityMatrix) MeanSimilarity(item string, anchors []string) float64 {
	if len(anchors) == 0 {
		return 0
	}
	var sum float64
	for _, a := range anchors {
		sum += m.Similarity(item, a)
	}
	return sum / float64(len(anchors))
}

// Items returns the number of items with at least one neighbour.
func (m *SimilarityMatrix) Items() int {
	return len(m.scores)
}

// Pairs returns the number of stored directed pairs.
func (m *SimilarityMatrix) Pairs() int {
	return m.pairs
}

func loadSimilarityFile(path string) (*SimilarityMatrix, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from trusted configuration
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ReadSimilarityMatrix(f)
}
