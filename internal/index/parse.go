// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package index

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const maxLineBytes = 16 << 20

// parseLine splits "<id>\t<f1>,<f2>,..." into its ID and vector.
func parseLine(line string) (string, []float32, error) {
	id, rest, ok := strings.Cut(line, "\t")
	if !ok || id == "" {
		return "", nil, fmt.Errorf("%w: expected <id>\\t<vector>", ErrMalformedLine)
	}
	// IDs end up in ','-joined history lines.
	if strings.IndexByte(id, ',') >= 0 {
		return "", nil, fmt.Errorf("%w: id %q contains ','", ErrMalformedLine, id)
	}

	// Extra tab-separated fields after the vector are ignored.
	if i := strings.IndexByte(rest, '\t'); i >= 0 {
		rest = rest[:i]
	}
	if rest == "" {
		return "", nil, fmt.Errorf("%w: empty vector for %q", ErrMalformedLine, id)
	}

	parts := strings.Split(rest, ",")
	vec := make([]float32, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return "", nil, fmt.Errorf("%w: component %d of %q: %w", ErrMalformedLine, i, id, err)
		}
		vec[i] = float32(f)
	}
	return id, vec, nil
}

// scanLines calls fn for every line of r, stopping at the first error.
func scanLines(r io.Reader, fn func(lineNo int, line string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := fn(lineNo, scanner.Text()); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return scanner.Err()
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
