// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package history

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// seedGenerator fabricates placeholder history lines for bulk loading.
// Its output is not part of any contract; only the shape is.
type seedGenerator struct {
	rng   *rand.Rand
	items int
	lo    int64
	span  int64
}

func newSeedGenerator(cfg Config) *seedGenerator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	lo, hi := cfg.SeedMin, cfg.SeedMax
	if hi < lo {
		lo, hi = hi, lo
	}

	return &seedGenerator{
		rng:   rand.New(rand.NewSource(seed)), //nolint:gosec // placeholder data, not security sensitive
		items: cfg.SeedItems,
		lo:    lo,
		span:  hi - lo + 1,
	}
}

// line returns items uniformly drawn identifiers joined by Delimiter.
func (g *seedGenerator) line() string {
	var b strings.Builder
	b.Grow(g.items * 11)

	for i := 0; i < g.items; i++ {
		if i > 0 {
			b.WriteByte(Delimiter)
		}
		b.WriteString(strconv.FormatInt(g.lo+g.rng.Int63n(g.span), 10))
	}
	return b.String()
}
