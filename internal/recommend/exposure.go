// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package recommend

import "github.com/tomtom215/minirec/internal/cache"

// exposureFilter reports whether an item already appears in a user's history.
type exposureFilter interface {
	Seen(itemID string) bool
}

type exactExposure map[string]struct{}

func (e exactExposure) Seen(itemID string) bool {
	_, ok := e[itemID]
	return ok
}

// bloomExposure trades a bounded false positive rate (items wrongly treated
// as seen) for a fixed memory footprint on long histories.
type bloomExposure struct {
	filter *cache.BloomFilter
}

func (b bloomExposure) Seen(itemID string) bool {
	return b.filter.Test(itemID)
}

func newExposureFilter(kind string, fpRate float64, items []string) exposureFilter {
	if kind == ExposureFilterBloom {
		bf := cache.NewBloomFilter(len(items), fpRate)
		for _, it := range items {
			bf.Add(it)
		}
		return bloomExposure{filter: bf}
	}
	set := make(exactExposure, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}
