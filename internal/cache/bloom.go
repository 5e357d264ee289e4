// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package cache

import (
	"hash/fnv"
	"math"
	"math/bits"
)

// BloomFilter is a probabilistic data structure for set membership testing.
//
//   - Test returning false means the key was definitely never added
//   - Test returning true means the key was probably added
type BloomFilter struct {
	bits    []uint64
	size    uint64
	hashFns int
	count   int
}

// NewBloomFilter sizes a filter for expectedItems keys at the given false
// positive rate, e.g. NewBloomFilter(4000, 0.01).
func NewBloomFilter(expectedItems int, falsePositiveRate float64) *BloomFilter {
	if expectedItems <= 0 {
		expectedItems = 1
	}
	if falsePositiveRate <= 0 || falsePositiveRate >= 1 {
		falsePositiveRate = 0.01
	}

	// m = -n*ln(p)/ln(2)^2, k = m/n*ln(2)
	m := int(math.Ceil(-float64(expectedItems) * math.Log(falsePositiveRate) / (math.Ln2 * math.Ln2)))
	if m < 64 {
		m = 64
	}

	k := int(math.Round(float64(m) / float64(expectedItems) * math.Ln2))
	k = min(max(k, 1), 10)

	words := (m + 63) / 64
	return &BloomFilter{
		bits:    make([]uint64, words),
		size:    uint64(words * 64),
		hashFns: k,
	}
}

// Add records key in the filter.
func (bf *BloomFilter) Add(key string) {
	h1, h2 := bloomHashes(key)
	for i := 0; i < bf.hashFns; i++ {
		idx := (h1 + uint64(i)*h2) % bf.size
		bf.bits[idx/64] |= 1 << (idx % 64)
	}
	bf.count++
}

// Test reports whether key may have been added.
func (bf *BloomFilter) Test(key string) bool {
	h1, h2 := bloomHashes(key)
	for i := 0; i < bf.hashFns; i++ {
		idx := (h1 + uint64(i)*h2) % bf.size
		if bf.bits[idx/64]&(1<<(idx%64)) == 0 {
			return false
		}
	}
	return true
}

// Count returns the number of Add calls, duplicates included.
func (bf *BloomFilter) Count() int {
	return bf.count
}

// FillRatio returns the fraction of bits set.
func (bf *BloomFilter) FillRatio() float64 {
	set := 0
	for _, word := range bf.bits {
		set += bits.OnesCount64(word)
	}
	return float64(set) / float64(bf.size)
}

// bloomHashes returns the two base hashes for double hashing h(i) = h1 + i*h2.
func bloomHashes(key string) (uint64, uint64) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	h1 := h.Sum64()

	h = fnv.New64()
	_, _ = h.Write([]byte(key))
	_, _ = h.Write([]byte{0xff})
	h2 := h.Sum64() | 1 // odd step so probes do not collapse onto one bit

	return h1, h2
}
