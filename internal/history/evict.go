// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package history

import "strings"

// Delimiter separates item identifiers inside a history line.
const Delimiter = ','

// trimHead drops whole items from the head of base so that appending an
// incoming payload of the given length stays within capacity.
//
// The number of bytes that must go is erase = len(base)+incoming-capacity.
// The cut is made through the first delimiter at or after offset erase, so the
// removed prefix is a whole number of items and at least erase bytes long.
// When no such delimiter exists the base is cleared.
//
// The joining delimiter is counted when deciding whether to evict: a base and
// payload that add up to exactly capacity would otherwise produce a line of
// capacity+1 bytes.
//
// It returns the remaining base and the number of bytes removed.
func trimHead(base string, incoming, capacity int) (string, int) {
	combined := len(base) + incoming

	joined := combined
	if base != "" {
		joined++
	}
	if joined <= capacity {
		return base, 0
	}

	erase := max(combined-capacity, 0)
	if erase >= len(base) {
		return "", len(base)
	}

	p := strings.IndexByte(base[erase:], Delimiter)
	if p < 0 {
		return "", len(base)
	}

	cut := erase + p + 1
	return base[cut:], cut
}

// appendItems returns base extended with items as its newest tail.
func appendItems(base, items string) string {
	if base == "" {
		return items
	}

	var b strings.Builder
	b.Grow(len(base) + 1 + len(items))
	b.WriteString(base)
	b.WriteByte(Delimiter)
	b.WriteString(items)
	return b.String()
}

// Items splits a history line into its item identifiers, oldest first.
// An empty line has no items.
func Items(line string) []string {
	if line == "" {
		return nil
	}
	return strings.Split(line, string(Delimiter))
}
