// Minirec - Recommendation Serving Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/minirec

package cache

import "sort"

// Scored pairs a value with its score.
type Scored[T any] struct {
	Value T
	Score float64
}

// TopK keeps the k highest-scoring values seen so far.
// The root of the underlying min-heap is the weakest value kept, so a new
// value is admitted in O(log k) only if it beats the root.
type TopK[T any] struct {
	k    int
	heap []Scored[T]
}

// NewTopK creates a TopK holding at most k values. k <= 0 keeps nothing.
func NewTopK[T any](k int) *TopK[T] {
	if k < 0 {
		k = 0
	}
	return &TopK[T]{k: k, heap: make([]Scored[T], 0, k)}
}

// Push offers a value. It reports whether the value was kept.
func (t *TopK[T]) Push(value T, score float64) bool {
	if t.k == 0 {
		return false
	}

	if len(t.heap) < t.k {
		t.heap = append(t.heap, Scored[T]{Value: value, Score: score})
		t.bubbleUp(len(t.heap) - 1)
		return true
	}

	if score <= t.heap[0].Score {
		return false
	}
	t.heap[0] = Scored[T]{Value: value, Score: score}
	t.bubbleDown(0)
	return true
}

// Len returns the number of values kept.
func (t *TopK[T]) Len() int {
	return len(t.heap)
}

// Min returns the weakest value kept. ok is false when empty.
func (t *TopK[T]) Min() (Scored[T], bool) {
	if len(t.heap) == 0 {
		return Scored[T]{}, false
	}
	return t.heap[0], true
}

// Sorted returns the kept values, highest score first. Ties keep no particular order.
func (t *TopK[T]) Sorted() []Scored[T] {
	out := make([]Scored[T], len(t.heap))
	copy(out, t.heap)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

func (t *TopK[T]) bubbleUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if t.heap[i].Score >= t.heap[parent].Score {
			break
		}
		t.heap[i], t.heap[parent] = t.heap[parent], t.heap[i]
		i = parent
	}
}

func (t *TopK[T]) bubbleDown(i int) {
	n := len(t.heap)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2

		if left < n && t.heap[left].Score < t.heap[smallest].Score {
			smallest = left
		}
		if right < n && t.heap[right].Score < t.heap[smallest].Score {
			smallest = right
		}
		if smallest == i {
			return
		}

		t.heap[i], t.heap[smallest] = t.heap[smallest], t.heap[i]
		i = smallest
	}
}
