// Package topk selects the k highest-scoring entries from a set of
// (id, score) pairs using a binary max-heap.
package topk

import (
	"container/heap"
	"errors"
	"fmt"
)

// ErrInvalidK is returned when k is outside [1, N-1].
var ErrInvalidK = errors.New("invalid top-k parameter")

// Pair is one scored entry.
type Pair struct {
	ID    int
	Score int
}

// before reports whether a ranks ahead of b: higher score first, lower id on ties.
func before(a, b Pair) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.ID < b.ID
}

// pairHeap is a max-heap under before.
type pairHeap []Pair

func (h pairHeap) Len() int           { return len(h) }
func (h pairHeap) Less(i, j int) bool { return before(h[i], h[j]) }
func (h pairHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *pairHeap) Push(x any) {
	*h = append(*h, x.(Pair))
}

func (h *pairHeap) Pop() any {
	old := *h
	n := len(old)
	p := old[n-1]
	*h = old[:n-1]
	return p
}

// ValidateK checks 1 <= k <= n-1.
func ValidateK(k, n int) error {
	if k < 1 || k > n-1 {
		return fmt.Errorf("%w: k=%d must be between 1 and %d", ErrInvalidK, k, n-1)
	}
	return nil
}

// Select returns the top k pairs ordered by score descending, then id
// ascending. pairs is not modified. k is checked before any work is done, so
// an invalid k yields no partial result.
func Select(pairs []Pair, k int) ([]Pair, error) {
	if err := ValidateK(k, len(pairs)); err != nil {
		return nil, err
	}

	h := make(pairHeap, len(pairs))
	copy(h, pairs)
	heap.Init(&h)

	top := make([]Pair, 0, k)
	for range k {
		top = append(top, heap.Pop(&h).(Pair))
	}
	return top, nil
}
