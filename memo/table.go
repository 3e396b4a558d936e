package memo

import (
	"github.com/on-the-ground/deferred_go/deferred"
)

// Table memoizes a fallible unary computation per key, with bounded size.
type Table[K comparable, V any] struct {
	generations [2]map[K]*deferred.Cell[V]
	headIdx     int
	maxSize     int
	compute     func(K) (V, error)
}

// NewTable returns a table that caches up to maxSize entries per generation.
func NewTable[K comparable, V any](maxSize int, compute func(K) (V, error)) *Table[K, V] {
	if maxSize <= 0 {
		panic("memo: maxSize should be greater than 0")
	}
	if compute == nil {
		panic("memo: nil compute function")
	}
	return &Table[K, V]{
		generations: [2]map[K]*deferred.Cell[V]{{}, {}},
		maxSize:     maxSize,
		compute:     compute,
	}
}

// Get returns the cached value for key, computing it on first use. A failed
// computation is not cached: the error is returned and the next Get for the
// same key invokes the computation again.
func (t *Table[K, V]) Get(key K) (V, error) {
	cell, ok := t.lookup(key)
	if !ok {
		cell = deferred.NewRetryable(func() (V, error) {
			return t.compute(key)
		})
		t.insert(key, cell)
	}
	return cell.TryCall()
}

// Forget drops the entry for key, if any. The next Get recomputes it.
func (t *Table[K, V]) Forget(key K) {
	delete(t.generations[0], key)
	delete(t.generations[1], key)
}

// Len returns the number of entries currently held, across both generations.
func (t *Table[K, V]) Len() int {
	return len(t.generations[0]) + len(t.generations[1])
}

func (t *Table[K, V]) lookup(key K) (*deferred.Cell[V], bool) {
	if c, ok := t.generations[t.headIdx][key]; ok {
		return c, true
	}
	c, ok := t.generations[1-t.headIdx][key]
	return c, ok
}

// insert places the cell in the head generation, rotating generations when
// the head is full. Rotation discards the previous tail.
func (t *Table[K, V]) insert(key K, c *deferred.Cell[V]) {
	if len(t.generations[t.headIdx]) >= t.maxSize {
		t.headIdx = 1 - t.headIdx
		t.generations[t.headIdx] = make(map[K]*deferred.Cell[V], t.maxSize)
	}
	t.generations[t.headIdx][key] = c
}

// Memoize wraps a fallible unary function with a bounded memo table.
//
// The returned function is not safe for concurrent use.
func Memoize[K comparable, V any](fn func(K) (V, error), maxSize int) func(K) (V, error) {
	return NewTable(maxSize, fn).Get
}
