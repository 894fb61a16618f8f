// SPDX-License-Identifier: MIT
// File: index.go
// Role: per-neuron incident-synapse lists for one side (pre or post) of a
//       synapse set.
// Determinism:
//   - Each list holds synapse ids in append order; the builder appends in
//     creation order, so every list is strictly ascending.
// Concurrency:
//   - Not safe for concurrent mutation; readers must not overlap a Connect.

// Package adjacency maintains the neuron → synapse-id lists that simulation
// kernels use to propagate events from a neuron to its synapses.
//
// One Index covers a contiguous range of global neuron ids
// [Offset, Offset+Size). Lists are growable.Slice values with geometric
// growth and are allocated lazily on the first append, so neurons without
// synapses cost one nil pointer. Trim releases the growth slack after a
// build; contents and order are the same as with exact-size growth.
//
// Mark/Rollback give the builder a consistent prefix on failure: Mark starts
// a new epoch, every Append records its neuron in a bitset, and Rollback(limit)
// removes ids ≥ limit from exactly those neurons.
package adjacency

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/synaptic/growable"
)

// ErrInvalidPopulationIndex indicates a neuron id outside the index range,
// or a range that does not fit the int32 id space.
var ErrInvalidPopulationIndex = errors.New("adjacency: neuron index out of range")

// Index is the adjacency list set for one side of a synapse set.
type Index struct {
	offset  int
	lists   []*growable.Slice
	budget  *growable.Budget
	total   int
	touched *bitset.BitSet
}

// New returns an empty Index for neurons [offset, offset+size).
// Storage is charged to budget (nil = unlimited).
// Complexity: O(size) time and space for the list table.
func New(size, offset int, budget *growable.Budget) (*Index, error) {
	if size < 0 || offset < 0 || int64(offset)+int64(size) > math.MaxInt32 {
		return nil, fmt.Errorf("adjacency.New: size=%d offset=%d: %w", size, offset, ErrInvalidPopulationIndex)
	}

	return &Index{
		offset:  offset,
		lists:   make([]*growable.Slice, size),
		budget:  budget,
		touched: bitset.New(uint(size)),
	}, nil
}

// Size returns the number of neurons covered.
func (x *Index) Size() int { return len(x.lists) }

// Offset returns the global id of the first neuron.
func (x *Index) Offset() int { return x.offset }

// Total returns the number of ids stored across all lists.
func (x *Index) Total() int { return x.total }

// Contains reports whether neuron lies inside the index range.
func (x *Index) Contains(neuron int) bool {
	return neuron >= x.offset && neuron-x.offset < len(x.lists)
}

// CheckRange verifies that the whole range [first, first+count) is covered.
// It lets callers validate a population once instead of per pair.
func (x *Index) CheckRange(first, count int) error {
	if count == 0 {
		return nil
	}
	if count < 0 || !x.Contains(first) || !x.Contains(first+count-1) {
		return fmt.Errorf("adjacency: range [%d,%d) outside [%d,%d): %w",
			first, first+count, x.offset, x.offset+len(x.lists), ErrInvalidPopulationIndex)
	}
	return nil
}

// Append adds id to neuron's list.
// Complexity: O(1) amortized.
func (x *Index) Append(neuron int, id int32) error {
	if !x.Contains(neuron) {
		return fmt.Errorf("adjacency.Append: neuron=%d not in [%d,%d): %w",
			neuron, x.offset, x.offset+len(x.lists), ErrInvalidPopulationIndex)
	}
	local := neuron - x.offset
	l := x.lists[local]
	if l == nil {
		l = growable.NewSlice(x.budget)
		x.lists[local] = l
	}
	if err := l.Append(id); err != nil {
		return fmt.Errorf("adjacency.Append: neuron=%d: %w", neuron, err)
	}
	x.total++
	x.touched.Set(uint(local))

	return nil
}

// List returns neuron's ids without copying (nil when empty or out of
// range). The view is invalidated by the next Append to the same neuron.
func (x *Index) List(neuron int) []int32 {
	if !x.Contains(neuron) {
		return nil
	}
	if l := x.lists[neuron-x.offset]; l != nil {
		return l.View()
	}
	return nil
}

// Degree returns the length of neuron's list.
func (x *Index) Degree(neuron int) int {
	return len(x.List(neuron))
}

// All yields (neuron, list) for every covered neuron in ascending order,
// including neurons with empty lists.
func (x *Index) All() iter.Seq2[int, []int32] {
	return func(yield func(int, []int32) bool) {
		for local, l := range x.lists {
			var ids []int32
			if l != nil {
				ids = l.View()
			}
			if !yield(local+x.offset, ids) {
				return
			}
		}
	}
}

// Mark starts a new epoch: the set of touched neurons is cleared.
func (x *Index) Mark() {
	x.touched.ClearAll()
}

// Rollback removes every id ≥ limit from the neurons touched since Mark and
// returns how many ids were dropped. Because lists are ascending, only list
// tails are inspected.
func (x *Index) Rollback(limit int32) int {
	dropped := 0
	for local, ok := x.touched.NextSet(0); ok; local, ok = x.touched.NextSet(local + 1) {
		l := x.lists[local]
		ids := l.View()
		keep := len(ids)
		for keep > 0 && ids[keep-1] >= limit {
			keep--
		}
		if keep < len(ids) {
			// keep is within [0, Len()], Truncate cannot fail.
			_ = l.Truncate(keep)
			dropped += len(ids) - keep
		}
	}
	x.total -= dropped
	x.touched.ClearAll()

	return dropped
}

// Trim shrinks every list to its exact length.
// Complexity: O(Size + Total).
func (x *Index) Trim() {
	for _, l := range x.lists {
		if l != nil {
			l.Trim()
		}
	}
}

// Release frees all list storage and returns it to the budget.
func (x *Index) Release() {
	for i, l := range x.lists {
		if l != nil {
			l.Release()
			x.lists[i] = nil
		}
	}
	x.total = 0
	x.touched.ClearAll()
}
