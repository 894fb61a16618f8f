// SPDX-License-Identifier: MIT
// File: slice.go
// Role: in-memory Array with geometric growth, explicit trim and optional
//       budget accounting.
// Determinism:
//   - Contents and order depend only on the sequence of calls, never on the
//     growth policy; Len() never includes reserved slack.
// Concurrency:
//   - Not safe for concurrent mutation. One writer owns a Slice at a time.

package growable

import (
	"fmt"
	"slices"
)

const (
	// minCapacity is the first reservation made by an empty Slice.
	minCapacity = 16
	// growthFactor multiplies the capacity whenever the Slice must move.
	growthFactor = 2
)

// Slice is an in-memory Array.
//
// len(data) is the logical length; cap(data) is the reserved storage, which
// is charged against budget in ElementSize units.
type Slice struct {
	data    []int32
	budget  *Budget
	charged int // elements currently charged to budget
}

// NewSlice returns an empty Slice charging its storage to budget (may be nil).
func NewSlice(budget *Budget) *Slice {
	return &Slice{budget: budget}
}

// Len returns the logical element count.
// Complexity: O(1).
func (s *Slice) Len() int { return len(s.data) }

// Cap returns the number of reserved slots (≥ Len).
func (s *Slice) Cap() int { return cap(s.data) }

// GrowTo extends the Slice to n elements.
//
// When n fits in the current reservation this only reslices. Otherwise the
// next capacity is max(n, 2·cap, 16), clamped to MaxLen, and the extra bytes
// are reserved from the budget before anything is copied, so a refused
// reservation leaves the Slice untouched.
//
// Complexity: O(1) amortized per element; O(Len) when the storage moves.
func (s *Slice) GrowTo(n int) error {
	cur := len(s.data)
	if n < cur {
		return fmt.Errorf("Slice.GrowTo: n=%d < len=%d: %w", n, cur, ErrInvalidLength)
	}
	if n > MaxLen {
		return fmt.Errorf("Slice.GrowTo: n=%d > max=%d: %w", n, MaxLen, ErrAllocationFailure)
	}
	if n <= cap(s.data) {
		s.data = s.data[:n]
		return nil
	}

	newCap := nextCapacity(cap(s.data), n)
	if extra := newCap - s.charged; extra > 0 {
		if err := s.budget.Acquire(int64(extra) * ElementSize); err != nil {
			return fmt.Errorf("Slice.GrowTo: n=%d: %w", n, err)
		}
		s.charged = newCap
	}

	grown := make([]int32, n, newCap)
	copy(grown, s.data)
	s.data = grown

	return nil
}

// AppendSegment appends values as one unit. On error the Slice is unchanged.
// Complexity: O(len(values)) amortized.
func (s *Slice) AppendSegment(values []int32) error {
	if len(values) == 0 {
		return nil
	}
	cur := len(s.data)
	if err := s.GrowTo(cur + len(values)); err != nil {
		return err
	}
	copy(s.data[cur:], values)

	return nil
}

// Append appends a single value. It is AppendSegment for one element without
// the slice header allocation.
func (s *Slice) Append(v int32) error {
	cur := len(s.data)
	if err := s.GrowTo(cur + 1); err != nil {
		return err
	}
	s.data[cur] = v

	return nil
}

// Truncate keeps the first n elements. The reservation is not released;
// call Trim for that.
func (s *Slice) Truncate(n int) error {
	if n < 0 || n > len(s.data) {
		return fmt.Errorf("Slice.Truncate: n=%d not in [0,%d]: %w", n, len(s.data), ErrInvalidLength)
	}
	s.data = s.data[:n]

	return nil
}

// Trim shrinks the reservation to the logical length and returns the freed
// bytes to the budget. Contents and order are unchanged.
// Complexity: O(Len) when slack exists, O(1) otherwise.
func (s *Slice) Trim() {
	n := len(s.data)
	if cap(s.data) == n && s.charged == n {
		return
	}
	if n == 0 {
		s.data = nil
	} else {
		trimmed := make([]int32, n)
		copy(trimmed, s.data)
		s.data = trimmed
	}
	if freed := s.charged - cap(s.data); freed > 0 {
		s.budget.Release(int64(freed) * ElementSize)
		s.charged = cap(s.data)
	}
}

// At returns element i.
func (s *Slice) At(i int) (int32, error) {
	if i < 0 || i >= len(s.data) {
		return 0, fmt.Errorf("Slice.At: i=%d not in [0,%d): %w", i, len(s.data), ErrInvalidLength)
	}
	return s.data[i], nil
}

// View returns the live contents without copying. The view is capped at Len,
// so appending to it never writes into the Slice; it is invalidated by the
// next growth.
func (s *Slice) View() []int32 {
	return s.data[:len(s.data):len(s.data)]
}

// Values returns a copy of the contents.
func (s *Slice) Values() ([]int32, error) {
	return slices.Clone(s.data), nil
}

// Release drops the storage and returns its bytes to the budget.
// The Slice is empty and reusable afterwards.
func (s *Slice) Release() {
	s.budget.Release(int64(s.charged) * ElementSize)
	s.data = nil
	s.charged = 0
}

// nextCapacity picks the reservation for a Slice that must hold n elements
// and currently reserves have slots.
func nextCapacity(have, n int) int {
	c := have * growthFactor
	if c < minCapacity {
		c = minCapacity
	}
	if c < n {
		c = n
	}
	if c > MaxLen {
		c = MaxLen
	}
	return c
}

// compile-time interface checks
var (
	_ Array     = (*Slice)(nil)
	_ Truncater = (*Slice)(nil)
	_ Reader    = (*Slice)(nil)
	_ Indexer   = (*Slice)(nil)
)
