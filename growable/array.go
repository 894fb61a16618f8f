// SPDX-License-Identifier: MIT

package growable

import "math"

// ElementSize is the number of bytes one stored element occupies.
// Budgets are charged in multiples of it.
const ElementSize = 4

// MaxLen is the largest logical length an array may reach. Synapse ids and
// neuron ids are int32, so nothing longer can be addressed.
const MaxLen = math.MaxInt32

// Array is the minimal capability set the synapse builder needs from its
// backing storage.
//
// Contract:
//   - Len reports the logical element count; no slack is ever visible.
//   - GrowTo extends the array to n elements, keeping existing ones. The new
//     slots hold unspecified values until written. n < Len() is rejected with
//     ErrInvalidLength; storage exhaustion yields ErrAllocationFailure.
//   - AppendSegment behaves like GrowTo(Len()+len(values)) followed by writing
//     values into the new slots, as one atomic unit: on error nothing changed.
type Array interface {
	Len() int
	GrowTo(n int) error
	AppendSegment(values []int32) error
}

// Truncater is implemented by arrays that can drop their tail.
// Truncate(n) keeps the first n elements; n must lie in [0, Len()].
type Truncater interface {
	Truncate(n int) error
}

// Reader is implemented by arrays that can materialize their contents.
// The returned slice is owned by the caller.
type Reader interface {
	Values() ([]int32, error)
}

// Indexer is implemented by arrays with random read access.
type Indexer interface {
	At(i int) (int32, error)
}

// ReadAll returns the contents of a when it implements Reader.
// The second result is false for write-only bindings.
func ReadAll(a Array) ([]int32, bool, error) {
	r, ok := a.(Reader)
	if !ok {
		return nil, false, nil
	}
	vals, err := r.Values()
	return vals, true, err
}
