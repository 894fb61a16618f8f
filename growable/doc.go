// SPDX-License-Identifier: MIT

// Package growable provides the append-only integer storage that backs
// synapse edge lists and adjacency lists.
//
// The package is organized around one small capability interface:
//
//	type Array interface {
//		Len() int
//		GrowTo(n int) error
//		AppendSegment(values []int32) error
//	}
//
// Any storage binding can satisfy it: the in-memory Slice defined here, the
// BadgerDB-backed kvarray.Array, or a host-provided columnar store. Two
// optional capabilities refine it:
//
//   - Truncater lets a caller cut an array back to an earlier length; the
//     staging layer uses it to undo half of a paired flush.
//   - Reader exposes the current contents as a fresh []int32.
//
// Growth policy:
//
//   - Slice grows geometrically (×2, minimum 16 slots) so n appends cost
//     O(n) amortized copies. Len() never exposes the slack: it is always the
//     logical element count.
//   - Trim releases the slack once an array has stopped growing.
//
// Memory budget:
//
//	A Budget caps the bytes reserved by every Slice that shares it. When a
//	reservation does not fit, the growth fails with ErrAllocationFailure and
//	the array is left exactly as it was. A nil *Budget means "unlimited".
//
// Errors:
//
//	ErrAllocationFailure - storage could not be extended to the requested length.
//	ErrInvalidLength     - a requested length is negative, shrinks the array, or
//	                       lies outside the current contents.
package growable
