// SPDX-License-Identifier: MIT

package synapses

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/katalvlaran/synaptic/adjacency"
	"github.com/katalvlaran/synaptic/growable"
)

// Verify checks that the edge list and both adjacency indexes describe the
// same synapse set. It reads the whole edge list, so it is meant for tests,
// tooling and post-load checks rather than hot paths.
func (b *Builder) Verify() error {
	if s := b.State(); s != Idle {
		return fmt.Errorf("%s: builder %s: %w", MethodVerify, s, ErrBusy)
	}
	pre, post, err := b.EdgeValues()
	if err != nil {
		return fmt.Errorf("%s: %w", MethodVerify, err)
	}
	return VerifyEdges(pre, post, b.pre, b.post)
}

// VerifyEdges checks the invariants tying an edge list to its indexes:
//
//   - len(pre) == len(post)
//   - every id 0..len-1 appears exactly once in preIdx and once in postIdx
//   - id k is listed under pre[k] in preIdx and under post[k] in postIdx
//   - every adjacency list is strictly ascending
//
// The first violation is returned wrapped in ErrInconsistent.
// Complexity: O(E + neurons).
func VerifyEdges(pre, post []int32, preIdx, postIdx *adjacency.Index) error {
	if len(pre) != len(post) {
		return fmt.Errorf("%s: edge arrays have lengths %d and %d: %w",
			MethodVerify, len(pre), len(post), ErrInconsistent)
	}
	if err := verifySide("pre", pre, preIdx); err != nil {
		return err
	}
	return verifySide("post", post, postIdx)
}

func verifySide(side string, endpoints []int32, idx *adjacency.Index) error {
	seen := roaring.New()
	for neuron, ids := range idx.All() {
		last := int32(-1)
		for _, id := range ids {
			if id < 0 || int(id) >= len(endpoints) {
				return fmt.Errorf("%s: %s neuron %d lists unknown synapse %d: %w",
					MethodVerify, side, neuron, id, ErrInconsistent)
			}
			if id <= last {
				return fmt.Errorf("%s: %s neuron %d list not ascending at %d: %w",
					MethodVerify, side, neuron, id, ErrInconsistent)
			}
			last = id
			if int(endpoints[id]) != neuron {
				return fmt.Errorf("%s: synapse %d listed under %s neuron %d but stored as %d: %w",
					MethodVerify, id, side, neuron, endpoints[id], ErrInconsistent)
			}
			if !seen.CheckedAdd(uint32(id)) {
				return fmt.Errorf("%s: synapse %d listed twice on %s side: %w",
					MethodVerify, id, side, ErrInconsistent)
			}
		}
	}
	if got := seen.GetCardinality(); got != uint64(len(endpoints)) {
		missing := roaring.Flip(seen, 0, uint64(len(endpoints)))
		return fmt.Errorf("%s: %d synapses missing from %s index (first %d): %w",
			MethodVerify, missing.GetCardinality(), side, missing.Minimum(), ErrInconsistent)
	}
	return nil
}

// EdgeValues returns copies of both edge arrays. It fails with
// ErrUnreadableStorage when the storage is write-only.
func (b *Builder) EdgeValues() (pre, post []int32, err error) {
	pre, ok, err := growable.ReadAll(b.edges.Pre)
	if !ok {
		return nil, nil, ErrUnreadableStorage
	}
	if err != nil {
		return nil, nil, err
	}
	post, ok, err = growable.ReadAll(b.edges.Post)
	if !ok {
		return nil, nil, ErrUnreadableStorage
	}
	if err != nil {
		return nil, nil, err
	}
	return pre, post, nil
}
