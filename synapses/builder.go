// SPDX-License-Identifier: MIT
// File: builder.go
// Role: Builder construction, storage ownership and read accessors.
// Determinism:
//   - Accessors only read; results depend on the sequence of Connect calls.
// Concurrency:
//   - Readers must not overlap a Connect. Connect itself detects overlap via
//     the atomic state and fails with ErrBusy.

package synapses

import (
	"fmt"
	"sync/atomic"

	"github.com/katalvlaran/synaptic/adjacency"
	"github.com/katalvlaran/synaptic/growable"
)

// EdgeList is the pair of parallel arrays holding every synapse:
// synapse k connects Pre[k] → Post[k].
type EdgeList struct {
	Pre  growable.Array
	Post growable.Array
}

// Len returns the number of synapses.
func (e EdgeList) Len() int { return e.Pre.Len() }

// Builder owns one synapse set between a source group and a target group.
type Builder struct {
	cfg   builderConfig
	state atomic.Int32

	sourceSize, targetSize int

	edges EdgeList
	owned bool // edges are in-memory slices created by New

	pre  *adjacency.Index // source neuron → outgoing synapse ids
	post *adjacency.Index // target neuron → incoming synapse ids
}

// New returns an idle Builder for sourceSize source neurons and targetSize
// target neurons (global ids start at 0 on both sides).
//
// When WithEdgeStorage supplies non-empty arrays, the adjacency indexes are
// rebuilt from them so later Connect calls continue the id sequence.
//
// Complexity: O(sourceSize + targetSize) plus O(E) for pre-existing edges.
func New(sourceSize, targetSize int, opts ...Option) (*Builder, error) {
	cfg := newBuilderConfig(opts...)

	pre, err := adjacency.New(sourceSize, 0, cfg.budget)
	if err != nil {
		return nil, fmt.Errorf("%s: source size %d: %w", MethodNew, sourceSize, err)
	}
	post, err := adjacency.New(targetSize, 0, cfg.budget)
	if err != nil {
		return nil, fmt.Errorf("%s: target size %d: %w", MethodNew, targetSize, err)
	}

	b := &Builder{
		cfg:        cfg,
		sourceSize: sourceSize,
		targetSize: targetSize,
		pre:        pre,
		post:       post,
	}
	if cfg.edgePre != nil {
		b.edges = EdgeList{Pre: cfg.edgePre, Post: cfg.edgePost}
		if err := b.rebuild(); err != nil {
			b.pre.Release()
			b.post.Release()
			return nil, fmt.Errorf("%s: %w", MethodNew, err)
		}
	} else {
		b.edges = EdgeList{Pre: growable.NewSlice(cfg.budget), Post: growable.NewSlice(cfg.budget)}
		b.owned = true
	}

	return b, nil
}

// rebuild fills the adjacency indexes from the current edge arrays.
func (b *Builder) rebuild() error {
	n, m := b.edges.Pre.Len(), b.edges.Post.Len()
	if n != m {
		return fmt.Errorf("edge storage lengths %d and %d differ: %w", n, m, ErrInconsistent)
	}
	if n == 0 {
		return nil
	}
	preVals, ok, err := growable.ReadAll(b.edges.Pre)
	if !ok {
		return fmt.Errorf("rebuild adjacency: %w", ErrUnreadableStorage)
	}
	if err != nil {
		return fmt.Errorf("rebuild adjacency: %w", err)
	}
	postVals, ok, err := growable.ReadAll(b.edges.Post)
	if !ok {
		return fmt.Errorf("rebuild adjacency: %w", ErrUnreadableStorage)
	}
	if err != nil {
		return fmt.Errorf("rebuild adjacency: %w", err)
	}

	for k := range preVals {
		if err := b.pre.Append(int(preVals[k]), int32(k)); err != nil {
			return fmt.Errorf("synapse %d: %w: %w", k, ErrInconsistent, err)
		}
		if err := b.post.Append(int(postVals[k]), int32(k)); err != nil {
			return fmt.Errorf("synapse %d: %w: %w", k, ErrInconsistent, err)
		}
	}
	b.pre.Trim()
	b.post.Trim()

	b.cfg.logger.Debug("adjacency rebuilt from storage", "synapses", n)
	return nil
}

// Edges returns the edge list. The arrays are live; do not mutate them.
func (b *Builder) Edges() EdgeList { return b.edges }

// Len returns the number of synapses created so far.
func (b *Builder) Len() int { return b.edges.Len() }

// SourceSize returns the number of source neurons.
func (b *Builder) SourceSize() int { return b.sourceSize }

// TargetSize returns the number of target neurons.
func (b *Builder) TargetSize() int { return b.targetSize }

// State returns the current lifecycle phase.
func (b *Builder) State() State { return State(b.state.Load()) }

// PreSynapses returns the ids of the synapses whose source is neuron, in
// ascending order (nil when none or out of range). The slice is a view
// invalidated by the next Connect.
func (b *Builder) PreSynapses(neuron int) []int32 { return b.pre.List(neuron) }

// PostSynapses returns the ids of the synapses whose target is neuron, in
// ascending order. Same view semantics as PreSynapses.
func (b *Builder) PostSynapses(neuron int) []int32 { return b.post.List(neuron) }

// PreIndex exposes the source-side adjacency for kernels that iterate it.
func (b *Builder) PreIndex() *adjacency.Index { return b.pre }

// PostIndex exposes the target-side adjacency.
func (b *Builder) PostIndex() *adjacency.Index { return b.post }

// Synapse returns the endpoints of synapse id. ok is false when id is out of
// range or the storage cannot be read back.
func (b *Builder) Synapse(id int) (pre, post int32, ok bool) {
	if id < 0 || id >= b.edges.Len() {
		return 0, 0, false
	}
	pa, ok1 := b.edges.Pre.(growable.Indexer)
	qa, ok2 := b.edges.Post.(growable.Indexer)
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	p, err := pa.At(id)
	if err != nil {
		return 0, 0, false
	}
	q, err := qa.At(id)
	if err != nil {
		return 0, 0, false
	}
	return p, q, true
}

// Release frees adjacency storage and, when the builder created them, the
// in-memory edge arrays. External storage passed via WithEdgeStorage is left
// to its owner.
func (b *Builder) Release() {
	b.pre.Release()
	b.post.Release()
	if b.owned {
		b.edges.Pre.(*growable.Slice).Release()
		b.edges.Post.(*growable.Slice).Release()
	}
}
