// SPDX-License-Identifier: MIT
// Package: synaptic/synapses
//
// errors.go - sentinel errors for the synapses package.
//
// Error policy:
//   - Callers branch with errors.Is; messages are not part of the contract.
//   - Errors are wrapped once at the API boundary with the method name
//     (MethodConnect, ...) and the failing parameters.
//   - Lower-layer sentinels are re-exported so callers need a single import.

package synapses

import (
	"errors"

	"github.com/katalvlaran/synaptic/adjacency"
	"github.com/katalvlaran/synaptic/growable"
	"github.com/katalvlaran/synaptic/pairs"
)

var (
	// ErrAllocationFailure indicates the edge list or an adjacency list could
	// not grow (memory budget exhausted, storage failure, id space full).
	ErrAllocationFailure = growable.ErrAllocationFailure

	// ErrInvalidPopulationIndex indicates a population that reaches outside
	// the builder's source or target neuron space.
	ErrInvalidPopulationIndex = adjacency.ErrInvalidPopulationIndex

	// ErrPredicateContractViolation indicates a predicate returned P outside
	// (0,1] or N < 0.
	ErrPredicateContractViolation = pairs.ErrPredicateContract

	// ErrNeedSampler indicates a probabilistic decision while the builder has
	// no sampler.
	ErrNeedSampler = pairs.ErrNeedSampler

	// ErrSamplerContractViolation indicates a sampler value outside [0,1).
	ErrSamplerContractViolation = pairs.ErrSamplerContract
)

var (
	// ErrBusy indicates Connect was called while another Connect on the same
	// Builder had not returned.
	ErrBusy = errors.New("synapses: builder is busy")

	// ErrNilPredicate indicates Connect was called with a nil predicate.
	ErrNilPredicate = errors.New("synapses: nil predicate")

	// ErrInconsistent indicates the edge list and the adjacency indexes
	// disagree.
	ErrInconsistent = errors.New("synapses: inconsistent synapse storage")

	// ErrUnreadableStorage indicates an edge array that does not implement
	// growable.Reader where its contents are needed.
	ErrUnreadableStorage = errors.New("synapses: edge storage is not readable")
)
