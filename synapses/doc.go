// SPDX-License-Identifier: MIT

// Package synapses creates the synapses between two neuron groups and keeps
// the three structures a simulation needs in step with each other:
//
//	EdgeList.Pre / EdgeList.Post   parallel arrays, synapse k = (Pre[k], Post[k])
//	pre-adjacency                  neuron → ids of synapses it sends
//	post-adjacency                 neuron → ids of synapses it receives
//
// A Builder is created for a fixed source group size and target group size.
// Each Connect call enumerates a (sub)population pair, asks the predicate
// about every pair, draws from the sampler where the decision is
// probabilistic, and appends the accepted synapses:
//
//	b, _ := synapses.New(100, 100, synapses.WithSeed(1))
//	stats, err := b.Connect(
//		pairs.Population{Count: 100},
//		pairs.Population{Count: 100},
//		predicate.If(predicate.NoSelf(), 0.1, 1),
//	)
//
// Ordering (stable, documented):
//   - pairs are visited source-major: (0,0), (0,1), …, (1,0), …
//   - synapse ids are assigned in that order, continuing after the synapses
//     of earlier Connect calls
//   - every adjacency list is in ascending id order
//
// Lifecycle: Idle → Enumerating → Flushing → Idle. Edge ids are staged in
// pooled buffers of WithBufferSize entries and flushed in segments; the final
// flush always runs, then adjacency storage is trimmed. A Builder is not safe
// for concurrent use; overlapping Connect calls fail with ErrBusy instead of
// racing.
//
// Failure model: any error aborts the call. The edge list keeps every
// segment flushed before the error, adjacency lists are rolled back to the
// same prefix, staged entries are dropped, and Verify still succeeds.
//
// Errors (branch with errors.Is):
//
//	ErrAllocationFailure          - backing storage could not grow
//	ErrInvalidPopulationIndex     - population outside the builder's neuron space
//	ErrPredicateContractViolation - predicate returned p ∉ (0,1] or n < 0
//	ErrNeedSampler                - p != 1 without WithSeed/WithRand/WithSampler
//	ErrBusy                       - Connect re-entered or called concurrently
//	ErrInconsistent               - Verify found a broken invariant
package synapses
