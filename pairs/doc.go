// SPDX-License-Identifier: MIT

// Package pairs enumerates candidate (source, target) neuron pairs and turns
// them into a lazy stream of accepted synapses.
//
// Enumeration order is part of the contract: source index i is the outer
// loop over [0, source.Count), target index j the inner loop over
// [0, target.Count). Every ordering guarantee downstream (synapse ids,
// adjacency order) derives from it.
//
// For each pair the caller's Predicate returns a Decision:
//
//	Accept == false  → skip; no sampler call
//	P ∉ (0,1], N < 0 → ErrPredicateContract (raised before any yield)
//	P != 1           → u := Sampler.Sample(VIdx); u ≥ P skips the pair
//	otherwise        → N candidates with Repetition 0..N-1
//
// Accepted exposes this pipeline as an iter.Seq2[Candidate, error], which
// keeps enumeration and filtering independent of how the candidates are
// stored.
package pairs
