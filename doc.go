// SPDX-License-Identifier: MIT

// Package synaptic creates the synapses of spiking neural network models.
//
// Given a source neuron group, a target neuron group and a connection rule,
// it enumerates every candidate pair, decides which pairs connect (optionally
// at random, with several synapses per pair), and maintains three structures
// in lockstep:
//
//	edge list        synapse k = (pre[k], post[k])
//	pre-adjacency    source neuron → outgoing synapse ids
//	post-adjacency   target neuron → incoming synapse ids
//
// Packages:
//
//	growable/   - GrowableArray capability interface, in-memory Slice, memory Budget
//	kvarray/    - GrowableArray persisted in BadgerDB
//	staging/    - pooled fixed-capacity buffers that flush segments into arrays
//	adjacency/  - per-neuron synapse-id lists with rollback
//	pairs/      - population pairs, predicate decisions, candidate stream
//	sampler/    - seeded and scripted uniform samplers
//	predicate/  - composable connection rules
//	synapses/   - the EdgeBuilder tying it all together
//	snapshot/   - zstd-compressed edge list files
//	config/     - YAML network descriptions
//	logging/    - slog construction for the CLI
//	cmd/synconnect - command-line front end
//
// Quick start:
//
//	b, _ := synapses.New(1000, 1000, synapses.WithSeed(1))
//	stats, err := b.ConnectAll(predicate.If(predicate.NoSelf(), 0.1, 1))
//
// Guarantees: deterministic output for a given seed, source-major synapse
// order, ascending adjacency lists, results independent of the staging
// buffer size, and a consistent prefix after any failure.
package synaptic
