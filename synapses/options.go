// SPDX-License-Identifier: MIT
// Package: synaptic/synapses
//
// options.go - functional options for New.
//
// Contract:
//   - Options are functional (type Option func(*builderConfig)).
//   - Option constructors validate and PANIC on meaningless inputs;
//     New and Connect themselves never panic.
//   - Randomness is explicit: without WithSeed, WithRand or WithSampler the
//     builder has no sampler and any P != 1 fails with ErrNeedSampler.
//   - Later options override earlier ones touching the same knob.
//
// AI-Hints:
//   - Prefer WithSeed in tests and examples; it pins every Bernoulli draw.
//   - WithBufferSize tunes flush frequency only, never the resulting edges.
//   - WithEdgeStorage plus kvarray keeps edge lists in badger; adjacency
//     stays in memory and is rebuilt from the arrays on New.
//   - WithBudget caps in-memory growth; it does not apply to external
//     edge storage, which reports its own allocation failures.

package synapses

import (
	"log/slog"
	"math/rand" // caller-owned RNG for WithRand

	"github.com/katalvlaran/synaptic/growable"
	"github.com/katalvlaran/synaptic/pairs"
	"github.com/katalvlaran/synaptic/sampler"
)

// Option customizes a Builder before it is created.
// Complexity: applying N options costs O(N) time, O(1) space.
type Option func(*builderConfig)

// WithBufferSize sets the staging capacity C (entries per flush). Any C ≥ 1
// produces the same synapses in the same order; C only changes how often
// the edge list grows.
// Complexity: O(1) time; Connect borrows O(C) staging memory.
func WithBufferSize(c int) Option {
	if c < 1 {
		// Fail fast: a zero-capacity buffer could never flush.
		panic("synapses: WithBufferSize(c<1)")
	}
	return func(cfg *builderConfig) {
		// Read once per Connect when the staging pair is borrowed.
		cfg.bufferSize = c
	}
}

// WithSeed installs a seeded sampler. Two builders with the same seed and
// the same Connect calls produce identical synapses.
// Complexity: O(1) time, O(1) space.
func WithSeed(seed int64) Option {
	return func(cfg *builderConfig) {
		// Seeded source → reproducible draws.
		cfg.sampler = sampler.NewSeeded(seed)
	}
}

// WithRand installs a sampler drawing from r. Panics on nil.
// The builder advances r; share it only with code that tolerates that.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		// Fail fast to avoid silent non-determinism later.
		panic("synapses: WithRand(nil)")
	}
	return func(cfg *builderConfig) {
		// Attach the RNG; callers decide the seed policy.
		cfg.sampler = sampler.FromRand(r)
	}
}

// WithSampler installs an arbitrary sampler. Panics on nil.
func WithSampler(s pairs.Sampler) Option {
	if s == nil {
		panic("synapses: WithSampler(nil)")
	}
	return func(cfg *builderConfig) {
		// Replaces any sampler set by WithSeed or WithRand.
		cfg.sampler = s
	}
}

// WithLogger routes flush and summary records to l. Panics on nil.
// Flushes log at Debug, Connect summaries at Info, aborts at Warn.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		// Use slog.DiscardHandler for silence instead of nil.
		panic("synapses: WithLogger(nil)")
	}
	return func(cfg *builderConfig) {
		cfg.logger = l
	}
}

// WithBudget charges in-memory edge and adjacency storage to b. Panics on
// nil; omit the option for unlimited storage.
// Complexity: O(1) time, O(1) space.
func WithBudget(b *growable.Budget) Option {
	if b == nil {
		panic("synapses: WithBudget(nil)")
	}
	return func(cfg *builderConfig) {
		// Shared by pointer: several builders may draw on one budget.
		cfg.budget = b
	}
}

// WithEdgeStorage makes the builder append synapses to pre and post instead
// of in-memory slices (for example kvarray arrays backed by badger). Both
// arrays must have the same length; existing contents are treated as
// synapses created earlier. Panics on nil.
func WithEdgeStorage(pre, post growable.Array) Option {
	if pre == nil || post == nil {
		// Fail fast; both sides are required, a single array is meaningless.
		panic("synapses: WithEdgeStorage(nil)")
	}
	return func(cfg *builderConfig) {
		// Length agreement is checked by New, which can return an error.
		cfg.edgePre, cfg.edgePost = pre, post
	}
}
