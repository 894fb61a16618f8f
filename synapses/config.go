// SPDX-License-Identifier: MIT
// Package: synaptic/synapses
//
// config.go - internal configuration and deterministic defaults.
//
// Design:
//   - builderConfig is the single source of truth for all builder knobs.
//   - newBuilderConfig applies options in order (later overrides earlier).
//
// Defaults:
//   - bufferSize = DefaultBufferSize (1024)
//   - sampler    = nil               (only P == 1 decisions allowed)
//   - logger     = discard
//   - budget     = nil               (unlimited)
//   - edgePre/edgePost = nil         (fresh in-memory slices)
//
// AI-Hints:
//   - Rules with P == 1 never call the sampler, so deterministic wiring
//     (all-to-all, one-to-one) needs no seed at all.

package synapses

import (
	"log/slog"

	"github.com/katalvlaran/synaptic/growable"
	"github.com/katalvlaran/synaptic/pairs"
)

// builderConfig is the resolved option set. It is private so defaults stay
// in one place.
type builderConfig struct {
	// Staging capacity C; entries per flush, ≥ 1.
	bufferSize int
	// Bernoulli source; nil means only P == 1 decisions are allowed.
	sampler pairs.Sampler
	// Sink for flush, summary and abort records.
	logger *slog.Logger
	// Memory cap for in-memory arrays; nil means unlimited.
	budget *growable.Budget

	// External edge arrays; nil means in-memory slices.
	edgePre, edgePost growable.Array
}

// newBuilderConfig applies opts over the defaults.
// Complexity: O(len(opts)) time, O(1) space.
func newBuilderConfig(opts ...Option) builderConfig {
	cfg := builderConfig{
		bufferSize: DefaultBufferSize,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		// Apply in order; later options override earlier ones.
		opt(&cfg)
	}
	return cfg
}
