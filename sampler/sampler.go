// SPDX-License-Identifier: MIT

// Package sampler provides uniform [0,1) sources for the acceptance test in
// package pairs.
//
// There is no package-level generator: every build receives an explicitly
// seeded source, so the same seed, predicate and populations always yield
// the same synapses.
//
//	Seeded    - math/rand stream from a fixed seed (or a caller's *rand.Rand)
//	Sequence  - scripted values replayed in call order (tests, golden files)
//	Constant  - the same value for every draw
//
// None of the samplers is safe for concurrent use.
package sampler

import (
	"math/rand"

	"github.com/katalvlaran/synaptic/pairs"
)

// Seeded draws from a deterministic math/rand stream.
type Seeded struct {
	rng   *rand.Rand
	calls int
}

// NewSeeded returns a Seeded sampler for seed.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewSource(seed))}
}

// FromRand wraps an existing generator. Panics on nil.
func FromRand(r *rand.Rand) *Seeded {
	if r == nil {
		panic("sampler: FromRand(nil)")
	}
	return &Seeded{rng: r}
}

// Sample returns the next value of the stream; vidx does not influence it.
func (s *Seeded) Sample(int) float64 {
	s.calls++
	return s.rng.Float64()
}

// Calls returns the number of draws made so far.
func (s *Seeded) Calls() int { return s.calls }

// Sequence replays fixed values in call order, wrapping around at the end.
type Sequence struct {
	vals  []float64
	calls int
	keys  []int
}

// NewSequence returns a Sequence over vals. Panics when vals is empty.
func NewSequence(vals ...float64) *Sequence {
	if len(vals) == 0 {
		panic("sampler: NewSequence()")
	}
	return &Sequence{vals: append([]float64(nil), vals...)}
}

// Sample returns vals[calls mod len(vals)] and records vidx.
func (s *Sequence) Sample(vidx int) float64 {
	v := s.vals[s.calls%len(s.vals)]
	s.calls++
	s.keys = append(s.keys, vidx)
	return v
}

// Calls returns the number of draws made so far.
func (s *Sequence) Calls() int { return s.calls }

// Keys returns the vectorization indices passed to Sample, in call order.
func (s *Sequence) Keys() []int { return append([]int(nil), s.keys...) }

// Constant always returns the same value.
type Constant float64

// Sample returns c.
func (c Constant) Sample(int) float64 { return float64(c) }

var (
	_ pairs.Sampler = (*Seeded)(nil)
	_ pairs.Sampler = (*Sequence)(nil)
	_ pairs.Sampler = Constant(0)
)
