// SPDX-License-Identifier: MIT

package pairs

import (
	"fmt"
	"iter"
)

// Decision is a predicate's verdict for one pair.
type Decision struct {
	Accept bool    // connect this pair at all
	P      float64 // acceptance probability, (0,1]
	N      int     // synapses to create when accepted, ≥ 0
}

// Reject is the Decision that skips a pair.
var Reject = Decision{}

// Connect returns an accepting Decision with probability p and n repetitions.
func Connect(p float64, n int) Decision {
	return Decision{Accept: true, P: p, N: n}
}

// Predicate decides whether and how a pair is connected. It must be a pure
// function of the pair for the duration of one build.
type Predicate func(Pair) Decision

// Sampler is the source of uniform draws in [0,1), keyed by the pair's
// vectorization index.
type Sampler interface {
	Sample(vidx int) float64
}

// SamplerFunc adapts a function to Sampler.
type SamplerFunc func(vidx int) float64

// Sample calls f(vidx).
func (f SamplerFunc) Sample(vidx int) float64 { return f(vidx) }

// Candidate is one synapse to create.
type Candidate struct {
	Pair
	Repetition int // 0..N-1 within the accepting Decision
}

// Tally counts what the pipeline did. The zero value is ready to use.
type Tally struct {
	Pairs      int // pairs enumerated
	Skipped    int // Accept == false
	Rejected   int // sampler draw ≥ P
	Accepted   int // pairs that passed both tests
	Candidates int // synapses yielded (sum of N over accepted pairs)
}

// Accepted streams the candidates produced by running pred (and, where
// P != 1, s) over every pair of e. The first error ends the sequence and is
// yielded with a zero Candidate. tally may be nil.
//
// Draw policy: the sampler is called exactly once per accepted pair with
// P != 1, in enumeration order, and never for skipped pairs.
func Accepted(e *Enumerator, pred Predicate, s Sampler, tally *Tally) iter.Seq2[Candidate, error] {
	if tally == nil {
		tally = &Tally{}
	}
	return func(yield func(Candidate, error) bool) {
		for pr := range e.All() {
			tally.Pairs++
			d := pred(pr)
			if !d.Accept {
				tally.Skipped++
				continue
			}
			// !(P > 0) also catches NaN.
			if !(d.P > 0) || d.P > 1 || d.N < 0 {
				yield(Candidate{}, fmt.Errorf("pairs: pair (%d,%d): P=%g N=%d: %w",
					pr.Pre, pr.Post, d.P, d.N, ErrPredicateContract))
				return
			}
			if d.P != 1.0 {
				if s == nil {
					yield(Candidate{}, fmt.Errorf("pairs: pair (%d,%d): P=%g: %w",
						pr.Pre, pr.Post, d.P, ErrNeedSampler))
					return
				}
				u := s.Sample(pr.VIdx)
				if !(u >= 0 && u < 1) {
					yield(Candidate{}, fmt.Errorf("pairs: sample %g for vidx %d: %w",
						u, pr.VIdx, ErrSamplerContract))
					return
				}
				if u >= d.P {
					tally.Rejected++
					continue
				}
			}
			tally.Accepted++
			for r := 0; r < d.N; r++ {
				tally.Candidates++
				if !yield(Candidate{Pair: pr, Repetition: r}, nil) {
					return
				}
			}
		}
	}
}
