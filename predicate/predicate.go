// SPDX-License-Identifier: MIT

// Package predicate builds pairs.Predicate values from small boolean
// conditions, covering the connection rules most networks need:
//
//	predicate.All()                                 // every pair, once
//	predicate.Bernoulli(0.1)                        // each pair with p = 0.1
//	predicate.If(predicate.NoSelf(), 0.2, 1)        // recurrent, no autapses
//	predicate.If(predicate.Within(3), 1, 2)         // local band, 2 multapses
//
// Conditions compose with And, Or and Not. Rules whose probability or
// repetition count depends on the pair are written with Func.
//
// Constructors validate their parameters and panic on values a predicate
// could never legally return (p ∉ (0,1], n < 0). Predicates themselves never
// panic.
package predicate

import (
	"fmt"

	"github.com/katalvlaran/synaptic/pairs"
)

// Cond is a boolean condition over a candidate pair.
type Cond func(pairs.Pair) bool

// Always accepts every pair.
func Always() Cond {
	return func(pairs.Pair) bool { return true }
}

// OneToOne accepts pairs with equal local indices (i == j).
func OneToOne() Cond {
	return func(p pairs.Pair) bool { return p.I == p.J }
}

// NoSelf rejects pairs whose global ids coincide, i.e. autapses in
// recurrent connections.
func NoSelf() Cond {
	return func(p pairs.Pair) bool { return p.Pre != p.Post }
}

// Within accepts pairs whose local indices differ by at most radius.
// Panics on a negative radius.
func Within(radius int) Cond {
	if radius < 0 {
		panic(fmt.Sprintf("predicate: Within(%d)", radius))
	}
	return func(p pairs.Pair) bool {
		d := p.I - p.J
		if d < 0 {
			d = -d
		}
		return d <= radius
	}
}

// And accepts a pair when every condition does (true for no conditions).
func And(cs ...Cond) Cond {
	return func(p pairs.Pair) bool {
		for _, c := range cs {
			if !c(p) {
				return false
			}
		}
		return true
	}
}

// Or accepts a pair when any condition does (false for no conditions).
func Or(cs ...Cond) Cond {
	return func(p pairs.Pair) bool {
		for _, c := range cs {
			if c(p) {
				return true
			}
		}
		return false
	}
}

// Not inverts c.
func Not(c Cond) Cond {
	return func(p pairs.Pair) bool { return !c(p) }
}

// If connects pairs satisfying c with probability p and n repetitions.
// Panics unless p ∈ (0,1] and n ≥ 0.
func If(c Cond, p float64, n int) pairs.Predicate {
	if c == nil {
		panic("predicate: If(nil, ...)")
	}
	if !(p > 0) || p > 1 {
		panic(fmt.Sprintf("predicate: If(..., p=%g, ...): p must be in (0,1]", p))
	}
	if n < 0 {
		panic(fmt.Sprintf("predicate: If(..., n=%d): n must be ≥ 0", n))
	}
	accept := pairs.Connect(p, n)
	return func(pr pairs.Pair) pairs.Decision {
		if c(pr) {
			return accept
		}
		return pairs.Reject
	}
}

// All connects every pair exactly once.
func All() pairs.Predicate { return If(Always(), 1, 1) }

// Bernoulli connects every pair independently with probability p.
func Bernoulli(p float64) pairs.Predicate { return If(Always(), p, 1) }

// Func adapts a function returning (accept, p, n) per pair. The returned
// values are checked by the builder, not here.
func Func(fn func(pairs.Pair) (bool, float64, int)) pairs.Predicate {
	if fn == nil {
		panic("predicate: Func(nil)")
	}
	return func(pr pairs.Pair) pairs.Decision {
		ok, p, n := fn(pr)
		return pairs.Decision{Accept: ok, P: p, N: n}
	}
}
