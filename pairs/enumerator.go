// SPDX-License-Identifier: MIT

package pairs

import (
	"fmt"
	"iter"
)

// Pair is one candidate connection.
type Pair struct {
	I, J int   // local source / target indices
	Pre  int32 // I + source offset
	Post int32 // J + target offset
	VIdx int   // vectorization index used to key the sampler (= J)
}

// Enumerator walks source × target in i-major order. It is single-use: once
// drained it stays drained.
type Enumerator struct {
	src, tgt Population
	i, j     int
}

// NewEnumerator validates both populations and returns a fresh Enumerator.
func NewEnumerator(src, tgt Population) (*Enumerator, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("NewEnumerator: source: %w", err)
	}
	if err := tgt.Validate(); err != nil {
		return nil, fmt.Errorf("NewEnumerator: target: %w", err)
	}

	return &Enumerator{src: src, tgt: tgt}, nil
}

// Total returns the number of pairs the enumerator produces in all.
func (e *Enumerator) Total() int { return e.src.Count * e.tgt.Count }

// Next returns the next pair, or false when the sequence is exhausted.
// Complexity: O(1).
func (e *Enumerator) Next() (Pair, bool) {
	if e.tgt.Count == 0 || e.i >= e.src.Count {
		return Pair{}, false
	}
	p := Pair{
		I:    e.i,
		J:    e.j,
		Pre:  int32(e.i + e.src.Offset),
		Post: int32(e.j + e.tgt.Offset),
		VIdx: e.j,
	}
	e.j++
	if e.j == e.tgt.Count {
		e.j = 0
		e.i++
	}

	return p, true
}

// All drains the enumerator as an iterator.
func (e *Enumerator) All() iter.Seq[Pair] {
	return func(yield func(Pair) bool) {
		for {
			p, ok := e.Next()
			if !ok || !yield(p) {
				return
			}
		}
	}
}
