// SPDX-License-Identifier: MIT

package staging

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/synaptic/growable"
)

// Pair stages (pre, post) values for two parallel arrays. It drives one
// Buffer per array in lock step, so both always hold the same number of
// pending entries. After every successful flush both arrays have grown by
// the same amount.
type Pair struct {
	pre, post *Buffer
	flushes   int
	opts      options
}

// NewPair borrows two buffers of the given capacity flushing into pre/post.
func NewPair(pre, post growable.Array, capacity int, opts ...Option) (*Pair, error) {
	if pre == nil || post == nil {
		return nil, fmt.Errorf("staging.NewPair: %w", ErrNilArray)
	}
	if capacity < 1 {
		return nil, fmt.Errorf("staging.NewPair: capacity=%d: %w", capacity, ErrBadCapacity)
	}
	// The hook belongs to the pair; the inner buffers stay silent.
	pb, err := New(pre, capacity)
	if err != nil {
		return nil, fmt.Errorf("staging.NewPair: %w", err)
	}
	qb, err := New(post, capacity)
	if err != nil {
		pb.Release()
		return nil, fmt.Errorf("staging.NewPair: %w", err)
	}

	return &Pair{pre: pb, post: qb, opts: resolve(opts)}, nil
}

// Append stages one (pre, post) entry and flushes when full.
func (p *Pair) Append(pre, post int32) error {
	if p.pre.slab == nil {
		return ErrReleased
	}
	p.pre.stage(pre)
	p.post.stage(post)
	if p.pre.full() {
		return p.Flush()
	}

	return nil
}

// Flush moves the staged segment into both arrays.
//
// Steps:
//  1. Remember the pre array length.
//  2. Write the pre segment; on failure nothing changed.
//  3. Write the post segment; on failure truncate pre back to the mark.
//  4. Reset both cursors only once both writes landed.
//
// On failure the entries stay staged in both buffers. If pre cannot be
// truncated the error also carries the rollback failure; the arrays may
// then disagree and the caller must discard them.
func (p *Pair) Flush() error {
	if p.pre.slab == nil {
		return ErrReleased
	}
	n := p.pre.cur
	mark := p.pre.dst.Len()

	if err := p.pre.write(); err != nil {
		return fmt.Errorf("staging.Pair.Flush: pre, %d values: %w", n, err)
	}
	if err := p.post.write(); err != nil {
		err = fmt.Errorf("staging.Pair.Flush: post, %d values: %w", n, err)
		if rbErr := rollback(p.pre.dst, mark); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}
	p.pre.commit()
	p.post.commit()
	p.flushes++
	p.opts.onFlush(n)

	return nil
}

// Pending returns the number of staged entries.
func (p *Pair) Pending() int { return p.pre.Pending() }

// Capacity returns C.
func (p *Pair) Capacity() int { return p.pre.Capacity() }

// Flushes returns the number of completed flushes.
func (p *Pair) Flushes() int { return p.flushes }

// Release returns both slabs to the pool, dropping pending entries.
// Safe to call more than once.
func (p *Pair) Release() {
	p.pre.Release()
	p.post.Release()
}

func rollback(a growable.Array, mark int) error {
	t, ok := a.(growable.Truncater)
	if !ok {
		return fmt.Errorf("staging: rollback to %d: array cannot truncate", mark)
	}
	return t.Truncate(mark)
}
