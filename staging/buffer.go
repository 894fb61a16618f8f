// SPDX-License-Identifier: MIT

package staging

import (
	"fmt"

	"github.com/katalvlaran/synaptic/growable"
)

// Buffer stages values for a single growable.Array.
// It is owned by one writer and is not safe for concurrent use.
type Buffer struct {
	dst     growable.Array
	slab    *[]int32
	cur     int
	flushes int
	opts    options
}

// New borrows a buffer of the given capacity that flushes into dst.
func New(dst growable.Array, capacity int, opts ...Option) (*Buffer, error) {
	if dst == nil {
		return nil, fmt.Errorf("staging.New: %w", ErrNilArray)
	}
	if capacity < 1 {
		return nil, fmt.Errorf("staging.New: capacity=%d: %w", capacity, ErrBadCapacity)
	}

	return &Buffer{dst: dst, slab: getSlab(capacity), opts: resolve(opts)}, nil
}

// Append stages v and flushes when the buffer becomes full.
// Complexity: O(1) amortized.
func (b *Buffer) Append(v int32) error {
	if b.slab == nil {
		return ErrReleased
	}
	b.stage(v)
	if b.full() {
		return b.Flush()
	}

	return nil
}

// Flush appends every pending value to the destination as one segment and
// resets the cursor. Flushing an empty buffer is legal and moves nothing.
// On error the pending values stay staged and the destination is unchanged.
func (b *Buffer) Flush() error {
	if b.slab == nil {
		return ErrReleased
	}
	n := b.cur
	if err := b.write(); err != nil {
		return fmt.Errorf("staging.Flush: %d values: %w", n, err)
	}
	b.commit()

	return nil
}

// stage copies v into the slab. The caller checks full afterwards.
func (b *Buffer) stage(v int32) {
	(*b.slab)[b.cur] = v
	b.cur++
}

func (b *Buffer) full() bool { return b.cur == len(*b.slab) }

// write appends the pending values to dst without touching the cursor, so
// a caller coordinating several buffers can still back out.
func (b *Buffer) write() error {
	return b.dst.AppendSegment((*b.slab)[:b.cur])
}

// commit resets the cursor after a successful write and reports the flush.
func (b *Buffer) commit() {
	n := b.cur
	b.cur = 0
	b.flushes++
	b.opts.onFlush(n)
}

// Pending returns the number of staged, unflushed values.
func (b *Buffer) Pending() int { return b.cur }

// Capacity returns C.
func (b *Buffer) Capacity() int {
	if b.slab == nil {
		return 0
	}
	return len(*b.slab)
}

// Flushes returns the number of completed flushes.
func (b *Buffer) Flushes() int { return b.flushes }

// Release returns the slab to the pool, dropping pending values.
// Safe to call more than once.
func (b *Buffer) Release() {
	putSlab(b.slab)
	b.slab = nil
	b.cur = 0
}
