// SPDX-License-Identifier: MIT

package growable

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Budget tracks and optionally caps the bytes reserved by growable arrays.
//
// A Budget is safe for concurrent use and may be shared by every array that
// belongs to one network. All methods are nil-safe: a nil *Budget accepts
// every reservation.
type Budget struct {
	limit int64
	sem   *semaphore.Weighted // nil when only tracking
	used  atomic.Int64
}

// NewBudget returns a Budget capped at limitBytes.
// A limit ≤ 0 tracks usage without enforcing a cap.
func NewBudget(limitBytes int64) *Budget {
	b := &Budget{limit: limitBytes}
	if limitBytes > 0 {
		b.sem = semaphore.NewWeighted(limitBytes)
	}
	return b
}

// Acquire reserves bytes. It never blocks: when the reservation does not fit
// it returns ErrAllocationFailure and reserves nothing.
func (b *Budget) Acquire(bytes int64) error {
	if b == nil || bytes <= 0 {
		return nil
	}
	if b.sem != nil && !b.sem.TryAcquire(bytes) {
		return fmt.Errorf("budget: %d bytes requested, %d of %d in use: %w",
			bytes, b.used.Load(), b.limit, ErrAllocationFailure)
	}
	b.used.Add(bytes)
	return nil
}

// Release returns bytes previously reserved with Acquire.
func (b *Budget) Release(bytes int64) {
	if b == nil || bytes <= 0 {
		return
	}
	if b.sem != nil {
		b.sem.Release(bytes)
	}
	b.used.Add(-bytes)
}

// Used returns the bytes currently reserved.
func (b *Budget) Used() int64 {
	if b == nil {
		return 0
	}
	return b.used.Load()
}

// Limit returns the configured cap in bytes (0 when unlimited).
func (b *Budget) Limit() int64 {
	if b == nil || b.sem == nil {
		return 0
	}
	return b.limit
}
