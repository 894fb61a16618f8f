// SPDX-License-Identifier: MIT

// Package staging batches scalar appends in fixed-capacity scratch buffers
// and flushes them into a growable.Array one segment at a time.
//
// Growing backing storage is assumed to be far more expensive than copying
// an int32 into a local buffer, so writers stage values and pay the growth
// cost once per C values (C = capacity):
//
//	b, _ := staging.New(dst, 1024)
//	defer b.Release()
//	for ... { if err := b.Append(v); err != nil { return err } }
//	return b.Flush() // final flush; a no-op when nothing is pending
//
// Buffer is the general single-array form. Pair couples two of them, one per
// edge side (presynaptic and postsynaptic ids), and advances them in lock
// step. Its flush is all-or-nothing across both arrays:
// if the second append fails, the first array is truncated back (when it
// implements growable.Truncater), so the two arrays never disagree in
// length.
//
// Buffers are borrowed from a sync.Pool and must be returned with Release,
// normally via defer so early failures release them too. Release drops any
// staged values that were not flushed.
package staging
