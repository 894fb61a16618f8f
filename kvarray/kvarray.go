// SPDX-License-Identifier: MIT

// Package kvarray binds growable.Array to BadgerDB, so edge lists can live in
// an on-disk (or in-memory) key-value store instead of process memory.
//
// Layout, per array name:
//
//	ga/<name>/len          → uint64 big-endian logical length
//	ga/<name>/c/<chunk>    → chunkSize little-endian int32 values
//
// The len key is the commit point. AppendSegment writes its chunks first,
// spread over as many transactions as badger accepts, and stores the new
// length last. A failure before that leaves the old length in place, so the
// append is all-or-nothing however large the segment is. Chunk data past the
// length is never read back and is overwritten by later appends, which means
// slots exposed by GrowTo (including ones left behind by Truncate) hold
// unspecified values until written, as with any growable.Array.
//
// An Array caches its length and assumes it is the only writer for its name.
package kvarray

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/katalvlaran/synaptic/growable"
)

// chunkSize is the number of int32 values stored under one key.
const chunkSize = 1024

// ErrEmptyName indicates Open was called with an empty array name.
var ErrEmptyName = errors.New("kvarray: empty array name")

// Array is a growable.Array persisted in BadgerDB.
type Array struct {
	db     *badger.DB
	prefix []byte
	length int
}

// Open attaches to the array called name inside db, creating it empty when
// it does not exist yet.
func Open(db *badger.DB, name string) (*Array, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	a := &Array{db: db, prefix: []byte("ga/" + name + "/")}

	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(a.lenKey())
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("kvarray: corrupt length for %q (%d bytes)", name, len(val))
			}
			a.length = int(binary.BigEndian.Uint64(val))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("kvarray.Open(%s): %w", name, err)
	}

	return a, nil
}

// Len returns the logical length.
func (a *Array) Len() int { return a.length }

// GrowTo extends the logical length to n. New slots are unspecified.
func (a *Array) GrowTo(n int) error {
	if n < a.length {
		return fmt.Errorf("kvarray.GrowTo: n=%d < len=%d: %w", n, a.length, growable.ErrInvalidLength)
	}
	if n > growable.MaxLen {
		return fmt.Errorf("kvarray.GrowTo: n=%d > max=%d: %w", n, growable.MaxLen, growable.ErrAllocationFailure)
	}
	if n == a.length {
		return nil
	}
	if err := a.db.Update(func(txn *badger.Txn) error {
		return txn.Set(a.lenKey(), encodeLen(n))
	}); err != nil {
		return storageErr("kvarray.GrowTo", err)
	}
	a.length = n

	return nil
}

// AppendSegment writes values after the current tail. Large segments span
// several transactions; the length moves only once every chunk is stored.
func (a *Array) AppendSegment(values []int32) error {
	if len(values) == 0 {
		return nil
	}
	start := a.length
	end := start + len(values)
	if end > growable.MaxLen {
		return fmt.Errorf("kvarray.AppendSegment: len=%d > max=%d: %w", end, growable.MaxLen, growable.ErrAllocationFailure)
	}

	err := a.update(start/chunkSize, (end-1)/chunkSize, func(txn *badger.Txn, c int) error {
		buf, err := a.loadChunk(txn, c)
		if err != nil {
			return err
		}
		lo := max(start, c*chunkSize)
		hi := min(end, (c+1)*chunkSize)
		for i := lo; i < hi; i++ {
			binary.LittleEndian.PutUint32(buf[(i-c*chunkSize)*4:], uint32(values[i-start]))
		}
		return txn.Set(a.chunkKey(c), buf)
	}, end)
	if err != nil {
		return storageErr("kvarray.AppendSegment", err)
	}
	a.length = end

	return nil
}

// Truncate keeps the first n elements. Chunk data past n is left in place
// and overwritten by later appends.
func (a *Array) Truncate(n int) error {
	if n < 0 || n > a.length {
		return fmt.Errorf("kvarray.Truncate: n=%d not in [0,%d]: %w", n, a.length, growable.ErrInvalidLength)
	}
	if err := a.db.Update(func(txn *badger.Txn) error {
		return txn.Set(a.lenKey(), encodeLen(n))
	}); err != nil {
		return storageErr("kvarray.Truncate", err)
	}
	a.length = n

	return nil
}

// Values reads the whole array.
func (a *Array) Values() ([]int32, error) {
	out := make([]int32, a.length)
	err := a.db.View(func(txn *badger.Txn) error {
		for c := 0; c*chunkSize < a.length; c++ {
			buf, err := a.loadChunk(txn, c)
			if err != nil {
				return err
			}
			hi := min(a.length, (c+1)*chunkSize)
			for i := c * chunkSize; i < hi; i++ {
				out[i] = int32(binary.LittleEndian.Uint32(buf[(i-c*chunkSize)*4:]))
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("kvarray.Values: %w", err)
	}

	return out, nil
}

// At reads element i.
func (a *Array) At(i int) (int32, error) {
	if i < 0 || i >= a.length {
		return 0, fmt.Errorf("kvarray.At: i=%d not in [0,%d): %w", i, a.length, growable.ErrInvalidLength)
	}
	var v int32
	err := a.db.View(func(txn *badger.Txn) error {
		buf, err := a.loadChunk(txn, i/chunkSize)
		if err != nil {
			return err
		}
		v = int32(binary.LittleEndian.Uint32(buf[(i%chunkSize)*4:]))
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("kvarray.At: %w", err)
	}

	return v, nil
}

// update calls write for chunks first..last, committing and opening a fresh
// transaction whenever badger reports ErrTxnTooBig, then stores length in
// the final commit. write may run twice for the same chunk and must read
// what it modifies from txn.
func (a *Array) update(first, last int, write func(txn *badger.Txn, c int) error, length int) error {
	txn := a.db.NewTransaction(true)
	defer func() { txn.Discard() }()

	// retry runs fn, rolling over to a new transaction once if the current
	// one is full.
	retry := func(fn func() error) error {
		err := fn()
		if !errors.Is(err, badger.ErrTxnTooBig) {
			return err
		}
		if err := txn.Commit(); err != nil {
			return err
		}
		txn = a.db.NewTransaction(true)
		return fn()
	}

	for c := first; c <= last; c++ {
		if err := retry(func() error { return write(txn, c) }); err != nil {
			return err
		}
	}
	if err := retry(func() error { return txn.Set(a.lenKey(), encodeLen(length)) }); err != nil {
		return err
	}

	return txn.Commit()
}

// loadChunk returns a writable copy of chunk c, zero-filled when absent.
func (a *Array) loadChunk(txn *badger.Txn, c int) ([]byte, error) {
	buf := make([]byte, chunkSize*4)
	item, err := txn.Get(a.chunkKey(c))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return buf, nil
	}
	if err != nil {
		return nil, err
	}
	if err := item.Value(func(val []byte) error {
		copy(buf, val)
		return nil
	}); err != nil {
		return nil, err
	}

	return buf, nil
}

func (a *Array) lenKey() []byte {
	return append(append([]byte{}, a.prefix...), "len"...)
}

func (a *Array) chunkKey(c int) []byte {
	k := append(append([]byte{}, a.prefix...), "c/"...)
	return binary.BigEndian.AppendUint64(k, uint64(c))
}

func encodeLen(n int) []byte {
	return binary.BigEndian.AppendUint64(nil, uint64(n))
}

// storageErr maps a failed badger write onto the growable taxonomy: the array
// could not be extended, so the caller sees an allocation failure with the
// badger cause attached.
func storageErr(method string, err error) error {
	return fmt.Errorf("%s: %w: %w", method, growable.ErrAllocationFailure, err)
}

var (
	_ growable.Array     = (*Array)(nil)
	_ growable.Truncater = (*Array)(nil)
	_ growable.Reader    = (*Array)(nil)
	_ growable.Indexer   = (*Array)(nil)
)
