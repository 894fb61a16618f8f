// SPDX-License-Identifier: MIT

package kvarray

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Options configures the BadgerDB instance opened by OpenDB.
type Options struct {
	// Dir is the data directory. Ignored when InMemory is set.
	Dir string
	// InMemory keeps everything in RAM; nothing survives Close.
	InMemory bool
	// SyncWrites fsyncs every commit.
	SyncWrites bool
}

// OpenDB opens a BadgerDB tuned for edge arrays: quiet logger and small
// memtables, since values are fixed 4 KiB chunks.
func OpenDB(opts Options) (*badger.DB, error) {
	bopts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	bopts = bopts.
		WithSyncWrites(opts.SyncWrites).
		WithLogger(nil).
		WithMemTableSize(16 << 20).
		WithNumMemtables(2).
		WithNumLevelZeroTables(2).
		WithNumLevelZeroTablesStall(4).
		WithBlockCacheSize(16 << 20)

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("kvarray.OpenDB: %w", err)
	}

	return db, nil
}
