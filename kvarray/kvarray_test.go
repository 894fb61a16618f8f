package kvarray_test

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/synaptic/growable"
	"github.com/katalvlaran/synaptic/kvarray"
)

func openMemDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := kvarray.OpenDB(kvarray.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seq(from, n int) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(from + i)
	}
	return out
}

func TestArray_AppendAcrossChunks(t *testing.T) {
	a, err := kvarray.Open(openMemDB(t), "pre")
	require.NoError(t, err)
	assert.Zero(t, a.Len())

	require.NoError(t, a.AppendSegment(seq(0, 1000)))
	require.NoError(t, a.AppendSegment(seq(1000, 1500))) // spans chunk 0 → 2
	require.NoError(t, a.AppendSegment(nil))
	assert.Equal(t, 2500, a.Len())

	vals, err := a.Values()
	require.NoError(t, err)
	assert.Equal(t, seq(0, 2500), vals)
}

func TestArray_ReopenKeepsLength(t *testing.T) {
	db := openMemDB(t)
	a, err := kvarray.Open(db, "post")
	require.NoError(t, err)
	require.NoError(t, a.AppendSegment([]int32{9, 8, 7}))

	b, err := kvarray.Open(db, "post")
	require.NoError(t, err)
	assert.Equal(t, 3, b.Len())
	vals, err := b.Values()
	require.NoError(t, err)
	assert.Equal(t, []int32{9, 8, 7}, vals)

	other, err := kvarray.Open(db, "other")
	require.NoError(t, err)
	assert.Zero(t, other.Len(), "arrays are isolated by name")
}

func TestArray_GrowToAndTruncate(t *testing.T) {
	a, err := kvarray.Open(openMemDB(t), "x")
	require.NoError(t, err)
	require.NoError(t, a.AppendSegment([]int32{1, 2}))

	require.NoError(t, a.GrowTo(5))
	assert.Equal(t, 5, a.Len())
	require.ErrorIs(t, a.GrowTo(4), growable.ErrInvalidLength)

	require.NoError(t, a.Truncate(1))
	require.NoError(t, a.AppendSegment([]int32{42}))
	vals, err := a.Values()
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 42}, vals)

	require.ErrorIs(t, a.Truncate(3), growable.ErrInvalidLength)
}

func TestArray_GrowToBeyondMaxLen(t *testing.T) {
	a, err := kvarray.Open(openMemDB(t), "big")
	require.NoError(t, err)
	require.ErrorIs(t, a.GrowTo(growable.MaxLen+1), growable.ErrAllocationFailure)
	assert.Zero(t, a.Len())
}

func TestOpen_EmptyName(t *testing.T) {
	_, err := kvarray.Open(openMemDB(t), "")
	require.ErrorIs(t, err, kvarray.ErrEmptyName)
}

func TestArray_At(t *testing.T) {
	a, err := kvarray.Open(openMemDB(t), "at")
	require.NoError(t, err)
	require.NoError(t, a.AppendSegment(seq(0, 2050)))

	v, err := a.At(1025)
	require.NoError(t, err)
	assert.Equal(t, int32(1025), v)

	_, err = a.At(2050)
	require.ErrorIs(t, err, growable.ErrInvalidLength)
}

// A segment larger than one badger transaction is split across commits and
// still lands whole.
func TestArray_AppendSegmentLargerThanTxn(t *testing.T) {
	db := openMemDB(t)
	a, err := kvarray.Open(db, "wide")
	require.NoError(t, err)
	require.NoError(t, a.AppendSegment(seq(0, 7)))

	const n = 1 << 20 // 4 MiB of payload, well above the batch limit of a 16 MiB memtable
	require.NoError(t, a.AppendSegment(seq(7, n)))
	assert.Equal(t, n+7, a.Len())

	reopened, err := kvarray.Open(db, "wide")
	require.NoError(t, err)
	assert.Equal(t, n+7, reopened.Len())
	vals, err := reopened.Values()
	require.NoError(t, err)
	assert.Equal(t, seq(0, n+7), vals)
}

// GrowTo after Truncate keeps the surviving prefix and lets appends overwrite
// the stale tail.
func TestArray_TruncateThenGrowTo(t *testing.T) {
	a, err := kvarray.Open(openMemDB(t), "tail")
	require.NoError(t, err)
	require.NoError(t, a.AppendSegment(seq(0, 1500)))
	require.NoError(t, a.Truncate(1000))
	require.NoError(t, a.GrowTo(1200))

	vals, err := a.Values()
	require.NoError(t, err)
	require.Len(t, vals, 1200)
	assert.Equal(t, seq(0, 1000), vals[:1000])

	require.NoError(t, a.Truncate(1000))
	require.NoError(t, a.AppendSegment(seq(5000, 300)))
	vals, err = a.Values()
	require.NoError(t, err)
	assert.Equal(t, append(seq(0, 1000), seq(5000, 300)...), vals)
}
