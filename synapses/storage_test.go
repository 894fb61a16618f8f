package synapses_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/synaptic/kvarray"
	"github.com/katalvlaran/synaptic/pairs"
	"github.com/katalvlaran/synaptic/predicate"
	"github.com/katalvlaran/synaptic/synapses"
)

func allPairs() pairs.Predicate { return predicate.All() }

// TestBadgerStorageMatchesMemory: the storage binding does not change results.
func TestBadgerStorageMatchesMemory(t *testing.T) {
	rule := predicate.If(predicate.Within(3), 0.5, 1)

	mem, err := synapses.New(120, 120, synapses.WithSeed(5))
	require.NoError(t, err)
	_, err = mem.ConnectAll(rule)
	require.NoError(t, err)

	db, err := kvarray.OpenDB(kvarray.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	pre, err := kvarray.Open(db, "pre")
	require.NoError(t, err)
	post, err := kvarray.Open(db, "post")
	require.NoError(t, err)

	kv, err := synapses.New(120, 120, synapses.WithSeed(5), synapses.WithEdgeStorage(pre, post))
	require.NoError(t, err)
	_, err = kv.ConnectAll(rule)
	require.NoError(t, err)

	require.Equal(t, edgesOf(t, mem), edgesOf(t, kv))
	require.NoError(t, kv.Verify())

	p, q, ok := kv.Synapse(kv.Len() - 1)
	require.True(t, ok)
	mp, mq, _ := mem.Synapse(mem.Len() - 1)
	assert.Equal(t, [2]int32{mp, mq}, [2]int32{p, q})

	// Reattach to the same arrays: adjacency is rebuilt and ids continue.
	pre2, err := kvarray.Open(db, "pre")
	require.NoError(t, err)
	post2, err := kvarray.Open(db, "post")
	require.NoError(t, err)
	again, err := synapses.New(120, 120, synapses.WithEdgeStorage(pre2, post2))
	require.NoError(t, err)
	require.Equal(t, kv.Len(), again.Len())
	require.Equal(t, kv.PreSynapses(10), again.PreSynapses(10))

	stats, err := again.Connect(pairs.Population{Count: 1}, pairs.Population{Count: 1}, allPairs())
	require.NoError(t, err)
	assert.Equal(t, kv.Len(), stats.FirstID)
	require.NoError(t, again.Verify())
}

// TestBadgerStorage_OneHugeFlush: a staging capacity far above what one
// badger transaction holds still yields the in-memory result.
func TestBadgerStorage_OneHugeFlush(t *testing.T) {
	if testing.Short() {
		t.Skip("builds a million edges")
	}
	const n = 1000

	mem, err := synapses.New(n, n, synapses.WithBufferSize(1<<20))
	require.NoError(t, err)
	_, err = mem.ConnectAll(allPairs())
	require.NoError(t, err)

	db, err := kvarray.OpenDB(kvarray.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	pre, err := kvarray.Open(db, "pre")
	require.NoError(t, err)
	post, err := kvarray.Open(db, "post")
	require.NoError(t, err)

	kv, err := synapses.New(n, n, synapses.WithBufferSize(1<<20), synapses.WithEdgeStorage(pre, post))
	require.NoError(t, err)
	stats, err := kv.ConnectAll(allPairs())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Flushes)

	require.Equal(t, n*n, kv.Len())
	require.Equal(t, edgesOf(t, mem), edgesOf(t, kv))
	require.NoError(t, kv.Verify())
}

func TestConnect_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	b, err := synapses.New(4, 4, synapses.WithLogger(logger), synapses.WithBufferSize(5))
	require.NoError(t, err)
	stats, err := b.ConnectAll(allPairs())
	require.NoError(t, err)
	require.Equal(t, 4, stats.Flushes, "three full segments plus the final flush")

	out := buf.String()
	assert.Equal(t, 4, strings.Count(out, "segment flushed"))
	assert.Contains(t, out, "connect finished")
	assert.Contains(t, out, "created=16")
}
