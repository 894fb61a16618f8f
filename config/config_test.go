package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/synaptic/pairs"
)

const sample = `
source_size: 10
target_size: 8
buffer_size: 64
seed: 7
memory_limit_bytes: 1048576
storage:
  kind: badger
  in_memory: true
logging:
  level: debug
connections:
  - name: feedforward
    source: {count: 10}
    target: {count: 8}
    rule: {kind: within, radius: 1, p: 0.5, n: 2}
  - name: tail
    source: {count: 2, offset: 8}
    target: {count: 2, offset: 6}
`

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 1024, cfg.BufferSize)
	assert.Equal(t, int64(1), cfg.Seed)
	assert.Equal(t, StorageMemory, cfg.Storage.Kind)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Connections)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 10, cfg.SourceSize)
	assert.Equal(t, 64, cfg.BufferSize)
	assert.Equal(t, int64(1<<20), cfg.MemoryLimitBytes)
	assert.True(t, cfg.Storage.InMemory)
	require.Len(t, cfg.Connections, 2)

	ff := cfg.Connections[0]
	assert.Equal(t, 0.5, ff.Rule.Probability())
	assert.Equal(t, 2, ff.Rule.Repetitions())
	assert.Equal(t, pairs.Population{Count: 10}, ff.Source.Pairs())

	tail := cfg.Connections[1]
	assert.Equal(t, "", tail.Rule.Kind)
	assert.Equal(t, 1.0, tail.Rule.Probability())
	assert.Equal(t, 1, tail.Rule.Repetitions())
	assert.Equal(t, pairs.Population{Count: 2, Offset: 6}, tail.Target.Pairs())
}

func TestParse_EmptyKeepsDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("source_size: 1\nsorce_size: 2\n"))
	require.Error(t, err)
}

func TestRule_Predicate(t *testing.T) {
	n0 := 0
	tests := []struct {
		name string
		rule Rule
		pair pairs.Pair
		want pairs.Decision
	}{
		{"all", Rule{Kind: RuleAll}, pairs.Pair{I: 3, J: 1}, pairs.Decision{Accept: true, P: 1, N: 1}},
		{"one to one hit", Rule{Kind: RuleOneToOne}, pairs.Pair{I: 2, J: 2}, pairs.Decision{Accept: true, P: 1, N: 1}},
		{"one to one miss", Rule{Kind: RuleOneToOne}, pairs.Pair{I: 2, J: 1}, pairs.Decision{}},
		{"no self", Rule{Kind: RuleNoSelf}, pairs.Pair{Pre: 4, Post: 4}, pairs.Decision{}},
		{"within", Rule{Kind: RuleWithin, Radius: 1}, pairs.Pair{I: 5, J: 4}, pairs.Decision{Accept: true, P: 1, N: 1}},
		{"zero repetitions", Rule{N: &n0}, pairs.Pair{}, pairs.Decision{Accept: true, P: 1, N: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Predicate()(tt.pair))
		})
	}
}

func TestValidate(t *testing.T) {
	zero, neg, big := 0.0, -1, 1.5
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"negative size", func(c *Config) { c.SourceSize = -1 }},
		{"zero buffer", func(c *Config) { c.BufferSize = 0 }},
		{"negative memory limit", func(c *Config) { c.MemoryLimitBytes = -1 }},
		{"unknown storage", func(c *Config) { c.Storage.Kind = "s3" }},
		{"badger without dir", func(c *Config) { c.Storage = StorageConfig{Kind: StorageBadger} }},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }},
		{"no connections", func(c *Config) { c.Connections = nil }},
		{"source outside group", func(c *Config) { c.Connections[0].Source = Population{Count: 4, Offset: 8} }},
		{"negative target count", func(c *Config) { c.Connections[0].Target.Count = -2 }},
		{"unknown rule", func(c *Config) { c.Connections[0].Rule.Kind = "gaussian" }},
		{"negative radius", func(c *Config) { c.Connections[0].Rule = Rule{Kind: RuleWithin, Radius: -1} }},
		{"zero p", func(c *Config) { c.Connections[0].Rule.P = &zero }},
		{"p above one", func(c *Config) { c.Connections[0].Rule.P = &big }},
		{"negative n", func(c *Config) { c.Connections[0].Rule.N = &neg }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(sample))
			require.NoError(t, err)
			tt.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestLoad_WithEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	t.Setenv("SYNAPTIC_SEED", "99")
	t.Setenv("SYNAPTIC_LOG_LEVEL", "warn")
	t.Setenv("SYNAPTIC_BUFFER_SIZE", "3")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 3, cfg.BufferSize)

	t.Setenv("SYNAPTIC_BUFFER_SIZE", "0")
	_, err = Load(path)
	require.ErrorIs(t, err, ErrInvalid)

	t.Setenv("SYNAPTIC_SEED", "abc")
	_, err = Load(path)
	require.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
