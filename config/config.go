// SPDX-License-Identifier: MIT

// Package config loads the YAML description of a network to connect: group
// sizes, builder tuning, storage, logging and the list of connection rules.
//
//	source_size: 100
//	target_size: 100
//	seed: 42
//	connections:
//	  - name: recurrent
//	    source: {count: 100}
//	    target: {count: 100}
//	    rule: {kind: no_self, p: 0.1}
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/synaptic/logging"
	"github.com/katalvlaran/synaptic/pairs"
	"github.com/katalvlaran/synaptic/predicate"
)

// ErrInvalid indicates a configuration that fails Validate.
var ErrInvalid = errors.New("config: invalid configuration")

// Storage kinds.
const (
	StorageMemory = "memory"
	StorageBadger = "badger"
)

// Rule kinds.
const (
	RuleAll      = "all"
	RuleOneToOne = "one_to_one"
	RuleNoSelf   = "no_self"
	RuleWithin   = "within"
)

// Config is the root document.
type Config struct {
	// SourceSize and TargetSize fix the neuron id spaces of the two groups.
	SourceSize int `yaml:"source_size"`
	TargetSize int `yaml:"target_size"`

	// BufferSize is the staging capacity per flush.
	BufferSize int `yaml:"buffer_size"`

	// Seed seeds the sampler used by probabilistic rules.
	Seed int64 `yaml:"seed"`

	// MemoryLimitBytes caps in-memory edge and adjacency storage (0 = unlimited).
	MemoryLimitBytes int64 `yaml:"memory_limit_bytes"`

	Storage     StorageConfig `yaml:"storage"`
	Logging     LoggingConfig `yaml:"logging"`
	Connections []Connection  `yaml:"connections"`
}

// StorageConfig selects where the edge list lives.
type StorageConfig struct {
	// Kind is "memory" (default) or "badger".
	Kind string `yaml:"kind"`
	// Dir is the badger directory; required unless InMemory is set.
	Dir string `yaml:"dir,omitempty"`
	// InMemory runs badger without touching disk.
	InMemory bool `yaml:"in_memory,omitempty"`
}

// LoggingConfig configures the CLI logger.
type LoggingConfig struct {
	// Level is "debug", "info" (default), "warn" or "error".
	Level string `yaml:"level"`
}

// Connection is one Connect call.
type Connection struct {
	Name   string     `yaml:"name"`
	Source Population `yaml:"source"`
	Target Population `yaml:"target"`
	Rule   Rule       `yaml:"rule"`
}

// Population is a block of neurons inside a group.
type Population struct {
	Count  int `yaml:"count"`
	Offset int `yaml:"offset"`
}

// Pairs converts p to the enumerator's population type.
func (p Population) Pairs() pairs.Population {
	return pairs.Population{Count: p.Count, Offset: p.Offset}
}

// Rule selects and parameterizes a predicate. P and N default to 1.
type Rule struct {
	Kind   string   `yaml:"kind"`
	P      *float64 `yaml:"p,omitempty"`
	N      *int     `yaml:"n,omitempty"`
	Radius int      `yaml:"radius,omitempty"`
}

// Probability returns P or its default.
func (r Rule) Probability() float64 {
	if r.P == nil {
		return 1
	}
	return *r.P
}

// Repetitions returns N or its default.
func (r Rule) Repetitions() int {
	if r.N == nil {
		return 1
	}
	return *r.N
}

// Predicate builds the predicate r describes. Call Validate first; invalid
// parameters make the predicate constructors panic.
func (r Rule) Predicate() pairs.Predicate {
	var cond predicate.Cond
	switch r.Kind {
	case RuleOneToOne:
		cond = predicate.OneToOne()
	case RuleNoSelf:
		cond = predicate.NoSelf()
	case RuleWithin:
		cond = predicate.Within(r.Radius)
	default:
		cond = predicate.Always()
	}
	return predicate.If(cond, r.Probability(), r.Repetitions())
}

// Default returns a Config with sensible defaults and no connections.
func Default() *Config {
	return &Config{
		BufferSize: 1024,
		Seed:       1,
		Storage:    StorageConfig{Kind: StorageMemory},
		Logging:    LoggingConfig{Level: logging.LevelNameInfo},
	}
}

// Load reads path, applies environment overrides and validates the result.
// Overrides: SYNAPTIC_LOG_LEVEL, SYNAPTIC_SEED, SYNAPTIC_BUFFER_SIZE.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML over Default. Unknown keys are rejected. Parse does not
// validate.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Validate checks the whole document and reports the first problem wrapped
// in ErrInvalid.
func (c *Config) Validate() error {
	if c.SourceSize < 0 || c.TargetSize < 0 {
		return invalid("group sizes must be non-negative, got source_size=%d target_size=%d", c.SourceSize, c.TargetSize)
	}
	if c.BufferSize < 1 {
		return invalid("buffer_size must be at least 1, got %d", c.BufferSize)
	}
	if c.MemoryLimitBytes < 0 {
		return invalid("memory_limit_bytes must be non-negative, got %d", c.MemoryLimitBytes)
	}
	switch c.Storage.Kind {
	case "", StorageMemory:
	case StorageBadger:
		if c.Storage.Dir == "" && !c.Storage.InMemory {
			return invalid("storage.dir is required for badger unless storage.in_memory is set")
		}
	default:
		return invalid("invalid storage.kind: %s (valid: memory, badger)", c.Storage.Kind)
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return invalid("invalid log level: %s (valid: debug, info, warn, error)", c.Logging.Level)
	}
	if len(c.Connections) == 0 {
		return invalid("at least one connection is required")
	}
	for i, conn := range c.Connections {
		if err := conn.validate(c.SourceSize, c.TargetSize); err != nil {
			return fmt.Errorf("connection %d (%s): %w", i, conn.Name, err)
		}
	}
	return nil
}

func (conn Connection) validate(sourceSize, targetSize int) error {
	if err := conn.Source.validate("source", sourceSize); err != nil {
		return err
	}
	if err := conn.Target.validate("target", targetSize); err != nil {
		return err
	}
	r := conn.Rule
	switch r.Kind {
	case "", RuleAll, RuleOneToOne, RuleNoSelf:
	case RuleWithin:
		if r.Radius < 0 {
			return invalid("rule.radius must be non-negative, got %d", r.Radius)
		}
	default:
		return invalid("invalid rule.kind: %s (valid: all, one_to_one, no_self, within)", r.Kind)
	}
	if p := r.Probability(); !(p > 0 && p <= 1) {
		return invalid("rule.p must be in (0,1], got %g", p)
	}
	if n := r.Repetitions(); n < 0 {
		return invalid("rule.n must be non-negative, got %d", n)
	}
	return nil
}

func (p Population) validate(side string, size int) error {
	if p.Count < 0 || p.Offset < 0 || p.Offset+p.Count > size {
		return invalid("%s population [%d,%d) outside group of %d", side, p.Offset, p.Offset+p.Count, size)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("SYNAPTIC_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SYNAPTIC_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("SYNAPTIC_SEED: %w", err)
		}
		cfg.Seed = seed
	}
	if v := os.Getenv("SYNAPTIC_BUFFER_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SYNAPTIC_BUFFER_SIZE: %w", err)
		}
		cfg.BufferSize = n
	}
	return nil
}
