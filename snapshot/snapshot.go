// SPDX-License-Identifier: MIT
// File: snapshot.go
// Role: compressed on-disk form of a synapse set.
// Determinism:
//   - Write output depends only on the Snapshot contents and the encoder
//     level; synapse order is preserved.

// Package snapshot persists an edge list in a compact, compressed format so a
// built network can be reloaded without rerunning the connection rules.
//
// Layout (inside one zstd stream):
//
//	"SYNE"            magic
//	version           1 byte
//	sourceSize        uvarint
//	targetSize        uvarint
//	edgeCount         uvarint
//	edgeCount × (pre uvarint, post uvarint)
//
// Adjacency is not stored; Restore rebuilds it from the edge list.
package snapshot

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/katalvlaran/synaptic/growable"
	"github.com/katalvlaran/synaptic/synapses"
)

const (
	// Magic opens every snapshot stream.
	Magic = "SYNE"
	// Version is the format version written by Write.
	Version byte = 1

	// preallocLimit bounds the capacity reserved from an untrusted count.
	preallocLimit = 1 << 20
)

var (
	// ErrBadMagic indicates the stream is not a snapshot.
	ErrBadMagic = errors.New("snapshot: bad magic")
	// ErrUnsupportedVersion indicates a snapshot from a newer format.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")
	// ErrCorrupt indicates a truncated stream or out-of-range values.
	ErrCorrupt = errors.New("snapshot: corrupt data")
	// ErrMismatchedEdges indicates Pre and Post of different lengths.
	ErrMismatchedEdges = errors.New("snapshot: pre and post lengths differ")
)

// Snapshot is a synapse set between SourceSize source neurons and
// TargetSize target neurons; synapse k connects Pre[k] → Post[k].
type Snapshot struct {
	SourceSize int
	TargetSize int
	Pre        []int32
	Post       []int32
}

// Len returns the number of synapses.
func (s Snapshot) Len() int { return len(s.Pre) }

// FromBuilder captures the current synapses of b.
func FromBuilder(b *synapses.Builder) (Snapshot, error) {
	pre, post, err := b.EdgeValues()
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot.FromBuilder: %w", err)
	}
	return Snapshot{SourceSize: b.SourceSize(), TargetSize: b.TargetSize(), Pre: pre, Post: post}, nil
}

// Restore returns a Builder holding the snapshot's synapses, with adjacency
// rebuilt. opts are passed to synapses.New; WithEdgeStorage is supplied by
// Restore and must not be among them.
func (s Snapshot) Restore(opts ...synapses.Option) (*synapses.Builder, error) {
	if len(s.Pre) != len(s.Post) {
		return nil, fmt.Errorf("snapshot.Restore: %w", ErrMismatchedEdges)
	}
	pre, post := growable.NewSlice(nil), growable.NewSlice(nil)
	if err := pre.AppendSegment(s.Pre); err != nil {
		return nil, fmt.Errorf("snapshot.Restore: %w", err)
	}
	if err := post.AppendSegment(s.Post); err != nil {
		return nil, fmt.Errorf("snapshot.Restore: %w", err)
	}
	opts = append(opts, synapses.WithEdgeStorage(pre, post))
	b, err := synapses.New(s.SourceSize, s.TargetSize, opts...)
	if err != nil {
		return nil, fmt.Errorf("snapshot.Restore: %w", err)
	}
	return b, nil
}

// Option tunes Write.
type Option func(*writeConfig)

type writeConfig struct {
	level zstd.EncoderLevel
}

// WithLevel sets the zstd encoder level. Panics on an unknown level.
func WithLevel(level zstd.EncoderLevel) Option {
	if level < zstd.SpeedFastest || level > zstd.SpeedBestCompression {
		panic(fmt.Sprintf("snapshot: WithLevel(%d)", level))
	}
	return func(c *writeConfig) { c.level = level }
}

// Write encodes s to w.
func Write(w io.Writer, s Snapshot, opts ...Option) error {
	if len(s.Pre) != len(s.Post) {
		return fmt.Errorf("snapshot.Write: %d vs %d: %w", len(s.Pre), len(s.Post), ErrMismatchedEdges)
	}
	cfg := writeConfig{level: zstd.SpeedDefault}
	for _, opt := range opts {
		opt(&cfg)
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(cfg.level))
	if err != nil {
		return fmt.Errorf("snapshot.Write: create encoder: %w", err)
	}
	bw := bufio.NewWriter(enc)

	buf := make([]byte, 0, 2*binary.MaxVarintLen64)
	buf = append(buf, Magic...)
	buf = append(buf, Version)
	buf = binary.AppendUvarint(buf, uint64(s.SourceSize))
	buf = binary.AppendUvarint(buf, uint64(s.TargetSize))
	buf = binary.AppendUvarint(buf, uint64(len(s.Pre)))
	if _, err := bw.Write(buf); err != nil {
		_ = enc.Close()
		return fmt.Errorf("snapshot.Write: header: %w", err)
	}
	for k := range s.Pre {
		buf = binary.AppendUvarint(buf[:0], uint64(uint32(s.Pre[k])))
		buf = binary.AppendUvarint(buf, uint64(uint32(s.Post[k])))
		if _, err := bw.Write(buf); err != nil {
			_ = enc.Close()
			return fmt.Errorf("snapshot.Write: synapse %d: %w", k, err)
		}
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return fmt.Errorf("snapshot.Write: flush: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("snapshot.Write: close encoder: %w", err)
	}
	return nil
}

// Read decodes a snapshot from r and checks every endpoint against the
// recorded group sizes.
func Read(r io.Reader) (Snapshot, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot.Read: create decoder: %w", err)
	}
	defer dec.Close()
	br := bufio.NewReader(dec)

	head := make([]byte, len(Magic)+1)
	if _, err := io.ReadFull(br, head); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot.Read: header: %w: %w", ErrCorrupt, err)
	}
	if string(head[:len(Magic)]) != Magic {
		return Snapshot{}, fmt.Errorf("snapshot.Read: %q: %w", head[:len(Magic)], ErrBadMagic)
	}
	if v := head[len(Magic)]; v != Version {
		return Snapshot{}, fmt.Errorf("snapshot.Read: version %d: %w", v, ErrUnsupportedVersion)
	}

	src, err := readBounded(br, "source size", math.MaxInt32)
	if err != nil {
		return Snapshot{}, err
	}
	tgt, err := readBounded(br, "target size", math.MaxInt32)
	if err != nil {
		return Snapshot{}, err
	}
	n, err := readBounded(br, "edge count", growable.MaxLen)
	if err != nil {
		return Snapshot{}, err
	}

	s := Snapshot{
		SourceSize: src,
		TargetSize: tgt,
		Pre:        make([]int32, 0, min(n, preallocLimit)),
		Post:       make([]int32, 0, min(n, preallocLimit)),
	}
	for k := 0; k < n; k++ {
		p, err := readBounded(br, "pre", src-1)
		if err != nil {
			return Snapshot{}, fmt.Errorf("synapse %d: %w", k, err)
		}
		q, err := readBounded(br, "post", tgt-1)
		if err != nil {
			return Snapshot{}, fmt.Errorf("synapse %d: %w", k, err)
		}
		s.Pre = append(s.Pre, int32(p))
		s.Post = append(s.Post, int32(q))
	}
	if _, err := br.ReadByte(); !errors.Is(err, io.EOF) {
		return Snapshot{}, fmt.Errorf("snapshot.Read: trailing data: %w", ErrCorrupt)
	}

	return s, nil
}

// readBounded reads one uvarint and checks it lies in [0, limit].
func readBounded(br *bufio.Reader, what string, limit int) (int, error) {
	v, err := binary.ReadUvarint(br)
	if err != nil {
		return 0, fmt.Errorf("snapshot.Read: %s: %w: %w", what, ErrCorrupt, err)
	}
	if limit < 0 || v > uint64(limit) {
		return 0, fmt.Errorf("snapshot.Read: %s %d > %d: %w", what, v, limit, ErrCorrupt)
	}
	return int(v), nil
}

// WriteFile writes s to path, replacing any existing file.
func WriteFile(path string, s Snapshot, opts ...Option) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot.WriteFile: %w", err)
	}
	if err := Write(f, s, opts...); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("snapshot.WriteFile: %w", err)
	}
	return nil
}

// ReadFile reads the snapshot stored at path.
func ReadFile(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot.ReadFile: %w", err)
	}
	defer f.Close()
	return Read(f)
}
