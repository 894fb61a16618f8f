// SPDX-License-Identifier: MIT
// File: connect.go
// Role: the Connect pipeline: validate → enumerate/decide/sample → stage →
//       flush → trim, plus the rollback that keeps storage consistent when
//       any step fails.
// Determinism:
//   - Pairs are visited source-major, ids are assigned in visit order, and
//     the sampler is consulted once per accepted pair with P != 1. Given the
//     same sampler state the output does not depend on the buffer size.
// Concurrency:
//   - One Connect at a time per Builder; overlap is reported as ErrBusy.

package synapses

import (
	"fmt"
	"time"

	"github.com/katalvlaran/synaptic/growable"
	"github.com/katalvlaran/synaptic/pairs"
	"github.com/katalvlaran/synaptic/staging"
)

// Stats summarizes one Connect call. On error it describes the work done
// before the failure; Created then counts only the synapses that survived
// the rollback.
type Stats struct {
	Pairs    int // pairs enumerated
	Skipped  int // pairs the predicate declined
	Rejected int // pairs that lost the sampler draw
	Accepted int // pairs that produced synapses
	Created  int // synapses appended to the edge list
	FirstID  int // id of the first synapse of this call
	Flushes  int // completed staging flushes
	Duration time.Duration
}

// Connect creates synapses for every pair of src × tgt that pred accepts.
//
// For each pair in source-major order the predicate decides; when it accepts
// with P != 1 one sampler draw u is taken and the pair is dropped when u ≥ P;
// a surviving pair yields N synapses with consecutive ids. New ids continue
// after the synapses already stored.
//
// Steps:
//  1. Claim the builder (Idle → Enumerating) or fail with ErrBusy.
//  2. Validate both populations against the neuron space.
//  3. Stream candidates: append each to both adjacency indexes, then stage
//     it; a full staging buffer flushes into the edge list.
//  4. Enter Flushing, flush the remainder, trim adjacency storage.
//  5. Return to Idle.
//
// On error the edge list keeps the segments flushed before the failure and
// the adjacency indexes are rolled back to the same prefix.
//
// Complexity: O(|src|·|tgt| + E) time; O(C) staging memory.
func (b *Builder) Connect(src, tgt pairs.Population, pred pairs.Predicate) (Stats, error) {
	if pred == nil {
		return Stats{}, fmt.Errorf("%s: %w", MethodConnect, ErrNilPredicate)
	}
	if !b.state.CompareAndSwap(int32(Idle), int32(Enumerating)) {
		return Stats{}, fmt.Errorf("%s: builder %s: %w", MethodConnect, b.State(), ErrBusy)
	}
	defer b.state.Store(int32(Idle))

	start := time.Now()
	stats := Stats{FirstID: b.edges.Len()}
	if err := b.checkPopulations(src, tgt); err != nil {
		return stats, err
	}
	enum, err := pairs.NewEnumerator(src, tgt)
	if err != nil {
		return stats, fmt.Errorf("%s: %w: %w", MethodConnect, ErrInvalidPopulationIndex, err)
	}

	log := b.cfg.logger.With("method", MethodConnect)
	sink, err := staging.NewPair(b.edges.Pre, b.edges.Post, b.cfg.bufferSize,
		staging.WithFlushHook(func(n int) {
			stats.Flushes++
			log.Debug("segment flushed", "entries", n, "synapses", b.edges.Len())
		}))
	if err != nil {
		return stats, fmt.Errorf("%s: %w", MethodConnect, err)
	}
	defer sink.Release()

	b.pre.Mark()
	b.post.Mark()

	var tally pairs.Tally
	next := stats.FirstID
	for c, err := range pairs.Accepted(enum, pred, b.cfg.sampler, &tally) {
		if err != nil {
			return b.abort(&stats, &tally, start, err)
		}
		if next >= growable.MaxLen {
			return b.abort(&stats, &tally, start,
				fmt.Errorf("synapse id space exhausted at %d: %w", next, ErrAllocationFailure))
		}
		id := int32(next)
		// Adjacency first: a candidate only reaches the edge list once both
		// indexes hold it, so a flush never publishes an unindexed id.
		if err := b.pre.Append(int(c.Pre), id); err != nil {
			return b.abort(&stats, &tally, start, err)
		}
		if err := b.post.Append(int(c.Post), id); err != nil {
			return b.abort(&stats, &tally, start, err)
		}
		if err := sink.Append(c.Pre, c.Post); err != nil {
			return b.abort(&stats, &tally, start, err)
		}
		next++
	}

	b.state.Store(int32(Flushing))
	if err := sink.Flush(); err != nil {
		return b.abort(&stats, &tally, start, err)
	}
	b.pre.Trim()
	b.post.Trim()

	fillTally(&stats, &tally)
	stats.Created = b.edges.Len() - stats.FirstID
	stats.Duration = time.Since(start)
	log.Info("connect finished",
		"pairs", stats.Pairs,
		"accepted", stats.Accepted,
		"created", stats.Created,
		"synapses", b.edges.Len(),
		"flushes", stats.Flushes,
		"duration", stats.Duration)

	return stats, nil
}

// ConnectAll runs Connect over the whole source × target space.
func (b *Builder) ConnectAll(pred pairs.Predicate) (Stats, error) {
	return b.Connect(
		pairs.Population{Count: b.sourceSize},
		pairs.Population{Count: b.targetSize},
		pred,
	)
}

// checkPopulations rejects populations outside the neuron space before
// anything is mutated.
func (b *Builder) checkPopulations(src, tgt pairs.Population) error {
	if err := src.Validate(); err != nil {
		return fmt.Errorf("%s: source: %w: %w", MethodConnect, ErrInvalidPopulationIndex, err)
	}
	if err := tgt.Validate(); err != nil {
		return fmt.Errorf("%s: target: %w: %w", MethodConnect, ErrInvalidPopulationIndex, err)
	}
	if err := b.pre.CheckRange(src.Offset, src.Count); err != nil {
		return fmt.Errorf("%s: source: %w", MethodConnect, err)
	}
	if err := b.post.CheckRange(tgt.Offset, tgt.Count); err != nil {
		return fmt.Errorf("%s: target: %w", MethodConnect, err)
	}
	return nil
}

// abort restores the consistent prefix after a failure: adjacency entries
// whose ids never reached the edge list are removed. Staged entries are
// dropped by the deferred sink.Release.
func (b *Builder) abort(stats *Stats, tally *pairs.Tally, start time.Time, cause error) (Stats, error) {
	limit := min(b.edges.Pre.Len(), b.edges.Post.Len())
	dropped := b.pre.Rollback(int32(limit))
	b.post.Rollback(int32(limit))
	b.pre.Trim()
	b.post.Trim()

	fillTally(stats, tally)
	stats.Created = limit - stats.FirstID
	stats.Duration = time.Since(start)
	b.cfg.logger.Warn("connect aborted",
		"method", MethodConnect,
		"created", stats.Created,
		"dropped", dropped,
		"error", cause)

	return *stats, fmt.Errorf("%s: %w", MethodConnect, cause)
}

func fillTally(stats *Stats, tally *pairs.Tally) {
	stats.Pairs = tally.Pairs
	stats.Skipped = tally.Skipped
	stats.Rejected = tally.Rejected
	stats.Accepted = tally.Accepted
}
