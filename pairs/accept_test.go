package pairs_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/synaptic/pairs"
)

// scripted returns samples in call order and records the keys it was asked for.
type scripted struct {
	vals []float64
	keys []int
}

func (s *scripted) Sample(vidx int) float64 {
	s.keys = append(s.keys, vidx)
	v := s.vals[0]
	s.vals = s.vals[1:]
	return v
}

func collect(t *testing.T, seq func(func(pairs.Candidate, error) bool)) ([]pairs.Candidate, error) {
	t.Helper()
	var out []pairs.Candidate
	for c, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, c)
	}
	return out, nil
}

func newEnum(t *testing.T, ns, nt int) *pairs.Enumerator {
	t.Helper()
	e, err := pairs.NewEnumerator(pairs.Population{Count: ns}, pairs.Population{Count: nt})
	require.NoError(t, err)
	return e
}

func TestAccepted_ProbabilityBoundaryRejects(t *testing.T) {
	s := &scripted{vals: []float64{0.1, 0.6, 0.4, 0.9, 0.0, 0.5}}
	var tally pairs.Tally
	got, err := collect(t, pairs.Accepted(newEnum(t, 3, 2),
		func(pairs.Pair) pairs.Decision { return pairs.Connect(0.5, 1) }, s, &tally))
	require.NoError(t, err)

	var ij [][2]int
	for _, c := range got {
		ij = append(ij, [2]int{c.I, c.J})
	}
	assert.Equal(t, [][2]int{{0, 0}, {1, 0}, {2, 0}}, ij)
	assert.Equal(t, []int{0, 1, 0, 1, 0, 1}, s.keys, "sampler is keyed by the target index")
	assert.Equal(t, pairs.Tally{Pairs: 6, Rejected: 3, Accepted: 3, Candidates: 3}, tally)
}

func TestAccepted_SkipDoesNotSample(t *testing.T) {
	s := &scripted{vals: []float64{0.0}}
	pred := func(p pairs.Pair) pairs.Decision {
		if p.I == 1 && p.J == 1 {
			return pairs.Connect(0.5, 1)
		}
		return pairs.Reject
	}
	got, err := collect(t, pairs.Accepted(newEnum(t, 2, 2), pred, s, nil))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []int{1}, s.keys)
}

func TestAccepted_CertainPairsNeverSample(t *testing.T) {
	got, err := collect(t, pairs.Accepted(newEnum(t, 2, 3),
		func(pairs.Pair) pairs.Decision { return pairs.Connect(1, 1) }, nil, nil))
	require.NoError(t, err)
	assert.Len(t, got, 6)
}

func TestAccepted_Repetitions(t *testing.T) {
	pred := func(p pairs.Pair) pairs.Decision {
		if p.I == 0 && p.J == 1 {
			return pairs.Connect(1, 3)
		}
		return pairs.Connect(1, 0)
	}
	var tally pairs.Tally
	got, err := collect(t, pairs.Accepted(newEnum(t, 2, 2), pred, nil, &tally))
	require.NoError(t, err)
	require.Len(t, got, 3)
	for r, c := range got {
		assert.Equal(t, r, c.Repetition)
		assert.Equal(t, int32(0), c.Pre)
		assert.Equal(t, int32(1), c.Post)
	}
	assert.Equal(t, 4, tally.Accepted, "n=0 still counts as an accepted pair")
	assert.Equal(t, 3, tally.Candidates)
}

func TestAccepted_ContractViolations(t *testing.T) {
	tests := []struct {
		name    string
		d       pairs.Decision
		sampler pairs.Sampler
		want    error
	}{
		{"p zero", pairs.Connect(0, 1), nil, pairs.ErrPredicateContract},
		{"p above one", pairs.Connect(1.5, 1), nil, pairs.ErrPredicateContract},
		{"p NaN", pairs.Connect(math.NaN(), 1), nil, pairs.ErrPredicateContract},
		{"negative n", pairs.Connect(1, -1), nil, pairs.ErrPredicateContract},
		{"missing sampler", pairs.Connect(0.3, 1), nil, pairs.ErrNeedSampler},
		{"sample is one", pairs.Connect(0.3, 1), pairs.SamplerFunc(func(int) float64 { return 1 }), pairs.ErrSamplerContract},
		{"sample negative", pairs.Connect(0.3, 1), pairs.SamplerFunc(func(int) float64 { return -0.1 }), pairs.ErrSamplerContract},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := collect(t, pairs.Accepted(newEnum(t, 2, 2),
				func(pairs.Pair) pairs.Decision { return tt.d }, tt.sampler, nil))
			require.ErrorIs(t, err, tt.want)
			assert.Empty(t, got, "nothing may be yielded for the violating pair")
		})
	}
}

func TestAccepted_EarlyBreak(t *testing.T) {
	e := newEnum(t, 10, 10)
	n := 0
	for _, err := range pairs.Accepted(e, func(pairs.Pair) pairs.Decision { return pairs.Connect(1, 2) }, nil, nil) {
		require.NoError(t, err)
		n++
		if n == 5 {
			break
		}
	}
	assert.Equal(t, 5, n)
}
