package growable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/synaptic/growable"
)

func TestSlice_AppendSegmentPreservesOrder(t *testing.T) {
	s := growable.NewSlice(nil)
	require.NoError(t, s.AppendSegment([]int32{1, 2, 3}))
	require.NoError(t, s.AppendSegment(nil))
	require.NoError(t, s.AppendSegment([]int32{4}))
	require.NoError(t, s.Append(5))

	assert.Equal(t, 5, s.Len())
	assert.Equal(t, []int32{1, 2, 3, 4, 5}, s.View())
	assert.GreaterOrEqual(t, s.Cap(), s.Len())
}

func TestSlice_GrowToExtendsWithoutSlack(t *testing.T) {
	s := growable.NewSlice(nil)
	require.NoError(t, s.AppendSegment([]int32{7, 8}))
	require.NoError(t, s.GrowTo(40))

	assert.Equal(t, 40, s.Len(), "Len must be the logical length, not the reservation")
	v, err := s.At(1)
	require.NoError(t, err)
	assert.Equal(t, int32(8), v)

	require.NoError(t, s.GrowTo(40), "growing to the current length is a no-op")
	err = s.GrowTo(3)
	require.ErrorIs(t, err, growable.ErrInvalidLength)
	assert.Equal(t, 40, s.Len())
}

func TestSlice_GrowToBeyondMaxLen(t *testing.T) {
	s := growable.NewSlice(nil)
	err := s.GrowTo(growable.MaxLen + 1)
	require.ErrorIs(t, err, growable.ErrAllocationFailure)
	assert.Zero(t, s.Len())
}

func TestSlice_GeometricGrowth(t *testing.T) {
	s := growable.NewSlice(nil)
	moves := 0
	lastCap := s.Cap()
	for i := 0; i < 10_000; i++ {
		require.NoError(t, s.Append(int32(i)))
		if s.Cap() != lastCap {
			moves++
			lastCap = s.Cap()
		}
	}
	// 16 → 32 → … → 16384 is 11 reservations; exact-size growth would be 10000.
	assert.LessOrEqual(t, moves, 12)
	assert.Equal(t, 10_000, s.Len())
}

func TestSlice_TrimKeepsContents(t *testing.T) {
	b := growable.NewBudget(0)
	s := growable.NewSlice(b)
	for i := 0; i < 17; i++ {
		require.NoError(t, s.Append(int32(i*3)))
	}
	before, err := s.Values()
	require.NoError(t, err)
	require.Equal(t, int64(32*growable.ElementSize), b.Used())

	s.Trim()
	assert.Equal(t, 17, s.Cap())
	assert.Equal(t, before, s.View())
	assert.Equal(t, int64(17*growable.ElementSize), b.Used())

	s.Release()
	assert.Zero(t, s.Len())
	assert.Zero(t, b.Used())
}

func TestSlice_Truncate(t *testing.T) {
	s := growable.NewSlice(nil)
	require.NoError(t, s.AppendSegment([]int32{1, 2, 3, 4}))
	require.NoError(t, s.Truncate(2))
	assert.Equal(t, []int32{1, 2}, s.View())

	require.ErrorIs(t, s.Truncate(3), growable.ErrInvalidLength)
	require.ErrorIs(t, s.Truncate(-1), growable.ErrInvalidLength)
	_, err := s.At(2)
	require.ErrorIs(t, err, growable.ErrInvalidLength)
}

func TestSlice_ViewIsCapped(t *testing.T) {
	s := growable.NewSlice(nil)
	require.NoError(t, s.AppendSegment([]int32{1, 2}))
	v := s.View()
	v = append(v, 99)
	_ = v
	require.NoError(t, s.Append(3))
	assert.Equal(t, []int32{1, 2, 3}, s.View())
}

func TestSlice_BudgetRefusalIsAtomic(t *testing.T) {
	// 16 slots fit, the doubling to 32 does not.
	b := growable.NewBudget(20 * growable.ElementSize)
	s := growable.NewSlice(b)

	seg := make([]int32, 16)
	for i := range seg {
		seg[i] = int32(i)
	}
	require.NoError(t, s.AppendSegment(seg))

	err := s.AppendSegment([]int32{100, 101})
	require.ErrorIs(t, err, growable.ErrAllocationFailure)
	assert.Equal(t, 16, s.Len(), "failed append must not change the length")
	assert.Equal(t, seg, s.View())
	assert.Equal(t, int64(16*growable.ElementSize), b.Used())
}

func TestReadAll(t *testing.T) {
	s := growable.NewSlice(nil)
	require.NoError(t, s.AppendSegment([]int32{4, 5}))

	vals, ok, err := growable.ReadAll(s)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []int32{4, 5}, vals)

	vals[0] = 0
	assert.Equal(t, []int32{4, 5}, s.View(), "Values must return a copy")
}
