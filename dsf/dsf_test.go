package dsf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/puzzles/dsf"
)

func TestNew_Singletons(t *testing.T) {
	d := dsf.New(8)
	for i := 0; i < 8; i++ {
		assert.Equal(t, i, d.Canonify(i))
		assert.Equal(t, 1, d.Size(i))
	}
}

func TestMerge_SmallestIndexWins(t *testing.T) {
	d := dsf.New(10)

	d.Merge(7, 3)
	assert.Equal(t, 3, d.Canonify(7))

	d.Merge(3, 9)
	assert.Equal(t, 3, d.Canonify(9))

	// Even when the smaller element arrives via the second argument of a
	// merge between two established classes.
	d.Merge(5, 6)
	d.Merge(7, 5)
	assert.Equal(t, 3, d.Canonify(5))
	assert.Equal(t, 3, d.Canonify(6))
}

func TestMerge_SizesAccumulate(t *testing.T) {
	d := dsf.New(6)
	d.Merge(0, 1)
	d.Merge(2, 3)
	assert.Equal(t, 2, d.Size(1))

	d.Merge(1, 3)
	assert.Equal(t, 4, d.Size(2))
	assert.Equal(t, 2, d.Size(4+1))
}

func TestMerge_Idempotent(t *testing.T) {
	d := dsf.New(4)
	d.Merge(1, 2)
	d.Merge(2, 1)
	assert.Equal(t, 2, d.Size(1))
}

func TestEquivalent(t *testing.T) {
	d := dsf.New(5)
	assert.False(t, d.Equivalent(0, 4))
	d.Merge(0, 4)
	assert.True(t, d.Equivalent(0, 4))
	assert.False(t, d.Equivalent(1, 4))
}

func TestMergeFlip_TracksParity(t *testing.T) {
	d := dsf.New(6)

	d.MergeFlip(0, 1, true)  // 1 is opposite to 0
	d.MergeFlip(1, 2, true)  // 2 is opposite to 1, so same as 0
	d.MergeFlip(2, 3, false) // 3 same as 2

	_, f1 := d.CanonifyFlip(1)
	_, f2 := d.CanonifyFlip(2)
	_, f3 := d.CanonifyFlip(3)
	assert.True(t, f1)
	assert.False(t, f2)
	assert.False(t, f3)
}

func TestMergeFlip_ConsistentReassertionIsNoop(t *testing.T) {
	d := dsf.New(4)
	d.MergeFlip(0, 1, true)
	assert.NotPanics(t, func() { d.MergeFlip(0, 1, true) })
	assert.NotPanics(t, func() { d.MergeFlip(1, 0, true) })
	assert.Equal(t, 2, d.Size(0))
}

func TestMergeFlip_ContradictionPanics(t *testing.T) {
	d := dsf.New(4)
	d.MergeFlip(0, 1, true)
	assert.Panics(t, func() { d.MergeFlip(0, 1, false) })
}

func TestMergeFlip_ParityAcrossClassJoin(t *testing.T) {
	d := dsf.New(8)

	// Two chains with internal parity, then joined.
	d.MergeFlip(0, 1, true)
	d.MergeFlip(4, 5, true)
	d.MergeFlip(1, 5, false) // 1 and 5 equal ⇒ 0 and 4 equal

	r0, f0 := d.CanonifyFlip(0)
	r4, f4 := d.CanonifyFlip(4)
	require.Equal(t, r0, r4)
	assert.Equal(t, f0, f4)

	_, f1 := d.CanonifyFlip(1)
	_, f5 := d.CanonifyFlip(5)
	assert.Equal(t, f1, f5)
	assert.NotEqual(t, f0, f1)
}

func TestInit_ReusesStorage(t *testing.T) {
	d := dsf.New(10)
	d.Merge(0, 9)
	d.Init(4)

	require.Equal(t, 4, d.Len())
	for i := 0; i < 4; i++ {
		assert.Equal(t, i, d.Canonify(i))
		assert.Equal(t, 1, d.Size(i))
	}
}

func TestCanonify_LongChainCompresses(t *testing.T) {
	d := dsf.New(100)
	for i := 1; i < 100; i++ {
		d.Merge(i-1, i)
	}
	for i := 0; i < 100; i++ {
		require.Equal(t, 0, d.Canonify(i))
	}
	assert.Equal(t, 100, d.Size(57))
}
