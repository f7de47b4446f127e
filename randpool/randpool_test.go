package randpool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/puzzles/randpool"
)

func TestNew_DeterministicStream(t *testing.T) {
	a := randpool.NewString("123456")
	b := randpool.NewString("123456")

	for i := 0; i < 200; i++ {
		require.Equal(t, a.Bits(31), b.Bits(31), "draw %d diverged", i)
	}
}

func TestNew_DistinctSeedsDiverge(t *testing.T) {
	a := randpool.NewString("seed-a")
	b := randpool.NewString("seed-b")

	same := true
	for i := 0; i < 16; i++ {
		if a.Byte() != b.Byte() {
			same = false
		}
	}
	assert.False(t, same, "independent seeds produced identical 16-byte prefix")
}

func TestBits_MaskedToWidth(t *testing.T) {
	p := randpool.NewString("width")
	for k := 1; k <= 32; k++ {
		v := p.Bits(k)
		if k < 32 {
			assert.Less(t, uint64(v), uint64(1)<<uint(k), "Bits(%d) out of range", k)
		}
	}
}

func TestBits_PanicsOutOfRange(t *testing.T) {
	p := randpool.NewString("x")
	assert.Panics(t, func() { p.Bits(0) })
	assert.Panics(t, func() { p.Bits(33) })
}

func TestUpto_InRange(t *testing.T) {
	p := randpool.NewString("upto")
	for _, limit := range []int{1, 2, 3, 7, 10, 100, 100000000} {
		for i := 0; i < 50; i++ {
			v := p.Upto(limit)
			assert.GreaterOrEqual(t, v, 0)
			assert.Less(t, v, limit)
		}
	}
}

func TestUpto_LimitOneAlwaysZero(t *testing.T) {
	p := randpool.NewString("one")
	for i := 0; i < 20; i++ {
		require.Zero(t, p.Upto(1))
	}
}

func TestUpto_CoversAllResidues(t *testing.T) {
	p := randpool.NewString("coverage")
	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		seen[p.Upto(5)] = true
	}
	assert.Len(t, seen, 5)
}

func TestShuffleInts_IsPermutation(t *testing.T) {
	p := randpool.NewString("shuffle")
	a := make([]int, 50)
	for i := range a {
		a[i] = i
	}
	randpool.ShuffleInts(a, p)

	seen := make([]bool, len(a))
	for _, v := range a {
		require.False(t, seen[v], "duplicate element %d", v)
		seen[v] = true
	}
}

func TestShuffleInts_Deterministic(t *testing.T) {
	mk := func() []int {
		p := randpool.NewString("same-seed")
		a := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
		randpool.ShuffleInts(a, p)
		return a
	}
	assert.Equal(t, mk(), mk())
}

func TestStream_CrossesBlockBoundary(t *testing.T) {
	// 20 bytes per block; draw well past several refills.
	p := randpool.NewString("blocks")
	q := randpool.NewString("blocks")
	for i := 0; i < 25; i++ {
		require.Equal(t, p.Bits(32), q.Bits(32))
	}
}
