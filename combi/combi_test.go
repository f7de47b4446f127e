package combi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/puzzles/combi"
)

func collect(c *combi.Combi) [][]int {
	var out [][]int
	for {
		idx, ok := c.Next()
		if !ok {
			return out
		}
		cp := make([]int, len(idx))
		copy(cp, idx)
		out = append(out, cp)
	}
}

func TestNext_Lexicographic(t *testing.T) {
	c := combi.New(2, 4)
	want := [][]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	assert.Equal(t, want, collect(c))
}

func TestNext_CountMatchesTotal(t *testing.T) {
	for _, tc := range []struct{ r, n int }{
		{0, 0}, {0, 5}, {1, 5}, {3, 7}, {5, 5}, {4, 9},
	} {
		c := combi.New(tc.r, tc.n)
		got := collect(c)
		require.Len(t, got, c.Total(), "r=%d n=%d", tc.r, tc.n)
	}
}

func TestNext_EmptySubset(t *testing.T) {
	c := combi.New(0, 3)
	idx, ok := c.Next()
	require.True(t, ok)
	assert.Empty(t, idx)
	_, ok = c.Next()
	assert.False(t, ok)
}

func TestNext_ExhaustedStaysExhausted(t *testing.T) {
	c := combi.New(2, 2)
	_, ok := c.Next()
	require.True(t, ok)
	_, ok = c.Next()
	require.False(t, ok)
	_, ok = c.Next()
	assert.False(t, ok)
}

func TestReset(t *testing.T) {
	c := combi.New(2, 3)
	first := collect(c)
	c.Reset()
	assert.Equal(t, first, collect(c))
}

func TestTotal(t *testing.T) {
	assert.Equal(t, 1, combi.New(0, 6).Total())
	assert.Equal(t, 6, combi.New(1, 6).Total())
	assert.Equal(t, 20, combi.New(3, 6).Total())
	assert.Equal(t, 1, combi.New(6, 6).Total())
}

func TestNew_PanicsOnBadParams(t *testing.T) {
	assert.Panics(t, func() { combi.New(-1, 3) })
	assert.Panics(t, func() { combi.New(4, 3) })
}
