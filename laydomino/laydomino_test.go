package laydomino_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/puzzles/laydomino"
	"github.com/katalvlaran/puzzles/randpool"
)

// checkTiling verifies grid describes a valid domino tiling of w x h
// with exactly wantSingles self-referring squares.
func checkTiling(t *testing.T, grid []int, w, h, wantSingles int) {
	t.Helper()
	require.Len(t, grid, w*h)

	singles := 0
	for i, j := range grid {
		if i == j {
			singles++
			continue
		}
		require.Equal(t, i, grid[j], "domino halves must point at each other")
		xi, yi := i%w, i/w
		xj, yj := j%w, j/w
		dx, dy := xi-xj, yi-yj
		if dx < 0 {
			dx = -dx
		}
		if dy < 0 {
			dy = -dy
		}
		require.Equal(t, 1, dx+dy, "squares %d and %d are not adjacent", i, j)
	}
	assert.Equal(t, wantSingles, singles)
}

func TestLayout_EvenArea(t *testing.T) {
	for _, dims := range [][2]int{{2, 2}, {6, 5}, {8, 8}, {1, 4}, {9, 2}} {
		w, h := dims[0], dims[1]
		t.Run(fmt.Sprintf("%dx%d", w, h), func(t *testing.T) {
			grid := laydomino.Layout(w, h, randpool.NewString("tiling"))
			checkTiling(t, grid, w, h, 0)
		})
	}
}

func TestLayout_OddArea(t *testing.T) {
	grid := laydomino.Layout(5, 5, randpool.NewString("odd"))
	checkTiling(t, grid, 5, 5, 1)
}

func TestLayout_Deterministic(t *testing.T) {
	a := laydomino.Layout(7, 6, randpool.NewString("seed"))
	b := laydomino.Layout(7, 6, randpool.NewString("seed"))
	assert.Equal(t, a, b)
}

func TestLayout_SeedsDiffer(t *testing.T) {
	a := laydomino.Layout(8, 8, randpool.NewString("one"))
	b := laydomino.Layout(8, 8, randpool.NewString("two"))
	assert.NotEqual(t, a, b)
}

func TestLayoutInto_ReusesBuffers(t *testing.T) {
	const w, h = 4, 4
	grid := make([]int, w*h)
	grid2 := make([]int, w*h)
	list := make([]int, 2*w*h)

	rnd := randpool.NewString("prealloc")
	laydomino.LayoutInto(w, h, rnd, grid, grid2, list)
	checkTiling(t, grid, w, h, 0)

	laydomino.LayoutInto(w, h, rnd, grid, grid2, list)
	checkTiling(t, grid, w, h, 0)
}

func TestLayout_PanicsOnBadDims(t *testing.T) {
	assert.Panics(t, func() { laydomino.Layout(0, 5, randpool.NewString("x")) })
}

func TestLayout_ManySeedsAlwaysValid(t *testing.T) {
	for i := 0; i < 25; i++ {
		seed := fmt.Sprintf("seed-%d", i)
		grid := laydomino.Layout(6, 7, randpool.NewString(seed))
		checkTiling(t, grid, 6, 7, 0)
	}
}
