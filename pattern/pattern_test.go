package pattern

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/puzzles/engine"
	"github.com/katalvlaran/puzzles/randpool"
)

const hardDesc = "2.1/2/1/1/1.1/2/1/1"

func hardParams() Params { return Params{Width: 4, Height: 4} }

func TestParams_EncodeDecode(t *testing.T) {
	g := game{}
	cases := []struct {
		p    Params
		want string
	}{
		{Params{Width: 15, Height: 15}, "15x15"},
		{Params{Width: 10, Height: 20}, "10x20"},
		{Params{Width: 4, Height: 4}, "4x4"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.p.Encode(true))
		dec, err := g.DecodeParams(tc.want)
		require.NoError(t, err)
		assert.Equal(t, tc.p, dec)
	}

	// Square shorthand.
	dec, err := g.DecodeParams("12")
	require.NoError(t, err)
	assert.Equal(t, Params{Width: 12, Height: 12}, dec)
}

func TestParams_Validate(t *testing.T) {
	assert.NoError(t, Params{Width: 15, Height: 15}.Validate(true))
	assert.ErrorIs(t, Params{Width: 0, Height: 5}.Validate(true), ErrDimsNonPositive)
	assert.ErrorIs(t, Params{Width: 5, Height: -1}.Validate(true), ErrDimsNonPositive)
	assert.ErrorIs(t, Params{Width: 1 << 16, Height: 1 << 16}.Validate(true), ErrTooLarge)
}

func TestValidateDesc(t *testing.T) {
	g := game{}
	p := hardParams()
	cases := []struct {
		desc string
		want error
	}{
		{hardDesc, nil},
		{"2.1/2/1/1/1.1/2/1/1/1", ErrTooManySpecs},
		{"2.1/2/1/1/1.1/2/1", ErrTooFewSpecs},
		{"2.1/2/1/1/1.1/2/1/1;", ErrBadChar},
		{"5/2/1/1/1.1/2/1/1", ErrColOverfull},
		{"2.1/2/1/1/1.1/2/1/2.2", ErrRowOverfull},
		{"0.0.0.0.0/1/1/1/1/1/1/1", ErrColOverfull},
		{"1/1/1/1/1/1/1/0.0.0.0.0", ErrRowOverfull},
		{"0.0.0.0/1/1/1/1/1/1/1", nil},
		{"4/4/4/4/4/4/4", ErrTooFewSpecs},
		{"4/4/4/4//4/4/4", nil},
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			err := g.ValidateDesc(p, tc.desc)
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestValidateDesc_ClueSquares(t *testing.T) {
	g := game{}
	p := hardParams()

	// 16 cells: 'z' skips 25, too much.
	assert.ErrorIs(t, g.ValidateDesc(p, hardDesc+",z"), ErrCluesTooLong)
	assert.ErrorIs(t, g.ValidateDesc(p, hardDesc+",a"), ErrCluesTooShort)
	assert.ErrorIs(t, g.ValidateDesc(p, hardDesc+",a1"), ErrCluesBadChar)
	// 'p' skips 15 cells and fills the 16th.
	assert.NoError(t, g.ValidateDesc(p, hardDesc+",p"))
	assert.NoError(t, g.ValidateDesc(p, hardDesc+",Ao"))
	assert.ErrorIs(t, g.ValidateDesc(p, hardDesc+",pa"), ErrCluesTooLong)
}

func TestNewState_Clues(t *testing.T) {
	g := game{}
	st, err := g.NewState(hardParams(), hardDesc)
	require.NoError(t, err)
	s := st.(*State)

	// Columns first, then rows.
	wantLines := [][]int{
		{2, 1}, {2}, {1}, {1},
		{1, 1}, {2}, {1}, {1},
	}
	for i, want := range wantLines {
		assert.Equal(t, want, append([]int(nil), s.clues.rowClues(i)...), "line %d", i)
	}
	for i := 0; i < 16; i++ {
		assert.Equal(t, cellUnknown, s.grid[i])
		assert.False(t, s.clues.immutable[i])
	}
}

func TestNewState_ImmutableCells(t *testing.T) {
	g := game{}
	st, err := g.NewState(hardParams(), hardDesc+",Ao")
	require.NoError(t, err)
	s := st.(*State)

	assert.True(t, s.clues.immutable[0])
	assert.Equal(t, cellFull, s.grid[0])
	assert.True(t, s.clues.immutable[15])
	assert.Equal(t, cellEmpty, s.grid[15])
	for i := 1; i < 15; i++ {
		assert.False(t, s.clues.immutable[i], "cell %d", i)
	}

	// Immutable cells resist rectangle moves.
	moved, err := g.ExecuteMove(s, "E0,0,4,4")
	require.NoError(t, err)
	assert.Equal(t, cellFull, moved.(*State).grid[0])
	assert.Equal(t, cellEmpty, moved.(*State).grid[1])
}

// gridMatches reports whether a fully settled grid satisfies every
// line clue of s.
func gridMatches(s *State, grid []uint8) bool {
	w, h := s.clues.w, s.clues.h
	rowdata := make([]int, s.clues.rowsize)
	for i := 0; i < w; i++ {
		if !cluesMatch(s.clues, i, rowdata, computeRowData(rowdata, grid, i, h, w)) {
			return false
		}
	}
	for i := 0; i < h; i++ {
		if !cluesMatch(s.clues, i+w, rowdata, computeRowData(rowdata, grid, i*w, w, 1)) {
			return false
		}
	}
	return true
}

// The 4x4 instance used here has a unique solution, but finding it
// needs a deduction spanning more than one line at a time, which the
// line solver does not attempt.
func TestLineSolverLimit(t *testing.T) {
	g := game{}
	st, err := g.NewState(hardParams(), hardDesc)
	require.NoError(t, err)
	s := st.(*State)

	_, err = g.Solve(hardParams(), s, s, "")
	assert.ErrorIs(t, err, ErrCannotSolve)

	// Exhaustive search over all 4x4 grids confirms uniqueness.
	var solutions [][]uint8
	grid := make([]uint8, 16)
	for bits := 0; bits < 1<<16; bits++ {
		for i := 0; i < 16; i++ {
			if bits&(1<<i) != 0 {
				grid[i] = cellFull
			} else {
				grid[i] = cellEmpty
			}
		}
		if gridMatches(s, grid) {
			solutions = append(solutions, append([]uint8(nil), grid...))
		}
	}
	require.Len(t, solutions, 1)

	// Applying the unique solution as a solve move completes the game.
	move := make([]byte, 17)
	move[0] = 'S'
	for i, c := range solutions[0] {
		if c == cellFull {
			move[i+1] = '1'
		} else {
			move[i+1] = '0'
		}
	}
	done, err := g.ExecuteMove(s, string(move))
	require.NoError(t, err)
	assert.True(t, done.Completed())
	assert.True(t, done.UsedSolve())
}

func TestNewDesc(t *testing.T) {
	g := game{}
	for _, p := range []Params{
		{Width: 5, Height: 5},
		{Width: 10, Height: 8},
		{Width: 15, Height: 15},
	} {
		t.Run(p.Encode(true), func(t *testing.T) {
			rnd := randpool.New([]byte(fmt.Sprintf("seed-%s", p.Encode(true))))
			desc, aux := g.NewDesc(p, rnd)
			require.NoError(t, g.ValidateDesc(p, desc))
			require.Len(t, aux, p.Width*p.Height+1)
			assert.Equal(t, byte('S'), aux[0])

			// Generation is deterministic in the seed.
			rnd2 := randpool.New([]byte(fmt.Sprintf("seed-%s", p.Encode(true))))
			desc2, aux2 := g.NewDesc(p, rnd2)
			assert.Equal(t, desc, desc2)
			assert.Equal(t, aux, aux2)

			// The line solver alone completes every generated puzzle.
			st, err := g.NewState(p, desc)
			require.NoError(t, err)
			move, err := g.Solve(p, st, st, "")
			require.NoError(t, err)
			assert.Equal(t, aux, move)

			done, err := g.ExecuteMove(st, move)
			require.NoError(t, err)
			assert.True(t, done.Completed())
		})
	}
}

func TestExecuteMove_Rectangles(t *testing.T) {
	g := game{}
	st, err := g.NewState(hardParams(), hardDesc)
	require.NoError(t, err)

	cur, err := g.ExecuteMove(st, "F1,1,2,2")
	require.NoError(t, err)
	s := cur.(*State)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := cellUnknown
			if x >= 1 && x < 3 && y >= 1 && y < 3 {
				want = cellFull
			}
			assert.Equal(t, want, s.Cell(x, y), "(%d,%d)", x, y)
		}
	}
	// Original state is untouched.
	assert.Equal(t, cellUnknown, st.(*State).Cell(1, 1))

	cur, err = g.ExecuteMove(cur, "E1,1,1,1")
	require.NoError(t, err)
	assert.Equal(t, cellEmpty, cur.(*State).Cell(1, 1))

	cur, err = g.ExecuteMove(cur, "U1,1,2,2")
	require.NoError(t, err)
	assert.Equal(t, cellUnknown, cur.(*State).Cell(2, 2))
}

func TestExecuteMove_Rejects(t *testing.T) {
	g := game{}
	st, err := g.NewState(hardParams(), hardDesc)
	require.NoError(t, err)

	for _, move := range []string{
		"X1,1,1,1",
		"F1,1",
		"F-1,0,2,2",
		"F3,3,2,2",
		"S0101",
		"F1,1,1,one",
	} {
		_, err := g.ExecuteMove(st, move)
		assert.ErrorIs(t, err, engine.ErrBadMove, "move %q", move)
	}

	// The empty move is a no-op.
	same, err := g.ExecuteMove(st, "")
	require.NoError(t, err)
	assert.Equal(t, st.(*State).grid, same.(*State).grid)
}

func TestCompletionByPlay(t *testing.T) {
	g := game{}
	p := Params{Width: 5, Height: 5}
	rnd := randpool.New([]byte("completion"))
	desc, aux := g.NewDesc(p, rnd)
	st, err := g.NewState(p, desc)
	require.NoError(t, err)

	// Fill the grid one cell at a time with ordinary moves; only the
	// final move may complete it, and without the solver flag.
	cur := engine.State(st)
	for i := 0; i < 25; i++ {
		cmd := "E"
		if aux[i+1] == '1' {
			cmd = "F"
		}
		move := fmt.Sprintf("%s%d,%d,1,1", cmd, i%5, i/5)
		next, err := g.ExecuteMove(cur, move)
		require.NoError(t, err)
		if i < 24 {
			assert.False(t, next.Completed(), "after %d cells", i+1)
		}
		cur = next
	}
	assert.True(t, cur.Completed())
	assert.False(t, cur.UsedSolve())
}

func TestComputeRowData(t *testing.T) {
	f, e, u := cellFull, cellEmpty, cellUnknown
	ret := make([]int, 8)

	n := computeRowData(ret, []uint8{f, f, e, f, e, e, f}, 0, 7, 1)
	require.Equal(t, 3, n)
	assert.Equal(t, []int{2, 1, 1}, ret[:n])

	n = computeRowData(ret, []uint8{e, e, e}, 0, 3, 1)
	assert.Equal(t, 0, n)

	assert.Equal(t, -1, computeRowData(ret, []uint8{f, u, e}, 0, 3, 1))

	// Stride walks a column.
	grid := []uint8{
		f, e,
		f, e,
		e, f,
	}
	n = computeRowData(ret, grid, 0, 3, 2)
	require.Equal(t, 1, n)
	assert.Equal(t, []int{2}, ret[:n])
}

func TestDescRoundTrip(t *testing.T) {
	g := game{}
	p := Params{Width: 6, Height: 6}
	rnd := randpool.New([]byte("roundtrip"))
	desc, aux := g.NewDesc(p, rnd)

	// Re-deriving clues from the solution grid reproduces the desc.
	grid := make([]uint8, 36)
	for i := range grid {
		if aux[i+1] == '1' {
			grid[i] = cellFull
		} else {
			grid[i] = cellEmpty
		}
	}
	var parts []string
	rowdata := make([]int, 7)
	for i := 0; i < 12; i++ {
		var n int
		if i < 6 {
			n = computeRowData(rowdata, grid, i, 6, 6)
		} else {
			n = computeRowData(rowdata, grid, (i-6)*6, 6, 1)
		}
		nums := make([]string, n)
		for j := 0; j < n; j++ {
			nums[j] = fmt.Sprintf("%d", rowdata[j])
		}
		parts = append(parts, strings.Join(nums, "."))
	}
	assert.Equal(t, strings.Join(parts, "/"), desc)
}
