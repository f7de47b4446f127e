package dominosa

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/puzzles/engine"
	"github.com/katalvlaran/puzzles/randpool"
)

// A 3x2 order-1 puzzle with a unique tiling:
//
//	0 0 1
//	1 1 0
//
// The only solution is 0-0 across the top left, 1-1 across the bottom
// left, and 0-1 down the right column.
const tinyDesc = "001110"

var tinyParams = Params{N: 1, Diff: Trivial}

// Same shape but with the classic 2x2 ambiguity: two distinct
// tilings satisfy it.
const ambiguousDesc = "010011"

func parseNumbers(t *testing.T, p Params, desc string) []int {
	t.Helper()
	st, err := game{}.NewState(p, desc)
	require.NoError(t, err)
	return st.(*State).numbers
}

func TestParams_EncodeDecode(t *testing.T) {
	assert.Equal(t, "6db", Params{N: 6, Diff: Basic}.Encode(true))
	assert.Equal(t, "6", Params{N: 6, Diff: Basic}.Encode(false))

	p, err := game{}.DecodeParams("3dt")
	require.NoError(t, err)
	assert.Equal(t, Params{N: 3, Diff: Trivial}, p)

	p, err = game{}.DecodeParams("6de")
	require.NoError(t, err)
	assert.Equal(t, Params{N: 6, Diff: Extreme}, p)

	// Legacy suffix from before the difficulty system.
	p, err = game{}.DecodeParams("6a")
	require.NoError(t, err)
	assert.Equal(t, Params{N: 6, Diff: Ambiguous}, p)

	// An unknown difficulty letter decodes to an invalid rating.
	p, err = game{}.DecodeParams("6dx")
	require.NoError(t, err)
	assert.ErrorIs(t, p.Validate(true), ErrUnknownDifficulty)
}

func TestParams_Validate(t *testing.T) {
	assert.NoError(t, Params{N: 6, Diff: Basic}.Validate(true))
	assert.ErrorIs(t, Params{N: 0, Diff: Basic}.Validate(true), ErrFaceTooSmall)
	assert.ErrorIs(t, Params{N: 6, Diff: diffCount}.Validate(true), ErrUnknownDifficulty)
}

func TestValidateDesc(t *testing.T) {
	cases := []struct {
		name string
		desc string
		want error
	}{
		{"valid", tinyDesc, nil},
		{"valid ambiguous", ambiguousDesc, nil},
		{"too short", "00111", ErrDescShort},
		{"too long", "0011100", ErrDescLong},
		{"out of range", "002110", ErrNumberRange},
		{"bad char", "0a1110", ErrDescSyntax},
		{"missing bracket", "[2", ErrMissingClose},
		{"unbalanced", "001100", ErrNumberBalance},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := game{}.ValidateDesc(tinyParams, tc.desc)
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestNewState(t *testing.T) {
	st, err := game{}.NewState(tinyParams, tinyDesc)
	require.NoError(t, err)
	s := st.(*State)

	assert.Equal(t, 3, s.w)
	assert.Equal(t, 2, s.h)
	assert.Equal(t, []int{0, 0, 1, 1, 1, 0}, s.numbers)
	for i, g := range s.grid {
		assert.Equal(t, i, g, "square %d starts uncovered", i)
	}
	assert.False(t, s.Completed())

	// Clones share the clue numbers but copy the tiling.
	c := s.Clone().(*State)
	c.grid[0] = 1
	assert.Equal(t, 0, s.grid[0])
}

func TestSolver_UniqueTiny(t *testing.T) {
	numbers := parseNumbers(t, tinyParams, tinyDesc)

	sc := newSolverScratch(1)
	sc.setupGrid(numbers)
	assert.Equal(t, 1, sc.runSolver(Trivial))
	assert.Equal(t, Trivial, sc.maxDiffUsed)

	// The surviving placements are the unique tiling.
	var placed [][2]int
	for i := range sc.placements {
		if p := &sc.placements[i]; p.active {
			placed = append(placed, [2]int{p.squares[0].index, p.squares[1].index})
		}
	}
	assert.ElementsMatch(t, [][2]int{{2, 5}, {0, 1}, {3, 4}}, placed)
}

func TestSolver_Ambiguous(t *testing.T) {
	numbers := parseNumbers(t, tinyParams, ambiguousDesc)

	sc := newSolverScratch(1)
	sc.setupGrid(numbers)
	assert.Equal(t, 2, sc.runSolver(Extreme))
}

func TestSolveMove_CompletesGame(t *testing.T) {
	st, err := game{}.NewState(tinyParams, tinyDesc)
	require.NoError(t, err)

	move, err := game{}.Solve(tinyParams, st, st, "")
	require.NoError(t, err)
	assert.Equal(t, "S;E0,3;E1,4;E1,2;E4,5;D2,5;D0,1;D3,4", move)

	solved, err := game{}.ExecuteMove(st, move)
	require.NoError(t, err)
	assert.True(t, solved.Completed())
	assert.True(t, solved.UsedSolve())

	s := solved.(*State)
	assert.Equal(t, 1, s.grid[0])
	assert.Equal(t, 4, s.grid[3])
	assert.Equal(t, 5, s.grid[2])
}

func TestExecuteMove_PlaceRemoveDisplace(t *testing.T) {
	st, err := game{}.NewState(tinyParams, tinyDesc)
	require.NoError(t, err)

	// Place, then toggle off.
	next, err := game{}.ExecuteMove(st, "D0,1")
	require.NoError(t, err)
	assert.Equal(t, 1, next.(*State).grid[0])
	next, err = game{}.ExecuteMove(next, "D0,1")
	require.NoError(t, err)
	assert.Equal(t, 0, next.(*State).grid[0])

	// A new domino displaces whatever overlaps it.
	next, err = game{}.ExecuteMove(st, "D0,1;D1,2")
	require.NoError(t, err)
	s := next.(*State)
	assert.Equal(t, 0, s.grid[0])
	assert.Equal(t, 2, s.grid[1])

	// Input state is never mutated.
	assert.Equal(t, 0, st.(*State).grid[0])
}

func TestExecuteMove_Edges(t *testing.T) {
	st, err := game{}.NewState(tinyParams, tinyDesc)
	require.NoError(t, err)

	next, err := game{}.ExecuteMove(st, "E0,1")
	require.NoError(t, err)
	s := next.(*State)
	assert.Equal(t, edgeR, s.edges[0])
	assert.Equal(t, edgeL, s.edges[1])

	// Edges cannot touch a domino.
	next, err = game{}.ExecuteMove(st, "D0,1")
	require.NoError(t, err)
	_, err = game{}.ExecuteMove(next, "E0,1")
	assert.ErrorIs(t, err, engine.ErrBadMove)

	// Placing a domino wipes adjacent edges.
	next, err = game{}.ExecuteMove(st, "E1,2;D0,1")
	require.NoError(t, err)
	s = next.(*State)
	assert.Zero(t, s.edges[1])
	assert.Zero(t, s.edges[2])
}

func TestExecuteMove_Rejects(t *testing.T) {
	st, err := game{}.NewState(tinyParams, tinyDesc)
	require.NoError(t, err)

	for _, move := range []string{
		"X",
		"D0,2",  // not adjacent
		"D1,0",  // wrong order
		"D0,99", // out of range
		"D0",    // missing half
		"D0,1 E3,4",
	} {
		_, err := game{}.ExecuteMove(st, move)
		assert.ErrorIs(t, err, engine.ErrBadMove, "move %q", move)
	}

	// The empty move is a no-op.
	next, err := game{}.ExecuteMove(st, "")
	require.NoError(t, err)
	assert.Equal(t, st.(*State).grid, next.(*State).grid)
}

func TestCompletionByPlay(t *testing.T) {
	st, err := game{}.NewState(tinyParams, tinyDesc)
	require.NoError(t, err)

	next, err := game{}.ExecuteMove(st, "D0,1;D3,4")
	require.NoError(t, err)
	assert.False(t, next.Completed())

	next, err = game{}.ExecuteMove(next, "D2,5")
	require.NoError(t, err)
	assert.True(t, next.Completed())
	assert.False(t, next.UsedSolve())
}

func TestCompletion_RejectsDuplicateDominoes(t *testing.T) {
	// The all-vertical tiling covers the grid but repeats 0-1, so it
	// must not count as complete.
	st, err := game{}.NewState(tinyParams, tinyDesc)
	require.NoError(t, err)

	next, err := game{}.ExecuteMove(st, "D0,3;D1,4;D2,5")
	require.NoError(t, err)
	assert.False(t, next.Completed())
}

func TestNewDesc_DoubleSix(t *testing.T) {
	p := Params{N: 6, Diff: Basic}
	rnd := randpool.NewString("dominosa double six")
	desc, aux := newDesc(p, rnd)

	require.NoError(t, game{}.ValidateDesc(p, desc))
	assert.Len(t, desc, 56)
	assert.Len(t, aux, 56)

	// Determinism for a fixed seed.
	desc2, aux2 := newDesc(p, randpool.NewString("dominosa double six"))
	assert.Equal(t, desc, desc2)
	assert.Equal(t, aux, aux2)

	// The generator gate guarantees a unique solution pinned at
	// exactly the requested tier.
	st, err := game{}.NewState(p, desc)
	require.NoError(t, err)
	sc := newSolverScratch(6)
	sc.setupGrid(st.(*State).numbers)
	assert.Equal(t, 1, sc.runSolver(Basic))
	assert.Equal(t, Basic, sc.maxDiffUsed)

	// Laying the aux tiling completes the puzzle with one copy of
	// every domino up to double six.
	move, err := game{}.Solve(p, st, st, aux)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(move, "S"))

	solved, err := game{}.ExecuteMove(st, move)
	require.NoError(t, err)
	assert.True(t, solved.Completed())

	s := solved.(*State)
	seen := make(map[int]int)
	for i := 0; i < s.w*s.h; i++ {
		if s.grid[i] > i {
			seen[dindex(s.numbers[i], s.numbers[s.grid[i]])]++
		}
	}
	assert.Len(t, seen, dcount(6))
	for di, count := range seen {
		assert.Equal(t, 1, count, "domino %d", di)
	}
}

func TestNewDesc_DifficultyCap(t *testing.T) {
	// Order-1 boards cannot support anything above Trivial; the
	// request is quietly capped.
	p := Params{N: 1, Diff: Extreme}
	rnd := randpool.NewString("dominosa cap")
	desc, _ := newDesc(p, rnd)

	require.NoError(t, game{}.ValidateDesc(Params{N: 1, Diff: Trivial}, desc))

	st, err := game{}.NewState(p, desc)
	require.NoError(t, err)
	sc := newSolverScratch(1)
	sc.setupGrid(st.(*State).numbers)
	assert.Equal(t, 1, sc.runSolver(Trivial))
}

func TestPresets(t *testing.T) {
	presets := game{}.Presets()
	require.Len(t, presets, 12)
	assert.Equal(t, "Order 3, Trivial", presets[0].Name)
	assert.Equal(t, "Order 6, Extreme", presets[11].Name)
	for _, pr := range presets {
		assert.NoError(t, pr.Params.Validate(true))
	}
}
