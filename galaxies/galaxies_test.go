package galaxies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/puzzles/engine"
	"github.com/katalvlaran/puzzles/randpool"
)

// sevenDesc is a real 7x7 puzzle with fifteen white dots.
const sevenDesc = "chpgdqqqoezdddki"

// rowsDesc is a 3x3 grid whose three dots sit at the centres of its
// rows, so drawing the two horizontal separators completes it.
const rowsDesc = "cjj"

// twoDotsDesc is a 5x5 grid with tile dots at 3,3 and 7,7 in doubled
// coordinates.
const twoDotsDesc = "uzo"

func params(w, h int, d Difficulty) Params {
	return Params{Width: w, Height: h, Difficulty: d}
}

func TestParams_EncodeDecode(t *testing.T) {
	g := game{}
	cases := []struct {
		p    Params
		want string
	}{
		{params(7, 7, Normal), "7x7dn"},
		{params(10, 10, Unreasonable), "10x10du"},
		{params(15, 10, Normal), "15x10dn"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.p.Encode(true))
		dec, err := g.DecodeParams(tc.want)
		require.NoError(t, err)
		assert.Equal(t, tc.p, dec)
	}

	// Short forms: no difficulty, and a bare size means a square.
	assert.Equal(t, "7x7", params(7, 7, Unreasonable).Encode(false))
	dec, err := g.DecodeParams("7")
	require.NoError(t, err)
	assert.Equal(t, DefaultParams(), dec)
}

func TestParams_Validate(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate(true))
	assert.ErrorIs(t, params(2, 7, Normal).Validate(true), ErrTooSmall)
	assert.ErrorIs(t, params(7, 2, Normal).Validate(true), ErrTooSmall)
	assert.ErrorIs(t, params(1<<20, 1<<20, Normal).Validate(true), ErrTooLarge)
}

func TestValidateDesc(t *testing.T) {
	g := game{}
	cases := []struct {
		name string
		p    Params
		desc string
		want error
	}{
		{"fixture", params(7, 7, Normal), sevenDesc, nil},
		{"rows", params(3, 3, Normal), rowsDesc, nil},
		{"bad char", params(7, 7, Normal), "chp!", ErrDescChar},
		{"overflows grid", params(3, 3, Normal), "za", ErrDescTooLong},
		{"dots too close", params(3, 3, Normal), "aa", ErrDotsClose},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := g.ValidateDesc(tc.p, tc.desc)
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestNewState_Fixture(t *testing.T) {
	g := game{}
	est, err := g.NewState(params(7, 7, Normal), sevenDesc)
	require.NoError(t, err)
	st := est.(*State)

	assert.Equal(t, 15, st.sx)
	assert.Equal(t, 15, st.sy)
	assert.Len(t, st.dots, 15)
	for _, di := range st.dots {
		assert.Zero(t, st.grid[di].flags&fDotBlack)
	}
	assert.False(t, st.Completed())
	assert.False(t, st.UsedSolve())

	// The descriptor encoding round-trips.
	assert.Equal(t, sevenDesc, encodeGame(st))

	// Clones are independent.
	dup := st.Clone().(*State)
	dup.at(2, 1).flags |= fEdgeSet
	assert.Zero(t, st.at(2, 1).flags&fEdgeSet)
}

func TestExecuteMove_EdgeToggle(t *testing.T) {
	g := game{}
	st, err := g.NewState(params(5, 5, Normal), twoDotsDesc)
	require.NoError(t, err)

	next, err := g.ExecuteMove(st, "E2,1")
	require.NoError(t, err)
	assert.NotZero(t, next.(*State).at(2, 1).flags&fEdgeSet)
	assert.Zero(t, st.(*State).at(2, 1).flags&fEdgeSet, "input state must not change")

	back, err := g.ExecuteMove(next, "E2,1")
	require.NoError(t, err)
	assert.Zero(t, back.(*State).at(2, 1).flags&fEdgeSet)
}

func TestExecuteMove_Associate(t *testing.T) {
	g := game{}
	st, err := g.NewState(params(5, 5, Normal), twoDotsDesc)
	require.NoError(t, err)

	// Dragging the tiles around the vertex at 4,4 onto the dot at 3,3
	// associates each free tile together with its mirror image. The
	// dot's own tile is left alone.
	next, err := g.ExecuteMove(st, "A4,4,3,3")
	require.NoError(t, err)
	ns := next.(*State)
	for _, c := range [][2]int{{5, 3}, {1, 3}, {3, 5}, {3, 1}, {5, 5}, {1, 1}} {
		tile := ns.at(c[0], c[1])
		require.NotZero(t, tile.flags&fTileAssoc, "tile %v", c)
		assert.Equal(t, 3, tile.dotx)
		assert.Equal(t, 3, tile.doty)
	}
	assert.Zero(t, ns.at(3, 3).flags&fTileAssoc)
	assert.Equal(t, 6, ns.at(3, 3).nassoc)

	// Unassociating one tile also frees its mirror.
	next, err = g.ExecuteMove(ns, "U5,3")
	require.NoError(t, err)
	ns = next.(*State)
	assert.Zero(t, ns.at(5, 3).flags&fTileAssoc)
	assert.Zero(t, ns.at(1, 3).flags&fTileAssoc)
	assert.Equal(t, 4, ns.at(3, 3).nassoc)

	// A held dot refuses association moves.
	next, err = g.ExecuteMove(ns, "M3,3")
	require.NoError(t, err)
	_, err = g.ExecuteMove(next, "A4,4,3,3")
	assert.ErrorIs(t, err, engine.ErrBadMove)
}

func TestExecuteMove_Rejects(t *testing.T) {
	g := game{}
	st, err := g.NewState(params(5, 5, Normal), twoDotsDesc)
	require.NoError(t, err)

	for _, move := range []string{
		"X",        // unknown command
		"E1,1",     // not an edge
		"E0,1",     // on the outline
		"U1,1",     // tile not associated
		"M1,1",     // no dot here
		"A1,1,1,1", // no dot at the target
		"E2,1 E4,1", // bad separator
	} {
		_, err := g.ExecuteMove(st, move)
		assert.ErrorIs(t, err, engine.ErrBadMove, "move %q", move)
	}

	// The empty move is a no-op.
	next, err := g.ExecuteMove(st, "")
	require.NoError(t, err)
	assert.Equal(t, st, next)
}

func TestCompletionByEdges(t *testing.T) {
	g := game{}
	st, err := g.NewState(params(3, 3, Normal), rowsDesc)
	require.NoError(t, err)

	// Separate the top row: not yet complete.
	next, err := g.ExecuteMove(st, "E1,2;E3,2;E5,2")
	require.NoError(t, err)
	assert.False(t, next.Completed())

	// Separate the bottom row too: every region is now a row, each
	// symmetric about its own dot.
	next, err = g.ExecuteMove(next, "E1,4;E3,4;E5,4")
	require.NoError(t, err)
	assert.True(t, next.Completed())
	assert.False(t, next.UsedSolve())
}

func TestSolve_Rows(t *testing.T) {
	g := game{}
	st, err := g.NewState(params(3, 3, Normal), rowsDesc)
	require.NoError(t, err)

	moves, err := g.Solve(params(3, 3, Normal), st, st, "")
	require.NoError(t, err)
	require.NotEmpty(t, moves)
	assert.Equal(t, byte('S'), moves[0])

	solved, err := g.ExecuteMove(st, moves)
	require.NoError(t, err)
	assert.True(t, solved.Completed())
	assert.True(t, solved.UsedSolve())
}

func TestSolve_Fixture7x7(t *testing.T) {
	g := game{}
	p := params(7, 7, Normal)
	st, err := g.NewState(p, sevenDesc)
	require.NoError(t, err)

	moves, err := g.Solve(p, st, st, "")
	require.NoError(t, err)

	solved, err := g.ExecuteMove(st, moves)
	require.NoError(t, err)
	assert.True(t, solved.Completed())
}

func TestNewDesc(t *testing.T) {
	g := game{}
	p := params(7, 7, Normal)

	desc, aux := g.NewDesc(p, randpool.NewString("galaxies test seed"))
	require.NoError(t, g.ValidateDesc(p, desc))
	require.NotEmpty(t, aux)
	assert.Equal(t, byte('S'), aux[0])

	// The aux string replays the generated solution.
	st, err := g.NewState(p, desc)
	require.NoError(t, err)
	solved, err := g.ExecuteMove(st, aux)
	require.NoError(t, err)
	assert.True(t, solved.Completed())

	// The puzzle is solvable at exactly the requested difficulty.
	work := st.(*State).Clone().(*State)
	assert.Equal(t, resNormal, work.solverState(Normal))

	// Generation is deterministic in the seed.
	desc2, aux2 := g.NewDesc(p, randpool.NewString("galaxies test seed"))
	assert.Equal(t, desc, desc2)
	assert.Equal(t, aux, aux2)
}

func TestPresets(t *testing.T) {
	presets := game{}.Presets()
	require.Len(t, presets, 6)
	assert.Equal(t, "7x7 Normal", presets[0].Name)
	assert.Equal(t, "15x15 Unreasonable", presets[5].Name)
	for _, pr := range presets {
		assert.NoError(t, pr.Params.Validate(true))
	}
}
