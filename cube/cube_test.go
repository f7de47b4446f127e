package cube

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/puzzles/engine"
	"github.com/katalvlaran/puzzles/randpool"
)

// 4x4 square grid, every square blue except the starting one. Squares
// are indexed column by column, so the first hex digit covers the
// column x=0.
const tourDesc = "7FFF:0"

// 4x4 grid with a single blue square directly below the start.
const oneBlueDesc = "4000:0"

// Triangular board for the tetrahedron, no blue squares at all.
const triangleDesc = "0000:0"

func cubeParams() Params { return Params{Solid: Cube, D1: 4, D2: 4} }

func tetraParams() Params { return Params{Solid: Tetrahedron, D1: 2, D2: 1} }

func TestParams_EncodeDecode(t *testing.T) {
	g := game{}
	cases := []struct {
		p    Params
		want string
	}{
		{Params{Cube, 4, 4}, "c4x4"},
		{Params{Tetrahedron, 2, 1}, "t2x1"},
		{Params{Octahedron, 2, 2}, "o2x2"},
		{Params{Icosahedron, 3, 3}, "i3x3"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.p.Encode(true))
		dec, err := g.DecodeParams(tc.want)
		require.NoError(t, err)
		assert.Equal(t, tc.p, dec)
	}

	// A bare size is square.
	dec, err := g.DecodeParams("c5")
	require.NoError(t, err)
	assert.Equal(t, Params{Cube, 5, 5}, dec)

	// A bare solid letter takes that solid's usual size.
	dec, err = g.DecodeParams("o")
	require.NoError(t, err)
	assert.Equal(t, Params{Octahedron, 2, 2}, dec)

	_, err = g.DecodeParams("q4x4")
	assert.ErrorIs(t, err, ErrBadSolid)
	_, err = g.DecodeParams("")
	assert.ErrorIs(t, err, ErrBadSolid)
}

func TestParams_Validate(t *testing.T) {
	assert.NoError(t, cubeParams().Validate(true))
	assert.NoError(t, tetraParams().Validate(true))
	assert.NoError(t, Params{Octahedron, 2, 2}.Validate(true))
	assert.NoError(t, Params{Icosahedron, 3, 3}.Validate(true))

	assert.ErrorIs(t, Params{Cube, 0, 4}.Validate(true), ErrTooSmall)
	assert.ErrorIs(t, Params{Tetrahedron, 0, 2}.Validate(true), ErrTooSmall)
	assert.ErrorIs(t, Params{Solid: 7, D1: 4, D2: 4}.Validate(true), ErrBadSolid)
	assert.ErrorIs(t, Params{Cube, 200, 4}.Validate(true), ErrTooLarge)

	// A 1x1 square grid cannot hold six blue squares.
	assert.ErrorIs(t, Params{Cube, 1, 1}.Validate(true), ErrBlueSpace)

	// Exactly as many squares as faces leaves no non-blue start square.
	assert.ErrorIs(t, Params{Cube, 2, 3}.Validate(true), ErrBlueSpace)
	assert.ErrorIs(t, Params{Tetrahedron, 2, 0}.Validate(true), ErrBlueSpace)
	assert.ErrorIs(t, Params{Octahedron, 1, 1}.Validate(true), ErrBlueSpace)
	assert.ErrorIs(t, Params{Icosahedron, 1, 2}.Validate(true), ErrBlueSpace)
	assert.NoError(t, Params{Cube, 1, 7}.Validate(true))
	assert.NoError(t, Params{Icosahedron, 2, 2}.Validate(true))
}

func TestValidateDesc(t *testing.T) {
	g := game{}
	cases := []struct {
		desc string
		err  error
	}{
		{tourDesc, nil},
		{oneBlueDesc, nil},
		{"7FGF:0", ErrDescChar},
		{"7FFF", ErrDescShort},
		{"7FFF:", ErrDescShort},
		{"7FFF.0", ErrDescChar},
		{"7FFF:x", ErrDescChar},
		{"7FFF:99", ErrStartRange},
		{"FFFF:0", ErrStartBlue},
	}
	for _, tc := range cases {
		err := g.ValidateDesc(cubeParams(), tc.desc)
		if tc.err == nil {
			assert.NoError(t, err, tc.desc)
		} else {
			assert.ErrorIs(t, err, tc.err, tc.desc)
		}
	}
}

func TestNewState_Fixture(t *testing.T) {
	g := game{}
	est, err := g.NewState(cubeParams(), tourDesc)
	require.NoError(t, err)
	s := est.(*State)

	assert.Equal(t, 16, len(s.squares))
	assert.Equal(t, 15, s.blueSquares())
	assert.Equal(t, 0, s.blueFaces())
	assert.Equal(t, 0, s.current)
	assert.False(t, s.squares[0].blue)
	assert.False(t, s.Completed())
	assert.False(t, s.UsedSolve())

	// Clones do not share square or face colours.
	c := s.Clone().(*State)
	c.squares[0].blue = true
	c.faceBlue[0] = true
	assert.False(t, s.squares[0].blue)
	assert.False(t, s.faceBlue[0])
}

func TestRoll_PickupAndCarry(t *testing.T) {
	g := game{}
	est, err := g.NewState(cubeParams(), oneBlueDesc)
	require.NoError(t, err)

	// Rolling onto the blue square lifts its colour onto the face
	// that lands there.
	down, err := g.ExecuteMove(est, "D")
	require.NoError(t, err)
	s := down.(*State)
	assert.Equal(t, 1, s.blueFaces())
	assert.Equal(t, 0, s.blueSquares())
	assert.Equal(t, 1, s.current)
	assert.Equal(t, 1, s.movecount)
	assert.False(t, s.Completed())

	// The input state is untouched.
	orig := est.(*State)
	assert.Equal(t, 0, orig.blueFaces())
	assert.Equal(t, 0, orig.current)

	// Rolling back puts a different face down, so the blue stays on
	// the solid and the starting square stays unpainted.
	back, err := g.ExecuteMove(down, "U")
	require.NoError(t, err)
	s = back.(*State)
	assert.Equal(t, 1, s.blueFaces())
	assert.Equal(t, 0, s.blueSquares())
	assert.Equal(t, 0, s.current)
	assert.Equal(t, 2, s.movecount)
}

func TestExecuteMove_Rejects(t *testing.T) {
	g := game{}
	est, err := g.NewState(cubeParams(), tourDesc)
	require.NoError(t, err)

	for _, move := range []string{"X", "S", "U", "L", "D;D;D;D", "D,D", "D;;D"} {
		_, err := g.ExecuteMove(est, move)
		assert.ErrorIs(t, err, engine.ErrBadMove, move)
	}

	// The empty move is a no-op.
	same, err := g.ExecuteMove(est, "")
	require.NoError(t, err)
	assert.Equal(t, est.(*State), same.(*State))
}

// Rolling the cube along a boustrophedon tour of the all-blue-but-one
// 4x4 grid never revisits a square, so no face ever drops its colour,
// and all six faces have been against the board after seven rolls.
func TestHamiltonianTour_Completes(t *testing.T) {
	g := game{}
	est, err := g.NewState(cubeParams(), tourDesc)
	require.NoError(t, err)

	moves := []string{"D", "D", "D", "R", "U", "U", "U", "R", "D", "D", "D", "R", "U", "U", "U"}
	wantBlue := []int{1, 2, 3, 4, 4, 5, 6}

	for i, mv := range moves {
		est, err = g.ExecuteMove(est, mv)
		require.NoError(t, err, "move %d", i)
		s := est.(*State)
		if i < len(wantBlue) {
			assert.Equal(t, wantBlue[i], s.blueFaces(), "after move %d", i)
			assert.Equal(t, i == len(wantBlue)-1, s.Completed(), "after move %d", i)
		} else {
			// Once complete, the solid rolls on without swapping.
			assert.True(t, s.Completed())
			assert.Equal(t, 6, s.blueFaces())
		}
	}
	s := est.(*State)
	assert.Equal(t, 15, s.movecount)
	assert.False(t, s.UsedSolve())

	// The whole tour as one move string arrives at the same place.
	est2, err := g.NewState(cubeParams(), tourDesc)
	require.NoError(t, err)
	est2, err = g.ExecuteMove(est2, strings.Join(moves, ";"))
	require.NoError(t, err)
	opt := cmp.AllowUnexported(State{}, gridSquare{}, solid{})
	if diff := cmp.Diff(s, est2.(*State), opt); diff != "" {
		t.Errorf("tour states differ (-stepwise +joined):\n%s", diff)
	}
}

func TestTriangularRolls(t *testing.T) {
	g := game{}
	est, err := g.NewState(tetraParams(), triangleDesc)
	require.NoError(t, err)
	s := est.(*State)
	require.Equal(t, 13, len(s.squares))
	assert.True(t, s.squares[0].flip)

	// The starting down-pointing triangle has no downward edge, and
	// its top edge faces off the board.
	_, err = g.ExecuteMove(est, "D")
	assert.ErrorIs(t, err, engine.ErrBadMove)
	_, err = g.ExecuteMove(est, "U")
	assert.ErrorIs(t, err, engine.ErrBadMove)

	// Roll right onto the neighbouring up-pointing triangle and back.
	right, err := g.ExecuteMove(est, "R")
	require.NoError(t, err)
	assert.Equal(t, 2, right.(*State).current)
	back, err := g.ExecuteMove(right, "L")
	require.NoError(t, err)
	assert.Equal(t, 0, back.(*State).current)
	assert.Equal(t, 0, back.(*State).blueFaces())

	// Diagonals alias the triangle edges.
	dr, err := g.ExecuteMove(est, "DR")
	require.NoError(t, err)
	assert.Equal(t, 2, dr.(*State).current)
}

func TestInterpretMove(t *testing.T) {
	g := game{}
	est, err := g.NewState(cubeParams(), tourDesc)
	require.NoError(t, err)

	mv, ok := g.InterpretMove(est, engine.CursorDown)
	assert.True(t, ok)
	assert.Equal(t, "D", mv)
	mv, ok = g.InterpretMove(est, engine.CursorRight)
	assert.True(t, ok)
	assert.Equal(t, "R", mv)

	// Off-board directions and unrelated buttons are not moves.
	_, ok = g.InterpretMove(est, engine.CursorUp)
	assert.False(t, ok)
	_, ok = g.InterpretMove(est, engine.CursorLeft)
	assert.False(t, ok)
	_, ok = g.InterpretMove(est, engine.LeftButton)
	assert.False(t, ok)
}

func TestNewDesc(t *testing.T) {
	g := game{}
	for _, p := range []Params{cubeParams(), tetraParams(), {Octahedron, 2, 2}, {Icosahedron, 3, 3}} {
		rnd := randpool.NewString("cube test seed")
		desc, aux := g.NewDesc(p, rnd)
		assert.Empty(t, aux)
		require.NoError(t, g.ValidateDesc(p, desc), p.Encode(true))

		s, err := loadState(p, desc)
		require.NoError(t, err)
		sol := solids[p.Solid]
		assert.Equal(t, sol.numFaces(), s.blueSquares())
		assert.False(t, s.squares[s.current].blue)

		// Blue squares are balanced across the equivalence classes.
		nclasses := classCount(p.Solid)
		counts := make([]int, nclasses)
		for i := range s.squares {
			if s.squares[i].blue {
				counts[squareClass(&s.squares[i], nclasses)]++
			}
		}
		for _, n := range counts {
			assert.Equal(t, sol.numFaces()/nclasses, n)
		}

		// Same seed, same descriptor.
		desc2, _ := g.NewDesc(p, randpool.NewString("cube test seed"))
		assert.Equal(t, desc, desc2)
	}
}

func TestPresets(t *testing.T) {
	g := game{}
	presets := g.Presets()
	require.Len(t, presets, 4)
	names := []string{"Cube", "Tetrahedron", "Octahedron", "Icosahedron"}
	for i, pr := range presets {
		assert.Equal(t, names[i], pr.Name)
		assert.NoError(t, pr.Params.Validate(true))
		dec, err := g.DecodeParams(pr.Params.Encode(true))
		require.NoError(t, err)
		assert.Equal(t, pr.Params, dec)
	}
	assert.Equal(t, "c4x4", g.DefaultParams().Encode(true))
	assert.False(t, g.CanSolve())
	_, err := g.Solve(cubeParams(), nil, nil, "")
	assert.ErrorIs(t, err, engine.ErrNoSolution)
}
