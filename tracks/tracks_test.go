package tracks

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/puzzles/engine"
	"github.com/katalvlaran/puzzles/randpool"
)

const easyDesc = "d9s5c6zgAa,1,4,1,4,4,3,S3,5,2,2,4,S5,3,3,5,1"

func easyParams() Params {
	return Params{Width: 8, Height: 8, Difficulty: Easy, SingleOnes: true}
}

func TestParams_EncodeDecode(t *testing.T) {
	g := game{}
	cases := []struct {
		p    Params
		want string
	}{
		{Params{8, 8, Tricky, true}, "8x8dt"},
		{Params{10, 8, Easy, true}, "10x8de"},
		{Params{15, 15, Hard, false}, "15x15dho"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.p.Encode(true))
		dec, err := g.DecodeParams(tc.want)
		require.NoError(t, err)
		assert.Equal(t, tc.p, dec)
	}

	// Short form omits difficulty and takes the default.
	dec, err := g.DecodeParams("8x8")
	require.NoError(t, err)
	assert.Equal(t, DefaultParams(), dec)
}

func TestParams_Validate(t *testing.T) {
	assert.NoError(t, easyParams().Validate(true))
	assert.ErrorIs(t, Params{Width: 3, Height: 8}.Validate(true), ErrTooSmall)
	assert.ErrorIs(t, Params{Width: 8, Height: 3}.Validate(true), ErrTooSmall)
	assert.ErrorIs(t, Params{Width: 1 << 20, Height: 1 << 20}.Validate(true), ErrTooLarge)
}

func TestValidateDesc(t *testing.T) {
	g := game{}
	p := easyParams()
	cases := []struct {
		name, desc string
		want       error
	}{
		{"fixture", easyDesc, nil},
		{"bad char", "d9s5c6zgA!,1,4,1,4,4,3,S3,5,2,2,4,S5,3,3,5,1", ErrDescChar},
		{"one-direction clue", "d8s5c6zgAa,1,4,1,4,4,3,S3,5,2,2,4,S5,3,3,5,1", ErrClueNotTwo},
		{"numbers short", "d9s5c6zgAa,1,4,1,4,4,3,S3,5", ErrNumbersShort},
		{"numbers bad char", "d9s5c6zgAa,1,4,1,4,4,3,S3,5;2,2,4,S5,3,3,5,1", ErrNumbersChar},
		{"no entrance", "d9s5c6zgAa,1,4,1,4,4,3,S3,5,2,2,4,5,3,3,5,1", ErrEntranceExit},
		{"two exits", "d9s5c6zgAa,S1,4,1,4,4,3,S3,5,2,2,4,S5,3,3,5,1", ErrEntranceExit},
		{"trailing junk", easyDesc + "x", ErrDescLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := g.ValidateDesc(p, tc.desc)
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
	st, err := g.NewState(easyParams(), easyDesc)
	require.NoError(t, err)
	s := st.(*State)

	assert.Equal(t, 3, s.numbers.rowS)
	assert.Equal(t, 6, s.numbers.colS)
	assert.Equal(t, []int{1, 4, 1, 4, 4, 3, 3, 5, 2, 2, 4, 5, 3, 3, 5, 1},
		s.numbers.numbers)

	// Clue squares carry exactly two track edges.
	nclues := 0
	for i := 0; i < 64; i++ {
		if s.sflags[i]&sClue != 0 {
			nclues++
			assert.Equal(t, 2, nbits[s.edgeDirs(i%8, i/8, eTrack)], "clue %d", i)
		}
	}
	assert.Equal(t, 4, nclues)
}

func TestSolve_FixtureEasy(t *testing.T) {
	g := game{}
	st, err := g.NewState(easyParams(), easyDesc)
	require.NoError(t, err)
	s := st.(*State).Clone().(*State)

	result, maxDiff := s.solve(Easy)
	assert.Equal(t, 1, result)
	assert.Equal(t, Easy, maxDiff)
	assert.True(t, s.checkCompletion(false))
}

func TestSolveMove_CompletesGame(t *testing.T) {
	g := game{}
	st, err := g.NewState(easyParams(), easyDesc)
	require.NoError(t, err)

	move, err := g.Solve(easyParams(), st, st, "")
	require.NoError(t, err)
	require.NotEmpty(t, move)
	assert.Equal(t, byte('S'), move[0])

	done, err := g.ExecuteMove(st, move)
	require.NoError(t, err)
	assert.True(t, done.Completed())
	assert.True(t, done.UsedSolve())
}

func TestExecuteMove_EdgesAndSquares(t *testing.T) {
	g := game{}
	st, err := g.NewState(easyParams(), easyDesc)
	require.NoError(t, err)
	s := st.(*State)

	// Lay a track edge on an empty pair of squares.
	cur, err := g.ExecuteMove(s, "TR1,1")
	require.NoError(t, err)
	c := cur.(*State)
	assert.NotZero(t, c.edgeDirs(1, 1, eTrack)&dirR)
	assert.NotZero(t, c.edgeDirs(2, 1, eTrack)&dirL)
	// Original state untouched.
	assert.Zero(t, s.edgeDirs(1, 1, eTrack))

	// Mark and unmark a no-track square.
	cur, err = g.ExecuteMove(cur, "NS5,5")
	require.NoError(t, err)
	assert.NotZero(t, cur.(*State).sflags[5*8+5]&sNoTrack)
	cur, err = g.ExecuteMove(cur, "nS5,5")
	require.NoError(t, err)
	assert.Zero(t, cur.(*State).sflags[5*8+5]&sNoTrack)

	// Clear the track edge again.
	cur, err = g.ExecuteMove(cur, "tR1,1")
	require.NoError(t, err)
	assert.Zero(t, cur.(*State).edgeDirs(1, 1, eTrack))
}

func TestExecuteMove_Rejects(t *testing.T) {
	g := game{}
	st, err := g.NewState(easyParams(), easyDesc)
	require.NoError(t, err)

	for _, move := range []string{
		"X",
		"TQ1,1",
		"TR99,1",
		"TR-1,1",
		"TR1,1 TR2,2",
		"TS4,0", // clue square, cannot be toggled by hand
	} {
		_, err := g.ExecuteMove(st, move)
		assert.ErrorIs(t, err, engine.ErrBadMove, "move %q", move)
	}

	// A track edge into a NOTRACK square is rejected.
	cur, err := g.ExecuteMove(st, "NS1,1")
	require.NoError(t, err)
	_, err = g.ExecuteMove(cur, "TR1,1")
	assert.ErrorIs(t, err, engine.ErrBadMove)

	// The empty move is a no-op.
	same, err := g.ExecuteMove(st, "")
	require.NoError(t, err)
	assert.Equal(t, st.(*State).sflags, same.(*State).sflags)
}

func TestExecuteMove_Hint(t *testing.T) {
	g := game{}
	st, err := g.NewState(easyParams(), easyDesc)
	require.NoError(t, err)

	cur, err := g.ExecuteMove(st, "H")
	require.NoError(t, err)
	// The hint applies the full solver, which completes this puzzle.
	assert.True(t, cur.Completed())
	assert.False(t, cur.UsedSolve())
}

func TestNewDesc(t *testing.T) {
	g := game{}
	for _, p := range []Params{
		{Width: 8, Height: 8, Difficulty: Easy, SingleOnes: true},
		{Width: 8, Height: 8, Difficulty: Tricky, SingleOnes: true},
	} {
		t.Run(p.Encode(true), func(t *testing.T) {
			rnd := randpool.New([]byte(fmt.Sprintf("seed-%s", p.Encode(true))))
			desc, aux := g.NewDesc(p, rnd)
			assert.Empty(t, aux)
			require.NoError(t, g.ValidateDesc(p, desc))

			rnd2 := randpool.New([]byte(fmt.Sprintf("seed-%s", p.Encode(true))))
			desc2, _ := g.NewDesc(p, rnd2)
			assert.Equal(t, desc, desc2)

			// Generated puzzles are soluble at their stated difficulty
			// but not below it.
			st, err := g.NewState(p, desc)
			require.NoError(t, err)
			s := st.(*State).Clone().(*State)
			result, maxDiff := s.solve(p.Difficulty)
			assert.Equal(t, 1, result)
			assert.Equal(t, p.Difficulty, maxDiff)
		})
	}
}

func TestDifficultyDowngrade4x4(t *testing.T) {
	g := game{}
	p := Params{Width: 4, Height: 4, Difficulty: Tricky, SingleOnes: true}
	rnd := randpool.New([]byte("downgrade"))
	desc, _ := g.NewDesc(p, rnd)
	require.NoError(t, g.ValidateDesc(p, desc))

	// 4x4 Tricky cannot exist; the descriptor must be soluble at Easy.
	st, err := g.NewState(p, desc)
	require.NoError(t, err)
	s := st.(*State).Clone().(*State)
	result, _ := s.solve(Easy)
	assert.Equal(t, 1, result)
}

func TestMoveStringDiff_RoundTrip(t *testing.T) {
	g := game{}
	st, err := g.NewState(easyParams(), easyDesc)
	require.NoError(t, err)
	s := st.(*State)

	solved := s.Clone().(*State)
	result, _ := solved.solve(diffCount)
	require.Equal(t, 1, result)

	move := moveStringDiff(s, solved, true)
	applied, err := g.ExecuteMove(s, move)
	require.NoError(t, err)
	assert.Equal(t, solved.sflags, applied.(*State).sflags)
}
