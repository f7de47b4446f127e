package tracks

import (
	"fmt"

	"github.com/katalvlaran/puzzles/engine"
)

// Direction bits.
const (
	dirR uint32 = 1
	dirU uint32 = 2
	dirL uint32 = 4
	dirD uint32 = 8

	allDirs uint32 = 15
)

// nbits[m] is the number of direction bits set in m.
var nbits = [16]int{0, 1, 1, 2, 1, 2, 2, 3, 1, 2, 2, 3, 2, 3, 3, 4}

func dx(d uint32) int {
	switch d {
	case dirR:
		return 1
	case dirL:
		return -1
	}
	return 0
}

func dy(d uint32) int {
	switch d {
	case dirD:
		return 1
	case dirU:
		return -1
	}
	return 0
}

// flip reverses a direction.
func flip(d uint32) uint32 { return (d<<2 | d>>2) & 0xF }

func moveChar(d uint32) byte {
	switch d {
	case dirR:
		return 'R'
	case dirU:
		return 'U'
	case dirL:
		return 'L'
	case dirD:
		return 'D'
	}
	return '?'
}

// Square flags. The upper fields hold per-edge marks for the four
// directions around the square.
const (
	sTrack   uint32 = 1  // a track passes through this square
	sNoTrack uint32 = 2  // no track passes through this square
	sError   uint32 = 4  // highlighted as in error
	sClue    uint32 = 8  // square is a descriptor clue
	sMark    uint32 = 16 // solver scratch mark

	trackShift   = 16 // per-edge track marks
	noTrackShift = 20 // per-edge no-track marks
)

// Edge flags.
const (
	eTrack   uint32 = 1
	eNoTrack uint32 = 2
)

// Difficulty is the solver rule ladder level.
type Difficulty int

const (
	Easy Difficulty = iota
	Tricky
	Hard

	diffCount = 3
)

var diffChars = [diffCount]byte{'e', 't', 'h'}
var diffNames = [diffCount]string{"Easy", "Tricky", "Hard"}

// String implements fmt.Stringer.
func (d Difficulty) String() string {
	if d < 0 || d >= diffCount {
		return "unknown"
	}
	return diffNames[d]
}

// Params are Tracks' generation parameters.
type Params struct {
	Width, Height int
	Difficulty    Difficulty
	// SingleOnes disallows consecutive 1 clues, which make for
	// mechanical corner-hugging paths.
	SingleOnes bool
}

// DefaultParams returns the standard 8x8 Tricky puzzle.
func DefaultParams() Params {
	return Params{Width: 8, Height: 8, Difficulty: Tricky, SingleOnes: true}
}

// Encode renders the short parameter text, e.g. "8x8dt".
func (p Params) Encode(full bool) string {
	s := fmt.Sprintf("%dx%d", p.Width, p.Height)
	if full {
		s += fmt.Sprintf("d%c", diffChars[p.Difficulty])
		if !p.SingleOnes {
			s += "o"
		}
	}
	return s
}

// Validate implements engine.Params. Anything under 4x4 runs into
// generation trouble of one kind or another.
func (p Params) Validate(bool) error {
	if p.Width < 4 || p.Height < 4 {
		return ErrTooSmall
	}
	if p.Width > (1<<31-1)/p.Height {
		return ErrTooLarge
	}
	return nil
}

// numbers is the clue set of a puzzle instance, shared by all clones
// of its states: one track count per column then per row, plus the
// entrance row and exit column.
type numbers struct {
	numbers    []int // sized w+h
	rowS, colS int
}

// State is one Tracks position. sflags holds the square flags with
// the embedded per-edge marks; an edge mark is always kept in sync on
// both of its squares.
type State struct {
	p         Params
	sflags    []uint32
	numbers   *numbers
	numErrors []int

	completed  bool
	usedSolve  bool
	impossible bool
}

var _ engine.State = (*State)(nil)

// Completed implements engine.State.
func (s *State) Completed() bool { return s.completed }

// UsedSolve implements engine.State.
func (s *State) UsedSolve() bool { return s.usedSolve }

// Clone implements engine.State. The clue numbers are shared; they
// never change after state construction.
func (s *State) Clone() engine.State {
	dup := *s
	dup.sflags = make([]uint32, len(s.sflags))
	copy(dup.sflags, s.sflags)
	dup.numErrors = make([]int, len(s.numErrors))
	copy(dup.numErrors, s.numErrors)
	return &dup
}

func blankState(p Params) *State {
	w, h := p.Width, p.Height
	return &State{
		p:         p,
		sflags:    make([]uint32, w*h),
		numbers:   &numbers{numbers: make([]int, w+h), rowS: -1, colS: -1},
		numErrors: make([]int, w+h),
	}
}

func (s *State) clear() {
	for i := range s.sflags {
		s.sflags[i] = 0
	}
	for i := range s.numbers.numbers {
		s.numbers.numbers[i] = 0
	}
	s.numbers.rowS, s.numbers.colS = -1, -1
	for i := range s.numErrors {
		s.numErrors[i] = 0
	}
	s.completed, s.usedSolve, s.impossible = false, false, false
}

func (s *State) inGrid(x, y int) bool {
	return x >= 0 && x < s.p.Width && y >= 0 && y < s.p.Height
}

// edgeDirs returns the four directions around (x, y) on which the
// given edge flag is set.
func (s *State) edgeDirs(x, y int, eflag uint32) uint32 {
	shift := trackShift
	if eflag != eTrack {
		shift = noTrackShift
	}
	return (s.sflags[y*s.p.Width+x] >> shift) & allDirs
}

// edgeCount counts the edges around (x, y) carrying the given flag.
func (s *State) edgeCount(x, y int, eflag uint32) int {
	return nbits[s.edgeDirs(x, y, eflag)]
}

// edgeFlags returns the eTrack/eNoTrack flags set on one edge.
func (s *State) edgeFlags(x, y int, d uint32) uint32 {
	f := s.sflags[y*s.p.Width+x]
	var r uint32
	if f&(d<<trackShift) != 0 {
		r |= eTrack
	}
	if f&(d<<noTrackShift) != 0 {
		r |= eNoTrack
	}
	return r
}

// edgeAdj finds the square on the other side of edge d of (x, y), and
// the direction of that edge as seen from there.
func (s *State) edgeAdj(x, y int, d uint32) (ax, ay int, ad uint32, ok bool) {
	switch {
	case d == dirL && x > 0:
		return x - 1, y, dirR, true
	case d == dirR && x < s.p.Width-1:
		return x + 1, y, dirL, true
	case d == dirU && y > 0:
		return x, y - 1, dirD, true
	case d == dirD && y < s.p.Height-1:
		return x, y + 1, dirU, true
	}
	return 0, 0, 0, false
}

// edgeSet sets an edge flag, on both sides where the edge is interior.
func (s *State) edgeSet(x, y int, d uint32, eflag uint32) {
	shift := trackShift
	if eflag != eTrack {
		shift = noTrackShift
	}
	s.sflags[y*s.p.Width+x] |= d << shift
	if ax, ay, ad, ok := s.edgeAdj(x, y, d); ok {
		s.sflags[ay*s.p.Width+ax] |= ad << shift
	}
}

// edgeClear clears an edge flag, on both sides where the edge is
// interior.
func (s *State) edgeClear(x, y int, d uint32, eflag uint32) {
	shift := trackShift
	if eflag != eTrack {
		shift = noTrackShift
	}
	s.sflags[y*s.p.Width+x] &^= d << shift
	if ax, ay, ad, ok := s.edgeAdj(x, y, d); ok {
		s.sflags[ay*s.p.Width+ax] &^= ad << shift
	}
}
