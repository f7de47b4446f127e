package dominosa

import (
	"fmt"
	"math"

	"github.com/katalvlaran/puzzles/engine"
)

// tri is the n-th triangular number.
func tri(n int) int { return n * (n + 1) / 2 }

// dcount is the number of distinct dominoes with faces up to n.
func dcount(n int) int { return tri(n + 1) }

// dindex maps an unordered pair of face numbers to a domino index.
func dindex(n1, n2 int) int { return tri(max(n1, n2)) + min(n1, n2) }

// Difficulty selects the deepest deduction tier the solver may use.
type Difficulty int

const (
	Trivial Difficulty = iota
	Basic
	Hard
	Extreme
	// Ambiguous turns off the uniqueness guarantee entirely.
	Ambiguous
	diffCount
)

var diffChars = "tbhea"

var diffNames = [...]string{"Trivial", "Basic", "Hard", "Extreme", "Ambiguous"}

func (d Difficulty) String() string {
	if d < 0 || int(d) >= len(diffNames) {
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
	return diffNames[d]
}

// Params selects the largest face number and the difficulty.
type Params struct {
	N    int
	Diff Difficulty
}

func DefaultParams() Params {
	return Params{N: 6, Diff: Basic}
}

func (p Params) Encode(full bool) string {
	s := fmt.Sprintf("%d", p.N)
	if full {
		s += fmt.Sprintf("d%c", diffChars[p.Diff])
	}
	return s
}

func (p Params) Validate(full bool) error {
	if p.N < 1 {
		return ErrFaceTooSmall
	}
	if p.N > math.MaxInt-2 || p.N+2 > math.MaxInt/(p.N+1) {
		return ErrFaceTooLarge
	}
	if p.Diff >= diffCount {
		return ErrUnknownDifficulty
	}
	return nil
}

// Edge marks a player can place between two squares known to be in
// different dominoes.
const (
	edgeL uint16 = 0x100
	edgeR uint16 = 0x200
	edgeT uint16 = 0x400
	edgeB uint16 = 0x800
)

// State is a Dominosa position. The clue numbers are immutable and
// shared between a state and its clones. grid[i] == i means square i
// is not yet covered; otherwise grid[i] is the other square of its
// domino.
type State struct {
	p    Params
	w, h int

	numbers []int

	grid  []int
	edges []uint16

	completed bool
	usedSolve bool
}

func (s *State) Completed() bool { return s.completed }
func (s *State) UsedSolve() bool { return s.usedSolve }

func (s *State) Clone() engine.State {
	c := &State{
		p:         s.p,
		w:         s.w,
		h:         s.h,
		numbers:   s.numbers,
		grid:      append([]int(nil), s.grid...),
		edges:     append([]uint16(nil), s.edges...),
		completed: s.completed,
		usedSolve: s.usedSolve,
	}
	return c
}
