package pattern

import (
	"fmt"

	"github.com/katalvlaran/puzzles/engine"
)

// Grid cell values.
const (
	cellEmpty   uint8 = 0
	cellFull    uint8 = 1
	cellUnknown uint8 = 2
)

// Params are Pattern's generation parameters.
type Params struct {
	Width, Height int
}

// DefaultParams returns the standard 15x15 puzzle.
func DefaultParams() Params { return Params{Width: 15, Height: 15} }

// Encode renders the short parameter text, e.g. "15x15".
func (p Params) Encode(bool) string {
	return fmt.Sprintf("%dx%d", p.Width, p.Height)
}

// Validate implements engine.Params.
func (p Params) Validate(bool) error {
	if p.Width <= 0 || p.Height <= 0 {
		return ErrDimsNonPositive
	}
	if p.Width > (1<<30)/p.Height {
		return ErrTooLarge
	}
	return nil
}

// Clues is the immutable part of a puzzle instance, shared by all
// clones of its states: the run-length clue lists and any cells fixed
// by the descriptor. Clue lists are stored columns first, then rows,
// each in a stride of rowsize.
type Clues struct {
	w, h    int
	rowsize int
	rowdata []int
	rowlen  []int
	// immutable marks cells given by the descriptor, which moves may
	// not overwrite.
	immutable []bool
}

// rowClues returns the zero-terminated clue list for line i
// (i < w: column i; otherwise row i-w). The returned slice aliases
// internal storage and must not be modified.
func (c *Clues) rowClues(i int) []int {
	return c.rowdata[c.rowsize*i : c.rowsize*i+c.rowlen[i]]
}

// State is one Pattern position.
type State struct {
	clues     *Clues
	grid      []uint8
	completed bool
	usedSolve bool
}

var _ engine.State = (*State)(nil)

// Width returns the grid width.
func (s *State) Width() int { return s.clues.w }

// Height returns the grid height.
func (s *State) Height() int { return s.clues.h }

// Cell returns the value at (x, y): cellEmpty, cellFull or cellUnknown.
func (s *State) Cell(x, y int) uint8 { return s.grid[y*s.clues.w+x] }

// Completed implements engine.State.
func (s *State) Completed() bool { return s.completed }

// UsedSolve implements engine.State.
func (s *State) UsedSolve() bool { return s.usedSolve }

// Clone implements engine.State. Clue tables are shared; they never
// change after state construction.
func (s *State) Clone() engine.State {
	dup := *s
	dup.grid = make([]uint8, len(s.grid))
	copy(dup.grid, s.grid)
	return &dup
}

// computeRowData extracts the run lengths of a settled line, reading
// len cells from cells starting at offset with the given stride. It
// returns -1 if the line still contains unknown cells.
func computeRowData(ret []int, cells []uint8, offset, length, stride int) int {
	n := 0
	for i := 0; i < length; i++ {
		if cells[offset+i*stride] == cellFull {
			runlen := 1
			for i+runlen < length && cells[offset+(i+runlen)*stride] == cellFull {
				runlen++
			}
			ret[n] = runlen
			n++
			i += runlen
		}
		if i < length && cells[offset+i*stride] == cellUnknown {
			return -1
		}
	}
	return n
}
