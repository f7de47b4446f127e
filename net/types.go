package net

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/puzzles/engine"
)

// Direction bits, also the wire mask of a tile. A tile's low nibble
// records which of its four edges carry wire.
const (
	dirR uint8 = 0x01
	dirU uint8 = 0x02
	dirL uint8 = 0x04
	dirD uint8 = 0x08

	dirMask uint8 = 0x0F

	// locked marks a tile the solver or user has pinned in place.
	locked uint8 = 0x10
)

// rotA rotates a wire mask one step anticlockwise.
func rotA(x uint8) uint8 { return ((x & 0x07) << 1) | ((x & 0x08) >> 3) }

// rotC rotates a wire mask one step clockwise.
func rotC(x uint8) uint8 { return ((x & 0x0E) >> 1) | ((x & 0x01) << 3) }

// rotF rotates a wire mask by 180 degrees.
func rotF(x uint8) uint8 { return ((x & 0x0C) >> 2) | ((x & 0x03) << 2) }

// rot applies n quarter-turns anticlockwise.
func rot(x uint8, n int) uint8 {
	switch n & 3 {
	case 1:
		return rotA(x)
	case 2:
		return rotF(x)
	case 3:
		return rotC(x)
	default:
		return x
	}
}

func dx(d uint8) int {
	switch d {
	case dirR:
		return 1
	case dirL:
		return -1
	default:
		return 0
	}
}

func dy(d uint8) int {
	switch d {
	case dirD:
		return 1
	case dirU:
		return -1
	default:
		return 0
	}
}

// offset steps from (x, y) in direction d on a w x h torus.
func offset(x, y int, d uint8, w, h int) (int, int) {
	return (x + w + dx(d)) % w, (y + h + dy(d)) % h
}

func bitCount(x uint8) int {
	return int((x&8)>>3 + (x&4)>>2 + (x&2)>>1 + x&1)
}

// Params are Net's generation parameters.
type Params struct {
	Width, Height int
	Wrapping      bool
	Unique        bool
	BarrierProb   float64
}

// DefaultParams returns the standard 5x5 non-wrapping puzzle.
func DefaultParams() Params {
	return Params{Width: 5, Height: 5, Unique: true}
}

// Encode renders the short parameter text, e.g. "5x5w". full=false
// omits the barrier probability and the ambiguity opt-out.
func (p Params) Encode(full bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%dx%d", p.Width, p.Height)
	if p.Wrapping {
		sb.WriteByte('w')
	}
	if full && p.BarrierProb != 0 {
		sb.WriteString("b")
		sb.WriteString(strconv.FormatFloat(p.BarrierProb, 'g', -1, 64))
	}
	if full && !p.Unique {
		sb.WriteByte('a')
	}
	return sb.String()
}

// Validate implements engine.Params.
func (p Params) Validate(full bool) error {
	if p.Width <= 0 || p.Height <= 0 {
		return ErrDimsNonPositive
	}
	if p.Width <= 1 && p.Height <= 1 {
		return ErrAreaTooSmall
	}
	if p.Width > (1<<30)/p.Height {
		return ErrAreaTooLarge
	}
	if p.BarrierProb < 0 {
		return ErrBarrierNegative
	}
	if p.BarrierProb > 1 {
		return ErrBarrierTooHigh
	}
	// A wrapping grid with a dimension of 2 always admits at least
	// two solutions: some row must connect exactly one of its inner
	// and outer edges, and those two states can be exchanged without
	// disturbing the rest of the grid.
	if full && p.Unique && p.Wrapping && (p.Width == 2 || p.Height == 2) {
		return ErrWrappingTwo
	}
	return nil
}

// State is one Net position. Barriers are immutable and shared across
// clones; tiles are copied.
type State struct {
	width, height int
	wrapping      bool
	completed     bool
	usedSolve     bool
	tiles         []uint8
	barriers      []uint8
}

var _ engine.State = (*State)(nil)

// Width returns the grid width.
func (s *State) Width() int { return s.width }

// Height returns the grid height.
func (s *State) Height() int { return s.height }

// Wrapping reports whether the grid edges are identified.
func (s *State) Wrapping() bool { return s.wrapping }

// Tile returns the wire mask and lock bit of the tile at (x, y).
func (s *State) Tile(x, y int) uint8 { return s.tiles[y*s.width+x] }

// Barrier returns the barrier mask of the tile at (x, y).
func (s *State) Barrier(x, y int) uint8 { return s.barriers[y*s.width+x] }

// Completed implements engine.State.
func (s *State) Completed() bool { return s.completed }

// UsedSolve implements engine.State.
func (s *State) UsedSolve() bool { return s.usedSolve }

// Clone implements engine.State. The barrier table is shared; it never
// changes after state construction.
func (s *State) Clone() engine.State {
	dup := *s
	dup.tiles = make([]uint8, len(s.tiles))
	copy(dup.tiles, s.tiles)
	return &dup
}

// Active computes which tiles are reachable from (cx, cy) through
// matched connections not blocked by barriers. Indexed y*width+x.
func (s *State) Active(cx, cy int) []bool {
	w, h := s.width, s.height
	active := make([]bool, w*h)
	active[cy*w+cx] = true
	queue := []int{cy*w + cx}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		x1, y1 := i%w, i/w
		for d := uint8(1); d < 0x10; d <<= 1 {
			x2, y2 := offset(x1, y1, d, w, h)
			j := y2*w + x2
			if s.tiles[i]&d != 0 && s.tiles[j]&rotF(d) != 0 &&
				s.barriers[i]&d == 0 && !active[j] {
				active[j] = true
				queue = append(queue, j)
			}
		}
	}
	return active
}

// completionCheck recomputes the completed flag: every wired tile must
// be reachable from any one wired tile.
func (s *State) completionCheck() {
	w, h := s.width, s.height
	start := -1
	for i := 0; i < w*h; i++ {
		if s.tiles[i]&dirMask != 0 {
			start = i
			break
		}
	}
	if start < 0 {
		return
	}
	active := s.Active(start%w, start/w)
	for i := 0; i < w*h; i++ {
		if s.tiles[i]&dirMask != 0 && !active[i] {
			return
		}
	}
	s.completed = true
}
