package galaxies

import (
	"fmt"

	"github.com/katalvlaran/puzzles/engine"
)

// Difficulty is the solver rule ladder level.
type Difficulty int

const (
	Normal Difficulty = iota
	Unreasonable

	diffCount = 2
)

var diffChars = [diffCount]byte{'n', 'u'}
var diffNames = [diffCount]string{"Normal", "Unreasonable"}

// String implements fmt.Stringer.
func (d Difficulty) String() string {
	if d < 0 || d >= diffCount {
		return "unknown"
	}
	return diffNames[d]
}

// solveResult is a solver verdict. The first two values double as the
// difficulty tier the solve needed, and order matters: a rule ladder
// accumulates its result with max.
type solveResult int

const (
	resNormal solveResult = iota
	resUnreasonable
	resImpossible
	resAmbiguous
	resUnfinished
)

// Params are Galaxies' generation parameters.
type Params struct {
	Width, Height int
	Difficulty    Difficulty
}

// DefaultParams returns the standard 7x7 Normal puzzle.
func DefaultParams() Params {
	return Params{Width: 7, Height: 7, Difficulty: Normal}
}

// Encode renders the short parameter text, e.g. "7x7dn".
func (p Params) Encode(full bool) string {
	s := fmt.Sprintf("%dx%d", p.Width, p.Height)
	if full {
		s += fmt.Sprintf("d%c", diffChars[p.Difficulty])
	}
	return s
}

// Validate implements engine.Params.
func (p Params) Validate(bool) error {
	if p.Width < 3 || p.Height < 3 {
		return ErrTooSmall
	}
	const maxInt = int(^uint(0) >> 1)
	if p.Width > maxInt/2 || p.Height > maxInt/2 ||
		p.Width > (maxInt-p.Width*2-p.Height*2-1)/4/p.Height {
		return ErrTooLarge
	}
	return nil
}

// The board is stored at doubled resolution: odd,odd coordinates are
// tiles, even,even are vertices and the rest are edges. Dots may sit
// on any space type.
type spaceType int

const (
	sTile spaceType = iota
	sEdge
	sVertex
)

// Space flags.
const (
	fDot       uint32 = 1 << iota // a dot sits on this space
	fEdgeSet                      // edge: a region border is drawn here
	fTileAssoc                    // tile: associated with the dot at dotx,doty
	fDotBlack                     // dot: rendered black
	fMark                         // solver scratch
	fReachable                    // solver scratch: tile can see a dot
	fMultiple                     // solver scratch: tile can see several dots
	fDotHold                      // dot: pinned against association moves
)

type space struct {
	x, y       int
	typ        spaceType
	flags      uint32
	dotx, doty int // tile: the associated dot, if fTileAssoc
	nassoc     int // dot: number of tiles associated with it
}

// State is one Galaxies position.
type State struct {
	p      Params
	sx, sy int // doubled-resolution dimensions, 2w+1 by 2h+1
	grid   []space
	dots   []int // grid indices of all dots

	completed bool
	usedSolve bool
}

var _ engine.State = (*State)(nil)

// Completed implements engine.State.
func (s *State) Completed() bool { return s.completed }

// UsedSolve implements engine.State.
func (s *State) UsedSolve() bool { return s.usedSolve }

// Clone implements engine.State.
func (s *State) Clone() engine.State {
	dup := *s
	dup.grid = make([]space, len(s.grid))
	copy(dup.grid, s.grid)
	dup.dots = make([]int, len(s.dots))
	copy(dup.dots, s.dots)
	return &dup
}

func blankState(p Params) *State {
	s := &State{
		p:  p,
		sx: p.Width*2 + 1,
		sy: p.Height*2 + 1,
	}
	s.grid = make([]space, s.sx*s.sy)
	for y := 0; y < s.sy; y++ {
		for x := 0; x < s.sx; x++ {
			sp := s.at(x, y)
			sp.x, sp.y = x, y
			switch {
			case x%2 == 0 && y%2 == 0:
				sp.typ = sVertex
			case x%2 == 0 || y%2 == 0:
				sp.typ = sEdge
				if x == 0 || y == 0 || x == s.sx-1 || y == s.sy-1 {
					sp.flags |= fEdgeSet
				}
			default:
				sp.typ = sTile
			}
		}
	}
	return s
}

func (s *State) at(x, y int) *space { return &s.grid[y*s.sx+x] }

func (s *State) inGrid(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.sx && y < s.sy
}

// inUI reports whether x,y is strictly inside the playing area, off
// the outline.
func (s *State) inUI(x, y int) bool {
	return x >= 1 && y >= 1 && x < s.sx-1 && y < s.sy-1
}

func (s *State) updateDots() {
	s.dots = s.dots[:0]
	for i := range s.grid {
		if s.grid[i].flags&fDot != 0 {
			s.dots = append(s.dots, i)
		}
	}
}

// clear resets the interior, keeping the outline edges and, unless
// clearDots is set, the dots.
func (s *State) clear(clearDots bool) {
	for x := 1; x < s.sx-1; x++ {
		for y := 1; y < s.sy-1; y++ {
			if clearDots {
				s.at(x, y).flags = 0
			} else {
				s.at(x, y).flags &= fDot | fDotBlack
			}
		}
	}
	if clearDots {
		s.updateDots()
	}
}

func (s *State) addDot(sp *space) {
	sp.flags |= fDot
	sp.nassoc = 0
}

func (s *State) removeDot(sp *space) {
	sp.flags &^= fDot
}

func (s *State) removeAssoc(tile *space) {
	if tile.flags&fTileAssoc != 0 {
		s.at(tile.dotx, tile.doty).nassoc--
		tile.flags &^= fTileAssoc
		tile.dotx = -1
		tile.doty = -1
	}
}

func (s *State) removeAssocWithOpposite(tile *space) {
	if tile.flags&fTileAssoc == 0 {
		return
	}
	opp := s.tileOpposite(tile)
	s.removeAssoc(tile)
	if opp != nil && opp != tile {
		s.removeAssoc(opp)
	}
}

func (s *State) addAssoc(tile, dot *space) {
	s.removeAssoc(tile)
	tile.flags |= fTileAssoc
	tile.dotx = dot.x
	tile.doty = dot.y
	dot.nassoc++
}

// okToAddAssocWithOpposite rejects associations onto dotted tiles and
// into regions that are already correctly closed off.
func (s *State) okToAddAssocWithOpposite(tile, opp *space) bool {
	if tile.typ != sTile {
		return false
	}
	if tile.flags&fDot != 0 {
		return false
	}
	if opp == nil || opp.flags&fDot != 0 {
		return false
	}
	colours := make([]int, s.p.Width*s.p.Height)
	s.checkComplete(colours)
	if colours[(tile.y-1)/2*s.p.Width+(tile.x-1)/2] != 0 {
		return false
	}
	if colours[(opp.y-1)/2*s.p.Width+(opp.x-1)/2] != 0 {
		return false
	}
	return true
}

func (s *State) addAssocWithOpposite(tile, dot *space) {
	opp := s.spaceOppositeDot(tile, dot)
	if opp != nil && s.okToAddAssocWithOpposite(tile, opp) {
		s.removeAssocWithOpposite(tile)
		s.addAssoc(tile, dot)
		s.removeAssocWithOpposite(opp)
		s.addAssoc(opp, dot)
	}
}

// spaceOppositeDot returns the reflection of sp through dot, or nil
// when it falls off the grid.
func (s *State) spaceOppositeDot(sp, dot *space) *space {
	tx := dot.x - (sp.x - dot.x)
	ty := dot.y - (sp.y - dot.y)
	if !s.inGrid(tx, ty) {
		return nil
	}
	return s.at(tx, ty)
}

func (s *State) tileOpposite(sp *space) *space {
	return s.spaceOppositeDot(sp, s.at(sp.dotx, sp.doty))
}

// dotForTile reports whether tile could possibly associate with dot:
// the mirror tile must exist and not belong to a different dot.
func (s *State) dotForTile(tile, dot *space) bool {
	opp := s.spaceOppositeDot(tile, dot)
	if opp == nil {
		return false
	}
	if opp.flags&fTileAssoc != 0 && (opp.dotx != dot.x || opp.doty != dot.y) {
		return false
	}
	return true
}

// adjacencies fills edges with sp's four neighbouring edge spaces and
// tiles with the tile beyond each of them, nil where off-grid.
func (s *State) adjacencies(sp *space, edges, tiles *[4]*space) {
	dxs := [4]int{-1, 1, 0, 0}
	dys := [4]int{0, 0, -1, 1}
	for n := 0; n < 4; n++ {
		x, y := sp.x+dxs[n], sp.y+dys[n]
		if s.inGrid(x, y) {
			edges[n] = s.at(x, y)
			x += dxs[n]
			y += dys[n]
			if s.inGrid(x, y) {
				tiles[n] = s.at(x, y)
			} else {
				tiles[n] = nil
			}
		} else {
			edges[n], tiles[n] = nil, nil
		}
	}
}

func isVerticalEdge(x int) bool { return x%2 == 0 }

// tilesFromEdge fills ts with the two tiles the edge separates, nil
// where off-grid.
func (s *State) tilesFromEdge(sp *space, ts *[2]*space) {
	var xs, ys [2]int
	if isVerticalEdge(sp.x) {
		xs[0], ys[0] = sp.x-1, sp.y
		xs[1], ys[1] = sp.x+1, sp.y
	} else {
		xs[0], ys[0] = sp.x, sp.y-1
		xs[1], ys[1] = sp.x, sp.y+1
	}
	for i := 0; i < 2; i++ {
		if s.inGrid(xs[i], ys[i]) {
			ts[i] = s.at(xs[i], ys[i])
		} else {
			ts[i] = nil
		}
	}
}

// outlineTileFordot syncs the four edges around tile with its current
// association: set against foreign neighbours, clear against its own.
func (s *State) outlineTileFordot(tile *space) {
	var eadj, tadj [4]*space
	s.adjacencies(tile, &eadj, &tadj)
	for i := 0; i < 4; i++ {
		if eadj[i] == nil {
			continue
		}
		edge := eadj[i].flags&fEdgeSet != 0
		same := false
		if tadj[i] != nil {
			if tile.flags&fTileAssoc == 0 {
				same = tadj[i].flags&fTileAssoc == 0
			} else {
				same = tadj[i].flags&fTileAssoc != 0 &&
					tile.dotx == tadj[i].dotx &&
					tile.doty == tadj[i].doty
			}
		}
		if !edge && !same {
			eadj[i].flags |= fEdgeSet
		} else if edge && same {
			eadj[i].flags &^= fEdgeSet
		}
	}
}

// dotIsPossible reports whether a dot on sp would keep clear of other
// dots, drawn edges and, unless allowAssoc is set, associated tiles.
func (s *State) dotIsPossible(sp *space, allowAssoc bool) bool {
	var bx, by int
	switch sp.typ {
	case sTile:
		bx, by = 1, 1
	case sEdge:
		if isVerticalEdge(sp.x) {
			bx, by = 2, 1
		} else {
			bx, by = 1, 2
		}
	case sVertex:
		bx, by = 2, 2
	}
	for dx := -bx; dx <= bx; dx++ {
		for dy := -by; dy <= by; dy++ {
			if !s.inGrid(sp.x+dx, sp.y+dy) {
				continue
			}
			adj := s.at(sp.x+dx, sp.y+dy)
			if !allowAssoc && adj.flags&fTileAssoc != 0 {
				return false
			}
			if (dx != 0 || dy != 0) && adj.flags&fDot != 0 {
				return false
			}
			if abs(dx) < bx && abs(dy) < by && adj.flags&fEdgeSet != 0 {
				return false
			}
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Space-enumeration callbacks return 1 for progress made, -1 for
// impossible and 0 otherwise.
type spaceFunc func(sp *space) int

func (s *State) foreachSub(cb spaceFunc, quitImpossible bool, startx, starty int) int {
	progress, impossible := false, false
	for y := starty; y < s.sy; y += 2 {
		for x := startx; x < s.sx; x += 2 {
			switch cb(s.at(x, y)) {
			case -1:
				if quitImpossible {
					return -1
				}
				impossible = true
			case 1:
				progress = true
			}
		}
	}
	if impossible {
		return -1
	}
	if progress {
		return 1
	}
	return 0
}

func (s *State) foreachTile(cb spaceFunc, quitImpossible bool) int {
	return s.foreachSub(cb, quitImpossible, 1, 1)
}

func (s *State) foreachEdge(cb spaceFunc, quitImpossible bool) int {
	ret1 := s.foreachSub(cb, quitImpossible, 0, 1)
	ret2 := s.foreachSub(cb, quitImpossible, 1, 0)
	if ret1 == -1 || ret2 == -1 {
		return -1
	}
	if ret1 == 1 || ret2 == 1 {
		return 1
	}
	return 0
}
