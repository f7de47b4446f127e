package galaxies

import (
	"math"

	"github.com/katalvlaran/puzzles/randpool"
)

// movedotCheck and movedotMove implement the two passes of moving a
// dot: first verify that every tile of the old dot has a valid mirror
// about the new dot, then re-associate them all.

func (s *State) movedotCheck(olddot, newdot *space) int {
	return s.foreachTile(func(tile *space) int {
		if tile.flags&fTileAssoc == 0 {
			return 0
		}
		if tile.dotx != olddot.x || tile.doty != olddot.y {
			return 0
		}
		newopp := s.spaceOppositeDot(tile, newdot)
		if newopp == nil {
			return -1
		}
		if newopp.flags&fTileAssoc != 0 &&
			(newopp.dotx != olddot.x || newopp.doty != olddot.y) {
			return -1
		}
		return 0
	}, true)
}

func (s *State) movedotMove(olddot, newdot *space) {
	s.foreachTile(func(tile *space) int {
		if tile.flags&fTileAssoc == 0 {
			return 0
		}
		if tile.dotx != olddot.x || tile.doty != olddot.y {
			return 0
		}
		newopp := s.spaceOppositeDot(tile, newdot)
		s.addAssoc(tile, newdot)
		s.addAssoc(newopp, newdot)
		return 1
	}, false)
}

// dotExpandOrMove tries to grow dot's region by the given tiles:
// either directly, when all their mirrors about the dot are free, or
// by relocating the dot to the centre of gravity of the enlarged
// region when that keeps every tile mirrored.
func (s *State) dotExpandOrMove(dot *space, toadd []*space) bool {
	canExpand := true
	for _, t := range toadd {
		opp := s.spaceOppositeDot(t, dot)
		if opp == nil || opp.flags&fTileAssoc != 0 {
			canExpand = false
			break
		}
	}
	if canExpand {
		for _, t := range toadd {
			opp := s.spaceOppositeDot(t, dot)
			s.addAssoc(t, dot)
			s.addAssoc(opp, dot)
		}
		return true
	}

	nnew := dot.nassoc + len(toadd)
	cx := dot.x * dot.nassoc
	cy := dot.y * dot.nassoc
	for _, t := range toadd {
		cx += t.x
		cy += t.y
	}
	if cx%nnew != 0 || cy%nnew != 0 {
		return false // centre of gravity not on the doubled grid
	}
	cx /= nnew
	cy /= nnew

	newdot := s.at(cx, cy)
	if s.movedotCheck(dot, newdot) == -1 {
		return false
	}
	for _, t := range toadd {
		opp := s.spaceOppositeDot(t, newdot)
		if opp != nil && opp.flags&fTileAssoc != 0 &&
			(opp.dotx != dot.x || opp.doty != dot.y) {
			opp = nil
		}
		if opp == nil {
			return false
		}
	}

	// Associate the new tiles with the old dot so the move pass picks
	// them up along with everything else.
	for _, t := range toadd {
		s.addAssoc(t, dot)
	}
	s.removeDot(dot)
	s.addDot(newdot)
	s.movedotMove(dot, newdot)
	return true
}

// Blocks tried for expansion are at most 2x2 tiles.
const (
	maxToadd   = 4
	maxOutside = 8
)

// generateTryBlock offers the tile block x1,y1..x2,y2 to the regions
// around it, in random order, stopping at the first that absorbs it.
func (s *State) generateTryBlock(rnd *randpool.Pool, x1, y1, x2, y2 int) bool {
	if !s.inGrid(x1, y1) || !s.inGrid(x2, y2) {
		return false
	}

	// Cap region size at ~2*sqrt(area): huge regions make dull puzzles.
	maxsz := int(math.Sqrt(float64(s.p.Width*s.p.Height))) * 2

	var toadd [maxToadd]*space
	nadd := 0
	for x := x1; x <= x2; x += 2 {
		for y := y1; y <= y2; y += 2 {
			sp := s.at(x, y)
			if sp.flags&fTileAssoc != 0 {
				return false
			}
			toadd[nadd] = sp
			nadd++
		}
	}

	var outside [maxOutside]*space
	nout := 0
	addOutside := func(x, y int) {
		if s.inGrid(x, y) {
			outside[nout] = s.at(x, y)
			nout++
		}
	}
	for x := x1; x <= x2; x += 2 {
		addOutside(x, y1-2)
		addOutside(x, y2+2)
	}
	for y := y1; y <= y2; y += 2 {
		addOutside(x1-2, y)
		addOutside(x2+2, y)
	}
	rnd.Shuffle(nout, func(i, j int) {
		outside[i], outside[j] = outside[j], outside[i]
	})

	for i := 0; i < nout; i++ {
		if outside[i].flags&fTileAssoc == 0 {
			continue
		}
		dot := s.at(outside[i].dotx, outside[i].doty)
		if dot.nassoc >= maxsz {
			continue
		}
		if s.dotExpandOrMove(dot, toadd[:nadd]) {
			return true
		}
	}
	return false
}

// generatePass visits every space in random order, first trying to
// grow an existing region over it and otherwise planting a new dot
// where one fits.
func (s *State) generatePass(rnd *randpool.Pool, scratch []int) {
	for i := range scratch {
		scratch[i] = i
	}
	randpool.ShuffleInts(scratch, rnd)

	for i, si := range scratch {
		sp := &s.grid[si]
		x1, y1, x2, y2 := sp.x, sp.y, sp.x, sp.y

		if sp.typ == sEdge {
			if isVerticalEdge(sp.x) {
				x1--
				x2++
			} else {
				y1--
				y2++
			}
		}
		if sp.typ != sVertex {
			// Expanding from vertices tends to make too-big regions.
			if s.generateTryBlock(rnd, x1, y1, x2, y2) {
				continue
			}
		}

		// Skip half the edges, or dots crowd onto them.
		if sp.typ == sEdge && i%2 == 1 {
			continue
		}

		if s.dotIsPossible(sp, false) {
			s.addDot(sp)
			s.solverObviousDot(sp)
		}
	}
}

// Several grids are generated and the most 'wiggly' kept, as measured
// by inward corners in region outlines. Wiggly regions are what make
// the puzzle fun, but a hard wiggliness requirement would itself be a
// clue, so it only skews the choice.
const generateTries = 10

func (s *State) isWiggle(x, y, dx, dy int) int {
	x1, y1 := x+2*dx, y+2*dy
	x2, y2 := x-2*dy, y+2*dx
	if !s.inGrid(x1, y1) || !s.inGrid(x2, y2) {
		return 0
	}
	t := s.at(x, y)
	t1 := s.at(x1, y1)
	t2 := s.at(x2, y2)
	if t1.dotx == t2.dotx && t1.doty == t2.doty &&
		!(t1.dotx == t.dotx && t1.doty == t.doty) {
		return 1
	}
	return 0
}

func (s *State) measureWiggliness() int {
	nwiggles := 0
	for y := 1; y < s.sy; y += 2 {
		for x := 1; x < s.sx; x += 2 {
			if y+2 < s.sy {
				nwiggles += s.isWiggle(x, y, 0, 1)
				nwiggles += s.isWiggle(x, y, 0, -1)
				nwiggles += s.isWiggle(x, y, 1, 0)
				nwiggles += s.isWiggle(x, y, -1, 0)
			}
		}
	}
	return nwiggles
}

// newDesc generates a puzzle at exactly the requested difficulty,
// returning its descriptor and the full solution as an aux move
// string.
func newDesc(p Params, rnd *randpool.Pool) (string, string) {
	st := blankState(p)
	scratch := make([]int, st.sx*st.sy)

	for {
		bestWiggliness := -1
		var best *State
		for i := 0; i < generateTries; i++ {
			for {
				st.clear(true)
				st.generatePass(rnd, scratch)
				st.updateDots()
				if len(st.dots) != 1 {
					break
				}
			}
			if w := st.measureWiggliness(); w > bestWiggliness {
				bestWiggliness = w
				best = st.Clone().(*State)
			}
		}
		st = best

		for i := range st.grid {
			if st.grid[i].typ == sTile {
				st.outlineTileFordot(&st.grid[i])
			}
		}
		if !st.checkComplete(nil) {
			continue // a tile was left unabsorbed; very rare
		}

		work := st.Clone().(*State)
		work.clear(false)
		if work.solverState(p.Difficulty) != solveResult(p.Difficulty) {
			// Too hard for the requested level, or too easy.
			continue
		}
		break
	}

	blank := blankState(p)
	return encodeGame(st), diffGame(blank, st, true)
}
