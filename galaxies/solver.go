package galaxies

import (
	"github.com/katalvlaran/puzzles/dsf"
	"github.com/katalvlaran/puzzles/engine"
)

// solverCtx holds per-solve scratch storage.
type solverCtx struct {
	sz       int
	scratch  []*space
	d        *dsf.DSF
	iscratch []int
}

func newSolverCtx(s *State) *solverCtx {
	sz := s.sx * s.sy
	return &solverCtx{
		sz:       sz,
		scratch:  make([]*space, sz),
		d:        dsf.New(sz),
		iscratch: make([]int, sz),
	}
}

// solverAddAssoc associates tile and its mirror with the dot at dx,dy.
// Returns 1 on progress, 0 when already so associated and -1 when the
// association is contradictory.
func (s *State) solverAddAssoc(tile *space, dx, dy int, why string) int {
	dot := s.at(dx, dy)
	opp := s.spaceOppositeDot(tile, dot)

	if tile.flags&fTileAssoc != 0 {
		if tile.dotx != dx || tile.doty != dy {
			engine.Diag().Debugf("galaxies: %d,%d -> %d,%d (%s) impossible, already -> %d,%d",
				tile.x, tile.y, dx, dy, why, tile.dotx, tile.doty)
			return -1
		}
		return 0
	}
	if opp == nil {
		engine.Diag().Debugf("galaxies: %d,%d -> %d,%d impossible, no opposite tile",
			tile.x, tile.y, dx, dy)
		return -1
	}
	if opp.flags&fTileAssoc != 0 && (opp.dotx != dx || opp.doty != dy) {
		engine.Diag().Debugf("galaxies: %d,%d -> %d,%d (%s) impossible, opposite already -> %d,%d",
			tile.x, tile.y, dx, dy, why, opp.dotx, opp.doty)
		return -1
	}

	s.addAssoc(tile, dot)
	s.addAssoc(opp, dot)
	return 1
}

// solverObviousDot associates the tiles touching a dot with it.
func (s *State) solverObviousDot(dot *space) int {
	didsth := 0
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if !s.inGrid(dot.x+dx, dot.y+dy) {
				continue
			}
			tile := s.at(dot.x+dx, dot.y+dy)
			if tile.typ != sTile {
				continue
			}
			ret := s.solverAddAssoc(tile, dot.x, dot.y, "next to dot")
			if ret < 0 {
				return -1
			}
			if ret > 0 {
				didsth = 1
			}
		}
	}
	return didsth
}

func (s *State) solverObvious() int {
	didsth := 0
	for _, di := range s.dots {
		ret := s.solverObviousDot(&s.grid[di])
		if ret < 0 {
			return -1
		}
		if ret > 0 {
			didsth = 1
		}
	}
	return didsth
}

// solverLinesOppositeCb draws the edge between differently-owned
// tiles, and mirrors any set edge of an owned tile onto its opposite.
func (s *State) solverLinesOppositeCb(edge *space) int {
	didsth := 0
	var tiles [2]*space
	s.tilesFromEdge(edge, &tiles)

	if edge.flags&fEdgeSet == 0 &&
		tiles[0] != nil && tiles[1] != nil &&
		tiles[0].flags&fTileAssoc != 0 &&
		tiles[1].flags&fTileAssoc != 0 &&
		(tiles[0].dotx != tiles[1].dotx || tiles[0].doty != tiles[1].doty) {
		edge.flags |= fEdgeSet
		didsth = 1
	}

	if edge.flags&fEdgeSet == 0 {
		return didsth
	}
	for n := 0; n < 2; n++ {
		if tiles[n] == nil || tiles[n].flags&fTileAssoc == 0 {
			continue
		}
		opp := s.tileOpposite(tiles[n])
		if opp == nil {
			engine.Diag().Debugf("galaxies: edge %d,%d has associated tile %d,%d with no opposite",
				edge.x, edge.y, tiles[n].x, tiles[n].y)
			return -1
		}
		dx := tiles[n].x - edge.x
		dy := tiles[n].y - edge.y
		edgeOpp := s.at(opp.x+dx, opp.y+dy)
		if edgeOpp.flags&fEdgeSet == 0 {
			edgeOpp.flags |= fEdgeSet
			didsth = 1
		}
	}
	return didsth
}

// solverSpacesOnepossCb associates an empty tile whose every side is
// either a drawn edge or a tile owned by one single dot.
func (s *State) solverSpacesOnepossCb(tile *space) int {
	if tile.flags&fTileAssoc != 0 {
		return 0
	}
	var edgeadj, tileadj [4]*space
	s.adjacencies(tile, &edgeadj, &tileadj)

	eset, dotx, doty := 0, -1, -1
	for n := 0; n < 4; n++ {
		if edgeadj[n].flags&fEdgeSet != 0 {
			eset++
			continue
		}
		if tileadj[n].flags&fTileAssoc == 0 {
			return 0
		}
		if dotx != -1 && doty != -1 &&
			(tileadj[n].dotx != dotx || tileadj[n].doty != doty) {
			return 0
		}
		dotx = tileadj[n].dotx
		doty = tileadj[n].doty
	}
	if eset == 4 {
		engine.Diag().Debugf("galaxies: empty tile %d,%d has 4 edges", tile.x, tile.y)
		return -1
	}

	ret := s.solverAddAssoc(tile, dotx, doty, "rest are edges")
	if ret == -1 {
		return -1
	}
	return 1
}

// solverExpandCheckdot reports whether tile is blank or already owned
// by dot.
func solverExpandCheckdot(tile, dot *space) bool {
	if tile.flags&fTileAssoc == 0 {
		return true
	}
	return tile.dotx == dot.x && tile.doty == dot.y
}

// solverExpandFromdot floods outward from dot in mirror-image tile
// pairs, tagging every empty tile it can reach. A tile reached from
// two different dots gets the multiple tag instead.
func (s *State) solverExpandFromdot(dot *space, sc *solverCtx) {
	for y := 1; y < s.sy; y += 2 {
		for x := 1; x < s.sx; x += 2 {
			s.at(x, y).flags &^= fMark
		}
	}

	// Seed with two tiles that must belong to the dot.
	switch dot.typ {
	case sTile:
		sc.scratch[0], sc.scratch[1] = dot, dot
	case sEdge:
		var ts [2]*space
		s.tilesFromEdge(dot, &ts)
		sc.scratch[0], sc.scratch[1] = ts[0], ts[1]
	case sVertex:
		sc.scratch[0] = s.at(dot.x-1, dot.y-1)
		sc.scratch[1] = s.at(dot.x+1, dot.y+1)
	}
	sc.scratch[0].flags |= fMark
	sc.scratch[1].flags |= fMark

	start, end, next := 0, 2, 2
	for {
		for i := start; i < end; i += 2 {
			t1 := sc.scratch[i]
			var edges, tileadj [4]*space
			s.adjacencies(t1, &edges, &tileadj)

			for j := 0; j < 4; j++ {
				if edges[j].flags&fEdgeSet != 0 {
					continue
				}
				if tileadj[j].flags&fMark != 0 {
					continue
				}
				t2 := s.spaceOppositeDot(tileadj[j], dot)
				if t2 == nil {
					tileadj[j].flags |= fMark
					continue
				}
				if solverExpandCheckdot(tileadj[j], dot) &&
					solverExpandCheckdot(t2, dot) {
					sc.scratch[next] = tileadj[j]
					sc.scratch[next+1] = t2
					next += 2
				}
				tileadj[j].flags |= fMark
				t2.flags |= fMark
			}
		}
		if next == end {
			break
		}
		start, end = end, next
	}

	for i := 0; i < end; i++ {
		sp := sc.scratch[i]
		if sp.flags&fTileAssoc != 0 {
			continue
		}
		if sp.flags&fReachable != 0 {
			sp.flags |= fMultiple
		} else {
			sp.flags |= fReachable
			sp.dotx = dot.x
			sp.doty = dot.y
		}
	}
}

func (s *State) solverExpandDots(sc *solverCtx) int {
	for i := range s.grid {
		s.grid[i].flags &^= fReachable | fMultiple
	}
	for _, di := range s.dots {
		s.solverExpandFromdot(&s.grid[di], sc)
	}
	return s.foreachTile(func(tile *space) int {
		if tile.flags&fTileAssoc != 0 {
			return 0
		}
		if tile.flags&fReachable == 0 {
			engine.Diag().Debugf("galaxies: tile %d,%d can reach no dots", tile.x, tile.y)
			return -1
		}
		if tile.flags&fMultiple != 0 {
			return 0
		}
		return s.solverAddAssoc(tile, tile.dotx, tile.doty,
			"single possible dot after expansion")
	}, true)
}

// solverExtendExclaves finds connected chunks of owned tiles that are
// cut off from their dot. An exclave with a single free neighbour must
// grow through it; one with none is a contradiction.
func (s *State) solverExtendExclaves(sc *solverCtx) int {
	doneSomething := 0

	// Group same-dot neighbours. Components not containing their own
	// dot are exclaves.
	sc.d.Init(sc.sz)
	for x := 1; x < s.sx; x += 2 {
		for y := 1; y < s.sy; y += 2 {
			tile := s.at(x, y)
			if tile.flags&fTileAssoc == 0 {
				continue
			}
			if s.inGrid(x+2, y) {
				other := s.at(x+2, y)
				if other.flags&fTileAssoc != 0 &&
					other.dotx == tile.dotx && other.doty == tile.doty {
					sc.d.Merge(y*s.sx+x, y*s.sx+(x+2))
				}
			}
			if s.inGrid(x, y+2) {
				other := s.at(x, y+2)
				if other.flags&fTileAssoc != 0 &&
					other.dotx == tile.dotx && other.doty == tile.doty {
					sc.d.Merge(y*s.sx+x, (y+2)*s.sx+x)
				}
			}
		}
	}

	// Count each component's liberties: distinct unassociated squares
	// adjacent to it. The count lives at the component's canonical
	// index; the last liberty seen lives one slot to the left of that.
	for x := 1; x < s.sx; x += 2 {
		for y := 1; y < s.sy; y += 2 {
			index := y*s.sx + x
			if s.at(x, y).flags&fTileAssoc == 0 || sc.d.Canonify(index) != index {
				sc.iscratch[index] = -1
			} else {
				sc.iscratch[index] = 0
				sc.iscratch[index-1] = 0
			}
		}
	}
	for x := 1; x < s.sx; x += 2 {
		for y := 1; y < s.sy; y += 2 {
			if s.at(x, y).flags&fTileAssoc != 0 {
				continue
			}
			var ni [4]int
			nn := 0
			for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
				nx, ny := x+2*d[0], y+2*d[1]
				if !s.inGrid(nx, ny) || s.at(nx, ny).flags&fTileAssoc == 0 {
					continue
				}
				nindex := sc.d.Canonify(ny*s.sx + nx)
				seen := false
				for i := 0; i < nn; i++ {
					if ni[i] == nindex {
						seen = true
						break
					}
				}
				if !seen {
					sc.iscratch[nindex]++
					sc.iscratch[nindex-1] = y*s.sx + x
					ni[nn] = nindex
					nn++
				}
			}
		}
	}

	for x := 1; x < s.sx; x += 2 {
		for y := 1; y < s.sy; y += 2 {
			index := y*s.sx + x
			if sc.iscratch[index] == -1 {
				continue
			}
			tile := s.at(x, y)
			if tile.flags&fTileAssoc == 0 {
				continue
			}
			dotx, doty := tile.dotx, tile.doty
			if index == sc.d.Canonify((doty|1)*s.sx+(dotx|1)) {
				continue // contains its own dot
			}
			if sc.iscratch[index] == 0 {
				engine.Diag().Debugf("galaxies: exclave at %d,%d has no liberties", x, y)
				return -1
			}
			if sc.iscratch[index] != 1 {
				continue
			}
			ex := sc.iscratch[index-1] % s.sx
			ey := sc.iscratch[index-1] / s.sx
			tile = s.at(ex, ey)
			if tile.flags&fTileAssoc != 0 {
				continue // settled by an earlier component
			}
			added := s.solverAddAssoc(tile, dotx, doty, "to connect exclave")
			if added < 0 {
				return -1
			}
			if added > 0 {
				doneSomething = 1
			}
		}
	}
	return doneSomething
}

const maxRecurse = 5

func (s *State) solverRecurse(maxdiff Difficulty, depth int) solveResult {
	if depth >= maxRecurse {
		return resUnfinished
	}

	// Branch on the unassociated tile with the most candidate dots.
	var best *space
	bestn := 0
	s.foreachTile(func(tile *space) int {
		if tile.flags&fTileAssoc != 0 {
			return 0
		}
		n := 0
		for _, di := range s.dots {
			if s.dotForTile(tile, &s.grid[di]) {
				n++
			}
		}
		if n > bestn {
			bestn = n
			best = tile
		}
		return 0
	}, false)
	if bestn == 0 {
		return resImpossible
	}

	ingrid := make([]space, len(s.grid))
	copy(ingrid, s.grid)
	var outgrid []space
	diff := resImpossible

	for _, di := range s.dots {
		copy(s.grid, ingrid)
		dot := &s.grid[di]
		if !s.dotForTile(best, dot) {
			continue
		}
		s.solverAddAssoc(best, dot.x, dot.y, "attempting for recursion")
		ret := s.solverStateInner(maxdiff, depth+1)

		if diff == resImpossible && ret != resImpossible {
			outgrid = make([]space, len(s.grid))
			copy(outgrid, s.grid)
		}
		bestopp := s.tileOpposite(best)
		s.removeAssoc(best)
		s.removeAssoc(bestopp)

		switch ret {
		case resAmbiguous, resUnfinished:
			diff = ret
		case resImpossible:
			// no change
		default:
			if diff == resImpossible {
				diff = resUnreasonable
			} else {
				diff = resAmbiguous
			}
		}
		if diff == resAmbiguous || diff == resUnfinished {
			break
		}
	}

	if outgrid != nil {
		copy(s.grid, outgrid)
	}
	return diff
}

func (s *State) solverStateInner(maxdiff Difficulty, depth int) solveResult {
	sc := newSolverCtx(s)

	if s.solverObvious() < 0 {
		return resImpossible
	}

	// Every rule here is Normal tier; keep applying them until none
	// makes progress.
	for {
		ret := s.foreachEdge(s.solverLinesOppositeCb, true)
		if ret < 0 {
			return resImpossible
		}
		if ret > 0 {
			continue
		}

		ret = s.foreachTile(s.solverSpacesOnepossCb, true)
		if ret < 0 {
			return resImpossible
		}
		if ret > 0 {
			continue
		}

		ret = s.solverExpandDots(sc)
		if ret < 0 {
			return resImpossible
		}
		if ret > 0 {
			continue
		}

		ret = s.solverExtendExclaves(sc)
		if ret < 0 {
			return resImpossible
		}
		if ret > 0 {
			continue
		}

		break
	}

	if s.checkComplete(nil) {
		return resNormal
	}
	if maxdiff >= Unreasonable {
		return s.solverRecurse(maxdiff, depth)
	}
	return resUnfinished
}

// solverState runs the deduction ladder up to maxdiff on s, mutating
// it toward a solution.
func (s *State) solverState(maxdiff Difficulty) solveResult {
	return s.solverStateInner(maxdiff, 0)
}
