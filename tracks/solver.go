package tracks

import (
	"github.com/katalvlaran/puzzles/dsf"
	"github.com/katalvlaran/puzzles/engine"
	"github.com/katalvlaran/puzzles/findloop"
)

// solverScratch carries allocations reused across bridge-parity runs.
type solverScratch struct {
	dsf *dsf.DSF
}

func setSquareFlag(s *State, x, y int, f uint32, why string) int {
	w := s.p.Width
	i := y*w + x

	if s.sflags[i]&f != 0 {
		return 0
	}
	name := "TRACK"
	opp := sNoTrack
	if f == sNoTrack {
		name, opp = "NOTRACK", sTrack
	}
	engine.Diag().Debugf("square (%d,%d) -> %s: %s", x, y, name, why)
	if s.sflags[i]&opp != 0 {
		engine.Diag().Debugf("opposite flag already set there, marking impossible")
		s.impossible = true
	} else {
		s.sflags[i] |= f
	}
	return 1
}

func setEdgeFlag(s *State, x, y int, d uint32, f uint32, why string) int {
	sf := s.edgeFlags(x, y, d)

	if sf&f != 0 {
		return 0
	}
	name := "TRACK"
	opp := eNoTrack
	if f == eNoTrack {
		name, opp = "NOTRACK", eTrack
	}
	engine.Diag().Debugf("edge (%d,%d)/%c -> %s: %s", x, y, moveChar(d), name, why)
	if sf&opp != 0 {
		engine.Diag().Debugf("opposite flag already set there, marking impossible")
		s.impossible = true
	} else {
		s.edgeSet(x, y, d, f)
	}
	return 1
}

func solveUpdateFlags(s *State) int {
	w, h := s.p.Width, s.p.Height
	did := 0

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			// If a square is NOTRACK, all four edges must be.
			if s.sflags[y*w+x]&sNoTrack != 0 {
				for i := 0; i < 4; i++ {
					did += setEdgeFlag(s, x, y, 1<<i, eNoTrack, "edges around NOTRACK")
				}
			}

			// If 3 or more edges around a square are NOTRACK, the square is.
			if s.edgeCount(x, y, eNoTrack) >= 3 {
				did += setSquareFlag(s, x, y, sNoTrack, "square has >2 NOTRACK edges")
			}

			// If any edge around a square is TRACK, the square is.
			if s.edgeCount(x, y, eTrack) > 0 {
				did += setSquareFlag(s, x, y, sTrack, "square has TRACK edge")
			}

			// If a square is TRACK and 2 edges are NOTRACK, the other
			// two edges must be TRACK.
			if s.sflags[y*w+x]&sTrack != 0 &&
				s.edgeCount(x, y, eNoTrack) == 2 &&
				s.edgeCount(x, y, eTrack) < 2 {
				for i := 0; i < 4; i++ {
					d := uint32(1) << i
					if s.edgeFlags(x, y, d)&(eTrack|eNoTrack) == 0 {
						did += setEdgeFlag(s, x, y, d, eTrack,
							"TRACK square/2 NOTRACK edges")
					}
				}
			}

			// If a square is TRACK and 2 edges are TRACK, the other two
			// must be NOTRACK.
			if s.sflags[y*w+x]&sTrack != 0 &&
				s.edgeCount(x, y, eTrack) == 2 &&
				s.edgeCount(x, y, eNoTrack) < 2 {
				for i := 0; i < 4; i++ {
					d := uint32(1) << i
					if s.edgeFlags(x, y, d)&(eTrack|eNoTrack) == 0 {
						did += setEdgeFlag(s, x, y, d, eNoTrack,
							"TRACK square/2 TRACK edges")
					}
				}
			}
		}
	}
	return did
}

func solveCountCol(s *State, col int, f uint32) int {
	w, h := s.p.Width, s.p.Height
	c := 0
	for i := col; i < w*h; i += w {
		if s.sflags[i]&f != 0 {
			c++
		}
	}
	return c
}

func solveCountRow(s *State, row int, f uint32) int {
	w := s.p.Width
	c := 0
	for i := w * row; i < w*(row+1); i++ {
		if s.sflags[i]&f != 0 {
			c++
		}
	}
	return c
}

func solveCountCluesLine(s *State, si, id, n, target int, what string) int {
	w := s.p.Width
	ctrack, cnotrack, did := 0, 0, 0

	for j, i := 0, si; j < n; j, i = j+1, i+id {
		if s.sflags[i]&sTrack != 0 {
			ctrack++
		}
		if s.sflags[i]&sNoTrack != 0 {
			cnotrack++
		}
	}
	if ctrack == target {
		// Everything that's not TRACK must be NOTRACK.
		for j, i := 0, si; j < n; j, i = j+1, i+id {
			if s.sflags[i]&sTrack == 0 {
				did += setSquareFlag(s, i%w, i/w, sNoTrack, what)
			}
		}
	}
	if cnotrack == n-target {
		// Everything that's not NOTRACK must be TRACK.
		for j, i := 0, si; j < n; j, i = j+1, i+id {
			if s.sflags[i]&sNoTrack == 0 {
				did += setSquareFlag(s, i%w, i/w, sTrack, what)
			}
		}
	}
	return did
}

func solveCountClues(s *State) int {
	w, h := s.p.Width, s.p.Height
	did := 0
	for x := 0; x < w; x++ {
		did += solveCountCluesLine(s, x, w, h, s.numbers.numbers[x], "col count")
	}
	for y := 0; y < h; y++ {
		did += solveCountCluesLine(s, y*w, 1, w, s.numbers.numbers[w+y], "row count")
	}
	return did
}

// solveCheckSingleLine: for rows or columns with one more track square
// to place, a new track section could only run perpendicular to the
// line (otherwise it would need two free squares). If nowhere on the
// line admits a perpendicular crossing, the extra section must extend
// one end of an existing section, so everything far from the line's
// sole loose square is NOTRACK.
func solveCheckSingleLine(s *State, si, id, n, target int, perpf uint32, what string) int {
	w := s.p.Width
	ctrack, nperp, did := 0, 0, 0
	n1edge, i1edge := 0, 0

	for j, i := 0, si; j < n; j, i = j+1, i+id {
		if s.sflags[i]&sTrack != 0 {
			ctrack++
		}
		impossible := s.edgeDirs(i%w, i/w, eNoTrack)
		if perpf&impossible == 0 {
			nperp++
		}
		if s.edgeCount(i%w, i/w, eTrack) <= 1 {
			n1edge++
			i1edge = i
		}
	}
	if ctrack != target-1 {
		return 0
	}
	if nperp > 0 || n1edge != 1 {
		return 0
	}

	engine.Diag().Debugf("check_single from (%d,%d): 1 match from (%d,%d)",
		si%w, si/w, i1edge%w, i1edge/w)

	ox, oy := i1edge%w, i1edge/w
	for j, i := 0, si; j < n; j, i = j+1, i+id {
		x, y := i%w, i/w
		if abs(ox-x) > 1 || abs(oy-y) > 1 {
			if s.sflags[i]&sTrack == 0 {
				did += setSquareFlag(s, x, y, sNoTrack, what)
			}
		}
	}
	return did
}

func solveCheckSingle(s *State) int {
	w, h := s.p.Width, s.p.Height
	did := 0
	for x := 0; x < w; x++ {
		did += solveCheckSingleLine(s, x, w, h, s.numbers.numbers[x], dirR|dirL, "single on col")
	}
	for y := 0; y < h; y++ {
		did += solveCheckSingleLine(s, y*w, 1, w, s.numbers.numbers[w+y], dirU|dirD, "single on row")
	}
	return did
}

func solveCheckLooseLine(s *State, si, id, n, target int, perpf uint32, what string) int {
	w := s.p.Width
	nperp, nloose, e2count, did := 0, 0, 0, 0
	parf := allDirs &^ perpf

	for j, i := 0, si; j < n; j, i = j+1, i+id {
		fcount := s.edgeCount(i%w, i/w, eTrack)
		if fcount == 2 {
			e2count++
		}
		s.sflags[i] &^= sMark
		if fcount == 1 && parf&s.edgeDirs(i%w, i/w, eTrack) != 0 {
			// A loose end: a single edge parallel to the line.
			nloose++
			s.sflags[i] |= sMark
		}
		if fcount != 2 && perpf&s.edgeDirs(i%w, i/w, eNoTrack) == 0 {
			nperp++
		}
	}

	if nloose > target-e2count {
		engine.Diag().Debugf("check %s from (%d,%d): more loose (%d) than empty (%d), impossible",
			what, si%w, si/w, nloose, target-e2count)
		s.impossible = true
	}
	if nloose > 0 && nloose == target-e2count {
		engine.Diag().Debugf("check %s from (%d,%d): nloose = empty (%d), forcing loners out",
			what, si%w, si/w, nloose)
		for j, i := 0, si; j < n; j, i = j+1, i+id {
			if s.sflags[i]&sMark == 0 {
				continue
			}
			if j > 0 && s.sflags[i-id]&sMark != 0 {
				continue // next to other loose end, could join up
			}
			if j < n-1 && s.sflags[i+id]&sMark != 0 {
				continue
			}
			for k := 0; k < 4; k++ {
				d := uint32(1) << k
				if parf&d != 0 && s.edgeDirs(i%w, i/w, eTrack)&d == 0 {
					did += setEdgeFlag(s, i%w, i/w, d, eNoTrack, what)
				}
			}
		}
	}
	if nloose == 1 && target-e2count == 2 && nperp == 0 {
		engine.Diag().Debugf("check %s from (%d,%d): 1 loose end, 2 empty squares, forcing parallel",
			what, si%w, si/w)
		for j, i := 0, si; j < n; j, i = j+1, i+id {
			if s.sflags[i]&sMark == 0 {
				continue
			}
			for k := 0; k < 4; k++ {
				d := uint32(1) << k
				if parf&d != 0 {
					did += setEdgeFlag(s, i%w, i/w, d, eTrack, what)
				}
			}
		}
	}
	return did
}

func solveCheckLooseEnds(s *State) int {
	w, h := s.p.Width, s.p.Height
	did := 0
	for x := 0; x < w; x++ {
		did += solveCheckLooseLine(s, x, w, h, s.numbers.numbers[x], dirR|dirL, "loose on col")
	}
	for y := 0; y < h; y++ {
		did += solveCheckLooseLine(s, y*w, 1, w, s.numbers.numbers[w+y], dirU|dirD, "loose on row")
	}
	return did
}

func solveCheckNeighboursCount(s *State, start, step, n, clueIndex int) (onefill, oneempty bool) {
	toFill := s.numbers.numbers[clueIndex]
	toEmpty := n - toFill
	for i := 0; i < n; i++ {
		p := start + i*step
		if s.sflags[p]&sTrack != 0 {
			toFill--
		}
		if s.sflags[p]&sNoTrack != 0 {
			toEmpty--
		}
	}
	return toFill == 1, toEmpty == 1
}

// solveCheckNeighboursTry examines a neighbouring pair of squares p, q
// with dir pointing from the former to the latter. If p has no free
// exit other than the one towards q, then filling p forces filling q;
// with only one track square left on their shared line that rules out
// p, and with only one non-track square left it forces q.
func solveCheckNeighboursTry(s *State, x, y, qx, qy int,
	onefill, oneempty bool, dir uint32, what string) int {

	w := s.p.Width
	p, q := y*w+x, qy*w+qx

	if (s.sflags[p]|s.sflags[q])&(sTrack|sNoTrack) != 0 {
		return 0
	}

	exitsExceptDir := nbits[allDirs&^dir&^s.edgeDirs(x, y, eNoTrack)]
	if exitsExceptDir >= 2 {
		return 0
	}

	did := 0
	if onefill {
		s.sflags[p] |= sNoTrack
		engine.Diag().Debugf("square (%d,%d) -> NOTRACK: otherwise, that and (%d,%d) "+
			"would make too many TRACK in %s", x, y, qx, qy, what)
		did++
	}
	if oneempty {
		s.sflags[q] |= sTrack
		engine.Diag().Debugf("square (%d,%d) -> TRACK: otherwise, that and (%d,%d) "+
			"would make too many NOTRACK in %s", qx, qy, x, y, what)
		did++
	}
	return did
}

func solveCheckNeighbours(s *State, bothWays bool) int {
	w, h := s.p.Width, s.p.Height
	did := 0

	for x := 0; x < w; x++ {
		onefill, oneempty := solveCheckNeighboursCount(s, x, w, h, x)
		if !bothWays {
			oneempty = false
		}
		if !onefill && !oneempty {
			continue
		}
		for y := 0; y+1 < h; y++ {
			did += solveCheckNeighboursTry(s, x, y, x, y+1, onefill, oneempty, dirD, "column")
			did += solveCheckNeighboursTry(s, x, y+1, x, y, onefill, oneempty, dirU, "column")
		}
	}
	for y := 0; y < h; y++ {
		onefill, oneempty := solveCheckNeighboursCount(s, y*w, 1, w, w+y)
		if !bothWays {
			oneempty = false
		}
		if !onefill && !oneempty {
			continue
		}
		for x := 0; x+1 < w; x++ {
			did += solveCheckNeighboursTry(s, x, y, x+1, y, onefill, oneempty, dirR, "row")
			did += solveCheckNeighboursTry(s, x+1, y, x, y, onefill, oneempty, dirL, "row")
		}
	}
	return did
}

func solveCheckLoopEdge(s *State, x, y int, dir uint32, d *dsf.DSF, startc, endc int) int {
	w, h := s.p.Width, s.p.Height
	i := y*w + x
	j := (y+dy(dir))*w + (x + dx(dir))

	if s.sflags[i]&sTrack == 0 || s.sflags[j]&sTrack == 0 ||
		s.edgeDirs(x, y, eTrack)&dir != 0 ||
		s.edgeDirs(x, y, eNoTrack)&dir != 0 {
		return 0
	}

	ic, jc := d.Canonify(i), d.Canonify(j)
	if ic == jc {
		return setEdgeFlag(s, x, y, dir, eNoTrack, "would close loop")
	}
	if (ic == startc && jc == endc) || (ic == endc && jc == startc) {
		engine.Diag().Debugf("adding link at (%d,%d) would join start to end", x, y)
		// The start may not join the end while other track fragments
		// remain unattached, or while any clue is unsatisfied.
		for k := 0; k < w*h; k++ {
			if s.sflags[k]&sTrack != 0 &&
				d.Canonify(k) != startc && d.Canonify(k) != endc {
				return setEdgeFlag(s, x, y, dir, eNoTrack,
					"joins start to end but misses tracks")
			}
		}
		satisfied := true
		for k := 0; k < w; k++ {
			if solveCountCol(s, k, sTrack) < s.numbers.numbers[k] {
				satisfied = false
			}
		}
		for k := 0; k < h; k++ {
			if solveCountRow(s, k, sTrack) < s.numbers.numbers[w+k] {
				satisfied = false
			}
		}
		if !satisfied {
			return setEdgeFlag(s, x, y, dir, eNoTrack,
				"joins start to end with incomplete clues")
		}
	}
	return 0
}

func solveCheckLoop(s *State) int {
	w, h := s.p.Width, s.p.Height
	did := 0

	d := dsf.New(w * h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if x < w-1 && s.edgeDirs(x, y, eTrack)&dirR != 0 {
				d.Merge(y*w+x, y*w+x+1)
			}
			if y < h-1 && s.edgeDirs(x, y, eTrack)&dirD != 0 {
				d.Merge(y*w+x, (y+1)*w+x)
			}
		}
	}

	startc := d.Canonify(s.numbers.rowS * w)
	endc := d.Canonify((h-1)*w + s.numbers.colS)

	// Any adjacent TRACK squares already in the same class must not be
	// joined, or they would close a loop.
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if x < w-1 {
				did += solveCheckLoopEdge(s, x, y, dirR, d, startc, endc)
			}
			if y < h-1 {
				did += solveCheckLoopEdge(s, x, y, dirD, d, startc, endc)
			}
		}
	}
	return did
}

func solveDiscountEdge(s *State, x, y int, d uint32) {
	if s.edgeDirs(x, y, eTrack)&d != 0 {
		// Only clue squares can have outer edges set.
		return
	}
	setEdgeFlag(s, x, y, d, eNoTrack, "outer edge")
}

// solveBridgeParityEdge settles the undecided edge (x,y)->d, known to
// be a bridge of the undecided-edge graph, by a parity argument: the
// route starts and ends outside any closed boundary of known edges,
// so it must cross that boundary an even number of times. Deleting
// the bridge splits the graph; counting the known track crossings of
// the boundary of the component containing (x, y) fixes the edge.
func solveBridgeParityEdge(s *State, x, y int, d uint32, sc *solverScratch) int {
	w, h := s.p.Width, s.p.Height
	wh := w * h
	qx, qy := x+dx(d), y+dy(d)

	if sc.dsf == nil {
		sc.dsf = dsf.New(wh)
	} else {
		sc.dsf.Init(wh)
	}

	for xi := 0; xi < w; xi++ {
		for yi := 0; yi < h; yi++ {
			// d is D or R, so the bridge edge is excluded with a single
			// orientation test each way.
			if yi+1 < h && s.edgeFlags(xi, yi, dirD) == 0 &&
				!(xi == x && yi == y && xi == qx && yi+1 == qy) {
				sc.dsf.Merge(yi*w+xi, (yi+1)*w+xi)
			}
			if xi+1 < w && s.edgeFlags(xi, yi, dirR) == 0 &&
				!(xi == x && yi == y && xi+1 == qx && yi == qy) {
				sc.dsf.Merge(yi*w+xi, yi*w+xi+1)
			}
		}
	}

	component := sc.dsf.Canonify(y*w + x)
	parity := 0
	for xi := 0; xi < w; xi++ {
		for yi := 0; yi < h; yi++ {
			if sc.dsf.Canonify(yi*w+xi) != component {
				continue
			}
			for di := uint32(1); di < 16; di *= 2 {
				qxi, qyi := xi+dx(di), yi+dy(di)
				outside := qxi < 0 || qxi >= w || qyi < 0 || qyi >= h ||
					sc.dsf.Canonify(qyi*w+qxi) != component
				if outside && s.edgeDirs(xi, yi, eTrack)&di != 0 {
					parity ^= 1
				}
			}
		}
	}

	if parity != 0 {
		setEdgeFlag(s, x, y, d, eTrack, "parity")
	} else {
		setEdgeFlag(s, x, y, d, eNoTrack, "parity")
	}
	return 1
}

func solveCheckBridgeParity(s *State, sc *solverScratch) int {
	w, h := s.p.Width, s.p.Height
	wh := w * h
	did := 0

	fls := findloop.NewState(wh)
	fls.Run(func(v int, emit func(int)) {
		x, y := v%w, v/w
		dirs := allDirs &^ s.edgeDirs(x, y, eTrack) &^ s.edgeDirs(x, y, eNoTrack)
		for di := uint32(1); di < 16; di *= 2 {
			if dirs&di != 0 {
				emit((y+dy(di))*w + (x + dx(di)))
			}
		}
	})

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if y+1 < h && !fls.IsLoopEdge(y*w+x, (y+1)*w+x) {
				did += solveBridgeParityEdge(s, x, y, dirD, sc)
			}
			if x+1 < w && !fls.IsLoopEdge(y*w+x, y*w+x+1) {
				did += solveBridgeParityEdge(s, x, y, dirR, sc)
			}
		}
	}
	return did
}

// solve runs the deduction ladder up to the permitted difficulty. It
// returns -1 for a contradiction, 1 when the grid reaches a complete
// solved route, and 0 when the rules saturate short of that. maxDiff
// reports the hardest rule class that made progress.
func (s *State) solve(diff Difficulty) (result int, maxDiff Difficulty) {
	w, h := s.p.Width, s.p.Height
	sc := &solverScratch{}
	maxDiff = Easy

	s.impossible = false

	// All outer border edges are no-track, bar the clue entrances.
	for x := 0; x < w; x++ {
		solveDiscountEdge(s, x, 0, dirU)
		solveDiscountEdge(s, x, h-1, dirD)
	}
	for y := 0; y < h; y++ {
		solveDiscountEdge(s, 0, y, dirL)
		solveDiscountEdge(s, w-1, y, dirR)
	}

	rules := []struct {
		level Difficulty
		fn    func() int
	}{
		{Easy, func() int { return solveUpdateFlags(s) }},
		{Easy, func() int { return solveCountClues(s) }},
		{Easy, func() int { return solveCheckLoop(s) }},

		{Tricky, func() int { return solveCheckSingle(s) }},
		{Tricky, func() int { return solveCheckLooseEnds(s) }},
		{Tricky, func() int { return solveCheckNeighbours(s, false) }},

		{Hard, func() int { return solveCheckNeighbours(s, true) }},
		{Hard, func() int { return solveCheckBridgeParity(s, sc) }},
	}

	for !s.impossible {
		progressed := false
		for _, r := range rules {
			if diff >= r.level && r.fn() > 0 {
				if maxDiff < r.level {
					maxDiff = r.level
				}
				progressed = true
				break
			}
		}
		if !progressed {
			break
		}
	}

	if s.impossible {
		return -1, maxDiff
	}
	if s.checkCompletion(false) {
		return 1, maxDiff
	}
	return 0, maxDiff
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
