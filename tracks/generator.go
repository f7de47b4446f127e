package tracks

import (
	"bytes"
	"fmt"

	"github.com/katalvlaran/puzzles/engine"
	"github.com/katalvlaran/puzzles/randpool"
)

// findDirection picks a random direction to extend the path from
// (x, y): off the bottom edge finishes the path, any in-grid square
// without track already on it continues it. Returns 0 when stuck.
func findDirection(s *State, rnd *randpool.Pool, x, y int) uint32 {
	w, h := s.p.Width, s.p.Height
	dirs := []uint32{dirU, dirD, dirL, dirR}
	rnd.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })

	for _, d := range dirs {
		nx, ny := x+dx(d), y+dy(d)
		if nx >= 0 && nx < w && ny == h {
			// Off the bottom of the board: the path is finished.
			return d
		}
		if !s.inGrid(nx, ny) {
			continue
		}
		if s.edgeCount(nx, ny, eTrack) > 0 {
			continue
		}
		return d
	}
	return 0
}

// layPath walks a random self-avoiding route from a left-edge entrance
// to a bottom-edge exit, restarting whenever the walk gets stuck.
func layPath(s *State, rnd *randpool.Pool) {
restart:
	s.clear()

	py := rnd.Upto(s.p.Height)
	s.numbers.rowS = py
	px := 0
	s.edgeSet(px, py, dirL, eTrack)

	for s.inGrid(px, py) {
		d := findDirection(s, rnd, px, py)
		if d == 0 {
			goto restart
		}
		s.edgeSet(px, py, d, eTrack)
		px += dx(d)
		py += dy(d)
	}
	s.numbers.colS = px
}

// copyAndStrip copies state into ret, optionally toggling the clue
// flag at flipClue (-1 to leave clues alone), then erases all square
// deductions and every edge mark not protected by a clue square.
func copyAndStrip(state, ret *State, flipClue int) {
	w, h := state.p.Width, state.p.Height
	copy(ret.sflags, state.sflags)

	if flipClue != -1 {
		ret.sflags[flipClue] ^= sClue
	}

	for i := 0; i < w*h; i++ {
		if ret.sflags[i]&sClue != 0 {
			continue
		}
		ret.sflags[i] &^= sTrack | sNoTrack | sError | sMark
		for j := 0; j < 4; j++ {
			f := uint32(1) << j
			xx, yy := i%w+dx(f), i/w+dy(f)
			if !state.inGrid(xx, yy) || ret.sflags[yy*w+xx]&sClue == 0 {
				// Only erase an edge mark if neither side is a clue.
				ret.edgeClear(i%w, i/w, f, eTrack)
				ret.edgeClear(i%w, i/w, f, eNoTrack)
			}
		}
	}
}

// solveProgress counts the flags the solver managed to set, as a
// measure of whether a clue made a partial solve reach further.
func solveProgress(s *State) int {
	w, h := s.p.Width, s.p.Height
	progress := 0
	for i := 0; i < w*h; i++ {
		if s.sflags[i]&sTrack != 0 {
			progress++
		}
		if s.sflags[i]&sNoTrack != 0 {
			progress++
		}
		progress += s.edgeCount(i%w, i/w, eTrack)
		progress += s.edgeCount(i%w, i/w, eNoTrack)
	}
	return progress
}

// checkPhantomMoves reports whether any non-clue square carries more
// than one track edge, which would show a piece of track the player
// never laid.
func checkPhantomMoves(s *State) bool {
	for x := 0; x < s.p.Width; x++ {
		for y := 0; y < s.p.Height; y++ {
			if s.sflags[y*s.p.Width+x]&sClue != 0 {
				continue
			}
			if s.edgeCount(x, y, eTrack) > 1 {
				return true
			}
		}
	}
	return false
}

// addClues lays clues at random positions until the stripped board is
// soluble at exactly the requested difficulty, then strips redundant
// clues again. Returns 1 on success, -1 when the board must be
// regenerated (already too easy, or never became soluble).
func addClues(s *State, rnd *randpool.Pool, diff Difficulty) int {
	w, h := s.p.Width, s.p.Height
	scratch := s.Clone().(*State)

	// Only positions where edges are set are worth cluing.
	positions := make([]int, 0, w*h)
	for i := 0; i < w*h; i++ {
		if s.edgeDirs(i%w, i/w, eTrack) != 0 {
			positions = append(positions, i)
		}
	}
	nedgesPrev := make([]int, w*h)

	copyAndStrip(s, scratch, -1)
	sr, diffUsed := scratch.solve(diff)
	if diffUsed < diff {
		engine.Diag().Debugf("gen: already too easy, need new board")
		return -1
	}
	if sr < 0 {
		panic("tracks: generator created impossible puzzle")
	}
	if sr > 0 {
		engine.Diag().Debugf("gen: soluble without clues, nothing to do")
		return 1
	}
	progress := solveProgress(scratch)

	stripping := false
	randpool.ShuffleInts(positions, rnd)
	for _, i := range positions {
		if s.sflags[i]&sClue != 0 {
			continue
		}
		if nedgesPrev[i] == 2 {
			// Both edges here were already solvable with the previous
			// clue set.
			continue
		}

		copyAndStrip(s, scratch, i)
		if checkPhantomMoves(scratch) {
			continue
		}

		if sr, diffUsed = scratch.solve(diff); sr > 0 {
			if diffUsed < diff {
				continue // adding a clue here makes it too easy
			}
			engine.Diag().Debugf("gen: adding clue at (%d,%d), now soluble", i%w, i/w)
			s.sflags[i] |= sClue
			stripping = true
			break
		}
		if p := solveProgress(scratch); p > progress {
			progress = p
			engine.Diag().Debugf("gen: adding clue at (%d,%d), new progress %d", i%w, i/w, p)
			s.sflags[i] |= sClue
			for j := 0; j < w*h; j++ {
				nedgesPrev[j] = scratch.edgeCount(j%w, j/w, eTrack)
			}
		}
	}
	if !stripping {
		engine.Diag().Debugf("gen: unable to make soluble with clues, need new board")
		return -1
	}

	// Strip clues without which the puzzle stays soluble.
	randpool.ShuffleInts(positions, rnd)
	for _, i := range positions {
		if s.sflags[i]&sClue == 0 {
			continue
		}
		if (i%w == 0 && i/w == s.numbers.rowS) ||
			(i/w == h-1 && i%w == s.numbers.colS) {
			continue // keep the entrance and exit clues
		}

		copyAndStrip(s, scratch, i)
		if checkPhantomMoves(scratch) {
			continue
		}
		if sr, _ = scratch.solve(diff); sr > 0 {
			engine.Diag().Debugf("gen: removing clue at (%d,%d), still soluble without it", i%w, i/w)
			s.sflags[i] &^= sClue
		}
	}
	return 1
}

// newDesc generates a puzzle at the requested difficulty and encodes
// it: letter runs a-z skip non-clue squares, hex digits carry the two
// track directions of each clue square, and the clue numbers follow
// comma-separated with 'S' marking the exit column and entrance row.
func newDesc(p Params, rnd *randpool.Pool) (string, string) {
	// 4x4 Tricky cannot be generated, so fall back to Easy.
	if p.Width == 4 && p.Height == 4 && p.Difficulty > Easy {
		p.Difficulty = Easy
	}

	w, h := p.Width, p.Height
	s := blankState(p)

	for {
		layPath(s, rnd)
		for x := 0; x < w; x++ {
			for y := 0; y < h; y++ {
				if s.edgeCount(x, y, eTrack) > 0 {
					s.sflags[y*w+x] |= sTrack
				}
				if (x == 0 && y == s.numbers.rowS) ||
					(y == h-1 && x == s.numbers.colS) {
					s.sflags[y*w+x] |= sClue
				}
			}
		}

		for x := 0; x < w; x++ {
			for y := 0; y < h; y++ {
				if s.sflags[y*w+x]&sTrack != 0 {
					s.numbers.numbers[x]++
					s.numbers.numbers[y+w]++
				}
			}
		}
		boring := false
		for i := 0; i < w+h; i++ {
			if s.numbers.numbers[i] == 0 {
				boring = true
				break
			}
		}
		if boring {
			continue
		}

		if p.SingleOnes {
			// Disallow consecutive 1 clues, and 1 clues at the
			// entrance and exit.
			lastWasOne, reject := true, false
			for i := 0; i < w+h; i++ {
				isOne := s.numbers.numbers[i] == 1
				if isOne && lastWasOne {
					reject = true
					break
				}
				lastWasOne = isOne
			}
			if reject || s.numbers.numbers[w+h-1] == 1 {
				continue
			}
		}

		if addClues(s, rnd, p.Difficulty) == 1 {
			break
		}
	}

	var db bytes.Buffer
	for i := 0; i < w*h; i++ {
		if s.sflags[i]&sClue == 0 {
			if b := db.Bytes(); len(b) > 0 && b[len(b)-1] >= 'a' && b[len(b)-1] < 'z' {
				b[len(b)-1]++
			} else {
				db.WriteByte('a')
			}
		} else {
			f := s.edgeDirs(i%w, i/w, eTrack)
			if f < 10 {
				db.WriteByte('0' + byte(f))
			} else {
				db.WriteByte('A' + byte(f-10))
			}
		}
	}
	for x := 0; x < w; x++ {
		prefix := ""
		if x == s.numbers.colS {
			prefix = "S"
		}
		fmt.Fprintf(&db, ",%s%d", prefix, s.numbers.numbers[x])
	}
	for y := 0; y < h; y++ {
		prefix := ""
		if y == s.numbers.rowS {
			prefix = "S"
		}
		fmt.Fprintf(&db, ",%s%d", prefix, s.numbers.numbers[y+w])
	}

	return db.String(), ""
}
