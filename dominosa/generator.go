package dominosa

import (
	"strconv"
	"strings"

	"github.com/katalvlaran/puzzles/laydomino"
	"github.com/katalvlaran/puzzles/randpool"
)

type allocVal struct {
	lo, hi int
	// confounder records whether a wrong placement of this value
	// already exists somewhere in the partial grid.
	confounder bool
}

type allocLoc struct {
	sq [2]int
}

type allocScratch struct {
	n, w, h, wh, dc int

	// layout[i] is the index of the other square of square i's domino.
	layout []int

	numbers []int

	vals []allocVal
	locs []allocLoc

	whScratch  []int
	wh2Scratch []int
}

func newAllocScratch(n int) *allocScratch {
	as := &allocScratch{n: n, w: n + 2, h: n + 1}
	as.wh = as.w * as.h
	as.dc = dcount(n)

	as.layout = make([]int, as.wh)
	as.numbers = make([]int, as.wh)
	as.vals = make([]allocVal, as.dc)
	as.locs = make([]allocLoc, as.dc)
	as.whScratch = make([]int, as.wh)
	as.wh2Scratch = make([]int, as.wh*2)

	for hi := 0; hi <= n; hi++ {
		for lo := 0; lo <= hi; lo++ {
			as.vals[dindex(hi, lo)] = allocVal{lo: lo, hi: hi}
		}
	}
	return as
}

func (as *allocScratch) makeLayout(rnd *randpool.Pool) {
	laydomino.LayoutInto(as.w, as.h, rnd, as.layout,
		as.whScratch, as.wh2Scratch)

	pos := 0
	for i := 0; i < as.wh; i++ {
		if as.layout[i] > i {
			as.locs[pos] = allocLoc{sq: [2]int{i, as.layout[i]}}
			pos++
		}
	}
}

// allocTrivial pairs values and locations at random, with no attempt
// at uniqueness.
func (as *allocScratch) allocTrivial(rnd *randpool.Pool) {
	for i := 0; i < as.dc; i++ {
		as.whScratch[i] = i
	}
	randpool.ShuffleInts(as.whScratch[:as.dc], rnd)

	for i := 0; i < as.dc; i++ {
		val := &as.vals[as.whScratch[i]]
		loc := &as.locs[i]
		whichLo := rnd.Upto(2)
		as.numbers[loc.sq[whichLo]] = val.lo
		as.numbers[loc.sq[1-whichLo]] = val.hi
	}
}

// findNeighbour computes the domino location lying alongside (p0,p1),
// on the side such that n0 neighbours p0. Reports false if that
// location is outside the grid or is not a domino of the layout.
func (as *allocScratch) findNeighbour(p0, p1 int) (n0, n1 int, ok bool) {
	x0, y0 := p0%as.w, p0/as.w
	x1, y1 := p1%as.w, p1/as.w
	dx, dy := x1-x0, y1-y0
	nx0, ny0 := x0+dy, y0-dx
	nx1, ny1 := x1+dy, y1-dx

	if !(nx0 >= 0 && nx0 < as.w && ny0 >= 0 && ny0 < as.h &&
		nx1 >= 1 && nx1 < as.w && ny1 >= 1 && ny1 < as.h) {
		return 0, 0, false
	}
	np0 := ny0*as.w + nx0
	np1 := ny1*as.w + nx1
	if as.layout[np0] != np1 {
		return 0, 0, false
	}
	return np0, np1, true
}

// allocTryUnique assigns values to locations in random order while
// avoiding the commonest ambiguity: two parallel dominoes sharing a
// number at diagonally opposite ends, which always admits the flipped
// tiling. Reports false when the layout leaves a domino nowhere to go.
func (as *allocScratch) allocTryUnique(rnd *randpool.Pool) bool {
	for i := 0; i < as.dc; i++ {
		as.whScratch[i] = i
	}
	randpool.ShuffleInts(as.whScratch[:as.dc], rnd)
	for i := 0; i < as.dc; i++ {
		as.wh2Scratch[i] = i
	}
	randpool.ShuffleInts(as.wh2Scratch[:as.dc], rnd)

	for i := 0; i < as.wh; i++ {
		as.numbers[i] = -1
	}

	for i := 0; i < as.dc; i++ {
		val := &as.vals[as.whScratch[i]]
		loc := &as.locs[as.wh2Scratch[i]]
		canLo0, canLo1 := true, true

		if n0, n1, ok := as.findNeighbour(loc.sq[0], loc.sq[1]); ok &&
			(as.numbers[n0] == val.hi || as.numbers[n1] == val.lo) {
			canLo0 = false
		}
		if n0, n1, ok := as.findNeighbour(loc.sq[1], loc.sq[0]); ok &&
			(as.numbers[n0] == val.hi || as.numbers[n1] == val.lo) {
			canLo1 = false
		}

		var whichLo int
		switch {
		case !canLo0 && !canLo1:
			return false
		case canLo0 && canLo1:
			whichLo = rnd.Upto(2)
		case canLo0:
			whichLo = 0
		default:
			whichLo = 1
		}

		as.numbers[loc.sq[whichLo]] = val.lo
		as.numbers[loc.sq[1-whichLo]] = val.hi
	}

	return true
}

// allocTryHard additionally arranges for every domino value to have
// at least one wrong placement in the finished grid, so that nothing
// starts out with a unique placement.
func (as *allocScratch) allocTryHard(rnd *randpool.Pool) bool {
	for i := 0; i < as.wh; i++ {
		as.numbers[i] = -1
	}

	for i := 0; i < as.dc; i++ {
		as.wh2Scratch[i] = i
	}
	randpool.ShuffleInts(as.wh2Scratch[:as.dc], rnd)

	// Place the doubles first, seeding an instance of every number.
	for i := 0; i <= as.n; i++ {
		as.whScratch[i] = dindex(i, i)
	}
	randpool.ShuffleInts(as.whScratch[:as.n+1], rnd)
	for i := 0; i <= as.n; i++ {
		loc := &as.locs[as.wh2Scratch[i]]
		as.numbers[loc.sq[0]] = i
		as.numbers[loc.sq[1]] = i
	}

	// Mark the values that already have a wrong placement.
	for i := 0; i < as.dc; i++ {
		as.vals[i].confounder = false
	}
	for y := 0; y < as.h; y++ {
		for x := 0; x < as.w; x++ {
			p := y*as.w + x
			if as.numbers[p] == -1 {
				continue
			}
			if x+1 < as.w {
				p1 := y*as.w + x + 1
				if as.layout[p] != p1 && as.numbers[p1] != -1 {
					as.vals[dindex(as.numbers[p], as.numbers[p1])].confounder = true
				}
			}
			if y+1 < as.h {
				p1 := (y+1)*as.w + x
				if as.layout[p] != p1 && as.numbers[p1] != -1 {
					as.vals[dindex(as.numbers[p], as.numbers[p1])].confounder = true
				}
			}
		}
	}

	confoundersNeeded := 0
	for i := 0; i < as.dc; i++ {
		if !as.vals[i].confounder {
			confoundersNeeded++
		}
	}

	// Repeated passes over the unplaced values, placing each where it
	// adds a missing confounder.
	vals := 0
	for hi := 0; hi <= as.n; hi++ {
		for lo := 0; lo < hi; lo++ {
			as.whScratch[vals] = dindex(hi, lo)
			vals++
		}
	}
	randpool.ShuffleInts(as.whScratch[:vals], rnd)

	locs := as.dc

	for vals > 0 {
		oldVals := vals
		valOut := 0

		for valPos := 0; valPos < vals; valPos++ {
			validx := as.whScratch[valPos]
			val := &as.vals[validx]

			var loc *allocLoc
			whichLo := -1

		search:
			for locPos := 0; locPos < locs; locPos++ {
				loc = &as.locs[as.wh2Scratch[locPos]]
				if as.numbers[loc.sq[0]] != -1 {
					continue
				}

				flip := rnd.Upto(2)

				for wi := 0; wi < 2; wi++ {
					wl := wi ^ flip

					// Reject the diagonal-duplicate pattern, as in
					// allocTryUnique.
					if n0, n1, ok := as.findNeighbour(loc.sq[wl],
						loc.sq[1-wl]); ok &&
						(as.numbers[n0] == val.hi ||
							as.numbers[n1] == val.lo) {
						break
					}

					if confoundersNeeded == 0 {
						whichLo = wl
						break search
					}

					// Look for at least one newly added confounder.
					for si := 0; si < 2; si++ {
						x, y := loc.sq[si]%as.w, loc.sq[si]/as.w
						n := val.hi
						if si == wl {
							n = val.lo
						}
						for d := 0; d < 4; d++ {
							dx, dy := 0, 0
							switch d {
							case 0:
								dx = 1
							case 1:
								dy = 1
							case 2:
								dx = -1
							case 3:
								dy = -1
							}
							x1, y1 := x+dx, y+dy
							p1 := y1*as.w + x1
							if x1 >= 0 && x1 < as.w &&
								y1 >= 0 && y1 < as.h &&
								as.numbers[p1] != -1 &&
								!as.vals[dindex(n, as.numbers[p1])].confounder {
								whichLo = wl
								break search
							}
						}
					}
				}
			}

			if whichLo < 0 {
				// Nowhere useful this pass; retry the value later.
				as.whScratch[valOut] = validx
				valOut++
				continue
			}

			as.numbers[loc.sq[whichLo]] = val.lo
			as.numbers[loc.sq[1-whichLo]] = val.hi

			// Record the confounders the new domino introduces.
			for si := 0; si < 2; si++ {
				p := loc.sq[si]
				n := as.numbers[p]
				x, y := p%as.w, p/as.w
				for d := 0; d < 4; d++ {
					dx, dy := 0, 0
					switch d {
					case 0:
						dx = 1
					case 1:
						dy = 1
					case 2:
						dx = -1
					case 3:
						dy = -1
					}
					x1, y1 := x+dx, y+dy
					p1 := y1*as.w + x1
					if x1 >= 0 && x1 < as.w && y1 >= 0 && y1 < as.h &&
						p1 != loc.sq[1-si] && as.numbers[p1] != -1 {
						di := dindex(n, as.numbers[p1])
						if !as.vals[di].confounder {
							confoundersNeeded--
						}
						as.vals[di].confounder = true
					}
				}
			}
		}

		vals = valOut
		if oldVals == vals {
			break
		}
	}

	for i := 0; i < as.dc; i++ {
		if !as.vals[i].confounder {
			return false
		}
	}
	for i := 0; i < as.wh; i++ {
		if as.numbers[i] == -1 {
			return false
		}
	}
	return true
}

// newDesc generates a puzzle at the requested difficulty and returns
// its descriptor plus the layout encoded as an aux solution string.
func newDesc(p Params, rnd *randpool.Pool) (string, string) {
	n, diff := p.N, p.Diff
	wh := (n + 2) * (n + 1)

	// Small boards cannot reach the higher tiers at all.
	if diff != Ambiguous {
		if n == 1 && diff > Trivial {
			diff = Trivial
		}
		if n == 2 && diff > Basic {
			diff = Basic
		}
	}

	sc := newSolverScratch(n)
	as := newAllocScratch(n)

	// Rejection sampling: build a random candidate, keep it only if
	// the solver pins it at exactly the requested difficulty.
	for {
		as.makeLayout(rnd)

		if diff == Ambiguous {
			as.allocTrivial(rnd)
		} else if diff < Hard {
			if !as.allocTryUnique(rnd) {
				continue
			}
		} else {
			// Hard and above also insist there is no Basic-level
			// starting point anywhere.
			if !as.allocTryHard(rnd) {
				continue
			}

			sc.setupGrid(as.numbers)
			if sc.runSolver(Basic) < 2 {
				continue
			}
			ok := true
			for di := 0; di < sc.dc; di++ {
				if sc.dominoes[di].nplacements <= 1 {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		}

		if diff != Ambiguous {
			sc.setupGrid(as.numbers)
			if sc.runSolver(diff) > 1 {
				continue
			}
			if sc.maxDiffUsed < diff {
				continue
			}
		}

		break
	}

	var desc strings.Builder
	for i := 0; i < wh; i++ {
		k := as.numbers[i]
		if k < 10 {
			desc.WriteByte(byte('0' + k))
		} else {
			desc.WriteByte('[')
			desc.WriteString(strconv.Itoa(k))
			desc.WriteByte(']')
		}
	}

	aux := make([]byte, wh)
	for i := 0; i < wh; i++ {
		switch as.layout[i] {
		case i + 1:
			aux[i] = 'L'
		case i - 1:
			aux[i] = 'R'
		case i + as.w:
			aux[i] = 'T'
		case i - as.w:
			aux[i] = 'B'
		default:
			aux[i] = '.'
		}
	}

	return desc.String(), string(aux)
}
