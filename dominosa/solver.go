package dominosa

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/puzzles/dsf"
	"github.com/katalvlaran/puzzles/engine"
	"github.com/katalvlaran/puzzles/findloop"
)

// solverDomino is one domino value and its not-yet-ruled-out
// placements.
type solverDomino struct {
	lo, hi, index int

	nplacements int
	placements  []*solverPlacement

	name string
}

// solverPlacement is one specific spot a domino could occupy.
type solverPlacement struct {
	index int

	squares [2]*solverSquare

	// The domino that goes here if this placement is used.
	domino *solverDomino

	// Position of this placement in each square's list and in the
	// domino's list, kept in step by ruleOutPlacement.
	spi [2]int
	dpi int

	active bool

	// Placements sharing a square with this one. At most three per
	// square.
	noverlaps int
	overlaps  [6]*solverPlacement

	name string
}

type solverSquare struct {
	x, y, index int

	nplacements int
	placements  [4]*solverPlacement

	number int

	name string
}

type solverScratch struct {
	n, dc, pc, w, h, wh int
	maxDiffUsed         Difficulty

	dominoes   []solverDomino
	placements []solverPlacement
	squares    []solverSquare

	dominoPlacementLists []*solverPlacement

	squaresByNumber     []*solverSquare
	squaresByNumberInit bool

	fls  *findloop.State
	edsf *dsf.DSF

	whScratch            []int
	pcScratch, pcScratch2 []int
	dcScratch            []int
}

func newSolverScratch(n int) *solverScratch {
	dc, w, h := dcount(n), n+2, n+1
	wh := w * h
	pc := (w-1)*h + w*(h-1)
	sc := &solverScratch{
		n: n, dc: dc, pc: pc, w: w, h: h, wh: wh,
		dominoes:             make([]solverDomino, dc),
		placements:           make([]solverPlacement, pc),
		squares:              make([]solverSquare, wh),
		dominoPlacementLists: make([]*solverPlacement, pc),
		fls:                  findloop.NewState(wh),
	}

	di := 0
	for hi := 0; hi <= n; hi++ {
		for lo := 0; lo <= hi; lo++ {
			sc.dominoes[di] = solverDomino{
				hi: hi, lo: lo, index: di,
				name: fmt.Sprintf("%d-%d", hi, lo),
			}
			di++
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sq := &sc.squares[y*w+x]
			sq.x, sq.y, sq.index = x, y, y*w+x
			sq.name = fmt.Sprintf("(%d,%d)", x, y)
		}
	}

	// Vertical placements first, then horizontal.
	pi := 0
	for y := 0; y < h-1; y++ {
		for x := 0; x < w; x++ {
			p := &sc.placements[pi]
			p.squares[0] = &sc.squares[y*w+x]
			p.squares[1] = &sc.squares[(y+1)*w+x]
			p.name = fmt.Sprintf("(%d,%d-%d)", x, y, y+1)
			pi++
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w-1; x++ {
			p := &sc.placements[pi]
			p.squares[0] = &sc.squares[y*w+x]
			p.squares[1] = &sc.squares[y*w+x+1]
			p.name = fmt.Sprintf("(%d-%d,%d)", x, x+1, y)
			pi++
		}
	}

	// Temporary full placement lists per square, used to build the
	// overlap lists.
	for pi := range sc.placements {
		p := &sc.placements[pi]
		for si := 0; si < 2; si++ {
			sq := p.squares[si]
			p.spi[si] = sq.nplacements
			sq.placements[sq.nplacements] = p
			sq.nplacements++
		}
	}
	for pi := range sc.placements {
		p := &sc.placements[pi]
		for si := 0; si < 2; si++ {
			sq := p.squares[si]
			for j := 0; j < sq.nplacements; j++ {
				if q := sq.placements[j]; q != p {
					p.overlaps[p.noverlaps] = q
					p.noverlaps++
				}
			}
		}
	}

	for pi := range sc.placements {
		sc.placements[pi].index = pi
	}

	return sc
}

// setupGrid binds the scratch to a particular set of clue numbers,
// resetting every placement to active.
func (sc *solverScratch) setupGrid(numbers []int) {
	for i := range sc.squares {
		sc.squares[i].nplacements = 0
		sc.squares[i].number = numbers[sc.squares[i].index]
	}

	for i := range sc.placements {
		p := &sc.placements[i]
		di := dindex(p.squares[0].number, p.squares[1].number)
		p.domino = &sc.dominoes[di]
	}

	for i := range sc.dominoes {
		sc.dominoes[i].nplacements = 0
	}
	for i := range sc.placements {
		sc.placements[i].domino.nplacements++
	}
	j := 0
	for i := range sc.dominoes {
		d := &sc.dominoes[i]
		d.placements = sc.dominoPlacementLists[j : j+d.nplacements]
		j += d.nplacements
		d.nplacements = 0
	}
	for i := range sc.placements {
		p := &sc.placements[i]
		p.dpi = p.domino.nplacements
		p.domino.placements[p.domino.nplacements] = p
		p.domino.nplacements++
		p.active = true
	}

	for i := range sc.squares {
		sc.squares[i].nplacements = 0
	}
	for i := range sc.placements {
		p := &sc.placements[i]
		for si := 0; si < 2; si++ {
			sq := p.squares[si]
			p.spi[si] = sq.nplacements
			sq.placements[sq.nplacements] = p
			sq.nplacements++
		}
	}

	sc.maxDiffUsed = Trivial
	sc.squaresByNumberInit = false
}

// commonSquareIndex returns si such that p.squares[si] is the square
// shared with the overlapping placement q.
func commonSquareIndex(p, q *solverPlacement) int {
	if p.squares[0] == q.squares[0] || p.squares[0] == q.squares[1] {
		return 0
	}
	return 1
}

func (sc *solverScratch) ruleOutPlacement(p *solverPlacement) {
	d := p.domino

	engine.Diag().Debugf("dominosa: ruling out placement %s for domino %s",
		p.name, d.name)

	p.active = false

	i := p.dpi
	d.nplacements--
	if d.nplacements != i {
		d.placements[i] = d.placements[d.nplacements]
		d.placements[i].dpi = i
	}

	for si := 0; si < 2; si++ {
		sq := p.squares[si]
		i = p.spi[si]
		sq.nplacements--
		if sq.nplacements != i {
			sq.placements[i] = sq.placements[sq.nplacements]
			j := 1
			if sq.placements[i].squares[0] == sq {
				j = 0
			}
			sq.placements[i].spi[j] = i
		}
	}
}

// A domino down to one placement excludes everything overlapping it.
func (sc *solverScratch) deduceDominoSinglePlacement(di int) bool {
	d := &sc.dominoes[di]
	if d.nplacements != 1 {
		return false
	}
	p := d.placements[0]

	done := false
	for oi := 0; oi < p.noverlaps; oi++ {
		if q := p.overlaps[oi]; q.active {
			done = true
			sc.ruleOutPlacement(q)
		}
	}
	return done
}

// A square down to one placement pins its domino there.
func (sc *solverScratch) deduceSquareSinglePlacement(si int) bool {
	sq := &sc.squares[si]
	if sq.nplacements != 1 {
		return false
	}
	p := sq.placements[0]
	d := p.domino

	if d.nplacements <= 1 {
		return false
	}

	for d.nplacements > 1 {
		if d.placements[0] == p {
			sc.ruleOutPlacement(d.placements[1])
		} else {
			sc.ruleOutPlacement(d.placements[0])
		}
	}
	return true
}

// If every placement for a square is the same domino, that domino
// goes nowhere else.
func (sc *solverScratch) deduceSquareSingleDomino(si int) bool {
	sq := &sc.squares[si]

	// With fewer than two placements a simpler deduction covers it.
	if sq.nplacements < 2 {
		return false
	}

	d := sq.placements[0].domino
	for i := 1; i < sq.nplacements; i++ {
		if sq.placements[i].domino != d {
			return false
		}
	}
	if d.nplacements <= sq.nplacements {
		return false
	}

	for i := d.nplacements; i > 0; {
		i--
		p := d.placements[i]
		if p.squares[0] != sq && p.squares[1] != sq {
			sc.ruleOutPlacement(p)
		}
	}
	return true
}

// A placement overlapped by every possible placement of some domino
// is impossible.
func (sc *solverScratch) deduceDominoMustOverlap(di int) bool {
	d := &sc.dominoes[di]
	if d.nplacements < 2 {
		return false
	}

	var intersection [6]*solverPlacement
	nintersection := 0

	p := d.placements[0]
	for i := 0; i < p.noverlaps; i++ {
		if p.overlaps[i].active {
			intersection[nintersection] = p.overlaps[i]
			nintersection++
		}
	}

	for j := 1; j < d.nplacements; j++ {
		p = d.placements[j]
		oldN := nintersection
		nintersection = 0
		for k := 0; k < oldN; k++ {
			for i := 0; i < p.noverlaps; i++ {
				if p.overlaps[i] == intersection[k] {
					intersection[nintersection] = intersection[k]
					nintersection++
					break
				}
			}
		}
	}

	if nintersection == 0 {
		return false
	}
	for i := 0; i < nintersection; i++ {
		sc.ruleOutPlacement(intersection[i])
	}
	return true
}

// A placement of domino D that would leave some square no choice but
// a second copy of D is impossible.
func (sc *solverScratch) deduceLocalDuplicate(pi int) bool {
	p := &sc.placements[pi]
	d := p.domino
	if !p.active {
		return false
	}

	for i := 0; i < p.noverlaps; i++ {
		q := p.overlaps[i]
		if !q.active {
			continue
		}

		// The square of q that is not part of p.
		sq := q.squares[1-commonSquareIndex(q, p)]

		forced := true
		for j := 0; j < sq.nplacements; j++ {
			if sq.placements[j] != q && sq.placements[j].domino != d {
				forced = false
				break
			}
		}
		if forced {
			sc.ruleOutPlacement(p)
			return true
		}
	}
	return false
}

// A placement that would leave two different squares each forced to
// be the same domino is impossible.
func (sc *solverScratch) deduceLocalDuplicate2(pi int) bool {
	p := &sc.placements[pi]
	if !p.active {
		return false
	}

	for i := 0; i < p.noverlaps; i++ {
		qi := p.overlaps[i]
		if !qi.active {
			continue
		}
		sqi := qi.squares[1-commonSquareIndex(qi, p)]

		// The unique domino in every placement of sqi apart from qi.
		var di *solverDomino
		ok := true
		for k := 0; k < sqi.nplacements; k++ {
			pk := sqi.placements[k]
			if pk == qi {
				continue
			}
			if di == nil {
				di = pk.domino
			} else if di != pk.domino {
				ok = false
				break
			}
		}
		if !ok || di == nil {
			continue
		}

		for j := 0; j < p.noverlaps; j++ {
			qj := p.overlaps[j]
			if j == i || !qj.active {
				continue
			}
			sqj := qj.squares[1-commonSquareIndex(qj, p)]

			// The same domino must be sqj's only other option, and no
			// placement of sqj may join it to sqi.
			foundDi := false
			good := true
			for k := 0; k < sqj.nplacements; k++ {
				pk := sqj.placements[k]
				if pk == qj {
					continue
				}
				if pk.domino != di ||
					pk.squares[0] == sqi || pk.squares[1] == sqi {
					good = false
					break
				}
				foundDi = true
			}
			if !good || !foundDi {
				continue
			}

			sc.ruleOutPlacement(p)
			return true
		}
	}
	return false
}

// A placement that would split the remaining region into two odd
// areas cannot be part of any tiling. Bridges of the placement graph
// are found with Tarjan's algorithm.
func (sc *solverScratch) deduceParity() bool {
	neighbour := func(v int, emit func(int)) {
		sq := &sc.squares[v]
		for i := 0; i < sq.nplacements; i++ {
			p := sq.placements[i]
			emit(p.squares[0].index + p.squares[1].index - sq.index)
		}
	}
	sc.fls.Run(neighbour)

	done := false
	for pi := range sc.placements {
		p := &sc.placements[pi]
		if !p.active {
			continue
		}
		size0, size1, isBridge := sc.fls.IsBridge(
			p.squares[0].index, p.squares[1].index)
		if !isBridge {
			continue
		}
		// Placing the domino shrinks each side by one, so both sides
		// must currently be even for the deduction to apply.
		if (size0|size1)&1 != 0 {
			continue
		}
		sc.ruleOutPlacement(p)
		done = true
	}
	return done
}

// Set analysis: a set of same-numbered squares whose candidate
// dominoes are no more numerous than the squares pins those dominoes
// to the set. With doubles enabled, the adjacent-pair refinements
// apply too.
func (sc *solverScratch) deduceSet(doubles bool) bool {
	if sc.squaresByNumber == nil {
		sc.squaresByNumber = make([]*solverSquare, sc.wh)
	}
	if sc.whScratch == nil {
		sc.whScratch = make([]int, sc.wh)
	}

	if !sc.squaresByNumberInit {
		for i := range sc.squares {
			sc.squaresByNumber[i] = &sc.squares[i]
		}
		sort.Slice(sc.squaresByNumber, func(i, j int) bool {
			a, b := sc.squaresByNumber[i], sc.squaresByNumber[j]
			if a.number != b.number {
				return a.number < b.number
			}
			return a.index < b.index
		})
		sc.squaresByNumberInit = true
	}

	var dominoSets, adjacent [16]uint64
	var ds [16]*solverDomino
	done := false

	sqp := 0
	for num := 0; num <= sc.n; num++ {
		sqs := sqp
		for sqp < sc.wh && sc.squaresByNumber[sqp].number == num {
			sqp++
		}
		nsq := sqp - sqs

		// Subset enumeration below caps the base set size.
		if nsq > len(dominoSets) {
			continue
		}

		// Map square index back to position in this local list.
		for i := 0; i < nsq; i++ {
			sc.whScratch[sc.squaresByNumber[sqs+i].index] = i
		}

		for i := 0; i < nsq; i++ {
			adjacent[i] = 0
		}
		for i := 0; i < nsq; i++ {
			sq := sc.squaresByNumber[sqs+i]
			var mask uint64
			for j := 0; j < sq.nplacements; j++ {
				p := sq.placements[j]
				othernum := p.domino.lo + p.domino.hi - num
				mask |= 1 << uint(othernum)
				ds[othernum] = p.domino

				if othernum == num {
					// A double's placement covers two squares of the
					// set at once.
					i2 := sc.whScratch[p.squares[0].index+
						p.squares[1].index-sq.index]
					adjacent[i] |= 1 << uint(i2)
					adjacent[i2] |= 1 << uint(i)
				}
			}
			dominoSets[i] = mask
		}

		var squaresDone uint64
		for squares := uint64(0); squares < 1<<uint(nsq); squares++ {
			if squares&squaresDone != 0 {
				// Already part of a reported set.
				continue
			}

			var dominoes uint64
			nsquares := 0
			gotAdjSquares := false
			for bitpos := 0; bitpos < nsq; bitpos++ {
				if squares>>uint(bitpos)&1 == 0 {
					continue
				}
				if adjacent[bitpos]&squares != 0 {
					gotAdjSquares = true
				}
				dominoes |= dominoSets[bitpos]
				nsquares++
			}

			ndominoes := 0
			for bitpos := 0; bitpos < nsq; bitpos++ {
				ndominoes += int(dominoes >> uint(bitpos) & 1)
			}

			var ruleOutNondoubles bool
			var minNusedForDouble int
			if !gotAdjSquares {
				// N squares accounting for N distinct dominoes: those
				// dominoes appear nowhere else.
				if ndominoes != nsquares {
					continue
				}
				ruleOutNondoubles = true
				minNusedForDouble = 1
			} else {
				if !doubles {
					continue
				}
				if ndominoes == nsquares-1 {
					// The double must cover two squares of the set, so
					// it can be ruled out anywhere it uses fewer.
					ruleOutNondoubles = true
					minNusedForDouble = 2
				} else if ndominoes == nsquares {
					// Only the double can be excluded, in placements
					// using none of the set.
					ruleOutNondoubles = false
					minNusedForDouble = 1
				} else {
					continue
				}
			}

			// Sets of size 1, or all but one, are simpler deductions.
			if ndominoes <= 1 || ndominoes >= nsq-1 {
				continue
			}

			if ruleOutNondoubles {
				squaresDone |= squares
			}

			for bitpos := 0; bitpos < nsq; bitpos++ {
				if dominoes>>uint(bitpos)&1 == 0 {
					continue
				}
				d := ds[bitpos]

				for i := d.nplacements; i > 0; {
					i--
					p := d.placements[i]

					nused := 0
					for si := 0; si < 2; si++ {
						sq2 := p.squares[si]
						if sq2.number == num &&
							squares>>uint(sc.whScratch[sq2.index])&1 != 0 {
							nused++
						}
					}

					if d.lo == d.hi {
						if nused >= minNusedForDouble {
							continue
						}
					} else {
						if nused > 0 || !ruleOutNondoubles {
							continue
						}
					}

					done = true
					squaresDone |= squares
					sc.ruleOutPlacement(p)
				}
			}
		}
	}

	return done
}

// deduceForcingChain groups the placements of squares with exactly
// two options into complementary chains via a flip-tracking dsf, then
// rules out chains containing a duplicate domino, chains exhausting
// some square's options, and spare placements of dominoes appearing
// in both halves of a complementary pair.
func (sc *solverScratch) deduceForcingChain() bool {
	if sc.whScratch == nil {
		sc.whScratch = make([]int, sc.wh)
	}
	if sc.pcScratch == nil {
		sc.pcScratch = make([]int, sc.pc)
		sc.pcScratch2 = make([]int, sc.pc)
	}
	if sc.dcScratch == nil {
		sc.dcScratch = make([]int, sc.dc)
	}
	if sc.edsf == nil {
		sc.edsf = dsf.New(sc.pc)
	} else {
		sc.edsf.Init(sc.pc)
	}
	done := false

	// Two placements of a two-option square are mutually exclusive:
	// bind them as inverses.
	for si := range sc.squares {
		sq := &sc.squares[si]
		if sq.nplacements == 2 {
			sc.edsf.MergeFlip(sq.placements[0].index,
				sq.placements[1].index, true)
		}
	}

	// Flatten into an id per chain. Ids differing only in the low bit
	// are complementary chains.
	for pi := 0; pi < sc.pc; pi++ {
		c, inv := sc.edsf.CanonifyFlip(pi)
		id := c * 2
		if inv {
			id++
		}
		sc.pcScratch[pi] = id
	}

	// A chain using the same domino twice cannot be laid.
	for pi := 0; pi < sc.pc; pi++ {
		sc.pcScratch2[pi] = pi
	}
	sort.Slice(sc.pcScratch2, func(i, j int) bool {
		a, b := sc.pcScratch2[i], sc.pcScratch2[j]
		if sc.pcScratch[a] != sc.pcScratch[b] {
			return sc.pcScratch[a] < sc.pcScratch[b]
		}
		return sc.placements[a].domino.index < sc.placements[b].domino.index
	})

	for j := 0; j < sc.pc; {
		ci := sc.pcScratch[sc.pcScratch2[j]]
		cstart := j
		for j < sc.pc && sc.pcScratch[sc.pcScratch2[j]] == ci {
			j++
		}
		climit := j

		duplicated := false
		for k := cstart; k+1 < climit; k++ {
			p := &sc.placements[sc.pcScratch2[k]]
			q := &sc.placements[sc.pcScratch2[k+1]]
			if p.domino == q.domino {
				duplicated = true
				break
			}
		}
		if !duplicated {
			continue
		}

		for k := cstart; k < climit; k++ {
			sc.ruleOutPlacement(&sc.placements[sc.pcScratch2[k]])
		}
		done = true
	}
	if done {
		return true
	}

	// A chain containing every option of some other square rules
	// itself out. Re-sort by (domino, chain) so each domino's chains
	// are a sorted sublist.
	for pi := 0; pi < sc.pc; pi++ {
		sc.pcScratch2[pi] = pi
	}
	sort.Slice(sc.pcScratch2, func(i, j int) bool {
		a, b := sc.pcScratch2[i], sc.pcScratch2[j]
		if sc.placements[a].domino.index != sc.placements[b].domino.index {
			return sc.placements[a].domino.index < sc.placements[b].domino.index
		}
		return sc.pcScratch[a] < sc.pcScratch[b]
	})

	// First entry in pcScratch2 for each domino.
	di := 0
	for j := 0; j < sc.pc; j++ {
		for di <= sc.placements[sc.pcScratch2[j]].domino.index {
			sc.dcScratch[di] = j
			di++
		}
	}
	for ; di < sc.dc; di++ {
		sc.dcScratch[di] = sc.pc
	}

	for si := range sc.squares {
		sq := &sc.squares[si]
		if sq.nplacements < 2 {
			continue
		}

		// Chains this square itself can join are not candidates.
		var exclude [4]int
		nExclude := 0
		for j := 0; j < sq.nplacements; j++ {
			exclude[nExclude] = sc.pcScratch[sq.placements[j].index]
			nExclude++
		}

		// Intersect, across the square's placements, the sorted chain
		// lists of each placement's domino.
		listSize := 0
		for j := 0; j < sq.nplacements; j++ {
			d := sq.placements[j].domino

			listPos, listOut := 0, 0
			for k := sc.dcScratch[d.index]; k < sc.pc &&
				sc.placements[sc.pcScratch2[k]].domino == d; k++ {
				if !sc.placements[sc.pcScratch2[k]].active {
					continue
				}
				chain := sc.pcScratch[sc.pcScratch2[k]]

				keep := true
				if j > 0 {
					for listPos < listSize && sc.whScratch[listPos] < chain {
						listPos++
					}
					keep = listPos < listSize && sc.whScratch[listPos] == chain
				}
				for m := 0; m < nExclude; m++ {
					if chain == exclude[m] {
						keep = false
					}
				}
				if keep {
					sc.whScratch[listOut] = chain
					listOut++
				}
			}

			listSize = listOut
			if listSize == 0 {
				break
			}
		}

		for listPos := 0; listPos < listSize; listPos++ {
			chain := sc.whScratch[listPos]
			for pi := 0; pi < sc.pc; pi++ {
				if sc.pcScratch[pi] == chain {
					sc.ruleOutPlacement(&sc.placements[pi])
				}
			}
			done = true
		}
	}

	// A domino with placements in both halves of a complementary pair
	// must occupy one of them.
	for di := range sc.dominoes {
		d := &sc.dominoes[di]
		if d.nplacements <= 2 {
			continue
		}

	nextDomino:
		for j := 0; j+1 < d.nplacements; j++ {
			cj := sc.pcScratch[d.placements[j].index]
			for k := j + 1; k < d.nplacements; k++ {
				ck := sc.pcScratch[d.placements[k].index]
				if cj^ck == 1 {
					for i := d.nplacements; i > 0; {
						i--
						if i != j && i != k {
							sc.ruleOutPlacement(d.placements[i])
						}
					}
					done = true
					break nextDomino
				}
			}
		}
	}

	return done
}

// runSolver applies deductions up to maxDiffAllowed until none makes
// progress. Returns 0 for no solution, 1 for a unique solution, 2
// when possibilities remain.
func (sc *solverScratch) runSolver(maxDiffAllowed Difficulty) int {
	for {
		done := false

		for di := 0; di < sc.dc; di++ {
			if sc.deduceDominoSinglePlacement(di) {
				done = true
			}
		}
		if done {
			continue
		}

		for si := 0; si < sc.wh; si++ {
			if sc.deduceSquareSinglePlacement(si) {
				done = true
			}
		}
		if done {
			continue
		}

		if maxDiffAllowed <= Trivial {
			break
		}

		for si := 0; si < sc.wh; si++ {
			if sc.deduceSquareSingleDomino(si) {
				done = true
			}
		}
		if done {
			sc.maxDiffUsed = max(sc.maxDiffUsed, Basic)
			continue
		}

		for di := 0; di < sc.dc; di++ {
			if sc.deduceDominoMustOverlap(di) {
				done = true
			}
		}
		if done {
			sc.maxDiffUsed = max(sc.maxDiffUsed, Basic)
			continue
		}

		for pi := 0; pi < sc.pc; pi++ {
			if sc.deduceLocalDuplicate(pi) {
				done = true
			}
		}
		if done {
			sc.maxDiffUsed = max(sc.maxDiffUsed, Basic)
			continue
		}

		for pi := 0; pi < sc.pc; pi++ {
			if sc.deduceLocalDuplicate2(pi) {
				done = true
			}
		}
		if done {
			sc.maxDiffUsed = max(sc.maxDiffUsed, Basic)
			continue
		}

		if sc.deduceParity() {
			sc.maxDiffUsed = max(sc.maxDiffUsed, Basic)
			continue
		}

		if maxDiffAllowed <= Basic {
			break
		}

		if sc.deduceSet(false) {
			sc.maxDiffUsed = max(sc.maxDiffUsed, Hard)
			continue
		}

		if maxDiffAllowed <= Hard {
			break
		}

		if sc.deduceSet(true) {
			sc.maxDiffUsed = max(sc.maxDiffUsed, Extreme)
			continue
		}

		if sc.deduceForcingChain() {
			sc.maxDiffUsed = max(sc.maxDiffUsed, Extreme)
			continue
		}

		break
	}

	for di := range sc.dominoes {
		if sc.dominoes[di].nplacements == 0 {
			return 0
		}
	}
	for di := range sc.dominoes {
		if sc.dominoes[di].nplacements > 1 {
			return 2
		}
	}
	return 1
}
