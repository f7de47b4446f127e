package pattern

// Solver cell values, distinct from the grid encoding: a deduction
// accumulates BLOCK/DOT bits, and a cell where both remain possible
// ends up as stillUnknown.
const (
	unknown      uint8 = 0
	block        uint8 = 1
	dot          uint8 = 2
	stillUnknown uint8 = 3
)

// lineScratch holds the per-line working arrays of the solver, sized
// for max(w, h) cells, so repeated solver runs in the generator do not
// reallocate.
type lineScratch struct {
	known, deduced, row                        []uint8
	minposDone, maxposDone, minposOk, maxposOk []int
	rowdata                                    []int
}

func newLineScratch(maxdim int) *lineScratch {
	return &lineScratch{
		known:      make([]uint8, maxdim),
		deduced:    make([]uint8, maxdim),
		row:        make([]uint8, maxdim),
		minposDone: make([]int, maxdim+1),
		maxposDone: make([]int, maxdim+1),
		minposOk:   make([]int, maxdim+1),
		maxposOk:   make([]int, maxdim+1),
		rowdata:    make([]int, maxdim+1),
	}
}

// doRecurse lays out the remaining blocks data[ndone:] in row[lowest:]
// in every way compatible with known, OR-ing every complete layout
// into deduced. The minpos/maxpos arrays memoise, per block index, the
// range of start positions already explored (done) and already proven
// extendable (ok), so equal tails are never re-examined.
func doRecurse(known, deduced, row []uint8,
	minposDone, maxposDone, minposOk, maxposOk []int,
	data []int, length, freespace, ndone, lowest int) bool {

	if data[ndone] != 0 {
		if lowest >= minposDone[ndone] && lowest <= maxposDone[ndone] {
			if lowest >= minposOk[ndone] && lowest <= maxposOk[ndone] {
				for i := 0; i < lowest; i++ {
					deduced[i] |= row[i]
				}
			}
			return lowest >= minposOk[ndone] && lowest <= maxposOk[ndone]
		}
		if lowest < minposDone[ndone] {
			minposDone[ndone] = lowest
		}
		if lowest > maxposDone[ndone] {
			maxposDone[ndone] = lowest
		}

		for i := 0; i <= freespace; i++ {
			j := lowest
			ok := true
			for k := 0; k < i && ok; k++ {
				if known[j] == block {
					ok = false
					break
				}
				row[j] = dot
				j++
			}
			for k := 0; k < data[ndone] && ok; k++ {
				if known[j] == dot {
					ok = false
					break
				}
				row[j] = block
				j++
			}
			if ok && j < length {
				if known[j] == block {
					ok = false
				} else {
					row[j] = dot
					j++
				}
			}
			if ok && doRecurse(known, deduced, row,
				minposDone, maxposDone, minposOk, maxposOk,
				data, length, freespace-i, ndone+1, j) {
				if lowest < minposOk[ndone] {
					minposOk[ndone] = lowest
				}
				if lowest+i > maxposOk[ndone] {
					maxposOk[ndone] = lowest + i
				}
				if lowest+i > maxposDone[ndone] {
					maxposDone[ndone] = lowest + i
				}
			}
		}
		return lowest >= minposOk[ndone] && lowest <= maxposOk[ndone]
	}

	// No blocks left: the rest of the line must be dots.
	for i := lowest; i < length; i++ {
		if known[i] == block {
			return false
		}
		row[i] = dot
	}
	for i := 0; i < length; i++ {
		deduced[i] |= row[i]
	}
	return true
}

// doRow runs the line solver on one row or column of cells (offset +
// stride into cells, length entries), writing any newly determined
// cells back. data is the zero-terminated clue list. changed, when
// non-nil, counts per-crossing-line updates for scheduling. Reports
// whether anything new was deduced.
func doRow(ls *lineScratch, cells []uint8, offset, length, stride int,
	data []int, changed []int) bool {

	freespace := length + 1
	rowlen := 0
	for ; data[rowlen] != 0; rowlen++ {
		ls.minposDone[rowlen] = length - 1
		ls.minposOk[rowlen] = length - 1
		ls.maxposDone[rowlen] = 0
		ls.maxposOk[rowlen] = 0
		freespace -= data[rowlen] + 1
	}

	for i := 0; i < length; i++ {
		ls.known[i] = cells[offset+i*stride]
		ls.deduced[i] = 0
	}
	for i := length - 1; i >= 0 && ls.known[i] == dot; i-- {
		freespace--
	}

	switch {
	case rowlen == 0:
		for i := 0; i < length; i++ {
			ls.deduced[i] = dot
		}
	case rowlen == 1 && data[0] == length:
		for i := 0; i < length; i++ {
			ls.deduced[i] = block
		}
	default:
		doRecurse(ls.known, ls.deduced, ls.row,
			ls.minposDone, ls.maxposDone, ls.minposOk, ls.maxposOk,
			data, length, freespace, 0, 0)
	}

	doneAny := false
	for i := 0; i < length; i++ {
		if ls.deduced[i] != 0 && ls.deduced[i] != stillUnknown &&
			ls.known[i] == 0 {
			cells[offset+i*stride] = ls.deduced[i]
			if changed != nil {
				changed[i]++
			}
			doneAny = true
		}
	}
	return doneAny
}

// solvePuzzle runs the line solver to saturation. Clues come either
// from clues (with st supplying immutable starting cells) or from a
// settled reference grid; exactly one of clues and grid is non-nil.
// It returns the deduced matrix in solver encoding and whether every
// cell was determined.
func solvePuzzle(clues *Clues, st *State, grid []uint8, w, h int) ([]uint8, bool) {
	maxdim := w
	if h > maxdim {
		maxdim = h
	}
	ls := newLineScratch(maxdim)
	matrix := make([]uint8, w*h)
	changedH := make([]int, maxdim+1)
	changedW := make([]int, maxdim+1)

	// Immutable cells carry over directly: cellFull and block share
	// the value 1, and an immutable empty cell contributes nothing the
	// clues do not already imply.
	if st != nil {
		for i := 0; i < w*h; i++ {
			if st.clues.immutable[i] {
				matrix[i] = st.grid[i]
			}
		}
	}

	lineData := func(i int) []int {
		// i < w is column i, otherwise row i-w, matching clue layout.
		if clues != nil {
			copy(ls.rowdata, clues.rowClues(i))
			ls.rowdata[clues.rowlen[i]] = 0
		} else if i < w {
			n := computeRowData(ls.rowdata, grid, i, h, w)
			ls.rowdata[n] = 0
		} else {
			n := computeRowData(ls.rowdata, grid, (i-w)*w, w, 1)
			ls.rowdata[n] = 0
		}
		return ls.rowdata
	}

	// Initial per-line scores: how many cells the clue list pins down
	// on its own, plus any pre-filled cells. Afterwards changedH[i] /
	// changedW[i] count cells changed in row i / column i since it
	// was last processed, so the busiest lines are revisited first.
	for i := 0; i < h; i++ {
		data := lineData(w + i)
		if data[0] == 0 {
			changedH[i] = w
		} else {
			freespace := w + 1
			for j := 0; data[j] != 0; j++ {
				freespace -= data[j] + 1
			}
			changedH[i] = 0
			for j := 0; data[j] != 0; j++ {
				if data[j] > freespace {
					changedH[i] += data[j] - freespace
				}
			}
		}
		for j := 0; j < w; j++ {
			if matrix[i*w+j] != 0 {
				changedH[i]++
			}
		}
	}
	for i := 0; i < w; i++ {
		data := lineData(i)
		if data[0] == 0 {
			changedW[i] = h
		} else {
			freespace := h + 1
			for j := 0; data[j] != 0; j++ {
				freespace -= data[j] + 1
			}
			changedW[i] = 0
			for j := 0; data[j] != 0; j++ {
				if data[j] > freespace {
					changedW[i] += data[j] - freespace
				}
			}
		}
		for j := 0; j < h; j++ {
			if matrix[j*w+i] != 0 {
				changedW[i]++
			}
		}
	}

	maxH, maxW := 0, 0
	for i := 0; i < h; i++ {
		if changedH[i] > maxH {
			maxH = changedH[i]
		}
	}
	for i := 0; i < w; i++ {
		if changedW[i] > maxW {
			maxW = changedW[i]
		}
	}

	for maxH > 0 || maxW > 0 {
		for ; maxH > 0 && maxH >= maxW; maxH-- {
			for i := 0; i < h; i++ {
				if changedH[i] >= maxH {
					doRow(ls, matrix, i*w, w, 1, lineData(w+i), changedW)
					changedH[i] = 0
				}
			}
			maxW = 0
			for i := 0; i < w; i++ {
				if changedW[i] > maxW {
					maxW = changedW[i]
				}
			}
		}
		for ; maxW > 0 && maxW >= maxH; maxW-- {
			for i := 0; i < w; i++ {
				if changedW[i] >= maxW {
					doRow(ls, matrix, i, h, w, lineData(i), changedH)
					changedW[i] = 0
				}
			}
			maxH = 0
			for i := 0; i < h; i++ {
				if changedH[i] > maxH {
					maxH = changedH[i]
				}
			}
		}
	}

	for i := 0; i < w*h; i++ {
		if matrix[i] == unknown {
			return matrix, false
		}
	}
	return matrix, true
}
