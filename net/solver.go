package net

import (
	"github.com/katalvlaran/puzzles/dsf"
	"github.com/katalvlaran/puzzles/engine"
)

// todoQueue is a de-duplicating FIFO of tile indices awaiting
// reprocessing.
type todoQueue struct {
	marked []bool
	buffer []int
	head   int
	tail   int
}

func newTodoQueue(maxsize int) *todoQueue {
	return &todoQueue{
		marked: make([]bool, maxsize),
		buffer: make([]int, maxsize+1),
	}
}

func (t *todoQueue) add(index int) {
	if t.marked[index] {
		return
	}
	t.marked[index] = true
	t.buffer[t.tail] = index
	t.tail++
	if t.tail == len(t.buffer) {
		t.tail = 0
	}
}

func (t *todoQueue) get() int {
	if t.head == t.tail {
		return -1
	}
	ret := t.buffer[t.head]
	t.head++
	if t.head == len(t.buffer) {
		t.head = 0
	}
	t.marked[ret] = false
	return ret
}

// Edge knowledge values in edgestate.
const (
	edgeUnknown = 0
	edgeOpen    = 1
	edgeClosed  = 2
)

// solver narrows each tile down to a single orientation. On success it
// rewrites tiles to the solved orientations with the locked bit set on
// every determined tile. Returns -1 for a proven contradiction, 0 when
// deduction saturated short of a full solution, +1 when solved.
func solver(w, h int, tiles, barriers []uint8, wrapping bool) int {
	diag := engine.Diag().WithField("solver", "net")

	// tilestate[i*4 .. i*4+3] lists the distinct orientations still
	// possible for tile i, padded with 255. Rotationally symmetric
	// tiles contribute fewer than four.
	tilestate := make([]uint8, w*h*4)
	area := 0
	for i := 0; i < w*h; i++ {
		tilestate[i*4] = tiles[i] & dirMask
		for j := 1; j < 4; j++ {
			prev := tilestate[i*4+j-1]
			if prev == 255 || rotA(prev) == tilestate[i*4] {
				tilestate[i*4+j] = 255
			} else {
				tilestate[i*4+j] = rotA(prev)
			}
		}
		if tiles[i] != 0 {
			area++
		}
	}

	// edgestate tracks each edge from both sides, indexed
	// [tile*5 + d] for d in {1,2,4,8}.
	edgestate := make([]uint8, (w*h-1)*5+9)

	// deadends[tile*5+d] bounds how many tiles can be reached by
	// leaving tile in direction d; area+1 means no bound known.
	deadends := make([]int, (w*h-1)*5+9)
	for i := range deadends {
		deadends[i] = area + 1
	}

	// equivalence tracks connected tiles so orientations that would
	// close a loop can be rejected.
	equivalence := dsf.New(w * h)

	if !wrapping {
		for i := 0; i < w; i++ {
			edgestate[i*5+int(dirU)] = edgeClosed
			edgestate[((h-1)*w+i)*5+int(dirD)] = edgeClosed
		}
		for i := 0; i < h; i++ {
			edgestate[(i*w+w-1)*5+int(dirR)] = edgeClosed
			edgestate[(i*w)*5+int(dirL)] = edgeClosed
		}
	}

	if barriers != nil {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				for d := uint8(1); d <= 8; d <<= 1 {
					if barriers[y*w+x]&d != 0 {
						x2, y2 := offset(x, y, d, w, h)
						edgestate[(y*w+x)*5+int(d)] = edgeClosed
						edgestate[(y2*w+x2)*5+int(rotF(d))] = edgeClosed
					}
				}
			}
		}
	}

	// Deductions are mostly local, so a to-do queue avoids quadratic
	// whole-grid rescans; only a drained queue forces one.
	todo := newTodoQueue(w * h)
	doneSomething := true

	for {
		index := todo.get()
		if index == -1 {
			if !doneSomething {
				break
			}
			for i := 0; i < w*h; i++ {
				todo.add(i)
			}
			doneSomething = false
			index = todo.get()
		}

		y, x := index/w, index%w
		ourclass := equivalence.Canonify(y*w + x)
		var deadendmax [9]int

		i, j := 0, 0
		for ; i < 4 && tilestate[(y*w+x)*4+i] != 255; i++ {
			val := tilestate[(y*w+x)*4+i]
			valid := true
			var nondeadends [4]uint8
			nnondeadends, deadendtotal := 0, 0
			var equiv [5]int
			equiv[0] = ourclass
			nequiv := 1

			for d := uint8(1); d <= 8; d <<= 1 {
				es := edgestate[(y*w+x)*5+int(d)]
				if (es == edgeOpen && val&d == 0) ||
					(es == edgeClosed && val&d != 0) {
					valid = false
				}
				if val&d == 0 {
					continue
				}
				if deadends[(y*w+x)*5+int(d)] <= area {
					deadendtotal += deadends[(y*w+x)*5+int(d)]
				} else {
					nondeadends[nnondeadends] = d
					nnondeadends++
				}
				// Orientations that join tiles already connected
				// through another route would close a loop.
				if es == edgeUnknown {
					x2, y2 := offset(x, y, d, w, h)
					c := equivalence.Canonify(y2*w + x2)
					k := 0
					for ; k < nequiv; k++ {
						if c == equiv[k] {
							break
						}
					}
					if k == nequiv {
						equiv[nequiv] = c
						nequiv++
					} else {
						valid = false
					}
				}
			}

			switch nnondeadends {
			case 0:
				// Joining only dead ends must still cover the whole
				// grid; the +1 counts this tile itself.
				if deadendtotal > 0 && deadendtotal+1 < area {
					valid = false
				}
			case 1:
				deadendtotal++
				if deadendmax[nondeadends[0]] < deadendtotal {
					deadendmax[nondeadends[0]] = deadendtotal
				}
			default:
				for k := 0; k < nnondeadends; k++ {
					deadendmax[nondeadends[k]] = area + 1
				}
			}

			if valid {
				tilestate[(y*w+x)*4+j] = val
				j++
			} else {
				diag.Debugf("ruling out orientation %x at %d,%d", val, x, y)
			}
		}

		if j == 0 {
			// All orientations ruled out: no solution exists.
			return -1
		}
		if j < i {
			doneSomething = true
			for ; j < 4; j++ {
				tilestate[(y*w+x)*4+j] = 255
			}
		}

		// Edges open in all surviving orientations are known open;
		// edges open in none are known closed.
		var a, o uint8 = 0x0F, 0
		for k := 0; k < 4 && tilestate[(y*w+x)*4+k] != 255; k++ {
			a &= tilestate[(y*w+x)*4+k]
			o |= tilestate[(y*w+x)*4+k]
		}
		for d := uint8(1); d <= 8; d <<= 1 {
			if edgestate[(y*w+x)*5+int(d)] != edgeUnknown {
				continue
			}
			x2, y2 := offset(x, y, d, w, h)
			d2 := rotF(d)
			if a&d != 0 {
				diag.Debugf("marking edge %d,%d:%d open", x, y, d)
				edgestate[(y*w+x)*5+int(d)] = edgeOpen
				edgestate[(y2*w+x2)*5+int(d2)] = edgeOpen
				equivalence.Merge(y*w+x, y2*w+x2)
				doneSomething = true
				todo.add(y2*w + x2)
			} else if o&d == 0 {
				diag.Debugf("marking edge %d,%d:%d closed", x, y, d)
				edgestate[(y*w+x)*5+int(d)] = edgeClosed
				edgestate[(y2*w+x2)*5+int(d2)] = edgeClosed
				doneSomething = true
				todo.add(y2*w + x2)
			}
		}

		// Propagate tightened dead-end bounds to neighbours.
		for d := uint8(1); d <= 8; d <<= 1 {
			x2, y2 := offset(x, y, d, w, h)
			d2 := rotF(d)
			if deadendmax[d] > 0 &&
				deadends[(y2*w+x2)*5+int(d2)] > deadendmax[d] {
				deadends[(y2*w+x2)*5+int(d2)] = deadendmax[d]
				doneSomething = true
				todo.add(y2*w + x2)
			}
		}
	}

	// Lock every fully determined tile.
	result := 1
	for i := 0; i < w*h; i++ {
		if tilestate[i*4+1] == 255 {
			tiles[i] = tilestate[i*4] | locked
		} else {
			tiles[i] &^= locked
			result = 0
		}
	}
	return result
}
