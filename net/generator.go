package net

import (
	"sort"
	"strings"

	"github.com/katalvlaran/puzzles/oset"
	"github.com/katalvlaran/puzzles/randpool"
)

// xyd identifies one directed edge of the grid: the tile (x, y) and a
// direction bit.
type xyd struct {
	x, y int
	d    uint8
}

func xydCmp(a, b xyd) int {
	switch {
	case a.x != b.x:
		return a.x - b.x
	case a.y != b.y:
		return a.y - b.y
	default:
		return int(a.d) - int(b.d)
	}
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// perturb randomly modifies an ambiguous section of the grid, in an
// attempt to make it uniquely solvable. (startx, starty) is a tile of
// the ambiguous section whose neighbour in direction startd is fully
// determined.
func perturb(w, h int, tiles []uint8, wrapping bool, rnd *randpool.Pool,
	startx, starty int, startd uint8) {

	// Trace the perimeter of the ambiguous area, keeping a hand on
	// the locked tiles to our side.
	var perimeter []xyd
	x, y, d := startx, starty, startd
	for {
		perimeter = append(perimeter, xyd{x, y, d})

		d2 := rotA(d)
		x2, y2 := offset(x, y, d2, w, h)
		if (!wrapping && (abs(x2-x) > 1 || abs(y2-y) > 1)) ||
			tiles[y2*w+x2]&locked != 0 {
			d = d2
		} else {
			x, y = x2, y2
			x2, y2 = offset(x, y, d, w, h)
			if (wrapping || (abs(x2-x) <= 1 && abs(y2-y) <= 1)) &&
				tiles[y2*w+x2]&locked == 0 {
				x, y = x2, y2
				d = rotC(d)
			}
		}
		if x == startx && y == starty && d == startd {
			break
		}
	}

	// Search the perimeter, in random order, for an unconnected edge
	// we can join without creating a full cross on either side.
	perim2 := make([]xyd, len(perimeter))
	copy(perim2, perimeter)
	rnd.Shuffle(len(perim2), func(a, b int) {
		perim2[a], perim2[b] = perim2[b], perim2[a]
	})
	joined := false
	for _, e := range perim2 {
		x, y, d = e.x, e.y, e.d
		x2, y2 := offset(x, y, d, w, h)
		if !wrapping && (abs(x2-x) > 1 || abs(y2-y) > 1) {
			continue
		}
		if tiles[y*w+x]&d != 0 {
			continue
		}
		if (tiles[y*w+x]|d)&dirMask == dirMask {
			continue
		}
		if (tiles[y2*w+x2]|rotF(d))&dirMask == dirMask {
			continue
		}
		tiles[y*w+x] |= d
		tiles[y2*w+x2] |= rotF(d)
		joined = true
		break
	}
	if !joined {
		return
	}

	// The new link closed a loop. Trace it with two walkers, one
	// hugging the left wall and one the right, and sever the loop at
	// a random point other than the new link. Whichever walker gets
	// home first wins; loops are usually small.
	var loops [2][]xyd
	var looppos [2]xyd
	looppos[0] = xyd{x, y, d}
	looppos[1] = xyd{x, y, d}
tracking:
	for {
		for i := 0; i < 2; i++ {
			x, y, d := looppos[i].x, looppos[i].y, looppos[i].d
			x2, y2 := offset(x, y, d, w, h)

			// A segment that exactly reverses the previous one
			// cancels it instead of extending the loop.
			if n := len(loops[i]); n > 0 &&
				loops[i][n-1].x == x2 && loops[i][n-1].y == y2 &&
				loops[i][n-1].d == rotF(d) {
				loops[i] = loops[i][:n-1]
			} else {
				loops[i] = append(loops[i], looppos[i])
			}

			d = rotF(d)
			for j := 0; j < 4; j++ {
				if i == 0 {
					d = rotA(d)
				} else {
					d = rotC(d)
				}
				if tiles[y2*w+x2]&d != 0 {
					looppos[i] = xyd{x2, y2, d}
					break
				}
			}

			if looppos[i] == loops[i][0] {
				j := rnd.Upto(len(loops[i])-1) + 1
				sx, sy, sd := loops[i][j].x, loops[i][j].y, loops[i][j].d
				sx2, sy2 := offset(sx, sy, sd, w, h)
				tiles[sy*w+sx] &^= sd
				tiles[sy2*w+sx2] &^= rotF(sd)
				break tracking
			}
		}
	}

	// Lock the entire disputed section so it is not perturbed again.
	// Sorting the perimeter arranges each column's edges in vertical
	// order, so every span between an up edge and a down edge is
	// interior.
	sort.Slice(perimeter, func(a, b int) bool {
		return xydCmp(perimeter[a], perimeter[b]) < 0
	})
	x, y = -1, -1
	for i := 0; i <= len(perimeter); i++ {
		if i == len(perimeter) || perimeter[i].x > x {
			// Fill from the last up edge to the bottom of the grid.
			if x != -1 {
				for y < h {
					tiles[y*w+x] |= locked
					y++
				}
				x, y = -1, -1
			}
			if i == len(perimeter) {
				break
			}
			x = perimeter[i].x
			y = 0
		}
		if perimeter[i].d == dirU {
			x = perimeter[i].x
			y = perimeter[i].y
		} else if perimeter[i].d == dirD {
			for y <= perimeter[i].y {
				tiles[y*w+x] |= locked
				y++
			}
			x, y = -1, -1
		}
	}
}

// newDesc generates a puzzle for p, returning the descriptor and the
// aux solution string (one hex digit per tile).
func newDesc(p Params, rnd *randpool.Pool) (string, string) {
	w, h := p.Width, p.Height
	cx, cy := w/2, h/2
	tiles := make([]uint8, w*h)
	barriers := make([]uint8, w*h)

generation:
	for {
		for i := range tiles {
			tiles[i] = 0
			barriers[i] = 0
		}

		// Grow a spanning tree from the centre: repeatedly pick a
		// random way to extend a used tile into an unused one. After
		// a tile's third connection its fourth possibility is
		// removed, so no full crosses arise; that can never paint the
		// generator into a corner, because a region only reachable
		// through crosses would have to be fenced by a closed loop of
		// T-pieces, and the construction makes no loops.
		possibilities := oset.New(xydCmp)
		if cx+1 < w {
			possibilities.Add(xyd{cx, cy, dirR})
		}
		if cy-1 >= 0 {
			possibilities.Add(xyd{cx, cy, dirU})
		}
		if cx-1 >= 0 {
			possibilities.Add(xyd{cx, cy, dirL})
		}
		if cy+1 < h {
			possibilities.Add(xyd{cx, cy, dirD})
		}

		for possibilities.Len() > 0 {
			e := possibilities.DeleteIndex(rnd.Upto(possibilities.Len()))
			x1, y1, d1 := e.x, e.y, e.d
			x2, y2 := offset(x1, y1, d1, w, h)
			d2 := rotF(d1)

			tiles[y1*w+x1] |= d1
			tiles[y2*w+x2] |= d2

			// A new T-piece loses its last possibility.
			if bitCount(tiles[y1*w+x1]) == 3 {
				possibilities.Delete(xyd{x1, y1, dirMask ^ tiles[y1*w+x1]})
			}

			// Remove possibilities pointing into the tile just
			// reached, which would now close a loop.
			for d := uint8(1); d < 0x10; d <<= 1 {
				x3, y3 := offset(x2, y2, d, w, h)
				possibilities.Delete(xyd{x3, y3, rotF(d)})
			}

			// Add ways out of the tile just reached.
			for d := uint8(1); d < 0x10; d <<= 1 {
				if d == d2 {
					continue
				}
				if !p.Wrapping {
					if (d == dirU && y2 == 0) || (d == dirD && y2 == h-1) ||
						(d == dirL && x2 == 0) || (d == dirR && x2 == w-1) {
						continue
					}
				}
				x3, y3 := offset(x2, y2, d, w, h)
				if tiles[y3*w+x3] != 0 {
					continue
				}
				possibilities.Add(xyd{x2, y2, d})
			}
		}

		if p.Unique {
			// Certify uniqueness; perturb each ambiguous section. If
			// a pass fails to reduce the section count, start over.
			prevn := -1
			for solver(w, h, tiles, nil, p.Wrapping) != 1 {
				n := 0
				for y := 0; y < h; y++ {
					for x := 0; x < w; x++ {
						if x+1 < w && (tiles[y*w+x]^tiles[y*w+x+1])&locked != 0 {
							n++
							if tiles[y*w+x]&locked != 0 {
								perturb(w, h, tiles, p.Wrapping, rnd, x+1, y, dirL)
							} else {
								perturb(w, h, tiles, p.Wrapping, rnd, x, y, dirR)
							}
						}
						if y+1 < h && (tiles[y*w+x]^tiles[(y+1)*w+x])&locked != 0 {
							n++
							if tiles[y*w+x]&locked != 0 {
								perturb(w, h, tiles, p.Wrapping, rnd, x, y+1, dirU)
							} else {
								perturb(w, h, tiles, p.Wrapping, rnd, x, y, dirD)
							}
						}
					}
				}
				if prevn != -1 && prevn <= n {
					continue generation
				}
				prevn = n
			}
			for i := range tiles {
				tiles[i] &^= locked
			}
		}
		break
	}

	// Possible barrier locations: edges with no connection.
	barrierPool := oset.New(xydCmp)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if tiles[y*w+x]&dirR == 0 && (p.Wrapping || x < w-1) {
				barrierPool.Add(xyd{x, y, dirR})
			}
			if tiles[y*w+x]&dirD == 0 && (p.Wrapping || y < h-1) {
				barrierPool.Add(xyd{x, y, dirD})
			}
		}
	}

	// The solved orientation is the aux hint.
	auxBuf := make([]byte, w*h)
	for i := range auxBuf {
		auxBuf[i] = "0123456789abcdef"[tiles[i]&dirMask]
	}
	aux := string(auxBuf)

	// Shuffle tile orientations. Reshuffle until at least one edge
	// has a mismatched connection, so the grid is never handed out
	// already solved, and retry any shuffle whose loop-square count
	// cannot be rotated down to zero.
shuffling:
	for {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				tiles[y*w+x] = rot(tiles[y*w+x], rnd.Upto(4))
			}
		}

		prevLoopSquares := w*h + 1
		for {
			loops := computeLoops(w, h, tiles, nil)
			thisLoopSquares := 0
			for i := range loops {
				if loops[i] != 0 {
					tiles[i] = rot(tiles[i], rnd.Upto(4))
					thisLoopSquares++
				}
			}
			if thisLoopSquares > prevLoopSquares {
				continue shuffling
			}
			if thisLoopSquares == 0 {
				break
			}
			prevLoopSquares = thisLoopSquares
		}

		mismatches := 0
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if x+1 < w && (rot(tiles[y*w+x], 2)^tiles[y*w+x+1])&dirL != 0 {
					mismatches++
				}
				if y+1 < h && (rot(tiles[y*w+x], 2)^tiles[(y+1)*w+x])&dirU != 0 {
					mismatches++
				}
			}
		}
		if mismatches > 0 {
			break
		}
	}

	// Choose barriers after shuffling, drawing from the pool one at a
	// time: raising the barrier rate on the same seed then yields a
	// superset of the previous barrier set.
	nbarriers := int(p.BarrierProb * float64(barrierPool.Len()))
	for nbarriers > 0 {
		e := barrierPool.DeleteIndex(rnd.Upto(barrierPool.Len()))
		x2, y2 := offset(e.x, e.y, e.d, w, h)
		barriers[e.y*w+e.x] |= e.d
		barriers[y2*w+x2] |= rotF(e.d)
		nbarriers--
	}

	// Encode: one hex digit per tile, 'v' for a barrier to its right,
	// 'h' for a barrier below it.
	var sb strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sb.WriteByte("0123456789abcdef"[tiles[y*w+x]])
			if (p.Wrapping || x < w-1) && barriers[y*w+x]&dirR != 0 {
				sb.WriteByte('v')
			}
			if (p.Wrapping || y < h-1) && barriers[y*w+x]&dirD != 0 {
				sb.WriteByte('h')
			}
		}
	}
	return sb.String(), aux
}
