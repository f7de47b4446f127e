package pattern

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/katalvlaran/puzzles/randpool"
)

// generate fills retgrid with a random pattern: a field of random
// levels is smoothed once with a 3x3 box filter and then thresholded
// at its median, so roughly half the cells come out full and the full
// cells clump together instead of forming noise.
func generate(rnd *randpool.Pool, w, h int, retgrid []uint8) {
	fgrid := make([]float64, w*h)
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			fgrid[i*w+j] = float64(rnd.Upto(100000000)) / 100000000.0
		}
	}

	// Smooth once. A dimension of exactly 2 is left unsmoothed along
	// that axis, or the two lines would converge to the same values.
	fgrid2 := make([]float64, w*h)
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			xx, yy := j, i
			var sx, sy float64
			var n int

			sx, n = 0.0, 0
			for x1 := xx - 1; x1 <= xx+1; x1++ {
				if x1 >= 0 && x1 < w {
					sx += fgrid[yy*w+x1]
					n++
				}
			}
			if w == 2 {
				sx = fgrid[yy*w+xx]
			} else {
				sx /= float64(n)
			}

			sy, n = 0.0, 0
			for y1 := yy - 1; y1 <= yy+1; y1++ {
				if y1 >= 0 && y1 < h {
					sy += fgrid[y1*w+xx]
					n++
				}
			}
			if h == 2 {
				sy = fgrid[yy*w+xx]
			} else {
				sy /= float64(n)
			}

			fgrid2[yy*w+xx] = (sx + sy) / 2.0
		}
	}
	fgrid, fgrid2 = fgrid2, fgrid

	sorted := make([]float64, w*h)
	copy(sorted, fgrid)
	sort.Float64s(sorted)
	index := w * h / 2
	if w%2 != 0 && h%2 != 0 {
		index += int(rnd.Upto(2))
	}
	var threshold float64
	if index < w*h {
		threshold = sorted[index]
	} else {
		threshold = sorted[w*h-1] + 1
	}

	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			if fgrid[i*w+j] >= threshold {
				retgrid[i*w+j] = cellFull
			} else {
				retgrid[i*w+j] = cellEmpty
			}
		}
	}
}

// generateSoluble keeps generating until the line solver can complete
// the resulting puzzle unaided. Grids with an entirely full or empty
// row or column are rejected first: they make for dull puzzles. (When
// a dimension is 2, such lines are unavoidable and are let through.)
func generateSoluble(rnd *randpool.Pool, w, h int, grid []uint8) {
	for {
		generate(rnd, w, h, grid)

		if w > 2 {
			ok := true
			for i := 0; i < h; i++ {
				colours := 0
				for j := 0; j < w; j++ {
					if grid[i*w+j] == cellFull {
						colours |= 2
					} else {
						colours |= 1
					}
				}
				if colours != 3 {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		}
		if h > 2 {
			ok := true
			for j := 0; j < w; j++ {
				colours := 0
				for i := 0; i < h; i++ {
					if grid[i*w+j] == cellFull {
						colours |= 2
					} else {
						colours |= 1
					}
				}
				if colours != 3 {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		}

		if _, done := solvePuzzle(nil, nil, grid, w, h); done {
			return
		}
	}
}

// newDesc generates a fresh soluble puzzle and encodes its clues.
// The aux string is "S" followed by one character per cell, row-major,
// '1' for full and '0' for empty.
func newDesc(p Params, rnd *randpool.Pool) (desc, aux string) {
	w, h := p.Width, p.Height
	grid := make([]uint8, w*h)
	generateSoluble(rnd, w, h, grid)

	var sb bytes.Buffer
	sb.WriteByte('S')
	for i := 0; i < w*h; i++ {
		if grid[i] == cellFull {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	aux = sb.String()

	rowdata := make([]int, max(w, h)+1)
	var db bytes.Buffer
	for i := 0; i < w+h; i++ {
		var rowlen int
		if i < w {
			rowlen = computeRowData(rowdata, grid, i, h, w)
		} else {
			rowlen = computeRowData(rowdata, grid, (i-w)*w, w, 1)
		}
		for j := 0; j < rowlen; j++ {
			if j+1 < rowlen {
				fmt.Fprintf(&db, "%d.", rowdata[j])
			} else {
				fmt.Fprintf(&db, "%d", rowdata[j])
			}
		}
		if i+1 < w+h {
			db.WriteByte('/')
		}
	}
	return db.String(), aux
}
