package laydomino

import "github.com/katalvlaran/puzzles/randpool"

// Layout returns a w*h slice describing a random domino tiling:
// grid[i] is the index of the other end of the domino covering square
// i. If w*h is odd, one square is left referring to itself.
func Layout(w, h int, rnd *randpool.Pool) []int {
	if w <= 0 || h <= 0 {
		panic("laydomino: dimensions must be positive")
	}
	wh := w * h
	grid := make([]int, wh)
	grid2 := make([]int, wh)
	list := make([]int, 2*wh)
	LayoutInto(w, h, rnd, grid, grid2, list)
	return grid
}

// LayoutInto is Layout with caller-supplied scratch buffers: grid and
// grid2 must have length w*h, list length 2*w*h. The tiling is written
// to grid.
func LayoutInto(w, h int, rnd *randpool.Pool, grid, grid2, list []int) {
	wh := w * h

	// All squares start as singletons.
	for i := 0; i < wh; i++ {
		grid[i] = i
	}

	// Candidate placements: a vertical domino with its top in square i
	// is encoded as 2*i, a horizontal one with its left half in i as
	// 2*i+1. There are w*(h-1) + (w-1)*h = 2*wh - h - w of them.
	k := 0
	for j := 0; j < h-1; j++ {
		for i := 0; i < w; i++ {
			list[k] = 2 * (j*w + i)
			k++
		}
	}
	for j := 0; j < h; j++ {
		for i := 0; i < w-1; i++ {
			list[k] = 2*(j*w+i) + 1
			k++
		}
	}

	rnd.Shuffle(k, func(a, b int) { list[a], list[b] = list[b], list[a] })

	// Greedy pass: place a domino wherever both squares are free.
	for i := 0; i < k; i++ {
		xy := list[i] / 2
		xy2 := xy + w
		if list[i]%2 == 1 {
			xy2 = xy + 1
		}
		if grid[xy] == xy && grid[xy2] == xy2 {
			grid[xy] = xy2
			grid[xy2] = xy
		}
	}

	// Repair pass: the greedy placement leaves isolated singletons.
	// Repeatedly find one, search outwards through dominoes to another
	// singleton, then shift every domino on the connecting path up by
	// one to absorb both ends. The search alternates chessboard
	// colours automatically, so the two singletons always pair up.
	for {
		nsingle := 0
		start := -1
		for j := 0; j < wh; j++ {
			if grid[j] == j {
				nsingle++
				start = j
			}
		}
		// An even area finishes with no singletons, an odd one with
		// exactly one.
		if nsingle == wh%2 {
			break
		}

		// grid2 doubles as distance-from-start and backtracking data.
		for j := 0; j < wh; j++ {
			grid2[j] = -1
		}
		grid2[start] = 0

		// The search covers each square at most once, so a flat to-do
		// list with two counters suffices.
		done, todo := 0, 1
		list[0] = start
		target := -1

		for done < todo && target < 0 {
			i := list[done]
			done++

			x, y := i%w, i/w
			var d [4]int
			nd := 0
			if x > 0 {
				d[nd] = i - 1
				nd++
			}
			if x+1 < w {
				d[nd] = i + 1
				nd++
			}
			if y > 0 {
				d[nd] = i - w
				nd++
			}
			if y+1 < h {
				d[nd] = i + w
				nd++
			}
			// Randomise neighbour order to avoid directional bias.
			rnd.Shuffle(nd, func(a, b int) { d[a], d[b] = d[b], d[a] })

			for j := 0; j < nd; j++ {
				k := d[j]
				if grid[k] == k {
					grid2[k] = i
					target = k
					break
				}

				// Stepping through a domino: record where we came
				// from in the near end, and the distance in the far
				// end, which becomes the next search frontier.
				m := grid[k]
				if grid2[m] < 0 || grid2[m] > grid2[i]+1 {
					grid2[m] = grid2[i] + 1
					grid2[k] = i
					list[todo] = m
					todo++
				}
			}
		}

		// Walk the trail back to the starting singleton, re-laying
		// dominoes pairwise as we go.
		i := target
		for {
			j := grid2[i]
			k := grid[j]
			grid[i] = j
			grid[j] = i
			if j == k {
				break
			}
			i = k
		}
	}
}
