package net

import "github.com/katalvlaran/puzzles/findloop"

// computeLoops returns, per tile, a direction mask of this tile's
// connections that lie on a loop. Barriers may be nil.
func computeLoops(w, h int, tiles, barriers []uint8) []uint8 {
	fls := findloop.NewState(w * h)
	neighbour := func(v int, emit func(int)) {
		x, y := v%w, v/w
		t := tiles[v]
		if barriers != nil {
			t &^= barriers[v]
		}
		for d := uint8(1); d < 0x10; d <<= 1 {
			if t&d == 0 {
				continue
			}
			x1, y1 := offset(x, y, d, w, h)
			v1 := y1*w + x1
			if tiles[v1]&rotF(d) != 0 {
				emit(v1)
			}
		}
	}
	fls.Run(neighbour)

	loops := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var flags uint8
			for d := uint8(1); d < 0x10; d <<= 1 {
				if tiles[y*w+x]&d == 0 {
					continue
				}
				if barriers != nil && barriers[y*w+x]&d != 0 {
					continue
				}
				x1, y1 := offset(x, y, d, w, h)
				if tiles[y1*w+x1]&rotF(d) != 0 &&
					fls.IsLoopEdge(y*w+x, y1*w+x1) {
					flags |= d
				}
			}
			loops[y*w+x] = flags
		}
	}
	return loops
}
