package cube

import "math"

// gridSquare is one cell of the board the solid rolls over: either a
// square or a triangle. points holds the corner coordinates, two per
// corner; directions maps each roll direction to a bit mask over the
// corners of the shared edge, or 0 where the direction is invalid.
type gridSquare struct {
	x, y       float64 // centre
	points     []float64
	directions [dirCount]int
	flip       bool
	blue       bool
	tetraClass int
}

func (sq *gridSquare) numPoints() int { return len(sq.points) / 2 }

// gridArea is the number of cells enumGridSquares will produce.
// A d1 x d2 grid of squares has d1*d2 cells; a triangular hexagon
// with sides d1 and d2 divides into a side-d1 triangle, a side-d2
// triangle and two d1-by-d2 parallelograms of rhombuses, giving
// d1^2 + d2^2 + 4*d1*d2 triangles.
func gridArea(d1, d2, order int) int {
	if order == 4 {
		return d1 * d2
	}
	return d1*d1 + d2*d2 + 4*d1*d2
}

// enumGridSquares builds the board for p. Square cells carry only the
// four compass directions; triangles alias the diagonals onto their
// edges so that every cursor direction does something sensible.
func enumGridSquares(p Params) []gridSquare {
	sol := solids[p.Solid]
	ret := make([]gridSquare, 0, gridArea(p.D1, p.D2, sol.order))

	if sol.order == 4 {
		for x := 0; x < p.D1; x++ {
			for y := 0; y < p.D2; y++ {
				var sq gridSquare
				fx, fy := float64(x), float64(y)
				sq.x = fx
				sq.y = fy
				sq.points = []float64{
					fx - 0.5, fy - 0.5,
					fx - 0.5, fy + 0.5,
					fx + 0.5, fy + 0.5,
					fx + 0.5, fy - 0.5,
				}
				sq.directions[dirLeft] = 0x03
				sq.directions[dirRight] = 0x0C
				sq.directions[dirUp] = 0x09
				sq.directions[dirDown] = 0x06
				ret = append(ret, sq)
			}
		}
		return ret
	}

	theight := math.Sqrt(3) / 2
	firstix := -1
	for row := 0; row < p.D1+p.D2; row++ {
		var rowlen, other int
		if row < p.D1 {
			other = 1
			rowlen = row + p.D2
		} else {
			other = -1
			rowlen = 2*p.D1 + p.D2 - row
		}

		// rowlen down-pointing triangles.
		for i := 0; i < rowlen; i++ {
			var sq gridSquare
			ix := 2*i - (rowlen - 1)
			x := float64(ix) * 0.5
			y := theight * float64(row)
			sq.x = x
			sq.y = y + theight/3
			sq.points = []float64{
				x - 0.5, y,
				x, y + theight,
				x + 0.5, y,
			}
			sq.directions[dirLeft] = 0x03
			sq.directions[dirRight] = 0x06
			sq.directions[dirUp] = 0x05
			sq.directions[dirDown] = 0
			sq.directions[dirUpLeft] = sq.directions[dirUp]
			sq.directions[dirUpRight] = sq.directions[dirUp]
			sq.directions[dirDownLeft] = sq.directions[dirLeft]
			sq.directions[dirDownRight] = sq.directions[dirRight]
			sq.flip = true
			if firstix < 0 {
				firstix = ix & 3
			}
			ix -= firstix
			sq.tetraClass = ((row + (ix & 1)) & 2) ^ (ix & 3)
			ret = append(ret, sq)
		}

		// rowlen+other up-pointing triangles.
		for i := 0; i < rowlen+other; i++ {
			var sq gridSquare
			ix := 2*i - (rowlen + other - 1)
			x := float64(ix) * 0.5
			y := theight * float64(row)
			sq.x = x
			sq.y = y + 2*theight/3
			sq.points = []float64{
				x + 0.5, y + theight,
				x, y,
				x - 0.5, y + theight,
			}
			sq.directions[dirLeft] = 0x06
			sq.directions[dirRight] = 0x03
			sq.directions[dirDown] = 0x05
			sq.directions[dirUp] = 0
			sq.directions[dirDownLeft] = sq.directions[dirDown]
			sq.directions[dirDownRight] = sq.directions[dirDown]
			sq.directions[dirUpLeft] = sq.directions[dirLeft]
			sq.directions[dirUpRight] = sq.directions[dirRight]
			if firstix < 0 {
				firstix = ix
			}
			ix -= firstix
			sq.tetraClass = ((row + (ix & 1)) & 2) ^ (ix & 3)
			ret = append(ret, sq)
		}
	}
	return ret
}

// classCount is the number of equivalence classes the blue squares
// are balanced across: one per face for the tetrahedron, up/down
// triangle parity for the octahedron, a single class otherwise.
func classCount(s Solid) int {
	switch s {
	case Tetrahedron:
		return 4
	case Octahedron:
		return 2
	default:
		return 1
	}
}

func squareClass(sq *gridSquare, nclasses int) int {
	switch nclasses {
	case 4:
		return sq.tetraClass
	case 2:
		if sq.flip {
			return 1
		}
		return 0
	default:
		return 0
	}
}
