package cube

import (
	"math"

	"github.com/katalvlaran/puzzles/engine"
)

func sqd(x float64) float64 { return x * x }

func approxEq(x, y float64) bool { return sqd(x-y) < 0.1 }

// matmul multiplies the 3-vector v in place by the 3x3 matrix m,
// stored column-major.
func matmul(m *[9]float64, v []float64) {
	x, y, z := v[0], v[1], v[2]
	v[0] = m[0]*x + m[3]*y + m[6]*z
	v[1] = m[1]*x + m[4]*y + m[7]*z
	v[2] = m[2]*x + m[5]*y + m[8]*z
}

// lowestFace is the index of the face currently against the board:
// the one whose vertices have the lowest z-sum.
func lowestFace(sol *solid) int {
	best := 0
	zmin := 0.0
	for i := 0; i < sol.numFaces(); i++ {
		z := 0.0
		for j := 0; j < sol.order; j++ {
			f := sol.faces[i*sol.order+j]
			z += sol.vertices[f*3+2]
		}
		if i == 0 || zmin > z {
			zmin = z
			best = i
		}
	}
	return best
}

// alignPoly matches each corner of sq against the vertex of sol that
// sits on it when the solid rests on sq, returning the vertex index
// per corner. Failure means the solid is not congruent with sq in
// this orientation.
func alignPoly(sol *solid, sq *gridSquare) ([]int, bool) {
	flip := 1.0
	if sq.flip {
		flip = -1.0
	}

	zmin := 0.0
	for i := 0; i < sol.numVertices(); i++ {
		if z := sol.vertices[i*3+2]; zmin > z {
			zmin = z
		}
	}

	pkey := make([]int, sq.numPoints())
	for j := range pkey {
		matches, index := 0, -1
		for i := 0; i < sol.numVertices(); i++ {
			dist := sqd(sol.vertices[i*3]*flip-sq.points[j*2]+sq.x) +
				sqd(sol.vertices[i*3+1]*flip-sq.points[j*2+1]+sq.y) +
				sqd(sol.vertices[i*3+2]-zmin)
			if dist < 0.1 {
				matches++
				index = i
			}
		}
		if matches != 1 || index < 0 {
			return nil, false
		}
		pkey[j] = index
	}
	return pkey, true
}

// flipPoly reflects the solid through the z-axis, which maps it
// between up-pointing and down-pointing triangle orientations.
func (s *solid) flipPoly(flip bool) {
	if !flip {
		return
	}
	for i := 0; i < s.numVertices(); i++ {
		s.vertices[i*3] *= -1
		s.vertices[i*3+1] *= -1
	}
	for i := 0; i < s.numFaces(); i++ {
		s.normals[i*3] *= -1
		s.normals[i*3+1] *= -1
	}
}

// transformPoly rotates a copy of sol through angle about the axis
// joining vertices key0 and key1, first flipping it if requested. The
// rotation is conjugated through a z-rotation that brings the two key
// vertices into horizontal alignment.
func transformPoly(sol *solid, flip bool, key0, key1 int, angle float64) *solid {
	ret := sol.clone()
	ret.flipPoly(flip)

	vx := ret.vertices[key1*3] - ret.vertices[key0*3]
	vy := ret.vertices[key1*3+1] - ret.vertices[key0*3+1]

	vmatrix := [9]float64{vx, -vy, 0, vy, vx, 0, 0, 0, 1}

	ax := math.Cos(angle)
	ay := math.Sin(angle)
	amatrix := [9]float64{1, 0, 0, 0, ax, -ay, 0, ay, ax}

	vmatrix2 := vmatrix
	vmatrix2[1] = vy
	vmatrix2[3] = -vy

	for i := 0; i < ret.numVertices(); i++ {
		v := ret.vertices[i*3 : i*3+3]
		matmul(&vmatrix, v)
		matmul(&amatrix, v)
		matmul(&vmatrix2, v)
	}
	for i := 0; i < ret.numFaces(); i++ {
		n := ret.normals[i*3 : i*3+3]
		matmul(&vmatrix, n)
		matmul(&amatrix, n)
		matmul(&vmatrix2, n)
	}
	return ret
}

// destSquare finds the grid square adjacent to the current one across
// the edge selected by direction, along with the corner indices of
// that edge in the current square.
func (s *State) destSquare(direction int) (dest int, skey [2]int, ok bool) {
	cur := &s.squares[s.current]
	mask := cur.directions[direction]
	if mask == 0 {
		return 0, skey, false
	}
	var pts [4]float64
	j := 0
	for i := 0; i < cur.numPoints(); i++ {
		if mask&(1<<i) != 0 {
			pts[j*2] = cur.points[i*2]
			pts[j*2+1] = cur.points[i*2+1]
			skey[j] = i
			j++
		}
	}

	for i := range s.squares {
		if i == s.current {
			continue
		}
		sq := &s.squares[i]
		match := 0
		for j := 0; j < sq.numPoints(); j++ {
			if sqd(sq.points[j*2]-pts[0])+sqd(sq.points[j*2+1]-pts[1]) < 0.1 {
				match++
			}
			if sqd(sq.points[j*2]-pts[2])+sqd(sq.points[j*2+1]-pts[3]) < 0.1 {
				match++
			}
		}
		if match == 2 {
			return i, skey, true
		}
	}
	return 0, skey, false
}

// roll moves the solid one square in the given direction, permuting
// the face colours and swapping the landed-on face with the square's
// marker. It mutates s, which must be a private copy.
func (s *State) roll(direction int) error {
	dest, skey, ok := s.destSquare(direction)
	if !ok {
		return engine.ErrBadMove
	}
	cur := &s.squares[s.current]

	// Key vertices of the shared edge, as polyhedron vertex indices.
	allPkey, ok := alignPoly(s.solid, cur)
	if !ok {
		return engine.ErrBadMove
	}
	key0, key1 := allPkey[skey[0]], allPkey[skey[1]]

	// The roll angle is the angle between the two faces sharing the
	// edge, from the dot product of their normals.
	var f [2]int
	nf := 0
	for i := 0; i < s.solid.numFaces() && nf < 2; i++ {
		match := 0
		for j := 0; j < s.solid.order; j++ {
			v := s.solid.faces[i*s.solid.order+j]
			if v == key0 || v == key1 {
				match++
			}
		}
		if match == 2 {
			f[nf] = i
			nf++
		}
	}
	if nf != 2 {
		return engine.ErrBadMove
	}
	dp := 0.0
	for i := 0; i < 3; i++ {
		dp += s.solid.normals[f[0]*3+i] * s.solid.normals[f[1]*3+i]
	}
	angle := math.Acos(dp)

	// We do not know a priori whether to rotate through angle or
	// -angle, so try both and keep the one that aligns with the
	// destination square. On a cube both directions align, which
	// tells us nothing, so the upward roll negates the angle up
	// front; which rolls need which sign was found by trial.
	if s.solid.order == 4 && direction == dirUp {
		angle = -angle
	}
	poly := transformPoly(s.solid, cur.flip, key0, key1, angle)
	poly.flipPoly(s.squares[dest].flip)
	if _, ok := alignPoly(poly, &s.squares[dest]); !ok {
		angle = -angle
		poly = transformPoly(s.solid, cur.flip, key0, key1, angle)
		poly.flipPoly(s.squares[dest].flip)
		if _, ok := alignPoly(poly, &s.squares[dest]); !ok {
			return engine.ErrBadMove
		}
	}

	// The rolled solid is congruent to the canonical one with the
	// faces permuted; recover the permutation by matching normals.
	newBlue := make([]bool, s.solid.numFaces())
	for i := range newBlue {
		found := false
		for j := 0; j < poly.numFaces(); j++ {
			dist := 0.0
			for k := 0; k < 3; k++ {
				dist += sqd(poly.normals[j*3+k] - s.solid.normals[i*3+k])
			}
			if approxEq(dist, 0) {
				newBlue[i] = s.faceBlue[j]
				found = true
			}
		}
		if !found {
			return engine.ErrBadMove
		}
	}
	s.faceBlue = newBlue
	s.current = dest

	// Swap the colour between the landed-on face and the square,
	// unless the game is already won; the player may roll the all-blue
	// solid around freely.
	if !s.completed {
		bottom := lowestFace(s.solid)
		s.faceBlue[bottom], s.squares[dest].blue = s.squares[dest].blue, s.faceBlue[bottom]
		if s.blueFaces() == s.solid.numFaces() {
			s.completed = true
		}
	}
	s.movecount++
	return nil
}
