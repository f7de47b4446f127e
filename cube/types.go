package cube

import (
	"fmt"

	"github.com/katalvlaran/puzzles/engine"
)

// Solid identifies one of the four supported regular polyhedra.
type Solid int

const (
	Tetrahedron Solid = iota
	Cube
	Octahedron
	Icosahedron
	solidCount
)

var solidChars = "tcoi"

var solidNames = [...]string{"Tetrahedron", "Cube", "Octahedron", "Icosahedron"}

func (s Solid) String() string {
	if s < 0 || int(s) >= len(solidNames) {
		return fmt.Sprintf("Solid(%d)", int(s))
	}
	return solidNames[s]
}

// solid is a polyhedron in its canonical orientation: resting on the
// board with its lowest face congruent to a grid square of the board
// it belongs to. faces lists order vertex indices per face; normals
// holds one outward unit vector per face.
type solid struct {
	vertices []float64 // 3 per vertex
	order    int
	faces    []int
	normals  []float64 // 3 per face
}

func (s *solid) numVertices() int { return len(s.vertices) / 3 }
func (s *solid) numFaces() int    { return len(s.faces) / s.order }

func (s *solid) clone() *solid {
	ret := &solid{
		vertices: make([]float64, len(s.vertices)),
		order:    s.order,
		faces:    s.faces,
		normals:  make([]float64, len(s.normals)),
	}
	copy(ret.vertices, s.vertices)
	copy(ret.normals, s.normals)
	return ret
}

var tetrahedronSolid = solid{
	vertices: []float64{
		0.0, -0.57735026919, -0.20412414523,
		-0.5, 0.28867513459, -0.20412414523,
		0.0, -0.0, 0.6123724357,
		0.5, 0.28867513459, -0.20412414523,
	},
	order: 3,
	faces: []int{
		0, 2, 1, 3, 1, 2, 2, 0, 3, 1, 3, 0,
	},
	normals: []float64{
		-0.816496580928, -0.471404520791, 0.333333333334,
		0.0, 0.942809041583, 0.333333333333,
		0.816496580928, -0.471404520791, 0.333333333334,
		0.0, 0.0, -1.0,
	},
}

var cubeSolid = solid{
	vertices: []float64{
		-0.5, -0.5, -0.5, -0.5, -0.5, 0.5,
		-0.5, 0.5, -0.5, -0.5, 0.5, 0.5,
		0.5, -0.5, -0.5, 0.5, -0.5, 0.5,
		0.5, 0.5, -0.5, 0.5, 0.5, 0.5,
	},
	order: 4,
	faces: []int{
		0, 1, 3, 2, 1, 5, 7, 3, 5, 4, 6, 7, 4, 0, 2, 6, 0, 4, 5, 1, 3, 7, 6, 2,
	},
	normals: []float64{
		-1.0, 0.0, 0.0, 0.0, 0.0, 1.0,
		1.0, 0.0, 0.0, 0.0, 0.0, -1.0,
		0.0, -1.0, 0.0, 0.0, 1.0, 0.0,
	},
}

var octahedronSolid = solid{
	vertices: []float64{
		-0.5, -0.28867513459472505, 0.4082482904638664,
		0.5, 0.28867513459472505, -0.4082482904638664,
		-0.5, 0.28867513459472505, -0.4082482904638664,
		0.5, -0.28867513459472505, 0.4082482904638664,
		0.0, -0.57735026918945009, -0.4082482904638664,
		0.0, 0.57735026918945009, 0.4082482904638664,
	},
	order: 3,
	faces: []int{
		4, 0, 2, 0, 5, 2, 0, 4, 3, 5, 0, 3, 1, 4, 2, 5, 1, 2, 4, 1, 3, 1, 5, 3,
	},
	normals: []float64{
		-0.816496580928, -0.471404520791, -0.333333333334,
		-0.816496580928, 0.471404520791, 0.333333333334,
		0.0, -0.942809041583, 0.333333333333,
		0.0, 0.0, 1.0,
		0.0, 0.0, -1.0,
		0.0, 0.942809041583, -0.333333333333,
		0.816496580928, -0.471404520791, -0.333333333334,
		0.816496580928, 0.471404520791, 0.333333333334,
	},
}

var icosahedronSolid = solid{
	vertices: []float64{
		0.0, 0.57735026919, 0.75576131408,
		0.0, -0.93417235896, 0.17841104489,
		0.0, 0.93417235896, -0.17841104489,
		0.0, -0.57735026919, -0.75576131408,
		-0.5, -0.28867513459, 0.75576131408,
		-0.5, 0.28867513459, -0.75576131408,
		0.5, -0.28867513459, 0.75576131408,
		0.5, 0.28867513459, -0.75576131408,
		-0.80901699437, 0.46708617948, 0.17841104489,
		0.80901699437, 0.46708617948, 0.17841104489,
		-0.80901699437, -0.46708617948, -0.17841104489,
		0.80901699437, -0.46708617948, -0.17841104489,
	},
	order: 3,
	faces: []int{
		8, 0, 2, 0, 9, 2, 1, 10, 3, 11, 1, 3, 0, 4, 6,
		4, 1, 6, 5, 2, 7, 3, 5, 7, 4, 8, 10, 8, 5, 10,
		9, 6, 11, 7, 9, 11, 0, 8, 4, 9, 0, 6, 10, 1, 4,
		1, 11, 6, 8, 2, 5, 2, 9, 7, 3, 10, 5, 11, 3, 7,
	},
	normals: []float64{
		-0.356822089773, 0.87267799625, 0.333333333333,
		0.356822089773, 0.87267799625, 0.333333333333,
		-0.356822089773, -0.87267799625, -0.333333333333,
		0.356822089773, -0.87267799625, -0.333333333333,
		-0.0, 0.0, 1.0,
		0.0, -0.666666666667, 0.745355992501,
		0.0, 0.666666666667, -0.745355992501,
		0.0, 0.0, -1.0,
		-0.934172358963, -0.12732200375, 0.333333333333,
		-0.934172358963, 0.12732200375, -0.333333333333,
		0.934172358963, -0.12732200375, 0.333333333333,
		0.934172358963, 0.12732200375, -0.333333333333,
		-0.57735026919, 0.333333333334, 0.745355992501,
		0.57735026919, 0.333333333334, 0.745355992501,
		-0.57735026919, -0.745355992501, 0.333333333334,
		0.57735026919, -0.745355992501, 0.333333333334,
		-0.57735026919, 0.745355992501, -0.333333333334,
		0.57735026919, 0.745355992501, -0.333333333334,
		-0.57735026919, -0.333333333334, -0.745355992501,
		0.57735026919, -0.333333333334, -0.745355992501,
	},
}

var solids = [...]*solid{&tetrahedronSolid, &cubeSolid, &octahedronSolid, &icosahedronSolid}

// Directions a solid can roll in. The diagonal directions only exist
// on triangular grids, where they alias whichever edge of the
// triangle points that way.
const (
	dirLeft = iota
	dirRight
	dirUp
	dirDown
	dirUpLeft
	dirUpRight
	dirDownLeft
	dirDownRight
	dirCount
)

// Params selects the solid and the board dimensions. For an order-4
// solid the board is a D1 x D2 grid of squares; otherwise it is a
// hexagon of triangles whose top side and two lower diagonals have
// length D1 and whose remaining three sides have length D2, so that
// D1 == D2 gives a regular hexagon and D2 == 0 a triangle.
type Params struct {
	Solid  Solid
	D1, D2 int
}

func DefaultParams() Params {
	return Params{Solid: Cube, D1: 4, D2: 4}
}

func (p Params) Encode(full bool) string {
	return fmt.Sprintf("%c%dx%d", solidChars[p.Solid], p.D1, p.D2)
}

const maxGridDim = 128

func (p Params) Validate(full bool) error {
	if p.Solid < 0 || p.Solid >= solidCount {
		return ErrBadSolid
	}
	sol := solids[p.Solid]
	if sol.order == 4 {
		if p.D1 < 1 || p.D2 < 1 {
			return ErrTooSmall
		}
	} else {
		if p.D1 < 1 || p.D2 < 0 {
			return ErrTooSmall
		}
	}
	if p.D1 > maxGridDim || p.D2 > maxGridDim {
		return ErrTooLarge
	}
	squares := enumGridSquares(p)
	// The starting square is never blue, so the grid must hold at
	// least one square more than the solid has faces.
	if len(squares) <= sol.numFaces() {
		return ErrBlueSpace
	}
	nclasses := classCount(p.Solid)
	counts := make([]int, nclasses)
	for i := range squares {
		counts[squareClass(&squares[i], nclasses)]++
	}
	facesPerClass := sol.numFaces() / nclasses
	for _, n := range counts {
		if n < facesPerClass {
			return ErrBlueSpace
		}
	}
	return nil
}

// State is a board position: which squares and faces are blue, and
// where the solid currently rests. The solid itself stays in its
// canonical orientation; rolls permute faceBlue instead.
type State struct {
	p         Params
	solid     *solid
	squares   []gridSquare
	faceBlue  []bool
	current   int
	movecount int
	completed bool
	usedSolve bool
}

func (s *State) Completed() bool { return s.completed }
func (s *State) UsedSolve() bool { return s.usedSolve }

func (s *State) Clone() engine.State {
	ret := &State{
		p:         s.p,
		solid:     s.solid,
		squares:   make([]gridSquare, len(s.squares)),
		faceBlue:  make([]bool, len(s.faceBlue)),
		current:   s.current,
		movecount: s.movecount,
		completed: s.completed,
		usedSolve: s.usedSolve,
	}
	copy(ret.squares, s.squares)
	copy(ret.faceBlue, s.faceBlue)
	return ret
}

func (s *State) blueFaces() int {
	n := 0
	for _, b := range s.faceBlue {
		if b {
			n++
		}
	}
	return n
}

func (s *State) blueSquares() int {
	n := 0
	for i := range s.squares {
		if s.squares[i].blue {
			n++
		}
	}
	return n
}
