package cube

import (
	"strconv"
	"strings"

	"github.com/katalvlaran/puzzles/engine"
	"github.com/katalvlaran/puzzles/randpool"
)

// game implements engine.Game and engine.MoveInterpreter for Cube.
type game struct{}

func init() {
	engine.Register(game{})
}

func (game) Name() string { return "cube" }

func (game) DefaultParams() engine.Params { return DefaultParams() }

func (game) CanSolve() bool { return false }

func (game) Presets() []engine.Preset {
	return []engine.Preset{
		{Name: "Cube", Params: Params{Solid: Cube, D1: 4, D2: 4}},
		{Name: "Tetrahedron", Params: Params{Solid: Tetrahedron, D1: 2, D2: 1}},
		{Name: "Octahedron", Params: Params{Solid: Octahedron, D1: 2, D2: 2}},
		{Name: "Icosahedron", Params: Params{Solid: Icosahedron, D1: 3, D2: 3}},
	}
}

// scanInt reads a leading decimal integer, returning it and the rest.
func scanInt(s string) (int, string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	n, _ := strconv.Atoi(s[:i])
	return n, s[i:]
}

func (game) DecodeParams(s string) (engine.Params, error) {
	p := DefaultParams()
	if len(s) == 0 {
		return nil, ErrBadSolid
	}
	i := strings.IndexByte(solidChars, s[0])
	if i < 0 {
		return nil, ErrBadSolid
	}
	p.Solid = Solid(i)
	s = s[1:]
	if len(s) > 0 {
		p.D1, s = scanInt(s)
		if strings.HasPrefix(s, "x") {
			p.D2, _ = scanInt(s[1:])
		} else {
			p.D2 = p.D1
		}
	} else {
		// Sensible default size per solid.
		switch p.Solid {
		case Tetrahedron:
			p.D1, p.D2 = 2, 1
		case Cube:
			p.D1, p.D2 = 4, 4
		case Octahedron:
			p.D1, p.D2 = 2, 2
		case Icosahedron:
			p.D1, p.D2 = 3, 3
		}
	}
	return p, nil
}

func (game) NewDesc(ep engine.Params, rnd *randpool.Pool) (string, string) {
	return newDesc(ep.(Params), rnd)
}

// loadState parses a descriptor into a fresh board.
func loadState(p Params, desc string) (*State, error) {
	sol := solids[p.Solid]
	squares := enumGridSquares(p)
	area := len(squares)
	ndigits := (area + 3) / 4

	if len(desc) < ndigits+2 {
		return nil, ErrDescShort
	}
	bit := 0
	var acc int
	for i := 0; i < area; i++ {
		if bit == 0 {
			c := desc[i/4]
			switch {
			case c >= '0' && c <= '9':
				acc = int(c - '0')
			case c >= 'A' && c <= 'F':
				acc = int(c-'A') + 10
			case c >= 'a' && c <= 'f':
				acc = int(c-'a') + 10
			default:
				return nil, ErrDescChar
			}
			bit = 8
		}
		squares[i].blue = acc&bit != 0
		bit >>= 1
	}
	if desc[ndigits] != ':' {
		return nil, ErrDescChar
	}
	num := desc[ndigits+1:]
	for i := 0; i < len(num); i++ {
		if num[i] < '0' || num[i] > '9' {
			return nil, ErrDescChar
		}
	}
	start, err := strconv.Atoi(num)
	if err != nil || start < 0 || start >= area {
		return nil, ErrStartRange
	}
	if squares[start].blue {
		return nil, ErrStartBlue
	}

	return &State{
		p:        p,
		solid:    sol,
		squares:  squares,
		faceBlue: make([]bool, sol.numFaces()),
		current:  start,
	}, nil
}

func (game) ValidateDesc(ep engine.Params, desc string) error {
	_, err := loadState(ep.(Params), desc)
	return err
}

func (game) NewState(ep engine.Params, desc string) (engine.State, error) {
	return loadState(ep.(Params), desc)
}

func (game) Solve(ep engine.Params, start, curr engine.State, aux string) (string, error) {
	return "", engine.ErrNoSolution
}

var dirTokens = [dirCount]string{"L", "R", "U", "D", "UL", "UR", "DL", "DR"}

func parseDirection(tok string) (int, bool) {
	for d, t := range dirTokens {
		if t == tok {
			return d, true
		}
	}
	return 0, false
}

func (game) ExecuteMove(est engine.State, move string) (engine.State, error) {
	from := est.(*State)
	ret := from.Clone().(*State)
	if move == "" {
		return ret, nil
	}
	for _, tok := range strings.Split(move, ";") {
		dir, ok := parseDirection(tok)
		if !ok {
			return nil, engine.ErrBadMove
		}
		if err := ret.roll(dir); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// InterpretMove maps cursor keys onto rolls, refusing directions that
// would leave the board.
func (game) InterpretMove(est engine.State, button int) (string, bool) {
	s := est.(*State)
	var dir int
	switch engine.StripButtonModifiers(button) {
	case engine.CursorLeft:
		dir = dirLeft
	case engine.CursorRight:
		dir = dirRight
	case engine.CursorUp:
		dir = dirUp
	case engine.CursorDown:
		dir = dirDown
	default:
		return "", false
	}
	if _, _, ok := s.destSquare(dir); !ok {
		return "", false
	}
	return dirTokens[dir], true
}
