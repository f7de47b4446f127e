package net

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/puzzles/engine"
	"github.com/katalvlaran/puzzles/randpool"
)

// game implements engine.Game for Net.
type game struct{}

func init() {
	engine.Register(game{})
}

func (game) Name() string { return "net" }

func (game) DefaultParams() engine.Params { return DefaultParams() }

func (game) CanSolve() bool { return true }

func (game) Presets() []engine.Preset {
	sizes := [][2]int{{5, 5}, {7, 7}, {9, 9}, {11, 11}, {13, 11}}
	presets := make([]engine.Preset, 0, 2*len(sizes))
	for _, wrapping := range []bool{false, true} {
		for _, wh := range sizes {
			p := Params{Width: wh[0], Height: wh[1], Wrapping: wrapping, Unique: true}
			name := fmt.Sprintf("%dx%d", p.Width, p.Height)
			if wrapping {
				name += " wrapping"
			}
			presets = append(presets, engine.Preset{Name: name, Params: p})
		}
	}
	return presets
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
	p.Width, s = scanInt(s)
	if strings.HasPrefix(s, "x") {
		p.Height, s = scanInt(s[1:])
	} else {
		p.Height = p.Width
	}
	for len(s) > 0 {
		switch s[0] {
		case 'w':
			p.Wrapping = true
			s = s[1:]
		case 'b':
			s = s[1:]
			i := 0
			for i < len(s) && (s[i] == '.' || (s[i] >= '0' && s[i] <= '9')) {
				i++
			}
			p.BarrierProb, _ = strconv.ParseFloat(s[:i], 64)
			s = s[i:]
		case 'a':
			p.Unique = false
			s = s[1:]
		default:
			s = s[1:]
		}
	}
	return p, nil
}

func (game) NewDesc(ep engine.Params, rnd *randpool.Pool) (string, string) {
	return newDesc(ep.(Params), rnd)
}

func (game) ValidateDesc(ep engine.Params, desc string) error {
	p := ep.(Params)
	for i := 0; i < p.Width*p.Height; i++ {
		if len(desc) == 0 {
			return ErrDescShort
		}
		c := desc[0]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return ErrDescChar
		}
		desc = desc[1:]
		for len(desc) > 0 && (desc[0] == 'h' || desc[0] == 'v') {
			desc = desc[1:]
		}
	}
	if len(desc) > 0 {
		return ErrDescLong
	}
	return nil
}

func (game) NewState(ep engine.Params, desc string) (engine.State, error) {
	p := ep.(Params)
	w, h := p.Width, p.Height
	s := &State{
		width:    w,
		height:   h,
		wrapping: p.Wrapping,
		tiles:    make([]uint8, w*h),
		barriers: make([]uint8, w*h),
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if len(desc) == 0 {
				return nil, ErrDescShort
			}
			c := desc[0]
			switch {
			case c >= '0' && c <= '9':
				s.tiles[y*w+x] = c - '0'
			case c >= 'a' && c <= 'f':
				s.tiles[y*w+x] = c - 'a' + 10
			case c >= 'A' && c <= 'F':
				s.tiles[y*w+x] = c - 'A' + 10
			default:
				return nil, ErrDescChar
			}
			desc = desc[1:]
			for len(desc) > 0 && (desc[0] == 'h' || desc[0] == 'v') {
				d1 := dirD
				if desc[0] == 'v' {
					d1 = dirR
				}
				x2, y2 := offset(x, y, d1, w, h)
				s.barriers[y*w+x] |= d1
				s.barriers[y2*w+x2] |= rotF(d1)
				desc = desc[1:]
			}
		}
	}

	if !s.wrapping {
		for x := 0; x < w; x++ {
			s.barriers[x] |= dirU
			s.barriers[(h-1)*w+x] |= dirD
		}
		for y := 0; y < h; y++ {
			s.barriers[y*w] |= dirL
			s.barriers[y*w+w-1] |= dirR
		}
	} else {
		// A wrapping-parameter grid whose descriptor barriers seal
		// the whole border is de facto non-wrapping.
		s.wrapping = false
		for x := 0; x < w && !s.wrapping; x++ {
			if s.barriers[x]&dirU == 0 || s.barriers[(h-1)*w+x]&dirD == 0 {
				s.wrapping = true
			}
		}
		for y := 0; y < h && !s.wrapping; y++ {
			if s.barriers[y*w]&dirL == 0 || s.barriers[y*w+w-1]&dirR == 0 {
				s.wrapping = true
			}
		}
	}

	return s, nil
}

func (game) Solve(ep engine.Params, start, curr engine.State, aux string) (string, error) {
	st := start.(*State)
	cs := curr.(*State)
	w, h := st.width, st.height
	tiles := make([]uint8, w*h)

	if aux == "" {
		// Run the deductive solver; it may determine only part of the
		// grid, in which case the move locks what it found.
		copy(tiles, st.tiles)
		if solver(w, h, tiles, st.barriers, st.wrapping) < 0 {
			return "", ErrNoSolution
		}
	} else {
		for i := 0; i < w*h && i < len(aux); i++ {
			c := aux[i]
			switch {
			case c >= '0' && c <= '9':
				tiles[i] = c - '0'
			case c >= 'a' && c <= 'f':
				tiles[i] = c - 'a' + 10
			case c >= 'A' && c <= 'F':
				tiles[i] = c - 'A' + 10
			}
			tiles[i] |= locked
		}
	}

	var sb strings.Builder
	sb.WriteByte('S')
	for i := 0; i < w*h; i++ {
		from, to := cs.tiles[i], tiles[i]
		if from == to {
			continue
		}
		ft, tt := from&dirMask, to&dirMask
		x, y := i%w, i/w

		// Unlock, rotate into place, re-lock.
		if from&locked != 0 {
			fmt.Fprintf(&sb, ";L%d,%d", x, y)
		}
		switch tt {
		case rotA(ft):
			fmt.Fprintf(&sb, ";A%d,%d", x, y)
		case rotC(ft):
			fmt.Fprintf(&sb, ";C%d,%d", x, y)
		case rotF(ft):
			fmt.Fprintf(&sb, ";F%d,%d", x, y)
		}
		if to&locked != 0 {
			fmt.Fprintf(&sb, ";L%d,%d", x, y)
		}
	}
	return sb.String(), nil
}

// parseCoords reads "%d,%d" at the front of s.
func parseCoords(s string) (x, y int, rest string, ok bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(s) || s[i] != ',' {
		return 0, 0, s, false
	}
	x, _ = strconv.Atoi(s[:i])
	s = s[i+1:]
	i = 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, 0, s, false
	}
	y, _ = strconv.Atoi(s[:i])
	return x, y, s[i:], true
}

func (game) ExecuteMove(est engine.State, move string) (engine.State, error) {
	from := est.(*State)
	ret := from.Clone().(*State)

	if len(move) > 0 && (move[0] == 'J' || move[0] == 'S') {
		if move[0] == 'S' {
			ret.usedSolve = true
		}
		move = move[1:]
		if strings.HasPrefix(move, ";") {
			move = move[1:]
		}
	}

	for len(move) > 0 {
		cmd := move[0]
		if cmd != 'A' && cmd != 'C' && cmd != 'F' && cmd != 'L' {
			return nil, engine.ErrBadMove
		}
		tx, ty, rest, ok := parseCoords(move[1:])
		if !ok || tx < 0 || tx >= from.width || ty < 0 || ty >= from.height {
			return nil, engine.ErrBadMove
		}
		orig := ret.tiles[ty*from.width+tx]
		switch cmd {
		case 'A':
			ret.tiles[ty*from.width+tx] = rotA(orig)
		case 'C':
			ret.tiles[ty*from.width+tx] = rotC(orig)
		case 'F':
			ret.tiles[ty*from.width+tx] = rotF(orig)
		case 'L':
			ret.tiles[ty*from.width+tx] = orig ^ locked
		}
		move = rest
		if strings.HasPrefix(move, ";") {
			move = move[1:]
		}
	}

	ret.completionCheck()
	return ret, nil
}
