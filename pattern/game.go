package pattern

import (
	"strconv"
	"strings"

	"github.com/katalvlaran/puzzles/engine"
	"github.com/katalvlaran/puzzles/randpool"
)

// game implements engine.Game for Pattern.
type game struct{}

func init() {
	engine.Register(game{})
}

func (game) Name() string { return "pattern" }

func (game) DefaultParams() engine.Params { return DefaultParams() }

func (game) CanSolve() bool { return true }

func (game) Presets() []engine.Preset {
	sizes := [][2]int{{10, 10}, {15, 15}, {20, 20}, {25, 25}, {30, 30}}
	presets := make([]engine.Preset, 0, len(sizes))
	for _, wh := range sizes {
		p := Params{Width: wh[0], Height: wh[1]}
		presets = append(presets, engine.Preset{Name: p.Encode(true), Params: p})
	}
	return presets
}

func (game) DecodeParams(s string) (engine.Params, error) {
	p := DefaultParams()
	p.Width, s = scanInt(s)
	if strings.HasPrefix(s, "x") {
		p.Height, _ = scanInt(s[1:])
	} else {
		p.Height = p.Width
	}
	return p, nil
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

func (game) NewDesc(ep engine.Params, rnd *randpool.Pool) (string, string) {
	return newDesc(ep.(Params), rnd)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (game) ValidateDesc(ep engine.Params, desc string) error {
	p := ep.(Params)
	w, h := p.Width, p.Height
	pos := 0
	// next consumes one byte, reading past the end as 0.
	next := func() byte {
		pos++
		if pos > len(desc) {
			return 0
		}
		return desc[pos-1]
	}

	var last byte
	for i := 0; i < w+h; i++ {
		rowspace := h + 1
		if i >= w {
			rowspace = w + 1
		}

		if pos < len(desc) && isDigit(desc[pos]) {
			nclues := 0
			for {
				start := pos
				for pos < len(desc) && isDigit(desc[pos]) {
					pos++
				}
				n, err := strconv.Atoi(desc[start:pos])
				if err != nil {
					return ErrClueExcessive
				}
				if n < 0 {
					return ErrClueNegative
				}
				rowspace -= n + 1
				nclues++
				// Zero clues cost one unit each, so the rowspace check
				// alone does not bound the clue count.
				if rowspace < 0 || nclues > max(w, h) {
					if i < w {
						return ErrColOverfull
					}
					return ErrRowOverfull
				}
				if last = next(); last != '.' {
					break
				}
			}
		} else {
			last = next()
		}

		switch last {
		case '/':
			if i+1 == w+h {
				return ErrTooManySpecs
			}
		case 0, ',':
			if i+1 < w+h {
				return ErrTooFewSpecs
			}
		default:
			return ErrBadChar
		}
	}

	if last == ',' {
		i := 0
		for i < w*h {
			c := next()
			switch {
			case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
				lc := c | 0x20
				run := int(lc - 'a')
				i += run
				if run < 25 && i < w*h {
					i++
				}
				if i > w*h {
					return ErrCluesTooLong
				}
			case c == 0:
				return ErrCluesTooShort
			default:
				return ErrCluesBadChar
			}
		}
		if pos < len(desc) {
			return ErrCluesTooLong
		}
	}

	return nil
}

func (game) NewState(ep engine.Params, desc string) (engine.State, error) {
	p := ep.(Params)
	w, h := p.Width, p.Height

	clues := &Clues{
		w:         w,
		h:         h,
		rowsize:   max(w, h),
		rowlen:    make([]int, w+h),
		immutable: make([]bool, w*h),
	}
	clues.rowdata = make([]int, clues.rowsize*(w+h))

	st := &State{
		clues: clues,
		grid:  make([]uint8, w*h),
	}
	for i := range st.grid {
		st.grid[i] = cellUnknown
	}

	pos := 0
	next := func() byte {
		pos++
		if pos > len(desc) {
			return 0
		}
		return desc[pos-1]
	}

	var last byte
	for i := 0; i < w+h; i++ {
		if pos < len(desc) && isDigit(desc[pos]) {
			for {
				start := pos
				for pos < len(desc) && isDigit(desc[pos]) {
					pos++
				}
				n, _ := strconv.Atoi(desc[start:pos])
				clues.rowdata[clues.rowsize*i+clues.rowlen[i]] = n
				clues.rowlen[i]++
				if last = next(); last != '.' {
					break
				}
			}
		} else {
			last = next()
		}
	}

	if last == ',' {
		i := 0
		for i < w*h {
			c := next()
			full := c >= 'A' && c <= 'Z'
			run := int((c | 0x20) - 'a')
			i += run
			if run < 25 && i < w*h {
				if full {
					st.grid[i] = cellFull
				} else {
					st.grid[i] = cellEmpty
				}
				clues.immutable[i] = true
				i++
			}
		}
	}

	return st, nil
}

func (game) Solve(ep engine.Params, start, curr engine.State, aux string) (string, error) {
	st := start.(*State)
	w, h := st.clues.w, st.clues.h

	if aux != "" {
		return aux, nil
	}

	matrix, ok := solvePuzzle(st.clues, st, nil, w, h)
	if !ok {
		return "", ErrCannotSolve
	}

	buf := make([]byte, w*h+1)
	buf[0] = 'S'
	for i := 0; i < w*h; i++ {
		if matrix[i] == block {
			buf[i+1] = '1'
		} else {
			buf[i+1] = '0'
		}
	}
	return string(buf), nil
}

// parseRect reads "x,y,w,h" and reports success.
func parseRect(s string) (x, y, rw, rh int, ok bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0, false
	}
	var vals [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, 0, 0, 0, false
		}
		vals[i] = n
	}
	return vals[0], vals[1], vals[2], vals[3], true
}

func (game) ExecuteMove(est engine.State, move string) (engine.State, error) {
	from := est.(*State)
	w, h := from.clues.w, from.clues.h

	if move == "" {
		return from.Clone(), nil
	}

	if move[0] == 'S' && len(move) == w*h+1 {
		ret := from.Clone().(*State)
		for i := 0; i < w*h; i++ {
			if move[i+1] == '1' {
				ret.grid[i] = cellFull
			} else {
				ret.grid[i] = cellEmpty
			}
		}
		ret.completed = true
		ret.usedSolve = true
		return ret, nil
	}

	if move[0] == 'F' || move[0] == 'E' || move[0] == 'U' {
		x1, y1, x2, y2, ok := parseRect(move[1:])
		if !ok || x1 < 0 || x2 < 0 || x1+x2 > w || y1 < 0 || y2 < 0 || y1+y2 > h {
			return nil, engine.ErrBadMove
		}
		x2 += x1
		y2 += y1
		var val uint8
		switch move[0] {
		case 'F':
			val = cellFull
		case 'E':
			val = cellEmpty
		default:
			val = cellUnknown
		}

		ret := from.Clone().(*State)
		for yy := y1; yy < y2; yy++ {
			for xx := x1; xx < x2; xx++ {
				if !ret.clues.immutable[yy*w+xx] {
					ret.grid[yy*w+xx] = val
				}
			}
		}

		if !ret.completed {
			ret.completed = ret.checkComplete()
		}
		return ret, nil
	}

	return nil, engine.ErrBadMove
}

// checkComplete reports whether every line's run lengths match its
// clues. Lines still containing unknown cells never match.
func (s *State) checkComplete() bool {
	w, h := s.clues.w, s.clues.h
	rowdata := make([]int, s.clues.rowsize)

	for i := 0; i < w; i++ {
		n := computeRowData(rowdata, s.grid, i, h, w)
		if !cluesMatch(s.clues, i, rowdata, n) {
			return false
		}
	}
	for i := 0; i < h; i++ {
		n := computeRowData(rowdata, s.grid, i*w, w, 1)
		if !cluesMatch(s.clues, i+w, rowdata, n) {
			return false
		}
	}
	return true
}

func cluesMatch(c *Clues, i int, rowdata []int, n int) bool {
	if n != c.rowlen[i] {
		return false
	}
	for j := 0; j < n; j++ {
		if rowdata[j] != c.rowdata[c.rowsize*i+j] {
			return false
		}
	}
	return true
}
