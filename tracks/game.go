package tracks

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/puzzles/dsf"
	"github.com/katalvlaran/puzzles/engine"
	"github.com/katalvlaran/puzzles/findloop"
	"github.com/katalvlaran/puzzles/randpool"
)

// game implements engine.Game for Tracks.
type game struct{}

func init() {
	engine.Register(game{})
}

func (game) Name() string { return "tracks" }

func (game) DefaultParams() engine.Params { return DefaultParams() }

func (game) CanSolve() bool { return true }

func (game) Presets() []engine.Preset {
	specs := []Params{
		{8, 8, Easy, true},
		{8, 8, Tricky, true},
		{10, 8, Easy, true},
		{10, 8, Tricky, true},
		{10, 10, Easy, true},
		{10, 10, Tricky, true},
		{10, 10, Hard, true},
		{15, 10, Easy, true},
		{15, 10, Tricky, true},
		{15, 15, Easy, true},
		{15, 15, Tricky, true},
		{15, 15, Hard, true},
	}
	presets := make([]engine.Preset, 0, len(specs))
	for _, p := range specs {
		name := fmt.Sprintf("%dx%d %s", p.Width, p.Height, p.Difficulty)
		presets = append(presets, engine.Preset{Name: name, Params: p})
	}
	return presets
}

func (game) DecodeParams(s string) (engine.Params, error) {
	p := DefaultParams()
	p.Width, s = scanInt(s)
	if strings.HasPrefix(s, "x") {
		p.Height, s = scanInt(s[1:])
	} else {
		p.Height = p.Width
	}
	if strings.HasPrefix(s, "d") {
		s = s[1:]
		p.Difficulty = Tricky
		if len(s) > 0 {
			for i, c := range diffChars {
				if s[0] == c {
					p.Difficulty = Difficulty(i)
				}
			}
			s = s[1:]
		}
	}
	p.SingleOnes = true
	if strings.HasPrefix(s, "o") {
		p.SingleOnes = false
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

func (game) ValidateDesc(ep engine.Params, desc string) error {
	p := ep.(Params)
	w, h := p.Width, p.Height
	pos, i := 0, 0
	in, out := 0, 0

	for pos < len(desc) {
		c := desc[pos]
		var f uint32
		switch {
		case c >= '0' && c <= '9':
			f = uint32(c - '0')
		case c >= 'A' && c <= 'F':
			f = uint32(c-'A') + 10
		case c >= 'a' && c <= 'z':
			i += int(c - 'a')
		default:
			return ErrDescChar
		}
		if f != 0 && nbits[f] != 2 {
			return ErrClueNotTwo
		}
		i++
		pos++
		if i == w*h {
			break
		}
	}
	for i = 0; i < w+h; i++ {
		if pos >= len(desc) {
			return ErrNumbersShort
		}
		if desc[pos] != ',' {
			return ErrNumbersChar
		}
		pos++
		if pos < len(desc) && desc[pos] == 'S' {
			if i < w {
				out++
			} else {
				in++
			}
			pos++
		}
		for pos < len(desc) && desc[pos] >= '0' && desc[pos] <= '9' {
			pos++
		}
	}
	if in != 1 || out != 1 {
		return ErrEntranceExit
	}
	if pos < len(desc) {
		return ErrDescLong
	}
	return nil
}

func (game) NewState(ep engine.Params, desc string) (engine.State, error) {
	p := ep.(Params)
	s := blankState(p)
	w, h := p.Width, p.Height
	pos, i := 0, 0

	for pos < len(desc) {
		c := desc[pos]
		var f uint32
		switch {
		case c >= '0' && c <= '9':
			f = uint32(c - '0')
		case c >= 'A' && c <= 'F':
			f = uint32(c-'A') + 10
		case c >= 'a' && c <= 'z':
			i += int(c - 'a')
		}
		if f != 0 {
			x, y := i%w, i/w
			s.sflags[i] |= sTrack | sClue
			for _, d := range []uint32{dirU, dirD, dirL, dirR} {
				if f&d != 0 {
					s.edgeSet(x, y, d, eTrack)
				}
			}
		}
		i++
		pos++
		if i == w*h {
			break
		}
	}
	for i = 0; i < w+h; i++ {
		pos++ // the comma
		if pos < len(desc) && desc[pos] == 'S' {
			if i < w {
				s.numbers.colS = i
			} else {
				s.numbers.rowS = i - w
			}
			pos++
		}
		var n int
		start := pos
		for pos < len(desc) && desc[pos] >= '0' && desc[pos] <= '9' {
			pos++
		}
		n, _ = strconv.Atoi(desc[start:pos])
		s.numbers.numbers[i] = n
	}

	return s, nil
}

// moveStringDiff encodes the flag differences between two states as a
// move string.
func moveStringDiff(before, after *State, isSolve bool) string {
	w, h := after.p.Width, after.p.Height
	var mb bytes.Buffer
	sep := ""
	if isSolve {
		mb.WriteByte('S')
		sep = ";"
	}

	for i := 0; i < w*h; i++ {
		otf := before.edgeDirs(i%w, i/w, eTrack)
		ntf := after.edgeDirs(i%w, i/w, eTrack)
		onf := before.edgeDirs(i%w, i/w, eNoTrack)
		nnf := after.edgeDirs(i%w, i/w, eNoTrack)

		for j := 0; j < 4; j++ {
			df := uint32(1) << j
			if otf&df != ntf&df {
				c := byte('t')
				if ntf&df != 0 {
					c = 'T'
				}
				fmt.Fprintf(&mb, "%s%c%c%d,%d", sep, c, moveChar(df), i%w, i/w)
				sep = ";"
			}
			if onf&df != nnf&df {
				c := byte('n')
				if nnf&df != 0 {
					c = 'N'
				}
				fmt.Fprintf(&mb, "%s%c%c%d,%d", sep, c, moveChar(df), i%w, i/w)
				sep = ";"
			}
		}

		if before.sflags[i]&sNoTrack != after.sflags[i]&sNoTrack {
			c := byte('n')
			if after.sflags[i]&sNoTrack != 0 {
				c = 'N'
			}
			fmt.Fprintf(&mb, "%s%cS%d,%d", sep, c, i%w, i/w)
			sep = ";"
		}
		if before.sflags[i]&sTrack != after.sflags[i]&sTrack {
			c := byte('t')
			if after.sflags[i]&sTrack != 0 {
				c = 'T'
			}
			fmt.Fprintf(&mb, "%s%cS%d,%d", sep, c, i%w, i/w)
			sep = ";"
		}
	}
	return mb.String()
}

func (game) Solve(ep engine.Params, start, curr engine.State, aux string) (string, error) {
	st := start.(*State)
	cs := curr.(*State)

	solved := cs.Clone().(*State)
	ret, _ := solved.solve(diffCount)
	if ret < 1 {
		solved = st.Clone().(*State)
		ret, _ = solved.solve(diffCount)
	}
	if ret < 1 {
		return "", engine.ErrNoSolution
	}
	return moveStringDiff(cs, solved, true), nil
}

// uiCanFlipEdge reports whether toggling an edge is a legal manual
// move: clue squares pin their edges, and a track edge may not
// contradict no-track marks or give a square a third track edge.
func uiCanFlipEdge(s *State, x, y int, d uint32, notrack bool) bool {
	w := s.p.Width
	x2, y2 := x+dx(d), y+dy(d)

	if !s.inGrid(x, y) || !s.inGrid(x2, y2) {
		return false
	}
	sf1 := s.sflags[y*w+x]
	sf2 := s.sflags[y2*w+x2]
	if !notrack && (sf1&sClue != 0 || sf2&sClue != 0) {
		return false
	}

	ef := s.edgeFlags(x, y, d)
	if notrack {
		// Setting NOTRACK: the edge must not already be TRACK.
		if ef&eNoTrack == 0 && ef&eTrack != 0 {
			return false
		}
	} else if ef&eTrack == 0 {
		// Setting TRACK: neither adjacent square nor the edge itself
		// may be NOTRACK, and neither square may have 2 track edges.
		if sf1&sNoTrack != 0 || sf2&sNoTrack != 0 || ef&eNoTrack != 0 {
			return false
		}
		if s.edgeCount(x, y, eTrack) >= 2 || s.edgeCount(x2, y2, eTrack) >= 2 {
			return false
		}
	}
	return true
}

func uiCanFlipSquare(s *State, x, y int, notrack bool) bool {
	w := s.p.Width
	if !s.inGrid(x, y) {
		return false
	}
	sf := s.sflags[y*w+x]
	trackc := s.edgeCount(x, y, eTrack)

	if sf&sClue != 0 {
		return false
	}
	if notrack {
		// Setting NOTRACK forbids any track here.
		if sf&sNoTrack == 0 && (sf&sTrack != 0 || trackc > 0) {
			return false
		}
	} else {
		// Setting TRACK forbids a NOTRACK mark.
		if sf&sTrack == 0 && sf&sNoTrack != 0 {
			return false
		}
	}
	return true
}

// parseCoords reads "x,y" off the front of s, returning the rest.
func parseCoords(s string) (x, y int, rest string, ok bool) {
	i := 0
	for i < len(s) && (s[i] == '-' || (s[i] >= '0' && s[i] <= '9')) {
		i++
	}
	if i == 0 || i >= len(s) || s[i] != ',' {
		return 0, 0, s, false
	}
	x, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, 0, s, false
	}
	s = s[i+1:]
	i = 0
	for i < len(s) && (s[i] == '-' || (s[i] >= '0' && s[i] <= '9')) {
		i++
	}
	if i == 0 {
		return 0, 0, s, false
	}
	y, err = strconv.Atoi(s[:i])
	if err != nil {
		return 0, 0, s, false
	}
	return x, y, s[i:], true
}

func (game) ExecuteMove(est engine.State, move string) (engine.State, error) {
	from := est.(*State)
	ret := from.Clone().(*State)
	moveIsSolve := false

	for len(move) > 0 {
		c := move[0]
		switch {
		case c == 'S':
			ret.usedSolve = true
			moveIsSolve = true
			move = move[1:]
		case c == 'T' || c == 't' || c == 'N' || c == 'n':
			if len(move) < 2 {
				return nil, engine.ErrBadMove
			}
			d := move[1]
			x, y, rest, ok := parseCoords(move[2:])
			if !ok || !from.inGrid(x, y) {
				return nil, engine.ErrBadMove
			}
			move = rest

			f := sTrack
			ef := eTrack
			if c == 'N' || c == 'n' {
				f, ef = sNoTrack, eNoTrack
			}

			if d == 'S' {
				if !uiCanFlipSquare(ret, x, y, f == sNoTrack) && !moveIsSolve {
					return nil, engine.ErrBadMove
				}
				if c == 'T' || c == 'N' {
					ret.sflags[y*ret.p.Width+x] |= f
				} else {
					ret.sflags[y*ret.p.Width+x] &^= f
				}
			} else if d == 'U' || d == 'D' || d == 'L' || d == 'R' {
				for i := 0; i < 4; i++ {
					df := uint32(1) << i
					if moveChar(df) != d {
						continue
					}
					if !uiCanFlipEdge(ret, x, y, df, f == sNoTrack) && !moveIsSolve {
						return nil, engine.ErrBadMove
					}
					if c == 'T' || c == 'N' {
						ret.edgeSet(x, y, df, ef)
					} else {
						ret.edgeClear(x, y, df, ef)
					}
				}
			} else {
				return nil, engine.ErrBadMove
			}
		case c == 'H':
			ret.solve(diffCount)
			move = move[1:]
		default:
			return nil, engine.ErrBadMove
		}

		if len(move) > 0 {
			if move[0] != ';' {
				return nil, engine.ErrBadMove
			}
			move = move[1:]
		}
	}

	ret.checkCompletion(true)
	return ret, nil
}

func (s *State) trackNeighbours(v int, emit func(int)) {
	w := s.p.Width
	x, y := v%w, v/w
	dirs := s.edgeDirs(x, y, eTrack)
	for j := 0; j < 4; j++ {
		d := uint32(1) << j
		if dirs&d != 0 {
			nx, ny := x+dx(d), y+dy(d)
			if s.inGrid(nx, ny) {
				emit(ny*w + nx)
			}
		}
	}
}

// checkCompletion decides whether the laid track is a single correct
// route. With mark set it also refreshes the error highlights on
// squares and clue numbers, and records completion on the state.
func (s *State) checkCompletion(mark bool) bool {
	w, h := s.p.Width, s.p.Height
	ret := true

	if mark {
		for i := range s.numErrors {
			s.numErrors[i] = 0
		}
		for i := 0; i < w*h; i++ {
			s.sflags[i] &^= sError
			if s.edgeCount(i%w, i/w, eTrack) > 2 {
				ret = false
				s.sflags[i] |= sError
			}
		}
	}

	d := dsf.New(w * h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			for _, dir := range []uint32{dirR, dirD} {
				if s.edgeDirs(x, y, eTrack)&dir == 0 {
					continue
				}
				bx, by := x+dx(dir), y+dy(dir)
				if s.inGrid(bx, by) {
					d.Merge(y*w+x, by*w+bx)
				}
			}
		}
	}

	fls := findloop.NewState(w * h)
	if fls.Run(s.trackNeighbours) {
		ret = false // no loop allowed
		if mark {
			for x := 0; x < w; x++ {
				for y := 0; y < h; y++ {
					u := y*w + x
					s.trackNeighbours(u, func(v int) {
						if fls.IsLoopEdge(u, v) {
							s.sflags[u] |= sError
						}
					})
				}
			}
		}
	}

	if mark {
		pathclass := d.Canonify(s.numbers.rowS * w)
		if pathclass == d.Canonify((h-1)*w+s.numbers.colS) {
			// A continuous entrance-to-exit path exists: any other
			// track is in error.
			for i := 0; i < w*h; i++ {
				if d.Canonify(i) != pathclass &&
					(s.sflags[i]&sTrack != 0 ||
						s.edgeCount(i%w, i/w, eTrack) > 0) {
					ret = false
					s.sflags[i] |= sError
				}
			}
		} else {
			ret = false
		}
	}

	// A cell counts as complete when two of its edges are TRACK, but a
	// single track edge or a bare square mark still counts against the
	// clue error checks.
	pathret := ret
	for x := 0; x < w; x++ {
		target := s.numbers.numbers[x]
		ntrack, nnotrack, ntrackcomplete := 0, 0, 0
		for y := 0; y < h; y++ {
			if s.edgeCount(x, y, eTrack) > 0 || s.sflags[y*w+x]&sTrack != 0 {
				ntrack++
			}
			if s.edgeCount(x, y, eTrack) == 2 {
				ntrackcomplete++
			}
			if s.sflags[y*w+x]&sNoTrack != 0 {
				nnotrack++
			}
		}
		if mark {
			if ntrack > target || nnotrack > h-target ||
				(pathret && ntrackcomplete != target) {
				s.numErrors[x] = 1
				ret = false
			}
		}
		if ntrackcomplete != target {
			ret = false
		}
	}
	for y := 0; y < h; y++ {
		target := s.numbers.numbers[w+y]
		ntrack, nnotrack, ntrackcomplete := 0, 0, 0
		for x := 0; x < w; x++ {
			if s.edgeCount(x, y, eTrack) > 0 || s.sflags[y*w+x]&sTrack != 0 {
				ntrack++
			}
			if s.edgeCount(x, y, eTrack) == 2 {
				ntrackcomplete++
			}
			if s.sflags[y*w+x]&sNoTrack != 0 {
				nnotrack++
			}
		}
		if mark {
			if ntrack > target || nnotrack > w-target ||
				(pathret && ntrackcomplete != target) {
				s.numErrors[w+y] = 1
				ret = false
			}
		}
		if ntrackcomplete != target {
			ret = false
		}
	}

	if mark {
		s.completed = ret
	}
	return ret
}
