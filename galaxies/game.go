package galaxies

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/puzzles/dsf"
	"github.com/katalvlaran/puzzles/engine"
	"github.com/katalvlaran/puzzles/randpool"
)

// game implements engine.Game for Galaxies.
type game struct{}

func init() {
	engine.Register(game{})
}

func (game) Name() string { return "galaxies" }

func (game) DefaultParams() engine.Params { return DefaultParams() }

func (game) CanSolve() bool { return true }

func (game) Presets() []engine.Preset {
	specs := []Params{
		{7, 7, Normal},
		{7, 7, Unreasonable},
		{10, 10, Normal},
		{10, 10, Unreasonable},
		{15, 15, Normal},
		{15, 15, Unreasonable},
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
	p.Height = p.Width
	if strings.HasPrefix(s, "x") {
		p.Height, s = scanInt(s[1:])
	}
	p.Difficulty = Normal
	if strings.HasPrefix(s, "d") && len(s) > 1 {
		for i, c := range diffChars {
			if s[1] == c {
				p.Difficulty = Difficulty(i)
			}
		}
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

// The descriptor is a sequence of letters giving the number of spaces
// before each dot, counted from 0 in reading order over the interior
// of the doubled grid: 'a'+run for a white dot, 'A'+run for a black
// one, and 'z' for a run of 25 with no dot.

func encodeGame(s *State) string {
	var b bytes.Buffer
	run := 0
	for y := 1; y < s.sy-1; y++ {
		for x := 1; x < s.sx-1; x++ {
			f := s.at(x, y).flags
			if f&fDot == 0 {
				run++
				continue
			}
			for run > 24 {
				b.WriteByte('z')
				run -= 25
			}
			if f&fDotBlack != 0 {
				b.WriteByte(byte('A' + run))
			} else {
				b.WriteByte(byte('a' + run))
			}
			run = 0
		}
	}
	return b.String()
}

// loadGame builds a state from a descriptor, with full validation.
func loadGame(p Params, desc string) (*State, error) {
	s := blankState(p)
	i := 0
	for pos := 0; pos < len(desc); pos++ {
		c := desc[pos]
		var df uint32
		switch {
		case c == 'z':
			i += 25
			continue
		case c >= 'a' && c <= 'y':
			i += int(c - 'a')
		case c >= 'A' && c <= 'Y':
			i += int(c - 'A')
			df = fDotBlack
		default:
			return nil, ErrDescChar
		}
		y := i/(s.sx-2) + 1
		x := i%(s.sx-2) + 1
		if !s.inUI(x, y) {
			return nil, ErrDescTooLong
		}
		s.addDot(s.at(x, y))
		s.at(x, y).flags |= df
		i++
	}
	s.updateDots()

	// Dots so close that their proximity associations overlap make
	// the puzzle unplayable; half a solver run detects them.
	probe := s.Clone().(*State)
	if probe.solverObvious() == -1 {
		return nil, ErrDotsClose
	}
	return s, nil
}

func (game) ValidateDesc(ep engine.Params, desc string) error {
	_, err := loadGame(ep.(Params), desc)
	return err
}

func (game) NewState(ep engine.Params, desc string) (engine.State, error) {
	return loadGame(ep.(Params), desc)
}

func (game) NewDesc(ep engine.Params, rnd *randpool.Pool) (string, string) {
	return newDesc(ep.(Params), rnd)
}

// diffGame encodes the difference between two positions as a move
// string, with the solve prefix when issolve is set. Solve strings use
// the lower-case associate command, which bypasses mirroring.
func diffGame(src, dest *State, issolve bool) string {
	var b bytes.Buffer
	sep := ""
	achar := byte('A')
	if issolve {
		b.WriteByte('S')
		sep = ";"
		achar = 'a'
	}
	for x := 0; x < src.sx; x++ {
		for y := 0; y < src.sy; y++ {
			sps := src.at(x, y)
			spd := dest.at(x, y)

			if sps.typ == sTile {
				switch {
				case sps.flags&fTileAssoc != 0 && spd.flags&fTileAssoc != 0:
					if sps.dotx != spd.dotx || sps.doty != spd.doty {
						fmt.Fprintf(&b, "%s%c%d,%d,%d,%d", sep, achar, x, y, spd.dotx, spd.doty)
						sep = ";"
					}
				case sps.flags&fTileAssoc != 0:
					fmt.Fprintf(&b, "%sU%d,%d", sep, x, y)
					sep = ";"
				case spd.flags&fTileAssoc != 0:
					fmt.Fprintf(&b, "%s%c%d,%d,%d,%d", sep, achar, x, y, spd.dotx, spd.doty)
					sep = ";"
				}
			} else if sps.typ == sEdge {
				if sps.flags&fEdgeSet != spd.flags&fEdgeSet {
					fmt.Fprintf(&b, "%sE%d,%d", sep, x, y)
					sep = ";"
				}
			}
		}
	}
	return b.String()
}

func (g game) Solve(ep engine.Params, start, curr engine.State, aux string) (string, error) {
	cs := curr.(*State)
	var tosolve *State

	if aux != "" {
		est, err := g.ExecuteMove(start, aux)
		if err != nil {
			return "", err
		}
		tosolve = est.(*State)
	} else {
		tosolve = cs.Clone().(*State)
		res := tosolve.solverState(Unreasonable)
		if res == resUnfinished || res == resImpossible {
			tosolve = start.Clone().(*State)
			res = tosolve.solverState(Unreasonable)
		}
		if res == resUnfinished || res == resImpossible {
			return "", engine.ErrNoSolution
		}
	}

	// The solution is expressed with edges only.
	for i := range tosolve.grid {
		tosolve.grid[i].flags &^= fTileAssoc
	}
	return diffGame(cs, tosolve, true), nil
}

// parsePair reads "x,y" off the front of s, returning the rest.
func parsePair(s string) (x, y int, rest string, ok bool) {
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
	solving := false

	for len(move) > 0 {
		c := move[0]
		switch c {
		case 'E', 'U', 'M':
			x, y, rest, ok := parsePair(move[1:])
			if !ok || !ret.inUI(x, y) {
				return nil, engine.ErrBadMove
			}
			move = rest
			sp := ret.at(x, y)
			switch c {
			case 'E':
				if sp.typ != sEdge {
					return nil, engine.ErrBadMove
				}
				sp.flags ^= fEdgeSet
			case 'U':
				if sp.typ != sTile || sp.flags&fTileAssoc == 0 {
					return nil, engine.ErrBadMove
				}
				// The solver doesn't assume mirrored moves.
				if solving {
					ret.removeAssoc(sp)
				} else {
					ret.removeAssocWithOpposite(sp)
				}
			case 'M':
				if sp.flags&fDot == 0 {
					return nil, engine.ErrBadMove
				}
				sp.flags ^= fDotHold
			}
		case 'A', 'a':
			var x, y, ax, ay int
			var ok bool
			x, y, move, ok = parsePair(move[1:])
			if !ok || len(move) == 0 || move[0] != ',' {
				return nil, engine.ErrBadMove
			}
			ax, ay, move, ok = parsePair(move[1:])
			if !ok || !ret.inUI(x, y) || !ret.inUI(ax, ay) {
				return nil, engine.ErrBadMove
			}
			dot := ret.at(ax, ay)
			if dot.flags&fDot == 0 || dot.flags&fDotHold != 0 {
				return nil, engine.ErrBadMove
			}
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					sp := ret.at(x+dx, y+dy)
					if sp.typ != sTile {
						continue
					}
					if sp.flags&fTileAssoc != 0 &&
						ret.at(sp.dotx, sp.doty).flags&fDotHold != 0 {
						continue
					}
					if solving {
						ret.addAssoc(sp, dot)
					} else {
						ret.addAssocWithOpposite(sp, dot)
					}
				}
			}
		case 'S':
			ret.usedSolve = true
			solving = true
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

	if ret.checkComplete(nil) {
		ret.completed = true
	}
	return ret, nil
}

// checkComplete reports whether the drawn edges carve the grid into
// valid regions: each 180-degree symmetric about a dot at its centre,
// containing no other dot and no internal edge. When colours is
// non-nil it receives, per cell, 0 for an invalid region, 1 for a
// white-dot one and 2 for a black-dot one.
func (s *State) checkComplete(colours []int) bool {
	w, h := s.p.Width, s.p.Height

	d := dsf.New(w * h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if y+1 < h && s.at(2*x+1, 2*y+2).flags&fEdgeSet == 0 {
				d.Merge(y*w+x, (y+1)*w+x)
			}
			if x+1 < w && s.at(2*x+2, 2*y+1).flags&fEdgeSet == 0 {
				d.Merge(y*w+x, y*w+(x+1))
			}
		}
	}

	type sqdata struct {
		minx, miny, maxx, maxy int
		cx, cy                 int
		valid                  bool
		colour                 int
	}
	data := make([]sqdata, w*h)
	for i := range data {
		data[i].minx, data[i].miny = w+1, h+1
		data[i].maxx, data[i].maxy = -1, -1
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := d.Canonify(y*w + x)
			data[i].minx = min(data[i].minx, x)
			data[i].maxx = max(data[i].maxx, x)
			data[i].miny = min(data[i].miny, y)
			data[i].maxy = max(data[i].maxy, y)
			data[i].valid = true
		}
	}

	// A region's centre of symmetry, if any, is the centre of its
	// bounding box; it must carry a dot belonging to this region.
	for i := range data {
		if !data[i].valid {
			continue
		}
		cx := data[i].minx + data[i].maxx + 1
		cy := data[i].miny + data[i].maxy + 1
		data[i].cx, data[i].cy = cx, cy
		if s.at(cx, cy).flags&fDot == 0 {
			data[i].valid = false
		}
		if d.Canonify((cy-1)/2*w+(cx-1)/2) != i ||
			d.Canonify(cy/2*w+(cx-1)/2) != i ||
			d.Canonify((cy-1)/2*w+cx/2) != i ||
			d.Canonify(cy/2*w+cx/2) != i {
			data[i].valid = false
		}
		if s.at(cx, cy).flags&fDotBlack != 0 {
			data[i].colour = 2
		} else {
			data[i].colour = 1
		}
	}

	// Stray dots and internal edges disqualify their region.
	for y := 1; y < s.sy-1; y++ {
		for x := 1; x < s.sx-1; x++ {
			sp := s.at(x, y)
			if sp.flags&fDot != 0 {
				for cy := (y - 1) >> 1; cy <= y>>1; cy++ {
					for cx := (x - 1) >> 1; cx <= x>>1; cx++ {
						i := d.Canonify(cy*w + cx)
						if x != data[i].cx || y != data[i].cy {
							data[i].valid = false
						}
					}
				}
			}
			if sp.flags&fEdgeSet != 0 {
				cx1, cx2 := (x-1)>>1, x>>1
				cy1, cy2 := (y-1)>>1, y>>1
				i := d.Canonify(cy1*w + cx1)
				if i == d.Canonify(cy2*w+cx2) {
					data[i].valid = false
				}
			}
		}
	}

	// Rotational symmetry: every cell must have a counterpart across
	// the centre within the same region.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := d.Canonify(y*w + x)
			x2 := data[i].cx - 1 - x
			y2 := data[i].cy - 1 - y
			if i != d.Canonify(y2*w+x2) {
				data[i].valid = false
			}
		}
	}

	ret := true
	for i := 0; i < w*h; i++ {
		ci := d.Canonify(i)
		if colours != nil {
			if data[ci].valid {
				colours[i] = data[ci].colour
			} else {
				colours[i] = 0
			}
		}
		ret = ret && data[ci].valid
	}
	return ret
}
