package dominosa

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/puzzles/engine"
	"github.com/katalvlaran/puzzles/randpool"
)

// game implements engine.Game for Dominosa.
type game struct{}

func init() {
	engine.Register(game{})
}

func (game) Name() string { return "dominosa" }

func (game) DefaultParams() engine.Params { return DefaultParams() }

func (game) CanSolve() bool { return true }

func (game) Presets() []engine.Preset {
	specs := []Params{
		{3, Trivial}, {4, Trivial}, {5, Trivial}, {6, Trivial},
		{4, Basic}, {5, Basic}, {6, Basic}, {7, Basic},
		{8, Basic}, {9, Basic},
		{6, Hard}, {6, Extreme},
	}
	presets := make([]engine.Preset, 0, len(specs))
	for _, p := range specs {
		presets = append(presets, engine.Preset{
			Name:   fmt.Sprintf("Order %d, %s", p.N, p.Diff),
			Params: p,
		})
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
	p.N, s = scanInt(s)
	for len(s) > 0 {
		c := s[0]
		s = s[1:]
		switch c {
		case 'a':
			// Legacy encoding from before the difficulty system.
			p.Diff = Ambiguous
		case 'd':
			p.Diff = diffCount
			if len(s) > 0 {
				for i := 0; i < int(diffCount); i++ {
					if s[0] == diffChars[i] {
						p.Diff = Difficulty(i)
					}
				}
				s = s[1:]
			}
		}
	}
	return p, nil
}

func (game) NewDesc(ep engine.Params, rnd *randpool.Pool) (string, string) {
	return newDesc(ep.(Params), rnd)
}

// parseNumber reads one clue number from the descriptor: a single
// digit, or a multi-digit number in square brackets.
func parseNumber(desc string) (int, string, error) {
	if len(desc) == 0 {
		return 0, desc, ErrDescShort
	}
	c := desc[0]
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), desc[1:], nil
	case c == '[':
		desc = desc[1:]
		i := 0
		for i < len(desc) && desc[i] >= '0' && desc[i] <= '9' {
			i++
		}
		n, _ := strconv.Atoi(desc[:i])
		if i == len(desc) || desc[i] != ']' {
			return 0, desc, ErrMissingClose
		}
		return n, desc[i+1:], nil
	default:
		return 0, desc, ErrDescSyntax
	}
}

func (game) ValidateDesc(ep engine.Params, desc string) error {
	p := ep.(Params)
	n := p.N
	wh := (n + 2) * (n + 1)

	occurrences := make([]int, n+1)
	for i := 0; i < wh; i++ {
		j, rest, err := parseNumber(desc)
		if err != nil {
			return err
		}
		desc = rest
		if j < 0 || j > n {
			return ErrNumberRange
		}
		occurrences[j]++
	}
	if len(desc) > 0 {
		return ErrDescLong
	}

	// Every face number pairs with each of 0..n, one of them itself,
	// so each must appear exactly n+2 times.
	for i := 0; i <= n; i++ {
		if occurrences[i] != n+2 {
			return ErrNumberBalance
		}
	}
	return nil
}

func (game) NewState(ep engine.Params, desc string) (engine.State, error) {
	p := ep.(Params)
	n := p.N
	w, h := n+2, n+1
	wh := w * h

	s := &State{
		p:       p,
		w:       w,
		h:       h,
		numbers: make([]int, wh),
		grid:    make([]int, wh),
		edges:   make([]uint16, wh),
	}

	for i := 0; i < wh; i++ {
		s.grid[i] = i
		j, rest, err := parseNumber(desc)
		if err != nil {
			return nil, err
		}
		if j < 0 || j > n {
			return nil, ErrNumberRange
		}
		s.numbers[i] = j
		desc = rest
	}

	return s, nil
}

// solutionMoveString converts the solver's final placement web to a
// move string: barriers for everything ruled out, then dominoes for
// every placement left as its domino's sole option.
func solutionMoveString(sc *solverScratch) string {
	var b strings.Builder
	b.WriteByte('S')

	for pass := 0; pass < 2; pass++ {
		tag := byte("ED"[pass])
		for i := 0; i < sc.pc; i++ {
			p := &sc.placements[i]
			if pass == 0 {
				if p.active {
					continue
				}
			} else {
				if !p.active || p.domino.nplacements > 1 {
					continue
				}
			}
			fmt.Fprintf(&b, ";%c%d,%d", tag,
				p.squares[0].index, p.squares[1].index)
		}
	}

	return b.String()
}

func (game) Solve(ep engine.Params, start, curr engine.State, aux string) (string, error) {
	st := start.(*State)
	n := st.p.N
	w := st.w
	wh := w * st.h

	if aux != "" {
		var b strings.Builder
		b.WriteByte('S')
		for i := 0; i < wh; i++ {
			switch aux[i] {
			case 'L':
				fmt.Fprintf(&b, ";D%d,%d", i, i+1)
			case 'T':
				fmt.Fprintf(&b, ";D%d,%d", i, i+w)
			}
		}
		return b.String(), nil
	}

	sc := newSolverScratch(n)
	sc.setupGrid(st.numbers)
	sc.runSolver(diffCount)
	return solutionMoveString(sc), nil
}

// clearEdges removes every barrier touching square d, on both sides.
func (s *State) clearEdges(d int) {
	if s.edges[d]&edgeL != 0 {
		s.edges[d-1] &^= edgeR
	}
	if s.edges[d]&edgeR != 0 {
		s.edges[d+1] &^= edgeL
	}
	if s.edges[d]&edgeT != 0 {
		s.edges[d-s.w] &^= edgeB
	}
	if s.edges[d]&edgeB != 0 {
		s.edges[d+s.w] &^= edgeT
	}
	s.edges[d] = 0
}

// parsePair reads "d1,d2" at the head of move, returning the values
// and the remainder.
func parsePair(move string) (d1, d2 int, rest string, ok bool) {
	i := 0
	for i < len(move) && move[i] >= '0' && move[i] <= '9' {
		i++
	}
	if i == 0 || i == len(move) || move[i] != ',' {
		return 0, 0, move, false
	}
	d1, _ = strconv.Atoi(move[:i])
	move = move[i+1:]
	i = 0
	for i < len(move) && move[i] >= '0' && move[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, 0, move, false
	}
	d2, _ = strconv.Atoi(move[:i])
	return d1, d2, move[i:], true
}

func (game) ExecuteMove(est engine.State, move string) (engine.State, error) {
	st := est.(*State)
	w, wh := st.w, st.w*st.h
	ret := st.Clone().(*State)

	for len(move) > 0 {
		switch move[0] {
		case 'S':
			ret.usedSolve = true
			// The S is expected to be followed by the commands that
			// assert the solved layout.
			for i := 0; i < wh; i++ {
				ret.grid[i] = i
				ret.edges[i] = 0
			}
			move = move[1:]

		case 'D':
			d1, d2, rest, ok := parsePair(move[1:])
			if !ok || d1 < 0 || d2 >= wh || d1 >= d2 ||
				(d2-d1 != 1 && d2-d1 != w) {
				return nil, engine.ErrBadMove
			}
			move = rest

			if ret.grid[d1] == d2 {
				// Remove the domino.
				ret.grid[d1] = d1
				ret.grid[d2] = d2
			} else {
				// Displace any dominoes overlapping the new one.
				if d3 := ret.grid[d1]; d3 != d1 {
					ret.grid[d3] = d3
				}
				if d3 := ret.grid[d2]; d3 != d2 {
					ret.grid[d3] = d3
				}
				ret.grid[d1] = d2
				ret.grid[d2] = d1

				ret.clearEdges(d1)
				ret.clearEdges(d2)
			}

		case 'E':
			d1, d2, rest, ok := parsePair(move[1:])
			if !ok || d1 < 0 || d2 >= wh || d1 >= d2 ||
				(d2-d1 != 1 && d2-d1 != w) ||
				ret.grid[d1] != d1 || ret.grid[d2] != d2 {
				return nil, engine.ErrBadMove
			}
			move = rest

			if d2 == d1+1 {
				ret.edges[d1] ^= edgeR
				ret.edges[d2] ^= edgeL
			} else {
				ret.edges[d1] ^= edgeB
				ret.edges[d2] ^= edgeT
			}

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

	if !ret.completed {
		n := ret.p.N
		used := make([]bool, tri(n+1))
		ok := 0
		for i := 0; i < wh; i++ {
			if ret.grid[i] > i {
				di := dindex(ret.numbers[i], ret.numbers[ret.grid[i]])
				if !used[di] {
					used[di] = true
					ok++
				}
			}
		}
		if ok == dcount(n) {
			ret.completed = true
		}
	}

	return ret, nil
}
