package engine

import "github.com/katalvlaran/puzzles/randpool"

// Verdict classifies the outcome of a solver run.
type Verdict int

const (
	// Impossible: deduction derived a contradiction; no solution exists.
	Impossible Verdict = iota
	// Solved: a unique solution was determined.
	Solved
	// Ambiguous: more than one solution exists.
	Ambiguous
	// Unfinished: the permitted rules saturated without solving.
	Unfinished
)

// String implements fmt.Stringer.
func (v Verdict) String() string {
	switch v {
	case Impossible:
		return "impossible"
	case Solved:
		return "solved"
	case Ambiguous:
		return "ambiguous"
	case Unfinished:
		return "unfinished"
	default:
		return "unknown"
	}
}

// Params is a family's immutable generation parameters.
type Params interface {
	// Encode renders the parameters in the family's short text form.
	// full=false omits fields that should not appear in shareable
	// puzzle identifiers, such as difficulty.
	Encode(full bool) string

	// Validate reports nil for usable parameters or a static,
	// user-facing reason. full=true additionally checks fields that
	// only matter for generation.
	Validate(full bool) error
}

// State is one family's puzzle position.
type State interface {
	// Completed reports whether the completion predicate holds. Once
	// true it stays true across further moves.
	Completed() bool

	// UsedSolve reports whether a solve move contributed to this state.
	UsedSolve() bool

	// Clone returns a deep copy.
	Clone() State
}

// Preset is a named parameter set offered by a family.
type Preset struct {
	Name   string
	Params Params
}

// Game is the hook set a puzzle family exposes to a driver.
type Game interface {
	// Name is the registry key, lower-case.
	Name() string

	DefaultParams() Params
	Presets() []Preset

	// DecodeParams parses the family's short parameter text.
	DecodeParams(s string) (Params, error)

	// NewDesc generates a puzzle, returning its descriptor and an
	// auxiliary solution string usable by Solve ("" when absent).
	// p must have passed Validate(true).
	NewDesc(p Params, rnd *randpool.Pool) (desc, aux string)

	// ValidateDesc reports nil for a well-formed descriptor or a
	// static, user-facing reason.
	ValidateDesc(p Params, desc string) error

	// NewState builds the initial state for a validated descriptor.
	NewState(p Params, desc string) (State, error)

	// CanSolve reports whether Solve is implemented.
	CanSolve() bool

	// Solve returns a move string transforming curr into a solved
	// state. start is the initial state of the same puzzle; aux is the
	// hint from NewDesc, possibly "". Returns ErrNoSolution when no
	// solution can be found.
	Solve(p Params, start, curr State, aux string) (string, error)

	// ExecuteMove applies a move string to st and returns the
	// resulting state, never mutating st. Returns ErrBadMove for
	// moves the family rejects.
	ExecuteMove(st State, move string) (State, error)
}

// MoveInterpreter is implemented by families whose moves can be driven
// from button codes without a pointer position, such as cursor-key
// play. Unknown buttons yield ok=false, meaning no move.
type MoveInterpreter interface {
	InterpretMove(st State, button int) (move string, ok bool)
}
