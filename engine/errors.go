package engine

import "errors"

var (
	// ErrNoSolution is returned by Solve when no solution can be found
	// from the given state. Its text is user-facing.
	ErrNoSolution = errors.New("Unable to find solution")

	// ErrBadMove is returned by ExecuteMove for a malformed or
	// inapplicable move string. Drivers keep the prior state.
	ErrBadMove = errors.New("engine: invalid move")

	// ErrUnknownGame is returned by Lookup for an unregistered name.
	ErrUnknownGame = errors.New("engine: unknown game name")
)
