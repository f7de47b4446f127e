// Package engine defines the contract between puzzle families and the
// drivers that host them.
//
// What:
//
//	The Game interface is the reduced mid-end hook set every family
//	implements: parameter lifecycle, descriptor generation and
//	validation, state construction, solving and move execution. The
//	package also carries the shared solver Verdict scale, the button
//	code enumeration for move interpreters, a registry mapping family
//	names to implementations, and the gated diagnostics logger solvers
//	write their working to.
//
// Why:
//
//	Every family shares the same lifecycle: params -> descriptor ->
//	state -> moves -> completion. Pinning that shape in one interface
//	lets a single driver binary host all families, and keeps family
//	packages free of any dependency on each other.
//
// Conventions:
//
//	States are value types: Clone returns a deep copy, and ExecuteMove
//	never mutates its input. Validation errors are static sentinels
//	whose text is shown to the user verbatim. Solver impossibility is
//	a Verdict, not an error.
//
// Errors:
//
//	ErrNoSolution   - Solve cannot produce a solution for this state.
//	ErrBadMove      - ExecuteMove rejects the move string; callers keep
//	                  the prior state.
//	ErrUnknownGame  - registry lookup of an unregistered family name.
package engine
