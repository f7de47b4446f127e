// Package net implements the Net puzzle family: rotate grid tiles
// carrying wire segments until the whole network is connected to the
// power source with no loops.
//
// What:
//
//	Parameter and descriptor codecs, a deductive solver used to
//	certify unique solvability, a generator producing spanning-tree
//	networks (optionally wrapping, optionally with barriers), and the
//	move executor. Tiles are 4-bit direction masks; a descriptor is
//	one hex digit per tile plus barrier markers.
//
// Why:
//
//	Generation needs the solver: a freshly grown spanning tree may
//	admit several consistent orientations, so the generator runs the
//	solver and perturbs each ambiguous section until the instance is
//	uniquely solvable, rather than rejecting whole grids.
//
// Moves:
//
//	A/C/F x,y  rotate a tile anticlockwise / clockwise / 180.
//	L x,y      toggle a tile lock.
//	J          jumble prefix (batch of rotations, no animation).
//	S          solve prefix; marks the state as assisted.
//
// Complexity:
//
//	The solver is near-linear in practice: local deductions are
//	driven by a to-do queue and only a saturated queue forces a full
//	grid rescan. Generation is dominated by solver reruns over the
//	perturbation loop.
//
// Errors:
//
//	Validation sentinels carry the user-facing reason verbatim; see
//	errors.go. Solver impossibility surfaces as ErrNoSolution from
//	Solve and as a discard signal inside the generator.
package net
