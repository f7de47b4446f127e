// Package pattern implements the Pattern puzzle family (nonograms):
// recover a black-and-white pixel grid from its row and column run
// lengths.
//
// What:
//
//	Clue codecs, a line solver working one row or column at a time,
//	a generator that draws smoothed random bitmaps and keeps only
//	uniquely line-solvable ones, and the move executor.
//
// Why:
//
//	Uniqueness is enforced the brute-force way: generate a candidate
//	picture, run the solver, reject and redraw until the solver
//	finishes. The line solver therefore defines the difficulty
//	ceiling of generated puzzles; grids needing cross-line reasoning
//	are never emitted, though they remain valid descriptors.
//
// Moves:
//
//	F/E/U x,y,w,h  fill / empty / clear a rectangle of cells.
//	S + w*h digits full grid replacement (solve move).
//
// Errors:
//
//	Validation sentinels carry user-facing text verbatim; see
//	errors.go.
package pattern
