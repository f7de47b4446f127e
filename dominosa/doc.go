// Package dominosa implements Dominosa: a grid of (n+1) by (n+2)
// numbers conceals one copy of every domino from 0-0 up to n-n, and
// the task is to recover the unique tiling.
//
// What: puzzle generation (random perfect tiling plus number
// assignment tuned to a requested difficulty), a placement-web solver
// with a Trivial/Basic/Hard/Extreme deduction ladder, descriptor
// encoding and decoding, and move application with completion
// checking.
//
// Why: the solver tracks, for every domino value and every square,
// the set of placements not yet ruled out, with cross-links so that
// ruling out one placement updates all three views in constant time.
// The harder tiers add set analysis over same-numbered squares and
// forcing chains built from squares with exactly two placements left.
//
// Complexity: each deduction pass is polynomial in the grid area; set
// analysis enumerates subsets of the (at most n+2) squares holding a
// given number. Generation retries whole candidate grids until one
// solves at exactly the requested difficulty.
//
// Errors: descriptor and parameter validation return sentinel errors
// whose text is suitable for direct display.
package dominosa
