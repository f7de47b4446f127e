// Package tracks implements Train Tracks: lay a single rail route
// across a rectangular grid from its entrance on the left edge to its
// exit on the bottom edge, so that each row and column contains
// exactly the number of track squares its clue demands.
//
// What: puzzle generation (random path walk plus clue selection at a
// requested difficulty), a rule-based solver with an Easy/Tricky/Hard
// deduction ladder, descriptor encoding and decoding, and move
// application with completion and error checking.
//
// Why: squares and edges each carry independent track / no-track
// marks, so the solver state is a pair of flag planes over the same
// grid. The hardest deduction class settles an undecided edge by a
// parity argument over the bridges of the undecided-edge graph.
//
// Complexity: each solver rule is linear or near-linear in the grid
// area; generation repeats solve attempts until the clue set pins the
// requested difficulty, so it is randomized without a fixed bound.
//
// Errors: descriptor and parameter validation return sentinel errors
// whose text is suitable for direct display.
package tracks
