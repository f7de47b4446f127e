// Package laydomino tiles a rectangular grid with 2x1 dominoes.
//
// What:
//
//	Layout produces a random complete domino tiling of a w x h grid,
//	represented as a slice where grid[i] holds the index of the other
//	half of the domino covering square i. When w*h is odd exactly one
//	square is left uncovered and refers to itself.
//
// Why:
//
//	Puzzle generators that start from a fully tiled board need tilings
//	drawn from the full space, not just what a greedy pass happens to
//	reach. After greedy placement from a shuffled candidate list, the
//	remaining singleton squares are paired off by finding a path of
//	dominoes between two singletons and shifting every domino along it
//	by one square.
//
// Complexity:
//
//	O(w*h) per repair pass; the number of passes is bounded by the
//	initial singleton count, so generation is fast even on large grids.
//
// Errors:
//
//	Layout panics on non-positive dimensions. Randomness comes from the
//	caller's randpool.Pool, so results are reproducible per seed.
package laydomino
