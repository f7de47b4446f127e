// Package randpool implements a deterministic pseudo-random source whose
// output depends only on the seed bytes, never on platform, word size or
// build flags.
//
// What:
//
//   - Pool expands an arbitrary byte seed through SHA-1 in counter mode.
//   - Bits(k) draws k random bits; Upto(n) draws uniformly from [0,n) by
//     rejection sampling; Shuffle performs a Fisher–Yates shuffle.
//
// Why:
//
//   - Puzzle generation must be replayable: a game identifier carries the
//     seed, and two machines (or two releases) given the same seed must
//     construct the same puzzle bit for bit. math/rand makes no such
//     cross-version promise, so the expansion is pinned to SHA-1 here.
//
// Complexity:
//
//   - Bits / Byte: O(1) amortized (one SHA-1 block per 20 output bytes).
//   - Upto(n): O(1) expected (rejection rate below 1/8 by construction).
//   - Shuffle(n): O(n).
//
// Errors:
//
//   - None. Out-of-range arguments (Bits with k outside 1..32, Upto with
//     n < 1) are programming mistakes and panic.
//
// Pool is not safe for concurrent use; derive one Pool per goroutine.
package randpool
