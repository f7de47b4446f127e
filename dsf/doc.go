// Package dsf implements a disjoint-set forest (union-find) with class
// sizes and an optional per-element parity bit.
//
// What:
//
//   - DSF partitions {0..n-1} into equivalence classes.
//   - Canonify returns the class representative with path compression.
//   - Merge unions two classes; Size reports a class's cardinality.
//   - CanonifyFlip / MergeFlip maintain a relative polarity bit between
//     every element and its representative, for solvers that track
//     "same/opposite" relations (forcing chains, two-colourings).
//
// Why:
//
//   - Connectivity bookkeeping inside puzzle solvers: which tiles are
//     already wired together, which track squares form one path fragment,
//     which domino placements stand or fall together.
//
// Canonical element: always the numerically smallest element of the class.
// Several solvers index auxiliary arrays by canonical element and rely on
// it being minimal, so this is a contract, not an implementation detail —
// union by rank must not replace it.
//
// Complexity:
//
//   - Canonify / Merge / Size: effectively O(α(n)) amortized with path
//     compression (union by index, not by rank, so the strict bound is
//     O(log n); grids here are small enough not to care).
//
// Errors:
//
//   - None. Out-of-range indices panic. MergeFlip panics when asked to
//     assert a polarity that contradicts the recorded one: the callers
//     that can hit this legitimately check Equivalent first and treat the
//     would-be contradiction as a solver verdict instead.
package dsf
