// Package combi enumerates r-element combinations of {0, …, n-1} in
// lexicographic order.
//
// What:
//
//	An iterator yielding each size-r index subset exactly once. The
//	caller receives the indices as a slice valid until the next call,
//	avoiding per-step allocation in tight deduction loops.
//
// Why:
//
//	Constraint solvers that reason about "some set of k cells pins down
//	k values" need to walk every candidate subset of a small collection.
//	Enumerating subsets by size keeps the cheap, small cases first.
//
// Complexity:
//
//	Next is O(r) worst case, amortised O(1). Total combinations are
//	C(n, r); callers are expected to keep n small.
//
// Errors:
//
//	New panics on r < 0, n < 0 or r > n. No other failure modes.
package combi
