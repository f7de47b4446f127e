// Package oset provides an ordered set with positional (index) access.
//
// What:
//
//	A generic sorted collection over a user-supplied comparison function.
//	Besides the usual Add / Delete / Find operations it supports access
//	and deletion by rank: Index(i) returns the i-th smallest element and
//	DeleteIndex(i) removes it. Relational lookups (Lt, Le, Ge, Gt) find
//	the nearest element on either side of a probe value.
//
// Why:
//
//	Randomised generators frequently keep a pool of candidate items that
//	must stay sorted for reproducibility while elements are drawn out by
//	random rank. A balanced tree with subtree counts serves both needs
//	at once; a slice would make rank deletion O(n), a plain map would
//	lose the ordering.
//
// Implementation:
//
//	An implicit treap: each node carries a pseudo-random heap priority
//	and the size of its subtree. All operations are O(log n) expected.
//	Priorities come from a small deterministic generator seeded at
//	construction, so identical insertion sequences produce identical
//	tree shapes. The zero Set is not usable; construct with New.
//
// Complexity:
//
//	Add / Delete / Find / Index / DeleteIndex: O(log n) expected.
//	Len: O(1).
//
// Errors:
//
//	Operations report absence through a boolean rather than an error.
//	Index and DeleteIndex panic when i is out of range, mirroring slice
//	indexing.
//
// Not safe for concurrent use.
package oset
