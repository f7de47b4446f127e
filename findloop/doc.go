// Package findloop detects loops and bridges in undirected graphs.
//
// What:
//
//	Tarjan's bridge-finding algorithm over an arbitrary graph described
//	by a neighbour callback. A bridge is an edge whose removal would
//	disconnect its component; every edge that is not a bridge lies on
//	some loop, so the same run answers both questions. State is
//	reusable across runs to avoid re-allocation in solver loops.
//
// Why:
//
//	Several solvers need loop reasoning: a path puzzle must reject
//	closed loops, and parity arguments rely on knowing how many cells
//	lie on each side of a bridge. One shared implementation keeps that
//	logic out of the individual solvers.
//
// Usage:
//
//	st := findloop.NewState(n)
//	hasLoop := st.Run(neighbour)
//	st.IsLoopEdge(u, v)           // valid until the next Run
//	st.IsBridge(u, v)             // side sizes for parity counting
//
// Complexity:
//
//	Run is O(V + E). IsLoopEdge and IsBridge are O(1).
//
// Errors:
//
//	None. The neighbour callback defines the graph; vertices outside
//	[0, nvertices) are the caller's bug and will panic on slice access.
//
// Not safe for concurrent use of a single State.
package findloop
