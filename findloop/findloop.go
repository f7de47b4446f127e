package findloop

// NeighbourFunc enumerates the neighbours of vertex v by calling emit
// once per adjacent vertex. Each undirected edge must be reported from
// both of its endpoints.
type NeighbourFunc func(v int, emit func(w int))

type vertex struct {
	parent, child, sibling     int
	componentRoot              int
	visited                    bool
	index, minIndex, maxIndex  int
	minReachable, maxReachable int
	bridge                     int
}

// State holds the per-vertex working data for loop detection. One
// State may be reused across multiple Run calls on graphs of the same
// vertex count.
type State struct {
	// pv has one extra entry acting as the root of a super-tree that
	// links all connected components, so every component can be
	// reached from a single starting point.
	pv        []vertex
	nvertices int
}

// NewState returns a State sized for a graph on nvertices vertices.
func NewState(nvertices int) *State {
	return &State{pv: make([]vertex, nvertices+1), nvertices: nvertices}
}

// IsLoopEdge reports whether the edge u-v lies on some loop, according
// to the most recent Run. Only valid for edges that were present in
// that run's graph.
func (s *State) IsLoopEdge(u, v int) bool {
	// A bridge is a parent->child link of the rooted spanning tree, so
	// each bridge is recorded exactly once, at its child end.
	return !(s.pv[u].bridge == v || s.pv[v].bridge == u)
}

func (s *State) isBridgeOneway(u, v int) (below, above int, ok bool) {
	if s.pv[u].bridge != v {
		return 0, 0, false
	}
	r := s.pv[u].componentRoot
	total := s.pv[r].maxIndex - s.pv[r].minIndex + 1
	below = s.pv[u].maxIndex - s.pv[u].minIndex + 1
	return below, total - below, true
}

// IsBridge reports whether the edge u-v is a bridge and, if so, how
// many vertices of its component lie on each side of it.
func (s *State) IsBridge(u, v int) (uSide, vSide int, ok bool) {
	if below, above, found := s.isBridgeOneway(u, v); found {
		return below, above, true
	}
	if below, above, found := s.isBridgeOneway(v, u); found {
		return above, below, true
	}
	return 0, 0, false
}

// Run executes the bridge-finding passes over the graph described by
// neighbour and reports whether the graph contains any loop at all.
func (s *State) Run(neighbour NeighbourFunc) bool {
	pv := s.pv
	n := s.nvertices
	root := n

	// Pass 1: organise the graph into a rooted spanning forest. Every
	// vertex gets exactly one parent (possibly the super-root) and
	// each parent-child link corresponds to a graph edge. child==-2
	// marks a vertex not yet attached to the forest, distinct from
	// the visited flag.
	for v := 0; v <= n; v++ {
		pv[v].parent = root
		pv[v].child = -2
		pv[v].sibling = -1
		pv[v].visited = false
	}
	pv[root].child = -1
	nedges := 0
	for v := 0; v < n; v++ {
		if pv[v].parent != root {
			continue
		}
		// New connected component; enumerate and treeify it.
		pv[v].sibling = pv[root].child
		pv[root].child = v
		pv[v].componentRoot = v

		u := v
		for {
			if !pv[u].visited {
				pv[u].visited = true
				neighbour(u, func(w int) {
					if pv[w].child == -2 {
						pv[w].child = -1
						pv[w].sibling = pv[u].child
						pv[w].parent = u
						pv[w].componentRoot = pv[u].componentRoot
						pv[u].child = w
					}
					// Count each edge in one direction only, to
					// compare against the bridge count at the end.
					if w > u {
						nedges++
					}
				})
				if pv[u].child >= 0 {
					u = pv[u].child
					continue
				}
			}
			if u == v {
				break
			} else if pv[u].sibling >= 0 {
				u = pv[u].sibling
			} else {
				u = pv[u].parent
			}
		}
	}

	// Pass 2: preorder-index the forest so that every subtree covers a
	// contiguous index range [minIndex, maxIndex]. That gives an O(1)
	// arithmetic test for "is vertex w inside the subtree rooted at u".
	index := 0
	for v := 0; v < n; v++ {
		pv[v].visited = false
	}
	pv[root].visited = true
	u := pv[root].child
	for {
		if !pv[u].visited {
			pv[u].visited = true
			pv[u].minIndex = index
			pv[u].index = index
			index++
			if pv[u].child >= 0 {
				u = pv[u].child
				continue
			}
		}
		if u == root {
			break
		}
		pv[u].maxIndex = index - 1
		if pv[u].sibling >= 0 {
			u = pv[u].sibling
		} else {
			u = pv[u].parent
		}
	}

	for v := 0; v < n; v++ {
		pv[v].bridge = -1
	}

	// Pass 3: for each subtree, compute the min and max index of every
	// vertex reachable from it without using the link to its parent.
	// If that range stays within the subtree's own index range, the
	// parent edge is a bridge.
	nbridges := 0
	for v := 0; v < n; v++ {
		pv[v].visited = false
	}
	u = pv[root].child
	pv[root].visited = true
	for {
		if !pv[u].visited {
			pv[u].visited = true
			pv[u].minReachable = pv[u].minIndex
			pv[u].maxReachable = pv[u].minIndex
			neighbour(u, func(w int) {
				if w != pv[u].parent {
					i := pv[w].index
					if pv[u].minReachable > i {
						pv[u].minReachable = i
					}
					if pv[u].maxReachable < i {
						pv[u].maxReachable = i
					}
				}
			})
			if pv[u].child >= 0 {
				u = pv[u].child
				continue
			}
		}
		if u == root {
			break
		}
		for v := pv[u].child; v >= 0; v = pv[v].sibling {
			if pv[u].minReachable > pv[v].minReachable {
				pv[u].minReachable = pv[v].minReachable
			}
			if pv[u].maxReachable < pv[v].maxReachable {
				pv[u].maxReachable = pv[v].maxReachable
			}
		}
		if pv[u].parent != root {
			if pv[u].minReachable >= pv[u].minIndex &&
				pv[u].maxReachable <= pv[u].maxIndex {
				pv[u].bridge = pv[u].parent
				nbridges++
			}
		}
		if pv[u].sibling >= 0 {
			u = pv[u].sibling
		} else {
			u = pv[u].parent
		}
	}

	// Every edge that is not a bridge lies on a loop.
	return nbridges < nedges
}
