package oset

// Rel selects the relation used by Find when probing the set.
type Rel int

const (
	// Eq matches only an element comparing equal to the probe.
	Eq Rel = iota
	// Lt matches the greatest element strictly below the probe.
	Lt
	// Le matches the greatest element at or below the probe.
	Le
	// Ge matches the smallest element at or above the probe.
	Ge
	// Gt matches the smallest element strictly above the probe.
	Gt
)

type node[T any] struct {
	left, right *node[T]
	elem        T
	prio        uint64
	count       int // size of this subtree
}

// Set is an ordered set with positional access. Construct with New.
type Set[T any] struct {
	root *node[T]
	cmp  func(a, b T) int
	rng  uint64
}

// New returns an empty Set ordered by cmp, which must return a value
// <0, 0 or >0 in the manner of strings.Compare. Equal elements (cmp
// returning 0) occupy a single slot.
func New[T any](cmp func(a, b T) int) *Set[T] {
	return &Set[T]{cmp: cmp, rng: 0x9e3779b97f4a7c15}
}

// Len reports the number of elements in the set.
func (s *Set[T]) Len() int { return s.root.size() }

func (n *node[T]) size() int {
	if n == nil {
		return 0
	}
	return n.count
}

func (n *node[T]) fix() {
	n.count = 1 + n.left.size() + n.right.size()
}

// nextPrio is a xorshift64 step; quality only matters for treap balance.
func (s *Set[T]) nextPrio() uint64 {
	s.rng ^= s.rng << 13
	s.rng ^= s.rng >> 7
	s.rng ^= s.rng << 17
	return s.rng
}

// Add inserts x unless an equal element is already present. It returns
// the element now occupying x's slot and whether x itself was inserted.
func (s *Set[T]) Add(x T) (T, bool) {
	if existing, ok := s.find(x); ok {
		return existing, false
	}
	nd := &node[T]{elem: x, prio: s.nextPrio(), count: 1}
	s.root = s.insert(s.root, nd)
	return x, true
}

func (s *Set[T]) insert(n, nd *node[T]) *node[T] {
	if n == nil {
		return nd
	}
	if s.cmp(nd.elem, n.elem) < 0 {
		n.left = s.insert(n.left, nd)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = s.insert(n.right, nd)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	n.fix()
	return n
}

func rotateRight[T any](n *node[T]) *node[T] {
	l := n.left
	n.left = l.right
	l.right = n
	n.fix()
	l.fix()
	return l
}

func rotateLeft[T any](n *node[T]) *node[T] {
	r := n.right
	n.right = r.left
	r.left = n
	n.fix()
	r.fix()
	return r
}

// Delete removes the element equal to x, returning it and whether it
// was present.
func (s *Set[T]) Delete(x T) (T, bool) {
	elem, ok := s.find(x)
	if !ok {
		var zero T
		return zero, false
	}
	s.root = s.remove(s.root, x)
	return elem, true
}

func (s *Set[T]) remove(n *node[T], x T) *node[T] {
	if n == nil {
		return nil
	}
	switch c := s.cmp(x, n.elem); {
	case c < 0:
		n.left = s.remove(n.left, x)
	case c > 0:
		n.right = s.remove(n.right, x)
	default:
		return merge(n.left, n.right)
	}
	n.fix()
	return n
}

// merge joins two treaps where every element of l precedes every
// element of r.
func merge[T any](l, r *node[T]) *node[T] {
	switch {
	case l == nil:
		return r
	case r == nil:
		return l
	case l.prio > r.prio:
		l.right = merge(l.right, r)
		l.fix()
		return l
	default:
		r.left = merge(l, r.left)
		r.fix()
		return r
	}
}

// Index returns the i-th smallest element. It panics when i is out of
// range, mirroring slice indexing.
func (s *Set[T]) Index(i int) T {
	if i < 0 || i >= s.Len() {
		panic("oset: index out of range")
	}
	n := s.root
	for {
		if ls := n.left.size(); i < ls {
			n = n.left
		} else if i == ls {
			return n.elem
		} else {
			i -= ls + 1
			n = n.right
		}
	}
}

// DeleteIndex removes and returns the i-th smallest element. It panics
// when i is out of range.
func (s *Set[T]) DeleteIndex(i int) T {
	elem := s.Index(i)
	s.root = s.remove(s.root, elem)
	return elem
}

func (s *Set[T]) find(x T) (T, bool) {
	n := s.root
	for n != nil {
		switch c := s.cmp(x, n.elem); {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n.elem, true
		}
	}
	var zero T
	return zero, false
}

// Find locates an element related to x by rel and returns it together
// with its rank. ok is false when no element satisfies the relation.
func (s *Set[T]) Find(x T, rel Rel) (elem T, pos int, ok bool) {
	var (
		best    T
		bestPos = -1
	)
	n := s.root
	idx := 0 // rank of n within the whole set, updated as we descend
	for n != nil {
		here := idx + n.left.size()
		c := s.cmp(x, n.elem)
		if c == 0 && (rel == Eq || rel == Le || rel == Ge) {
			return n.elem, here, true
		}
		// Candidate on the matching side of the probe.
		if c > 0 && (rel == Lt || rel == Le) {
			best, bestPos = n.elem, here
		}
		if c < 0 && (rel == Gt || rel == Ge) {
			best, bestPos = n.elem, here
		}
		if c < 0 || (c == 0 && rel == Lt) {
			n = n.left
		} else {
			idx = here + 1
			n = n.right
		}
	}
	if bestPos < 0 {
		var zero T
		return zero, 0, false
	}
	return best, bestPos, true
}
