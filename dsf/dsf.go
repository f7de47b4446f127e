package dsf

// DSF is a disjoint-set forest over elements 0..n-1.
// The zero value is unusable; call New.
type DSF struct {
	parent []int
	flip   []uint8 // parity of element relative to its parent
	size   []int
}

// New returns a DSF with every element in its own singleton class.
func New(n int) *DSF {
	d := &DSF{
		parent: make([]int, n),
		flip:   make([]uint8, n),
		size:   make([]int, n),
	}
	d.Init(n)
	return d
}

// Init resets the forest to n singleton classes, reusing storage when the
// existing capacity allows.
func (d *DSF) Init(n int) {
	if cap(d.parent) < n {
		d.parent = make([]int, n)
		d.flip = make([]uint8, n)
		d.size = make([]int, n)
	} else {
		d.parent = d.parent[:n]
		d.flip = d.flip[:n]
		d.size = d.size[:n]
	}
	for i := 0; i < n; i++ {
		d.parent[i] = i
		d.flip[i] = 0
		d.size[i] = 1
	}
}

// Len returns the number of elements in the forest.
func (d *DSF) Len() int { return len(d.parent) }

// Canonify returns the representative of i's class: the smallest element
// of the class.
func (d *DSF) Canonify(i int) int {
	root, _ := d.CanonifyFlip(i)
	return root
}

// CanonifyFlip returns i's representative together with i's polarity
// relative to it.
func (d *DSF) CanonifyFlip(i int) (root int, inverse bool) {
	// First pass: find the root and i's cumulative parity.
	var par uint8
	root = i
	for d.parent[root] != root {
		par ^= d.flip[root]
		root = d.parent[root]
	}

	// Second pass: compress the path, rewriting parities against the root.
	j := i
	var jpar = par
	for d.parent[j] != root && d.parent[j] != j {
		next := d.parent[j]
		nextpar := jpar ^ d.flip[j]
		d.parent[j] = root
		d.flip[j] = jpar
		j = next
		jpar = nextpar
	}

	return root, par != 0
}

// Equivalent reports whether i and j are in the same class.
func (d *DSF) Equivalent(i, j int) bool {
	return d.Canonify(i) == d.Canonify(j)
}

// Size returns the cardinality of i's class.
func (d *DSF) Size(i int) int {
	return d.size[d.Canonify(i)]
}

// Merge unions the classes of i and j with equal polarity.
func (d *DSF) Merge(i, j int) {
	d.MergeFlip(i, j, false)
}

// MergeFlip unions the classes of i and j, asserting that their polarities
// differ iff inverse is true. If the two elements are already equivalent
// with the opposite relation, the forest state is internally inconsistent
// with the assertion and MergeFlip panics.
func (d *DSF) MergeFlip(i, j int, inverse bool) {
	ri, pi := d.CanonifyFlip(i)
	rj, pj := d.CanonifyFlip(j)

	if ri == rj {
		if (pi != pj) != inverse {
			panic("dsf: merge asserts a polarity contradicting the recorded one")
		}
		return
	}

	// Smallest index stays canonical.
	if rj < ri {
		ri, rj = rj, ri
	}
	d.parent[rj] = ri
	if (pi != pj) != inverse {
		d.flip[rj] = 1
	} else {
		d.flip[rj] = 0
	}
	d.size[ri] += d.size[rj]
}
