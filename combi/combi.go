package combi

// Combi iterates over all r-element subsets of {0, …, n-1} in
// lexicographic order. Construct with New; the zero value is not
// usable.
type Combi struct {
	r, n    int
	a       []int
	started bool
	done    bool
}

// New returns an iterator over r-element subsets of {0, …, n-1}.
// It panics when r < 0, n < 0 or r > n.
func New(r, n int) *Combi {
	if r < 0 || n < 0 || r > n {
		panic("combi: invalid combination parameters")
	}
	return &Combi{r: r, n: n, a: make([]int, r)}
}

// Total returns C(n, r), the number of subsets the iterator yields.
func (c *Combi) Total() int {
	// Multiply in an order that keeps intermediate values integral.
	r := c.r
	if c.n-r < r {
		r = c.n - r
	}
	total := 1
	for i := 1; i <= r; i++ {
		total = total * (c.n - r + i) / i
	}
	return total
}

// Next advances to the next combination and returns it. The returned
// slice is owned by the iterator and overwritten by the following
// call. ok is false once all combinations have been produced.
func (c *Combi) Next() (indices []int, ok bool) {
	if c.done {
		return nil, false
	}
	if !c.started {
		c.started = true
		for i := range c.a {
			c.a[i] = i
		}
		if c.r == 0 && c.n >= 0 {
			c.done = true // single empty subset
		}
		return c.a, true
	}

	// Find the rightmost index that can still move up.
	i := c.r - 1
	for i >= 0 && c.a[i] == c.n-c.r+i {
		i--
	}
	if i < 0 {
		c.done = true
		return nil, false
	}
	c.a[i]++
	for j := i + 1; j < c.r; j++ {
		c.a[j] = c.a[j-1] + 1
	}
	return c.a, true
}

// Reset rewinds the iterator to its initial state.
func (c *Combi) Reset() {
	c.started = false
	c.done = false
}
