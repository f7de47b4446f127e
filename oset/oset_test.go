package oset_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/puzzles/oset"
)

func intCmp(a, b int) int { return a - b }

func TestAdd_KeepsOrder(t *testing.T) {
	s := oset.New(intCmp)
	for _, v := range []int{5, 1, 9, 3, 7} {
		_, inserted := s.Add(v)
		assert.True(t, inserted)
	}
	require.Equal(t, 5, s.Len())
	for i, want := range []int{1, 3, 5, 7, 9} {
		assert.Equal(t, want, s.Index(i))
	}
}

func TestAdd_DuplicateReturnsExisting(t *testing.T) {
	s := oset.New(intCmp)
	s.Add(4)
	got, inserted := s.Add(4)
	assert.False(t, inserted)
	assert.Equal(t, 4, got)
	assert.Equal(t, 1, s.Len())
}

func TestDelete(t *testing.T) {
	s := oset.New(intCmp)
	for _, v := range []int{2, 4, 6} {
		s.Add(v)
	}

	got, ok := s.Delete(4)
	assert.True(t, ok)
	assert.Equal(t, 4, got)
	assert.Equal(t, 2, s.Len())

	_, ok = s.Delete(4)
	assert.False(t, ok)
}

func TestDeleteIndex(t *testing.T) {
	s := oset.New(intCmp)
	for _, v := range []int{10, 20, 30, 40} {
		s.Add(v)
	}

	assert.Equal(t, 20, s.DeleteIndex(1))
	assert.Equal(t, 30, s.Index(1))
	assert.Equal(t, 3, s.Len())
}

func TestIndex_PanicsOutOfRange(t *testing.T) {
	s := oset.New(intCmp)
	s.Add(1)
	assert.Panics(t, func() { s.Index(1) })
	assert.Panics(t, func() { s.Index(-1) })
}

func TestFind_Relations(t *testing.T) {
	s := oset.New(intCmp)
	for _, v := range []int{10, 20, 30} {
		s.Add(v)
	}

	cases := []struct {
		probe   int
		rel     oset.Rel
		want    int
		wantPos int
		ok      bool
	}{
		{20, oset.Eq, 20, 1, true},
		{25, oset.Eq, 0, 0, false},
		{20, oset.Lt, 10, 0, true},
		{20, oset.Le, 20, 1, true},
		{20, oset.Ge, 20, 1, true},
		{20, oset.Gt, 30, 2, true},
		{25, oset.Lt, 20, 1, true},
		{25, oset.Gt, 30, 2, true},
		{10, oset.Lt, 0, 0, false},
		{30, oset.Gt, 0, 0, false},
		{5, oset.Ge, 10, 0, true},
		{35, oset.Le, 30, 2, true},
	}
	for _, c := range cases {
		elem, pos, ok := s.Find(c.probe, c.rel)
		require.Equal(t, c.ok, ok, "probe=%d rel=%d", c.probe, c.rel)
		if ok {
			assert.Equal(t, c.want, elem, "probe=%d rel=%d", c.probe, c.rel)
			assert.Equal(t, c.wantPos, pos, "probe=%d rel=%d", c.probe, c.rel)
		}
	}
}

func TestSet_AgainstSortedSlice(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := oset.New(intCmp)
	ref := map[int]bool{}

	for step := 0; step < 2000; step++ {
		v := rng.Intn(300)
		if rng.Intn(3) == 0 {
			_, ok := s.Delete(v)
			assert.Equal(t, ref[v], ok)
			delete(ref, v)
		} else {
			_, inserted := s.Add(v)
			assert.Equal(t, !ref[v], inserted)
			ref[v] = true
		}
	}

	sorted := make([]int, 0, len(ref))
	for v := range ref {
		sorted = append(sorted, v)
	}
	sort.Ints(sorted)

	require.Equal(t, len(sorted), s.Len())
	for i, want := range sorted {
		require.Equal(t, want, s.Index(i))
	}
}
