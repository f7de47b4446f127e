package randpool_test

import (
	"testing"

	"github.com/katalvlaran/puzzles/randpool"
)

// BenchmarkBits measures raw bit extraction throughput.
func BenchmarkBits(b *testing.B) {
	rnd := randpool.NewString("bench seed")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = rnd.Bits(31)
	}
}

// BenchmarkUpto measures rejection-sampled bounded draws.
func BenchmarkUpto(b *testing.B) {
	rnd := randpool.NewString("bench seed")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = rnd.Upto(1000)
	}
}

// BenchmarkShuffle measures a full permutation of 1000 elements.
func BenchmarkShuffle(b *testing.B) {
	rnd := randpool.NewString("bench seed")
	a := make([]int, 1000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rnd.Shuffle(len(a), func(x, y int) { a[x], a[y] = a[y], a[x] })
	}
}
