package dsf_test

import (
	"testing"

	"github.com/katalvlaran/puzzles/dsf"
)

// BenchmarkMergeCanonify measures a merge sweep followed by full
// canonicalisation over N elements.
func BenchmarkMergeCanonify(b *testing.B) {
	const N = 10000

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d := dsf.New(N)
		for j := 0; j+1 < N; j += 2 {
			d.Merge(j, j+1)
		}
		for j := 0; j+2 < N; j += 4 {
			d.Merge(j, j+2)
		}
		for j := 0; j < N; j++ {
			_ = d.Canonify(j)
		}
	}
}

// BenchmarkMergeFlip measures the parity-tracking variant on an
// alternating chain.
func BenchmarkMergeFlip(b *testing.B) {
	const N = 10000

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d := dsf.New(N)
		for j := 0; j+1 < N; j++ {
			d.MergeFlip(j, j+1, j%2 == 0)
		}
		for j := 0; j < N; j++ {
			_, _ = d.CanonifyFlip(j)
		}
	}
}
