package randpool_test

import (
	"fmt"

	"github.com/katalvlaran/puzzles/randpool"
)

// Two pools built from the same seed replay the same draws, which is what
// makes game identifiers shareable.
func ExamplePool_Upto() {
	a := randpool.NewString("example-seed")
	b := randpool.NewString("example-seed")

	fmt.Println(a.Upto(52) == b.Upto(52))
	fmt.Println(a.Upto(52) == b.Upto(52))
	// Output:
	// true
	// true
}
