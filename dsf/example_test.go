package dsf_test

import (
	"fmt"

	"github.com/katalvlaran/puzzles/dsf"
)

// ExampleDSF_Merge shows that the canonical element of a class is always
// its smallest member, regardless of merge order.
func ExampleDSF_Merge() {
	d := dsf.New(6)
	d.Merge(5, 2)
	d.Merge(2, 4)

	fmt.Println(d.Canonify(5))
	fmt.Println(d.Size(4))
	// Output:
	// 2
	// 3
}

// ExampleDSF_MergeFlip tracks relative polarity along a chain of
// "equal" / "opposite" assertions.
func ExampleDSF_MergeFlip() {
	d := dsf.New(3)
	d.MergeFlip(0, 1, true)  // 1 opposite to 0
	d.MergeFlip(1, 2, true)  // 2 opposite to 1

	_, inv := d.CanonifyFlip(2)
	fmt.Println(inv) // 2 is back in phase with 0
	// Output:
	// false
}
