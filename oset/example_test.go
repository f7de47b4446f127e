package oset_test

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/puzzles/oset"
)

// ExampleSet_DeleteIndex draws elements out of a sorted pool by rank,
// the pattern used when consuming a candidate list in random order.
func ExampleSet_DeleteIndex() {
	s := oset.New(strings.Compare)
	for _, w := range []string{"cherry", "apple", "banana"} {
		s.Add(w)
	}

	fmt.Println(s.DeleteIndex(1))
	fmt.Println(s.Index(0), s.Index(1))
	// Output:
	// banana
	// apple cherry
}
