package combi_test

import (
	"fmt"

	"github.com/katalvlaran/puzzles/combi"
)

func ExampleCombi_Next() {
	c := combi.New(2, 3)
	for {
		idx, ok := c.Next()
		if !ok {
			break
		}
		fmt.Println(idx)
	}
	// Output:
	// [0 1]
	// [0 2]
	// [1 2]
}
