package engine_test

import (
	"fmt"

	"github.com/katalvlaran/puzzles/engine"

	_ "github.com/katalvlaran/puzzles/cube"
)

// Families register themselves from their init functions; importing a
// family package is enough to make it reachable by name.
func ExampleLookup() {
	g, err := engine.Lookup("cube")
	if err != nil {
		fmt.Println(err)
		return
	}
	p, _ := g.DecodeParams("c4x4")
	fmt.Println(g.Name(), p.Encode(true), g.CanSolve())
	// Output: cube c4x4 false
}
