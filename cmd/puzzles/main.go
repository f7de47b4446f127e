package main

import (
	"os"

	_ "github.com/katalvlaran/puzzles/cube"
	_ "github.com/katalvlaran/puzzles/dominosa"
	_ "github.com/katalvlaran/puzzles/galaxies"
	_ "github.com/katalvlaran/puzzles/net"
	_ "github.com/katalvlaran/puzzles/pattern"
	_ "github.com/katalvlaran/puzzles/tracks"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
