// Package puzzles is the core engine of a collection of grid-based
// logic puzzles: random generation with uniqueness guarantees,
// rule-ladder solvers, compact descriptor codecs and move execution.
//
// 🚀 What is puzzles?
//
//	A deterministic, UI-free library that brings together:
//		• Six puzzle families: Net, Cube, Pattern, Tracks, Dominosa, Galaxies
//		• Generators: seeded, difficulty-gated, unique-solution by construction
//		• Solvers: fixed ladders of inference rules plus bounded case-splitting
//		• Codecs: every puzzle round-trips through a short printable descriptor
//		• Moves: ;-delimited command strings with full validation
//
// ✨ Why choose puzzles?
//
//   - Reproducible – the same seed always yields the same puzzle
//   - Honest difficulty – rated by the hardest deduction actually needed
//   - Pure Go – no cgo, no UI toolkit, no hidden machinery
//   - Uniform API – every family implements the same engine.Game interface
//
// Under the hood, everything is organized as sibling packages:
//
//	engine/    — the Game interface, registry, buttons and diagnostics
//	randpool/  — deterministic random pool all generators draw from
//	dsf/       — union-find with optional edge-polarity tracking
//	oset/      — ordered set on a splay tree
//	combi/     — combinatorial enumeration helpers
//	findloop/  — bridge-finding for loop detection in grids
//	laydomino/ — domino layout of rectangular areas
//	net/ cube/ pattern/ tracks/ dominosa/ galaxies/ — the families
//	cmd/puzzles/ — generate / solve / validate command line tool
//
// Quick example:
//
//	g, _ := engine.Lookup("net")
//	p, _ := g.DecodeParams("5x5")
//	desc, _ := g.NewDesc(p, randpool.NewString("my seed"))
//	st, _ := g.NewState(p, desc)
//
// builds a fresh 5x5 Net puzzle ready to play.
//
//	go get github.com/katalvlaran/puzzles
package puzzles
