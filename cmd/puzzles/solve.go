package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/puzzles/engine"
)

var solveCmd = &cobra.Command{
	Use:   "solve [params:]descriptor",
	Short: "Solve a puzzle descriptor",
	Long: "Solve prints the move string that takes the fresh grid to a solved\n" +
		"one. A puzzle the solver proves unsolvable is a finding, not a tool\n" +
		"failure, and still exits 0.",
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	g, p, desc, err := resolveID(args[0])
	if err != nil {
		return err
	}
	if !g.CanSolve() {
		return fmt.Errorf("the %s family has no solver", g.Name())
	}
	if err := g.ValidateDesc(p, desc); err != nil {
		return err
	}
	st, err := g.NewState(p, desc)
	if err != nil {
		return err
	}

	moves, err := g.Solve(p, st, st, "")
	if errors.Is(err, engine.ErrNoSolution) {
		log.WithField("game", g.Name()).Warn(err.Error())
		fmt.Fprintln(cmd.OutOrStdout(), "no solution")
		return nil
	}
	if err != nil {
		return err
	}

	solved, err := g.ExecuteMove(st, moves)
	if err != nil {
		return err
	}
	if !solved.Completed() {
		log.WithField("game", g.Name()).Warn("solver settled only part of the grid")
	}
	fmt.Fprintln(cmd.OutOrStdout(), moves)
	return nil
}
