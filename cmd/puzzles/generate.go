package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/puzzles/randpool"
)

var (
	generateCount int
	seedString    string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate puzzle descriptors",
	Long: "Generate prints one game ID per puzzle, in the form params:descriptor.\n" +
		"The same seed always reproduces the same puzzles.",
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVarP(&generateCount, "count", "n", 1, "number of puzzles to generate")
	generateCmd.Flags().StringVarP(&seedString, "seed", "s", "", "random seed; empty picks one from the clock")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	g, p, err := lookupGame()
	if err != nil {
		return err
	}
	if generateCount < 1 {
		return fmt.Errorf("--count must be at least 1")
	}

	seed := seedString
	if seed == "" {
		seed = strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	for i := 0; i < generateCount; i++ {
		s := seed
		if generateCount > 1 {
			s = fmt.Sprintf("%s#%d", seed, i)
		}
		start := time.Now()
		desc, _ := g.NewDesc(p, randpool.NewString(s))
		log.WithFields(logrus.Fields{
			"game":    g.Name(),
			"seed":    s,
			"elapsed": time.Since(start).Round(time.Millisecond),
		}).Info("generated")
		fmt.Fprintf(cmd.OutOrStdout(), "%s:%s\n", p.Encode(true), desc)
	}
	return nil
}
