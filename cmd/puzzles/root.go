package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/puzzles/engine"
)

var (
	gameName    string
	paramString string
	diagnostics bool

	log = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:          "puzzles",
	Short:        "Generate, solve and validate logic puzzles",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stderr)
		if diagnostics {
			log.SetLevel(logrus.DebugLevel)
			engine.SetDiagnostics(log)
		}
	},
}

func init() {
	rootCmd.Long = "Core engine for a collection of grid-based logic puzzles.\n\n" +
		"Registered families: " + strings.Join(engine.Games(), ", ") + "."
	rootCmd.PersistentFlags().StringVarP(&gameName, "game", "g", "", "puzzle family name")
	rootCmd.PersistentFlags().StringVarP(&paramString, "params", "p", "", "family parameter string, e.g. 7x7dn")
	rootCmd.PersistentFlags().BoolVar(&diagnostics, "diagnostics", false, "log solver deduction traces to stderr")
}

// lookupGame resolves --game and --params into a family and a
// validated parameter set.
func lookupGame() (engine.Game, engine.Params, error) {
	if gameName == "" {
		return nil, nil, fmt.Errorf("--game is required (one of %s)", strings.Join(engine.Games(), ", "))
	}
	g, err := engine.Lookup(gameName)
	if err != nil {
		return nil, nil, err
	}
	var p engine.Params
	if paramString == "" {
		p = g.DefaultParams()
	} else {
		if p, err = g.DecodeParams(paramString); err != nil {
			return nil, nil, err
		}
	}
	if err := p.Validate(true); err != nil {
		return nil, nil, err
	}
	return g, p, nil
}

// resolveID interprets a command-line puzzle argument. With --params
// given the whole argument is a descriptor; otherwise it is a full
// game ID and splits at the first colon into params and descriptor,
// which keeps descriptors that themselves contain colons intact.
func resolveID(arg string) (engine.Game, engine.Params, string, error) {
	if paramString == "" {
		if params, desc, ok := strings.Cut(arg, ":"); ok {
			paramString = params
			g, p, err := lookupGame()
			return g, p, desc, err
		}
	}
	g, p, err := lookupGame()
	return g, p, arg, err
}
