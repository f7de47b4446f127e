package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [params:]descriptor",
	Short: "Validate a puzzle descriptor",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	g, p, desc, err := resolveID(args[0])
	if err != nil {
		return err
	}
	if err := g.ValidateDesc(p, desc); err != nil {
		return err
	}
	if _, err := g.NewState(p, desc); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s:%s is valid\n", p.Encode(true), desc)
	return nil
}
