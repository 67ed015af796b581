package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PhucNguyen204/answerclass/pkg/strrule"
)

func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval MODE REF INPUT",
		Short: "Evaluate a single rule against an input",
		Long: `Prints true or false.

Example:
  answerclass eval fuzzy_equals hello hell    # true
  answerclass eval starts_with HE hello       # true`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := strrule.ParseMode(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strrule.New(mode, args[1]).Eval(args[2]))
			return err
		},
	}
}

func newDistanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "distance A B",
		Short: "Print the edit distance between two strings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strrule.EditDistance(args[0], args[1]))
			return err
		},
	}
}
