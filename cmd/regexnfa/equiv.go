package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"regexnfa/internal/match"
)

func getEquivCmd(c *rootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "equiv PATTERN1 PATTERN2",
		Short: "check whether two patterns accept the same language",
		Long: `Compile both patterns, determinize them and compare the languages.
When they differ, print a shortest string accepted by only one of them and
exit with status 1.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.compile(args[0])
			if err != nil {
				return err
			}
			b, err := c.compile(args[1])
			if err != nil {
				return err
			}
			witness, equal := match.Equivalent(match.Determinize(a), match.Determinize(b))
			if equal {
				fmt.Fprintln(cmd.OutOrStdout(), "equivalent")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "different: %q\n", witness)
			return ExitCode{
				error: errors.Errorf("%q and %q differ on %q", args[0], args[1], witness),
				Code:  1,
			}
		},
	}
}
