package main

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"regexnfa/internal/match"
)

func getMatchCmd(c *rootCommand) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "match PATTERN INPUT...",
		Short: "run inputs against the NFA of a pattern",
		Long: `Compile PATTERN and report, for every INPUT, whether the automaton
accepts the whole input. With --strict a rejected input makes the command fail.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern, inputs := args[0], args[1:]
			a, err := c.compile(pattern)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Input", "Accepted"})
			table.SetAutoWrapText(false)
			rejected := 0
			for _, in := range inputs {
				ok := match.Accepts(a, in)
				if !ok {
					rejected++
				}
				c.logger.WithFields(logrus.Fields{"input": in, "accepted": ok}).Debug("matched")
				table.Append([]string{strconv.Quote(in), strconv.FormatBool(ok)})
			}
			table.Render()

			if strict && rejected > 0 {
				return ExitCode{
					error: errors.Errorf("%d of %d inputs rejected by %q", rejected, len(inputs), pattern),
					Code:  1,
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with status 1 if any input is rejected")
	return cmd
}
