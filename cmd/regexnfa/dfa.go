package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"regexnfa/internal/match"
)

func getDFACmd(c *rootCommand) *cobra.Command {
	var minimize bool
	cmd := &cobra.Command{
		Use:   "dfa PATTERN",
		Short: "print the DFA of a pattern as Graphviz DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.compile(args[0])
			if err != nil {
				return err
			}
			d := match.Determinize(a)
			fields := logrus.Fields{"nfa_states": a.NumStates(), "dfa_states": d.NumStates()}
			if minimize {
				d = match.Minimize(d)
				fields["min_states"] = d.NumStates()
			}
			c.logger.WithFields(fields).Debug("determinized")
			return d.WriteDOT(cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVarP(&minimize, "minimize", "m", false, "minimize the DFA")
	return cmd
}
