package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"regexnfa/internal/config"
)

func getCompileCmd(c *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile PATTERN",
		Short: "print the NFA of a pattern",
		Long: `Compile PATTERN with Thompson's construction and print the automaton
as a transition table, Graphviz DOT or JSON.`,
		Example: `  regexnfa compile '(a|b)*c'
  regexnfa compile -o dot '[a-c]+' | dot -Tpng > nfa.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.compile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch c.cfg.Output {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(a)
			case "dot":
				return a.WriteDOT(out)
			default:
				a.WriteTable(out)
				return nil
			}
		},
	}
	cmd.Flags().StringP("output", "o", config.Default().Output, "output format: table, dot or json")
	return cmd
}
