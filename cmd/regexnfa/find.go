package main

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"regexnfa/internal/match"
)

func getFindCmd(c *rootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "find PATTERN TEXT",
		Short: "list the leftmost-longest matches of a pattern in a text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.compile(args[0])
			if err != nil {
				return err
			}
			text := args[1]
			matches := match.FindAll(a, text)
			c.logger.WithField("matches", len(matches)).Debug("searched")

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Start", "End", "Text"})
			table.SetAutoWrapText(false)
			for _, m := range matches {
				table.Append([]string{strconv.Itoa(m.Start), strconv.Itoa(m.End), strconv.Quote(text[m.Start:m.End])})
			}
			table.Render()
			return nil
		},
	}
}
