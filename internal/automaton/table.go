package automaton

import (
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// WriteTable renders the transition multi-map of a as a text table, one row
// per transition. States without outgoing edges get a row of their own.
func (a *Automaton) WriteTable(w io.Writer) {
	a.live()
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"State", "Flags", "Symbol", "To"})
	table.SetAutoWrapText(false)
	for s := State(0); int(s) < a.states; s++ {
		flags := a.stateFlags(s)
		ts := a.transitions[s]
		if len(ts) == 0 {
			table.Append([]string{strconv.Itoa(int(s)), flags, "", ""})
			continue
		}
		for _, t := range ts {
			table.Append([]string{strconv.Itoa(int(s)), flags, t.Symbol.String(), strconv.Itoa(int(t.To))})
		}
	}
	table.Render()
}

func (a *Automaton) stateFlags(s State) string {
	var flags []string
	if s == a.start {
		flags = append(flags, "start")
	}
	if a.IsAccepting(s) {
		flags = append(flags, "accept")
	}
	return strings.Join(flags, ",")
}
