package automaton

import (
	"fmt"
	"io"
	"strconv"
)

// WriteDOT prints a Graphviz representation of a to w.
func (a *Automaton) WriteDOT(w io.Writer) error {
	a.live()
	ew := &errWriter{w: w}
	ew.printf("digraph NFA {\n")
	ew.printf("    rankdir=LR;\n")
	for s := State(0); int(s) < a.states; s++ {
		shape := "circle"
		if a.IsAccepting(s) {
			shape = "doublecircle"
		}
		ew.printf("    n%d [shape=%s];\n", s, shape)
	}
	for s := State(0); int(s) < a.states; s++ {
		for _, t := range a.transitions[s] {
			ew.printf("    n%d -> n%d [label=%s];\n", s, t.To, dotLabel(t.Symbol))
		}
	}
	if a.start != NoState {
		ew.printf("    _start [shape=point]; _start -> n%d;\n", a.start)
	}
	ew.printf("}\n")
	return ew.err
}

func dotLabel(sym Symbol) string {
	if sym.IsEpsilon() {
		return `"ε"`
	}
	r, _ := sym.Rune()
	return strconv.Quote(string(r))
}

// errWriter keeps the first write error and drops everything after it.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
