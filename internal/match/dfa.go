package match

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"regexnfa/internal/automaton"
)

// DFA is a deterministic automaton with states 0..NumStates()-1 and start
// state 0. A missing transition rejects.
type DFA struct {
	Alphabet []rune
	accept   []bool
	trans    []map[rune]int
}

func (d *DFA) addState(accept bool) int {
	d.accept = append(d.accept, accept)
	d.trans = append(d.trans, make(map[rune]int))
	return len(d.accept) - 1
}

// NumStates returns the number of states.
func (d *DFA) NumStates() int { return len(d.accept) }

// IsAccepting reports whether s is accepting.
func (d *DFA) IsAccepting(s int) bool { return d.accept[s] }

// Next returns the successor of s on r.
func (d *DFA) Next(s int, r rune) (int, bool) {
	to, ok := d.trans[s][r]
	return to, ok
}

// Accepts reports whether d accepts the whole of input.
func (d *DFA) Accepts(input string) bool {
	if d.NumStates() == 0 {
		return false
	}
	s := 0
	for _, r := range input {
		next, ok := d.Next(s, r)
		if !ok {
			return false
		}
		s = next
	}
	return d.accept[s]
}

// Determinize runs the subset construction over the alphabet of a. Subsets
// are numbered in the order they are discovered, the start closure first.
func Determinize(a *automaton.Automaton) *DFA {
	d := &DFA{Alphabet: a.Alphabet()}
	if a.Start() == automaton.NoState {
		return d
	}

	key := func(set StateSet) string {
		ids := set.Sorted()
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = strconv.Itoa(int(id))
		}
		return strings.Join(parts, ",")
	}

	initSet := EpsilonClosure(a, StateSet{a.Start(): {}})
	ids := map[string]int{key(initSet): d.addState(hasAccepting(a, initSet))}
	queue := []StateSet{initSet}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		from := ids[key(cur)]
		for _, r := range d.Alphabet {
			moved := Step(a, cur, r)
			if len(moved) == 0 {
				continue
			}
			clo := EpsilonClosure(a, moved)
			k := key(clo)
			to, seen := ids[k]
			if !seen {
				to = d.addState(hasAccepting(a, clo))
				ids[k] = to
				queue = append(queue, clo)
			}
			d.trans[from][r] = to
		}
	}
	return d
}

// Minimize merges equivalent states by partition refinement, starting from
// the accepting / non-accepting split. A missing transition is its own
// class. The result keeps state 0 as start.
func Minimize(d *DFA) *DFA {
	n := d.NumStates()
	if n == 0 {
		return &DFA{Alphabet: d.Alphabet}
	}

	class := make([]int, n)
	for s := range class {
		if d.accept[s] {
			class[s] = 1
		}
	}
	classes := countDistinct(class)

	for {
		next := make([]int, n)
		sigs := make(map[string]int)
		for s := 0; s < n; s++ {
			var b strings.Builder
			b.WriteString(strconv.Itoa(class[s]))
			for _, r := range d.Alphabet {
				b.WriteByte(' ')
				if to, ok := d.trans[s][r]; ok {
					b.WriteString(strconv.Itoa(class[to]))
				} else {
					b.WriteByte('-')
				}
			}
			sig := b.String()
			id, ok := sigs[sig]
			if !ok {
				id = len(sigs)
				sigs[sig] = id
			}
			next[s] = id
		}
		class = next
		if len(sigs) == classes {
			break
		}
		classes = len(sigs)
	}

	// class ids were handed out scanning from state 0, so the start keeps 0
	out := &DFA{Alphabet: d.Alphabet}
	for c := 0; c < classes; c++ {
		out.addState(false)
	}
	for s := 0; s < n; s++ {
		c := class[s]
		out.accept[c] = d.accept[s]
		for r, to := range d.trans[s] {
			out.trans[c][r] = class[to]
		}
	}
	return out
}

func countDistinct(xs []int) int {
	seen := make(map[int]struct{})
	for _, x := range xs {
		seen[x] = struct{}{}
	}
	return len(seen)
}

// WriteDOT prints a Graphviz representation of d to w.
func (d *DFA) WriteDOT(w io.Writer) error {
	var b strings.Builder
	b.WriteString("digraph DFA {\n")
	b.WriteString("    rankdir=LR;\n")
	for s := 0; s < d.NumStates(); s++ {
		shape := "circle"
		if d.accept[s] {
			shape = "doublecircle"
		}
		fmt.Fprintf(&b, "    q%d [shape=%s];\n", s, shape)
		syms := make([]rune, 0, len(d.trans[s]))
		for r := range d.trans[s] {
			syms = append(syms, r)
		}
		slices.Sort(syms)
		for _, r := range syms {
			fmt.Fprintf(&b, "    q%d -> q%d [label=%s];\n", s, d.trans[s][r], strconv.Quote(string(r)))
		}
	}
	if d.NumStates() > 0 {
		b.WriteString("    _start [shape=point]; _start -> q0;\n")
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}
