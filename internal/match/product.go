package match

import "slices"

const dead = -1

type pair struct{ i, j int }

func (d *DFA) acceptsState(s int) bool { return s != dead && d.accept[s] }

func (d *DFA) next(s int, r rune) int {
	if s == dead {
		return dead
	}
	if to, ok := d.trans[s][r]; ok {
		return to
	}
	return dead
}

func (d *DFA) start() int {
	if d.NumStates() == 0 {
		return dead
	}
	return 0
}

func unionRunes(a, b []rune) []rune {
	out := append(append([]rune(nil), a...), b...)
	slices.Sort(out)
	return slices.Compact(out)
}

// Product runs a and b in lockstep over the union of their alphabets. A
// missing transition sends that side to a dead state, so op sees the exact
// membership of the input in both languages. Pairs where both sides are
// dead are dropped.
func Product(a, b *DFA, op func(inA, inB bool) bool) *DFA {
	p := &DFA{Alphabet: unionRunes(a.Alphabet, b.Alphabet)}
	startPair := pair{a.start(), b.start()}
	if startPair == (pair{dead, dead}) {
		return p
	}
	ids := map[pair]int{startPair: p.addState(op(a.acceptsState(startPair.i), b.acceptsState(startPair.j)))}
	queue := []pair{startPair}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		from := ids[cur]
		for _, r := range p.Alphabet {
			np := pair{a.next(cur.i, r), b.next(cur.j, r)}
			if np == (pair{dead, dead}) {
				continue
			}
			to, seen := ids[np]
			if !seen {
				to = p.addState(op(a.acceptsState(np.i), b.acceptsState(np.j)))
				ids[np] = to
				queue = append(queue, np)
			}
			p.trans[from][r] = to
		}
	}
	return p
}

// Intersect accepts the strings accepted by both a and b.
func Intersect(a, b *DFA) *DFA {
	return Product(a, b, func(x, y bool) bool { return x && y })
}

// Union accepts the strings accepted by a or b.
func Union(a, b *DFA) *DFA {
	return Product(a, b, func(x, y bool) bool { return x || y })
}

// Equivalent reports whether a and b accept the same language. When they
// do not, witness is a shortest string accepted by exactly one of them.
func Equivalent(a, b *DFA) (witness string, equal bool) {
	startPair := pair{a.start(), b.start()}
	type visit struct {
		p    pair
		path []rune
	}
	seen := map[pair]bool{startPair: true}
	queue := []visit{{p: startPair}}
	alphabet := unionRunes(a.Alphabet, b.Alphabet)
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if a.acceptsState(v.p.i) != b.acceptsState(v.p.j) {
			return string(v.path), false
		}
		for _, r := range alphabet {
			np := pair{a.next(v.p.i, r), b.next(v.p.j, r)}
			if np == (pair{dead, dead}) || seen[np] {
				continue
			}
			seen[np] = true
			queue = append(queue, visit{p: np, path: append(slices.Clip(v.path), r)})
		}
	}
	return "", true
}
