// Package match runs strings against automata built by the translator: a
// direct NFA simulation plus subset construction and DFA minimisation.
package match

import (
	"slices"

	"regexnfa/internal/automaton"
)

// StateSet is a set of NFA states.
type StateSet map[automaton.State]struct{}

// Sorted returns the members of s in ascending order.
func (s StateSet) Sorted() []automaton.State {
	out := make([]automaton.State, 0, len(s))
	for st := range s {
		out = append(out, st)
	}
	slices.Sort(out)
	return out
}

// EpsilonClosure adds to set every state reachable from it through epsilon
// transitions and returns set.
func EpsilonClosure(a *automaton.Automaton, set StateSet) StateSet {
	stack := make([]automaton.State, 0, len(set))
	for s := range set {
		stack = append(stack, s)
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, t := range a.Transitions(s) {
			if !t.Symbol.IsEpsilon() {
				continue
			}
			if _, ok := set[t.To]; !ok {
				set[t.To] = struct{}{}
				stack = append(stack, t.To)
			}
		}
	}
	return set
}

// Step returns the states reached from set by consuming r, before closure.
func Step(a *automaton.Automaton, set StateSet, r rune) StateSet {
	next := make(StateSet)
	for s := range set {
		for _, t := range a.Transitions(s) {
			if c, ok := t.Symbol.Rune(); ok && c == r {
				next[t.To] = struct{}{}
			}
		}
	}
	return next
}

// Simulate runs input through a rune by rune and returns the epsilon-closed
// set of states reached. The set is empty once no state can continue.
func Simulate(a *automaton.Automaton, input string) StateSet {
	if a.Start() == automaton.NoState {
		return StateSet{}
	}
	cur := EpsilonClosure(a, StateSet{a.Start(): {}})
	for _, r := range input {
		cur = EpsilonClosure(a, Step(a, cur, r))
		if len(cur) == 0 {
			break
		}
	}
	return cur
}

// Accepts reports whether a accepts the whole of input.
func Accepts(a *automaton.Automaton, input string) bool {
	return hasAccepting(a, Simulate(a, input))
}

func hasAccepting(a *automaton.Automaton, set StateSet) bool {
	for s := range set {
		if a.IsAccepting(s) {
			return true
		}
	}
	return false
}
