package automaton

import "encoding/json"

type jsonAutomaton struct {
	States      int              `json:"states"`
	Start       State            `json:"start"`
	Accepting   []State          `json:"accepting"`
	Transitions []jsonTransition `json:"transitions"`
}

type jsonTransition struct {
	From   State   `json:"from"`
	To     State   `json:"to"`
	Symbol *string `json:"symbol,omitempty"`
}

// MarshalJSON encodes a with transitions ordered by source state and, within
// a source, by insertion. Epsilon transitions have no "symbol" key.
func (a *Automaton) MarshalJSON() ([]byte, error) {
	a.live()
	out := jsonAutomaton{
		States:      a.states,
		Start:       a.start,
		Accepting:   a.AcceptingStates(),
		Transitions: make([]jsonTransition, 0, a.NumTransitions()),
	}
	for s := State(0); int(s) < a.states; s++ {
		for _, t := range a.transitions[s] {
			jt := jsonTransition{From: s, To: t.To}
			if r, ok := t.Symbol.Rune(); ok {
				str := string(r)
				jt.Symbol = &str
			}
			out.Transitions = append(out.Transitions, jt)
		}
	}
	return json.Marshal(out)
}
