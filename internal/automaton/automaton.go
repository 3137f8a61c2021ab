package automaton

import (
	"errors"
	"fmt"
	"slices"
)

// State identifies a state of an Automaton. States are dense and start at 0.
type State int

// NoState is the start state of an automaton that has not been given one.
const NoState State = -1

// ErrNotSingleAccepting is returned by Accepting when the automaton does not
// have exactly one accepting state.
var ErrNotSingleAccepting = errors.New("automaton does not have exactly one accepting state")

// Symbol labels a transition. The zero Symbol is epsilon.
type Symbol struct {
	r   rune
	set bool
}

// Epsilon consumes no input.
var Epsilon = Symbol{}

// Rune returns a Symbol consuming r.
func Rune(r rune) Symbol { return Symbol{r: r, set: true} }

// Rune returns the consumed rune, or false for epsilon.
func (s Symbol) Rune() (rune, bool) { return s.r, s.set }

// IsEpsilon reports whether s consumes no input.
func (s Symbol) IsEpsilon() bool { return !s.set }

func (s Symbol) String() string {
	if !s.set {
		return "ε"
	}
	return string(s.r)
}

// Transition is an edge leaving the state it is stored under.
type Transition struct {
	To     State
	Symbol Symbol
}

// Automaton is a mutable NFA used to assemble Thompson fragments.
//
// An Automaton passed to Merge is consumed: any later use of it panics.
type Automaton struct {
	states      int
	start       State
	accepting   map[State]struct{}
	transitions map[State][]Transition
	consumed    bool
}

// New returns an automaton with no states, no transitions and no start state.
func New() *Automaton {
	return &Automaton{
		start:       NoState,
		accepting:   make(map[State]struct{}),
		transitions: make(map[State][]Transition),
	}
}

func (a *Automaton) live() {
	if a.consumed {
		panic("automaton: use of an automaton after it was merged")
	}
}

// AddState allocates a fresh state.
func (a *Automaton) AddState() State {
	a.live()
	s := State(a.states)
	a.states++
	return s
}

// NumStates returns the number of allocated states.
func (a *Automaton) NumStates() int {
	a.live()
	return a.states
}

// SetStart sets the start state. The last call wins.
func (a *Automaton) SetStart(s State) {
	a.live()
	a.start = s
}

// Start returns the start state, or NoState.
func (a *Automaton) Start() State {
	a.live()
	return a.start
}

// SetAccepting marks or unmarks s as accepting.
func (a *Automaton) SetAccepting(s State, accepting bool) {
	a.live()
	if accepting {
		a.accepting[s] = struct{}{}
	} else {
		delete(a.accepting, s)
	}
}

// ClearAccepting empties the accepting set.
func (a *Automaton) ClearAccepting() {
	a.live()
	clear(a.accepting)
}

// IsAccepting reports whether s is accepting.
func (a *Automaton) IsAccepting(s State) bool {
	a.live()
	_, ok := a.accepting[s]
	return ok
}

// AcceptingStates returns the accepting states in ascending order.
func (a *Automaton) AcceptingStates() []State {
	a.live()
	out := make([]State, 0, len(a.accepting))
	for s := range a.accepting {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// Accepting returns the sole accepting state of a fragment.
func (a *Automaton) Accepting() (State, error) {
	a.live()
	if len(a.accepting) != 1 {
		return NoState, ErrNotSingleAccepting
	}
	for s := range a.accepting {
		return s, nil
	}
	return NoState, ErrNotSingleAccepting
}

// AddTransition adds an edge from -> to labelled sym. Parallel edges are kept.
func (a *Automaton) AddTransition(from, to State, sym Symbol) {
	a.live()
	a.transitions[from] = append(a.transitions[from], Transition{To: to, Symbol: sym})
}

// Transitions returns the edges leaving from, in insertion order. The slice
// must not be modified.
func (a *Automaton) Transitions(from State) []Transition {
	a.live()
	return a.transitions[from]
}

// NumTransitions returns the total number of edges.
func (a *Automaton) NumTransitions() int {
	a.live()
	n := 0
	for _, ts := range a.transitions {
		n += len(ts)
	}
	return n
}

// Merge appends the states, transitions and accepting markers of other to a,
// shifting every id of other by the state count of a before the merge. The
// offset is returned. No edge between the two graphs is added and the start
// state of a is left alone. other is consumed.
func (a *Automaton) Merge(other *Automaton) State {
	a.live()
	other.live()
	if a == other {
		panic("automaton: merge of an automaton into itself")
	}
	offset := State(a.states)
	a.states += other.states

	for from, ts := range other.transitions {
		shifted := make([]Transition, len(ts))
		for i, t := range ts {
			shifted[i] = Transition{To: t.To + offset, Symbol: t.Symbol}
		}
		a.transitions[from+offset] = append(a.transitions[from+offset], shifted...)
	}
	for s := range other.accepting {
		a.accepting[s+offset] = struct{}{}
	}

	other.consumed = true
	other.transitions = nil
	other.accepting = nil
	return offset
}

// Alphabet returns every rune labelling a transition, sorted.
func (a *Automaton) Alphabet() []rune {
	a.live()
	seen := make(map[rune]struct{})
	for _, ts := range a.transitions {
		for _, t := range ts {
			if r, ok := t.Symbol.Rune(); ok {
				seen[r] = struct{}{}
			}
		}
	}
	out := make([]rune, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

// Validate checks that a is a well-formed fragment: a start state, exactly one
// accepting state and no reference to a state outside [0, NumStates).
func (a *Automaton) Validate() error {
	a.live()
	if !a.valid(a.start) {
		return fmt.Errorf("start state %d out of range [0,%d)", a.start, a.states)
	}
	acc, err := a.Accepting()
	if err != nil {
		return fmt.Errorf("%w: %v", err, a.AcceptingStates())
	}
	if !a.valid(acc) {
		return fmt.Errorf("accepting state %d out of range [0,%d)", acc, a.states)
	}
	for from, ts := range a.transitions {
		if len(ts) > 0 && !a.valid(from) {
			return fmt.Errorf("transition source %d out of range [0,%d)", from, a.states)
		}
		for _, t := range ts {
			if !a.valid(t.To) {
				return fmt.Errorf("transition %d -> %d out of range [0,%d)", from, t.To, a.states)
			}
		}
	}
	return nil
}

func (a *Automaton) valid(s State) bool { return s >= 0 && int(s) < a.states }
