package match

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regexnfa/internal/automaton"
	"regexnfa/internal/translator"
)

func compile(t *testing.T, pattern string) *automaton.Automaton {
	t.Helper()
	a, err := translator.Compile(pattern)
	require.NoError(t, err, "compile %q", pattern)
	return a
}

// words returns every string of length <= n over alphabet.
func words(alphabet []rune, n int) []string {
	out := []string{""}
	frontier := []string{""}
	for i := 0; i < n; i++ {
		var next []string
		for _, w := range frontier {
			for _, r := range alphabet {
				next = append(next, w+string(r))
			}
		}
		out = append(out, next...)
		frontier = next
	}
	return out
}

func TestAccepts(t *testing.T) {
	tests := []struct {
		pattern string
		accept  []string
		reject  []string
	}{
		{"a", []string{"a"}, []string{"", "b", "aa"}},
		{"ab", []string{"ab"}, []string{"", "a", "b", "ba", "abb"}},
		{"a|b", []string{"a", "b"}, []string{"", "ab", "c"}},
		{"a*", []string{"", "a", "aaaa"}, []string{"b", "ab"}},
		{"a+", []string{"a", "aaa"}, []string{"", "b"}},
		{"a?", []string{"", "a"}, []string{"aa", "b"}},
		{"[a-c]", []string{"a", "b", "c"}, []string{"", "d", "ab"}},
		{"(a|b)*c", []string{"c", "abc", "aabbc"}, []string{"", "ab", "cc"}},
		{"", []string{""}, []string{"a"}},
		{"a|", []string{"", "a"}, []string{"aa"}},
		{"(a*)*", []string{"", "a", "aa"}, []string{"b"}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			a := compile(t, tt.pattern)
			for _, in := range tt.accept {
				assert.True(t, Accepts(a, in), "%q should accept %q", tt.pattern, in)
			}
			for _, in := range tt.reject {
				assert.False(t, Accepts(a, in), "%q should reject %q", tt.pattern, in)
			}
		})
	}
}

func TestAcceptsNoStart(t *testing.T) {
	a := automaton.New()
	assert.False(t, Accepts(a, ""))
	assert.Empty(t, Simulate(a, "a"))
}

func TestEpsilonClosure(t *testing.T) {
	a := automaton.New()
	s0, s1, s2, s3 := a.AddState(), a.AddState(), a.AddState(), a.AddState()
	a.AddTransition(s0, s1, automaton.Epsilon)
	a.AddTransition(s1, s2, automaton.Epsilon)
	a.AddTransition(s2, s0, automaton.Epsilon)
	a.AddTransition(s2, s3, automaton.Rune('x'))

	got := EpsilonClosure(a, StateSet{s0: {}})
	assert.Equal(t, []automaton.State{s0, s1, s2}, got.Sorted())
	assert.Equal(t, []automaton.State{s3}, Step(a, got, 'x').Sorted())
	assert.Empty(t, Step(a, got, 'y'))
}

func TestDeterminizeEquivalence(t *testing.T) {
	for _, pattern := range []string{
		"a",
		"a|ab",
		"(a|b)*c",
		"a*b+",
		"(ab|a)(bc|c)?",
		"[a-c]*a",
		"",
		"(a|)b",
	} {
		t.Run(pattern, func(t *testing.T) {
			a := compile(t, pattern)
			d := Determinize(a)
			m := Minimize(d)
			assert.LessOrEqual(t, m.NumStates(), d.NumStates())

			alphabet := append(a.Alphabet(), 'z')
			for _, w := range words(alphabet, 4) {
				want := Accepts(a, w)
				assert.Equal(t, want, d.Accepts(w), "dfa on %q", w)
				assert.Equal(t, want, m.Accepts(w), "minimal dfa on %q", w)
			}
		})
	}
}

func TestMinimizeCount(t *testing.T) {
	tests := map[string]int{
		"a|ab":    3,
		"(a|b)*c": 2,
		"a*":      1,
		"aa|aa":   3,
	}
	for pattern, want := range tests {
		t.Run(pattern, func(t *testing.T) {
			d := Determinize(compile(t, pattern))
			assert.Equal(t, want, Minimize(d).NumStates())
		})
	}
}

func TestMinimizeKeepsStart(t *testing.T) {
	m := Minimize(Determinize(compile(t, "a|ab")))
	s, ok := m.Next(0, 'a')
	require.True(t, ok)
	assert.False(t, m.IsAccepting(0))
	assert.True(t, m.IsAccepting(s))
	_, ok = m.Next(0, 'b')
	assert.False(t, ok)
}

func TestDeterminizeEmptyAutomaton(t *testing.T) {
	d := Determinize(automaton.New())
	assert.Equal(t, 0, d.NumStates())
	assert.False(t, d.Accepts(""))
	assert.Equal(t, 0, Minimize(d).NumStates())
}

func TestDFAWriteDOT(t *testing.T) {
	d := Minimize(Determinize(compile(t, "ab")))
	var buf bytes.Buffer
	require.NoError(t, d.WriteDOT(&buf))
	out := buf.String()
	assert.Contains(t, out, "digraph DFA {")
	assert.Contains(t, out, `q0 -> q1 [label="a"];`)
	assert.Contains(t, out, "q2 [shape=doublecircle];")
	assert.Contains(t, out, "_start -> q0;")
}
