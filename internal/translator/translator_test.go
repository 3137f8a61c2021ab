package translator

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regexnfa/internal/automaton"
	"regexnfa/internal/syntax"
)

type edge struct {
	from, to automaton.State
	sym      string
}

func edges(a *automaton.Automaton) []edge {
	var out []edge
	for s := 0; s < a.NumStates(); s++ {
		for _, t := range a.Transitions(automaton.State(s)) {
			sym := ""
			if r, ok := t.Symbol.Rune(); ok {
				sym = string(r)
			}
			out = append(out, edge{automaton.State(s), t.To, sym})
		}
	}
	return out
}

func mustCompile(t *testing.T, pattern string) *automaton.Automaton {
	t.Helper()
	a, err := Compile(pattern)
	require.NoError(t, err, "compile %q", pattern)
	require.NoError(t, a.Validate())
	return a
}

func TestLiteral(t *testing.T) {
	a := mustCompile(t, "a")
	assert.Equal(t, 2, a.NumStates())
	assert.Equal(t, automaton.State(0), a.Start())
	assert.Equal(t, []automaton.State{1}, a.AcceptingStates())
	assert.Equal(t, []edge{{0, 1, "a"}}, edges(a))
}

func TestAlternation(t *testing.T) {
	a := mustCompile(t, "a|b")
	assert.Equal(t, 6, a.NumStates())
	assert.Equal(t, automaton.State(0), a.Start())
	assert.Equal(t, []automaton.State{1}, a.AcceptingStates())
	assert.ElementsMatch(t, []edge{
		{0, 2, ""}, {0, 4, ""},
		{2, 3, "a"}, {4, 5, "b"},
		{3, 1, ""}, {5, 1, ""},
	}, edges(a))
}

func TestConcat(t *testing.T) {
	a := mustCompile(t, "ab")
	assert.Equal(t, 5, a.NumStates())
	assert.Equal(t, automaton.State(0), a.Start())
	assert.Equal(t, []automaton.State{4}, a.AcceptingStates())
	assert.Equal(t, []edge{
		{0, 1, ""},
		{1, 2, "a"},
		{2, 3, ""},
		{3, 4, "b"},
	}, edges(a))
}

func TestRepetition(t *testing.T) {
	tests := []struct {
		pattern string
		edges   []edge
	}{
		{"a*", []edge{{0, 2, ""}, {3, 1, ""}, {0, 1, ""}, {3, 0, ""}, {2, 3, "a"}}},
		{"a+", []edge{{0, 2, ""}, {3, 1, ""}, {3, 0, ""}, {2, 3, "a"}}},
		{"a?", []edge{{0, 2, ""}, {3, 1, ""}, {0, 1, ""}, {2, 3, "a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			a := mustCompile(t, tt.pattern)
			assert.Equal(t, 4, a.NumStates())
			assert.Equal(t, automaton.State(0), a.Start())
			assert.Equal(t, []automaton.State{1}, a.AcceptingStates())
			assert.ElementsMatch(t, tt.edges, edges(a))
		})
	}
}

func TestClassRange(t *testing.T) {
	a := mustCompile(t, "[a-c]")
	assert.Equal(t, 2, a.NumStates())
	assert.Equal(t, []edge{{0, 1, "a"}, {0, 1, "b"}, {0, 1, "c"}}, edges(a))
}

func TestClassLeadingBracketRange(t *testing.T) {
	a := mustCompile(t, "[]-a]")
	assert.Equal(t, []edge{{0, 1, "]"}, {0, 1, "^"}, {0, 1, "_"}, {0, 1, "`"}, {0, 1, "a"}}, edges(a))
}

func TestEmpty(t *testing.T) {
	for _, pattern := range []string{"", "()", "(())"} {
		t.Run(pattern, func(t *testing.T) {
			a := mustCompile(t, pattern)
			assert.Equal(t, 1, a.NumStates())
			assert.Equal(t, []automaton.State{a.Start()}, a.AcceptingStates())
			assert.Zero(t, a.NumTransitions())
		})
	}
}

func TestGroupIsTransparent(t *testing.T) {
	assert.Equal(t, edges(mustCompile(t, "a|b")), edges(mustCompile(t, "(a|b)")))
}

func TestFragmentInvariant(t *testing.T) {
	for _, pattern := range []string{
		"a", "ab", "a|b", "a*", "a+", "a?", "[a-z]",
		"(a|b)*c", "((a|b)+c?)*[x-z]", "a||b", "(a|)*",
	} {
		t.Run(pattern, func(t *testing.T) {
			a := mustCompile(t, pattern)
			_, err := a.Accepting()
			assert.NoError(t, err)
		})
	}
}

func TestReversedRangeByHand(t *testing.T) {
	n := &syntax.BracketedClass{Set: &syntax.ClassSetRange{Start: 'c', End: 'a'}}
	a, err := Translate(n)
	require.NoError(t, err)
	require.NoError(t, a.Validate())
	assert.Equal(t, 2, a.NumStates())
	assert.Zero(t, a.NumTransitions())
}

func TestUnsupported(t *testing.T) {
	tests := []struct {
		pattern string
		kind    ErrorKind
		node    string
	}{
		{"a{3}", UnsupportedAst, "a{3}"},
		{"a{2,}", UnsupportedAst, "a{2,}"},
		{"a{2,4}", UnsupportedAst, "a{2,4}"},
		{"a*?", UnsupportedAst, "a*?"},
		{"a+?", UnsupportedAst, "a+?"},
		{".", UnsupportedAst, "."},
		{"^a", UnsupportedAst, "^"},
		{"a$", UnsupportedAst, "$"},
		{`\b`, UnsupportedAst, `\b`},
		{`\A`, UnsupportedAst, `\A`},
		{`(a)\1`, UnsupportedAst, `\1`},
		{`\d`, UnsupportedClass, `\d`},
		{`\W`, UnsupportedClass, `\W`},
		{"[^a-c]", UnsupportedClass, "[^a-c]"},
		{"[a-z&&b]", UnsupportedClassSet, "a-z&&b"},
		{"[a--b]", UnsupportedClassSet, "a--b"},
		{"[abc]", UnsupportedClassSetItem, "abc"},
		{"[a]", UnsupportedClassSetItem, "a"},
		{`[\d]`, UnsupportedClassSetItem, `\d`},
		{"[]a]", UnsupportedClassSetItem, `\]a`},
		{"x(a|.)", UnsupportedAst, "."},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			a, err := Compile(tt.pattern)
			require.Error(t, err)
			assert.Nil(t, a)

			var terr *Error
			require.ErrorAs(t, err, &terr)
			assert.Equal(t, tt.kind, terr.Kind)
			require.NotNil(t, terr.Node)
			assert.Equal(t, tt.node, terr.Node.String())
			assert.ErrorIs(t, err, ErrUnsupported)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	_, err := Compile("a{2,4}")
	require.Error(t, err)
	assert.Equal(t,
		`error when translating regular expression: counted repetition "a{2,4}" at 0..6 is not a supported ast kind`,
		err.Error())

	_, err = Compile("x[^a]")
	require.Error(t, err)
	assert.Equal(t,
		`error when translating regular expression: bracketed class "[^a]" at 1..5 is not a supported class kind`,
		err.Error())
}

func TestParserError(t *testing.T) {
	_, err := Compile("(a")
	require.Error(t, err)

	var terr *Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, ParserError, terr.Kind)
	assert.Nil(t, terr.Node)

	var serr *syntax.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "(a", serr.Pattern)
	assert.Same(t, serr, errors.Unwrap(err))
	assert.False(t, errors.Is(err, ErrUnsupported))
	assert.Contains(t, err.Error(), "error when translating regular expression: regex parse error")
}

func TestInvalidUTF8IsParserError(t *testing.T) {
	for _, pattern := range []string{"\xff", "a|\xfe", "[\xc0-z]"} {
		a, err := Compile(pattern)
		assert.Nil(t, a)
		var terr *Error
		require.ErrorAs(t, err, &terr, "pattern %q", pattern)
		assert.Equal(t, ParserError, terr.Kind)
		assert.ErrorContains(t, err, "invalid UTF-8")
	}
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "unsupported class set item", UnsupportedClassSetItem.String())
	assert.Equal(t, "ErrorKind(42)", ErrorKind(42).String())
}

func TestEndsPanicsOnBadFragment(t *testing.T) {
	a := automaton.New()
	a.SetStart(a.AddState())
	assert.Panics(t, func() { ends(a) })

	b := automaton.New()
	s, e1, e2 := b.AddState(), b.AddState(), b.AddState()
	b.SetStart(s)
	b.SetAccepting(e1, true)
	b.SetAccepting(e2, true)
	assert.Panics(t, func() { ends(b) })
}

func TestLogging(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	_, err := New(logger).Compile("a|b")
	require.NoError(t, err)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "translated", entry.Message)
	assert.Equal(t, 6, entry.Data["states"])
	assert.Equal(t, 6, entry.Data["transitions"])
	assert.Equal(t, "a|b", entry.Data["regex"])

	hook.Reset()
	_, err = New(logger).Compile("a{2}")
	require.Error(t, err)
	entry = hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "translation failed", entry.Message)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
}
