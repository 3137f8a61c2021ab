// Package translator compiles a regular expression syntax tree into an NFA
// with Thompson's construction.
//
// Every builder returns a fragment with one start and one accepting state.
// Parents merge child fragments into their own automaton and glue them with
// epsilon transitions; a merged child is consumed.
package translator

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"regexnfa/internal/automaton"
	"regexnfa/internal/syntax"
)

// Translator builds automata. The zero value is not usable; use New.
type Translator struct {
	log logrus.FieldLogger
}

// New returns a Translator logging to log. A nil log discards everything.
func New(log logrus.FieldLogger) *Translator {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Translator{log: log}
}

var std = New(nil)

// Translate builds the automaton for n with a silent Translator.
func Translate(n syntax.Node) (*automaton.Automaton, error) { return std.Translate(n) }

// Compile parses pattern and builds its automaton with a silent Translator.
func Compile(pattern string) (*automaton.Automaton, error) { return std.Compile(pattern) }

// Compile parses pattern and builds its automaton. Parse failures are
// returned as an *Error of kind ParserError wrapping the *syntax.Error.
func (t *Translator) Compile(pattern string) (*automaton.Automaton, error) {
	n, err := syntax.Parse(pattern)
	if err != nil {
		t.log.WithError(err).WithField("pattern", pattern).Debug("parse failed")
		return nil, &Error{Kind: ParserError, Err: err}
	}
	return t.Translate(n)
}

// Translate builds the automaton for n. The result has exactly one start and
// one accepting state. No partial automaton is returned on error.
func (t *Translator) Translate(n syntax.Node) (*automaton.Automaton, error) {
	a, err := t.build(n)
	if err != nil {
		t.log.WithError(err).Debug("translation failed")
		return nil, err
	}
	t.log.WithFields(logrus.Fields{
		"regex":       n.String(),
		"states":      a.NumStates(),
		"transitions": a.NumTransitions(),
	}).Debug("translated")
	return a, nil
}

func (t *Translator) build(n syntax.Node) (*automaton.Automaton, error) {
	switch n := n.(type) {
	case *syntax.Literal:
		return t.literal(n.Char, n.Char), nil
	case *syntax.Empty:
		return t.concat(nil)
	case *syntax.Concat:
		return t.concat(n.Items)
	case *syntax.Alternation:
		return t.alternation(n.Alternatives)
	case *syntax.Repetition:
		return t.repetition(n)
	case *syntax.Group:
		return t.build(n.Sub)
	case syntax.Class:
		return t.class(n)
	}
	return nil, unsupported(UnsupportedAst, n)
}

// ends returns the start and the sole accepting state of a child fragment.
// Anything else reaching a composition site is a translator bug.
func ends(child *automaton.Automaton) (start, end automaton.State) {
	end, err := child.Accepting()
	if err != nil {
		panic(fmt.Sprintf("translator: child fragment: %v (accepting %v)", err, child.AcceptingStates()))
	}
	return child.Start(), end
}

// literal builds start -c-> end for every c in [lo, hi]. A reversed range
// yields no transition at all, so the fragment accepts nothing.
func (t *Translator) literal(lo, hi rune) *automaton.Automaton {
	a := automaton.New()
	start, end := a.AddState(), a.AddState()
	a.SetStart(start)
	a.SetAccepting(end, true)
	if lo <= hi {
		for c := lo; ; c++ {
			a.AddTransition(start, end, automaton.Rune(c))
			if c == hi {
				break
			}
		}
	}
	t.log.WithFields(logrus.Fields{"lo": string(lo), "hi": string(hi)}).Trace("literal fragment")
	return a
}

// concat chains items left to right from a fresh start state. With no items
// the start state is also the accepting state.
func (t *Translator) concat(items []syntax.Node) (*automaton.Automaton, error) {
	a := automaton.New()
	start := a.AddState()
	a.SetStart(start)
	end := start

	for _, item := range items {
		child, err := t.build(item)
		if err != nil {
			return nil, err
		}
		childStart, childEnd := ends(child)
		off := a.Merge(child)
		a.AddTransition(end, childStart+off, automaton.Epsilon)
		end = childEnd + off
	}

	a.ClearAccepting()
	a.SetAccepting(end, true)
	t.log.WithField("items", len(items)).Trace("concat fragment")
	return a, nil
}

func (t *Translator) alternation(alts []syntax.Node) (*automaton.Automaton, error) {
	a := automaton.New()
	start, end := a.AddState(), a.AddState()

	for _, alt := range alts {
		child, err := t.build(alt)
		if err != nil {
			return nil, err
		}
		childStart, childEnd := ends(child)
		off := a.Merge(child)
		a.AddTransition(start, childStart+off, automaton.Epsilon)
		a.AddTransition(childEnd+off, end, automaton.Epsilon)
	}

	a.SetStart(start)
	a.ClearAccepting()
	a.SetAccepting(end, true)
	t.log.WithField("alternatives", len(alts)).Trace("alternation fragment")
	return a, nil
}

// repetition wraps the inner fragment between two fresh states:
//
//	*  start->inner, inner->end, start->end, inner->start
//	+  start->inner, inner->end, inner->start
//	?  start->inner, inner->end, start->end
//
// Counted and lazy repetitions are rejected.
func (t *Translator) repetition(n *syntax.Repetition) (*automaton.Automaton, error) {
	if !n.Greedy {
		return nil, unsupported(UnsupportedAst, n)
	}
	switch n.Op.Kind {
	case syntax.ZeroOrMore, syntax.OneOrMore, syntax.ZeroOrOne:
	default:
		return nil, unsupported(UnsupportedAst, n)
	}

	a := automaton.New()
	start, end := a.AddState(), a.AddState()

	inner, err := t.build(n.Sub)
	if err != nil {
		return nil, err
	}
	innerStart, innerEnd := ends(inner)
	off := a.Merge(inner)
	innerStart, innerEnd = innerStart+off, innerEnd+off

	a.AddTransition(start, innerStart, automaton.Epsilon)
	a.AddTransition(innerEnd, end, automaton.Epsilon)
	switch n.Op.Kind {
	case syntax.ZeroOrMore:
		a.AddTransition(start, end, automaton.Epsilon)
		a.AddTransition(innerEnd, start, automaton.Epsilon)
	case syntax.OneOrMore:
		a.AddTransition(innerEnd, start, automaton.Epsilon)
	case syntax.ZeroOrOne:
		a.AddTransition(start, end, automaton.Epsilon)
	}

	a.SetStart(start)
	a.ClearAccepting()
	a.SetAccepting(end, true)
	t.log.WithField("op", n.Op.String()).Trace("repetition fragment")
	return a, nil
}

// class supports exactly one shape: a non-negated bracketed class holding a
// single range, e.g. [a-z].
func (t *Translator) class(c syntax.Class) (*automaton.Automaton, error) {
	switch c := c.(type) {
	case *syntax.BracketedClass:
		if c.Negated {
			return nil, unsupported(UnsupportedClass, c)
		}
		switch set := c.Set.(type) {
		case syntax.ClassSetItem:
			switch item := set.(type) {
			case *syntax.ClassSetRange:
				return t.literal(item.Start, item.End), nil
			default:
				return nil, unsupported(UnsupportedClassSetItem, item)
			}
		default:
			return nil, unsupported(UnsupportedClassSet, set)
		}
	default:
		return nil, unsupported(UnsupportedClass, c)
	}
}
