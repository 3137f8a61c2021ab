package syntax

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Error is a syntax error in a pattern.
type Error struct {
	Pattern string
	Offset  int
	Msg     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("regex parse error at offset %d of %q: %s", e.Offset, e.Pattern, e.Msg)
}

// Parse parses pattern into a syntax tree.
//
// Supported syntax: literals, \x escapes (the next character taken
// literally), |, implicit concatenation, * + ? and {n} {n,} {n,m} with an
// optional lazy ?, groups, bracketed classes with ranges, negation and the
// && -- ~~ set operators, Perl classes, . ^ $ \b \B \A \z and \1 to \9.
// Accepting a construct here does not mean it can be compiled.
func Parse(pattern string) (Node, error) {
	if off := invalidUTF8(pattern); off >= 0 {
		return nil, &Error{Pattern: pattern, Offset: off, Msg: "invalid UTF-8"}
	}
	g, err := grammar.ParseString("", pattern)
	if err != nil {
		return nil, newError(pattern, err)
	}
	l := &lowerer{pattern: pattern}
	return l.alternation(g)
}

// invalidUTF8 returns the offset of the first byte of s that is not part of
// a valid UTF-8 sequence, or -1.
func invalidUTF8(s string) int {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return i
			}
		}
	}
	return -1
}

func newError(pattern string, err error) *Error {
	var perr participle.Error
	if errors.As(err, &perr) {
		return &Error{Pattern: pattern, Offset: perr.Position().Offset, Msg: perr.Message()}
	}
	return &Error{Pattern: pattern, Msg: err.Error()}
}

// lowerer turns the participle grammar tree into a Node tree.
type lowerer struct {
	pattern string
}

func span(start, end lexer.Position) Span {
	return Span{Start: start.Offset, End: end.Offset}
}

func (l *lowerer) alternation(g *alternationGrammar) (Node, error) {
	if len(g.Branches) == 1 {
		return l.concat(g.Branches[0])
	}
	alt := &Alternation{Loc: span(g.Pos, g.EndPos)}
	for _, b := range g.Branches {
		n, err := l.concat(b)
		if err != nil {
			return nil, err
		}
		alt.Alternatives = append(alt.Alternatives, n)
	}
	return alt, nil
}

func (l *lowerer) concat(g *concatGrammar) (Node, error) {
	switch len(g.Pieces) {
	case 0:
		return &Empty{Loc: span(g.Pos, g.EndPos)}, nil
	case 1:
		return l.piece(g.Pieces[0])
	}
	cat := &Concat{Loc: span(g.Pos, g.EndPos)}
	for _, p := range g.Pieces {
		n, err := l.piece(p)
		if err != nil {
			return nil, err
		}
		cat.Items = append(cat.Items, n)
	}
	return cat, nil
}

func (l *lowerer) piece(g *pieceGrammar) (Node, error) {
	sub, err := l.atom(g.Atom)
	if err != nil || g.Op == nil {
		return sub, err
	}
	rep := &Repetition{Loc: span(g.Pos, g.EndPos), Greedy: !g.Op.Lazy, Sub: sub}
	switch {
	case g.Op.Counted != nil:
		rep.Op = RepetitionOp{Kind: g.Op.Counted.kind, Min: g.Op.Counted.min, Max: g.Op.Counted.max}
	case g.Op.Kind == "*":
		rep.Op = RepetitionOp{Kind: ZeroOrMore}
	case g.Op.Kind == "+":
		rep.Op = RepetitionOp{Kind: OneOrMore}
	case g.Op.Kind == "?":
		rep.Op = RepetitionOp{Kind: ZeroOrOne}
	default:
		return nil, l.errorf(g.Pos.Offset, "unknown quantifier %q", g.Op.Kind)
	}
	return rep, nil
}

func (l *lowerer) atom(g *atomGrammar) (Node, error) {
	loc := span(g.Pos, g.EndPos)
	switch {
	case g.Group != nil:
		sub, err := l.alternation(g.Group)
		if err != nil {
			return nil, err
		}
		return &Group{Loc: loc, Sub: sub}, nil
	case g.Class != nil:
		return l.class(g.Class)
	case g.Perl != nil:
		kind, negated := perlKind(*g.Perl)
		return &PerlClass{Loc: loc, Kind: kind, Negated: negated}, nil
	case g.Assertion != nil:
		return &Assertion{Loc: loc, Kind: assertionKinds[*g.Assertion]}, nil
	case g.Backref != nil:
		return &Backreference{Loc: loc, Index: int((*g.Backref)[1] - '0')}, nil
	case g.Dot:
		return &Dot{Loc: loc}, nil
	case g.Literal != nil:
		return &Literal{Loc: loc, Char: rune(*g.Literal)}, nil
	}
	return nil, l.errorf(loc.Start, "empty atom")
}

var assertionKinds = map[string]AssertionKind{
	"^":  StartLine,
	"$":  EndLine,
	`\A`: StartText,
	`\z`: EndText,
	`\b`: WordBoundary,
	`\B`: NotWordBoundary,
}

// perlKind decodes one of \d \D \s \S \w \W.
func perlKind(tok string) (PerlKind, bool) {
	c := tok[len(tok)-1]
	negated := c >= 'A' && c <= 'Z'
	switch c | 0x20 {
	case 'd':
		return Digit, negated
	case 's':
		return Space, negated
	default:
		return Word, negated
	}
}

func (l *lowerer) class(g *classGrammar) (Node, error) {
	open := g.Open
	var lead []ClassSetItem
	if g.OpenBracket != "" {
		open = strings.TrimSuffix(g.OpenBracket, "]")
		at := g.Pos.Offset + len(open)
		if g.Lead != nil {
			hi := rune(g.Lead.End)
			if hi < ']' {
				return nil, l.errorf(at, "invalid class range %q-%q", ']', hi)
			}
			lead = append(lead, &ClassSetRange{Loc: Span{Start: at, End: g.Lead.EndPos.Offset}, Start: ']', End: hi})
		} else {
			lead = append(lead, &ClassSetLiteral{Loc: Span{Start: at, End: at + 1}, Char: ']'})
		}
	}

	var set ClassSet
	set, err := l.classItems(lead, g.Items, g.Pos.Offset+len(open), firstOpOffset(g))
	if err != nil {
		return nil, err
	}
	for _, op := range g.Ops {
		end := op.EndPos.Offset
		rhs, err := l.classItems(nil, op.Items, op.Pos.Offset+len(op.Op), end)
		if err != nil {
			return nil, err
		}
		set = &ClassSetBinaryOp{
			Loc:  Span{Start: set.Span().Start, End: end},
			Kind: classSetOps[op.Op],
			LHS:  set,
			RHS:  rhs,
		}
	}
	return &BracketedClass{
		Loc:     span(g.Pos, g.EndPos),
		Negated: open == "[^",
		Set:     set,
	}, nil
}

var classSetOps = map[string]ClassSetOpKind{
	"&&": Intersection,
	"--": Difference,
	"~~": SymmetricDifference,
}

// firstOpOffset is where the leading run of class items ends.
func firstOpOffset(g *classGrammar) int {
	if len(g.Ops) > 0 {
		return g.Ops[0].Pos.Offset
	}
	// the closing bracket is the last byte of the class
	return g.EndPos.Offset - 1
}

// classItems lowers a run of items spanning [start, end), after the already
// lowered lead. A single item stands on its own, anything else becomes a
// union.
func (l *lowerer) classItems(lead []ClassSetItem, items []*classItemGrammar, start, end int) (ClassSetItem, error) {
	out := append(make([]ClassSetItem, 0, len(lead)+len(items)), lead...)
	for _, it := range items {
		item, err := l.classItem(it)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if len(out) == 1 {
		return out[0], nil
	}
	return &ClassSetUnion{Loc: Span{Start: start, End: end}, Items: out}, nil
}

func (l *lowerer) classItem(g *classItemGrammar) (ClassSetItem, error) {
	loc := span(g.Pos, g.EndPos)
	switch {
	case g.Range != nil:
		lo, hi := rune(g.Range.Start), rune(g.Range.End)
		if lo > hi {
			return nil, l.errorf(loc.Start, "invalid class range %q-%q", lo, hi)
		}
		return &ClassSetRange{Loc: loc, Start: lo, End: hi}, nil
	case g.Perl != nil:
		kind, negated := perlKind(*g.Perl)
		return &ClassSetPerl{Loc: loc, Kind: kind, Negated: negated}, nil
	case g.Literal != nil:
		return &ClassSetLiteral{Loc: loc, Char: rune(*g.Literal)}, nil
	}
	return nil, l.errorf(loc.Start, "empty class item")
}

func (l *lowerer) errorf(offset int, format string, args ...any) *Error {
	return &Error{Pattern: l.pattern, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}
