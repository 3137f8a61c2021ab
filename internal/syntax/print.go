package syntax

import (
	"strconv"
	"strings"
)

const (
	rootMeta  = `\.+*?()|[]{}^$`
	classMeta = `\[]-^&~`
)

func escape(r rune, meta string) string {
	if strings.ContainsRune(meta, r) {
		return `\` + string(r)
	}
	return string(r)
}

func (n *Empty) String() string   { return "" }
func (n *Literal) String() string { return escape(n.Char, rootMeta) }
func (n *Dot) String() string     { return "." }

func (n *Assertion) String() string {
	for tok, kind := range assertionKinds {
		if kind == n.Kind {
			return tok
		}
	}
	return ""
}

func (n *Backreference) String() string { return `\` + strconv.Itoa(n.Index) }

func (op RepetitionOp) String() string {
	switch op.Kind {
	case ZeroOrOne:
		return "?"
	case ZeroOrMore:
		return "*"
	case OneOrMore:
		return "+"
	case Exactly:
		return "{" + strconv.Itoa(op.Min) + "}"
	case AtLeast:
		return "{" + strconv.Itoa(op.Min) + ",}"
	default:
		return "{" + strconv.Itoa(op.Min) + "," + strconv.Itoa(op.Max) + "}"
	}
}

func (n *Repetition) String() string {
	s := n.Sub.String() + n.Op.String()
	if !n.Greedy {
		s += "?"
	}
	return s
}

func (n *Group) String() string { return "(" + n.Sub.String() + ")" }

func (n *Concat) String() string {
	var b strings.Builder
	for _, it := range n.Items {
		b.WriteString(it.String())
	}
	return b.String()
}

func (n *Alternation) String() string {
	parts := make([]string, len(n.Alternatives))
	for i, alt := range n.Alternatives {
		parts[i] = alt.String()
	}
	return strings.Join(parts, "|")
}

func perlString(kind PerlKind, negated bool) string {
	c := [...]byte{Digit: 'd', Space: 's', Word: 'w'}[kind]
	if negated {
		c -= 'a' - 'A'
	}
	return `\` + string(c)
}

func (n *PerlClass) String() string { return perlString(n.Kind, n.Negated) }

func (n *BracketedClass) String() string {
	open := "["
	if n.Negated {
		open = "[^"
	}
	return open + n.Set.String() + "]"
}

func (n *ClassSetBinaryOp) String() string {
	op := [...]string{Intersection: "&&", Difference: "--", SymmetricDifference: "~~"}[n.Kind]
	return n.LHS.String() + op + n.RHS.String()
}

func (n *ClassSetLiteral) String() string { return escape(n.Char, classMeta) }

func (n *ClassSetRange) String() string {
	return escape(n.Start, classMeta) + "-" + escape(n.End, classMeta)
}

func (n *ClassSetPerl) String() string { return perlString(n.Kind, n.Negated) }

func (n *ClassSetUnion) String() string {
	var b strings.Builder
	for _, it := range n.Items {
		b.WriteString(it.String())
	}
	return b.String()
}
