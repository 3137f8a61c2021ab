package translator

import (
	"errors"
	"fmt"

	"regexnfa/internal/syntax"
)

// ErrorKind classifies translation failures.
type ErrorKind int

const (
	// ParserError wraps a *syntax.Error from the front-end.
	ParserError ErrorKind = iota
	UnsupportedAst
	UnsupportedClass
	UnsupportedClassSet
	UnsupportedClassSetItem
)

func (k ErrorKind) String() string {
	switch k {
	case ParserError:
		return "parser error"
	case UnsupportedAst:
		return "unsupported ast"
	case UnsupportedClass:
		return "unsupported class"
	case UnsupportedClassSet:
		return "unsupported class set"
	case UnsupportedClassSetItem:
		return "unsupported class set item"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ErrUnsupported matches, through errors.Is, every error whose kind is one of
// the Unsupported kinds.
var ErrUnsupported = errors.New("unsupported construct")

// Error is returned by Translate and Compile. Node is the offending node for
// the Unsupported kinds; Err is the parse error for ParserError.
type Error struct {
	Kind ErrorKind
	Node syntax.Node
	Err  error
}

func (e *Error) Error() string {
	var detail string
	switch e.Kind {
	case ParserError:
		detail = e.Err.Error()
	case UnsupportedAst:
		detail = fmt.Sprintf("%s is not a supported ast kind", describe(e.Node))
	case UnsupportedClass:
		detail = fmt.Sprintf("%s is not a supported class kind", describe(e.Node))
	case UnsupportedClassSet:
		detail = fmt.Sprintf("%s is not a supported class set kind", describe(e.Node))
	case UnsupportedClassSetItem:
		detail = fmt.Sprintf("%s is not a supported class set item kind", describe(e.Node))
	default:
		detail = e.Kind.String()
	}
	return "error when translating regular expression: " + detail
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	return target == ErrUnsupported && e.Kind != ParserError
}

func unsupported(kind ErrorKind, n syntax.Node) *Error {
	return &Error{Kind: kind, Node: n}
}

func describe(n syntax.Node) string {
	var name string
	switch n := n.(type) {
	case *syntax.Dot:
		name = "dot"
	case *syntax.Assertion:
		name = "assertion"
	case *syntax.Backreference:
		name = "backreference"
	case *syntax.Repetition:
		if !n.Greedy {
			name = "lazy repetition"
		} else {
			name = "counted repetition"
		}
	case *syntax.PerlClass:
		name = "perl class"
	case *syntax.BracketedClass:
		name = "bracketed class"
	case *syntax.ClassSetBinaryOp:
		name = "class set operation"
	case *syntax.ClassSetLiteral:
		name = "class literal"
	case *syntax.ClassSetPerl:
		name = "class perl item"
	case *syntax.ClassSetUnion:
		name = "class union"
	case nil:
		return "<nil>"
	default:
		name = fmt.Sprintf("%T", n)
	}
	sp := n.Span()
	return fmt.Sprintf("%s %q at %d..%d", name, n.String(), sp.Start, sp.End)
}
