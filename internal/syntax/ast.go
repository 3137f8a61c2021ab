package syntax

// Span is a half-open range of byte offsets into the parsed pattern.
type Span struct {
	Start, End int
}

// Node is a node of the regular expression syntax tree.
//
// The set of node types is closed: Empty, Literal, Dot, Assertion,
// Backreference, Repetition, Group, Concat, Alternation and the Class,
// ClassSet and ClassSetItem implementations below.
type Node interface {
	Span() Span
	// String renders the node back to pattern syntax.
	String() string
	node()
}

// Empty matches the empty string: the empty pattern, an empty alternative
// or an empty group.
type Empty struct {
	Loc Span
}

// Literal matches a single character.
type Literal struct {
	Loc  Span
	Char rune
}

// Dot matches any character.
type Dot struct {
	Loc Span
}

type AssertionKind int

const (
	StartLine AssertionKind = iota // ^
	EndLine                        // $
	StartText                      // \A
	EndText                        // \z
	WordBoundary                   // \b
	NotWordBoundary                // \B
)

// Assertion is a zero-width assertion.
type Assertion struct {
	Loc  Span
	Kind AssertionKind
}

// Backreference refers to the text matched by a capture group, \1 to \9.
type Backreference struct {
	Loc   Span
	Index int
}

type RepetitionKind int

const (
	ZeroOrOne  RepetitionKind = iota // ?
	ZeroOrMore                       // *
	OneOrMore                        // +
	Exactly                          // {n}
	AtLeast                          // {n,}
	Bounded                          // {n,m}
)

// RepetitionOp is the quantifier of a Repetition. Min and Max are only
// meaningful for the counted kinds.
type RepetitionOp struct {
	Kind     RepetitionKind
	Min, Max int
}

// Repetition applies a quantifier to Sub.
type Repetition struct {
	Loc    Span
	Op     RepetitionOp
	Greedy bool
	Sub    Node
}

// Group is a parenthesised sub-expression.
type Group struct {
	Loc Span
	Sub Node
}

// Concat matches its items one after another.
type Concat struct {
	Loc   Span
	Items []Node
}

// Alternation matches any one of its alternatives.
type Alternation struct {
	Loc          Span
	Alternatives []Node
}

// Class is a character class node: BracketedClass or PerlClass.
type Class interface {
	Node
	class()
}

type PerlKind int

const (
	Digit PerlKind = iota // \d
	Space                 // \s
	Word                  // \w
)

// PerlClass is one of \d \D \s \S \w \W.
type PerlClass struct {
	Loc     Span
	Kind    PerlKind
	Negated bool
}

// BracketedClass is a [...] class.
type BracketedClass struct {
	Loc     Span
	Negated bool
	Set     ClassSet
}

// ClassSet is the content of a bracketed class: a single ClassSetItem or a
// ClassSetBinaryOp.
type ClassSet interface {
	Node
	classSet()
}

type ClassSetOpKind int

const (
	Intersection        ClassSetOpKind = iota // &&
	Difference                                // --
	SymmetricDifference                       // ~~
)

// ClassSetBinaryOp combines two class sets.
type ClassSetBinaryOp struct {
	Loc  Span
	Kind ClassSetOpKind
	LHS  ClassSet
	RHS  ClassSet
}

// ClassSetItem is a single item of a class set. Every item is also a set.
type ClassSetItem interface {
	ClassSet
	classSetItem()
}

// ClassSetLiteral is a single character inside brackets.
type ClassSetLiteral struct {
	Loc  Span
	Char rune
}

// ClassSetRange is an inclusive range such as a-z.
type ClassSetRange struct {
	Loc        Span
	Start, End rune
}

// ClassSetPerl is a Perl class inside brackets.
type ClassSetPerl struct {
	Loc     Span
	Kind    PerlKind
	Negated bool
}

// ClassSetUnion is a sequence of two or more items, or none.
type ClassSetUnion struct {
	Loc   Span
	Items []ClassSetItem
}

func (n *Empty) Span() Span            { return n.Loc }
func (n *Literal) Span() Span          { return n.Loc }
func (n *Dot) Span() Span              { return n.Loc }
func (n *Assertion) Span() Span        { return n.Loc }
func (n *Backreference) Span() Span    { return n.Loc }
func (n *Repetition) Span() Span       { return n.Loc }
func (n *Group) Span() Span            { return n.Loc }
func (n *Concat) Span() Span           { return n.Loc }
func (n *Alternation) Span() Span      { return n.Loc }
func (n *PerlClass) Span() Span        { return n.Loc }
func (n *BracketedClass) Span() Span   { return n.Loc }
func (n *ClassSetBinaryOp) Span() Span { return n.Loc }
func (n *ClassSetLiteral) Span() Span  { return n.Loc }
func (n *ClassSetRange) Span() Span    { return n.Loc }
func (n *ClassSetPerl) Span() Span     { return n.Loc }
func (n *ClassSetUnion) Span() Span    { return n.Loc }

func (*Empty) node()            {}
func (*Literal) node()          {}
func (*Dot) node()              {}
func (*Assertion) node()        {}
func (*Backreference) node()    {}
func (*Repetition) node()       {}
func (*Group) node()            {}
func (*Concat) node()           {}
func (*Alternation) node()      {}
func (*PerlClass) node()        {}
func (*BracketedClass) node()   {}
func (*ClassSetBinaryOp) node() {}
func (*ClassSetLiteral) node()  {}
func (*ClassSetRange) node()    {}
func (*ClassSetPerl) node()     {}
func (*ClassSetUnion) node()    {}

func (*PerlClass) class()      {}
func (*BracketedClass) class() {}

func (*ClassSetBinaryOp) classSet() {}
func (*ClassSetLiteral) classSet()  {}
func (*ClassSetRange) classSet()    {}
func (*ClassSetPerl) classSet()     {}
func (*ClassSetUnion) classSet()    {}

func (*ClassSetLiteral) classSetItem() {}
func (*ClassSetRange) classSetItem()   {}
func (*ClassSetPerl) classSetItem()    {}
func (*ClassSetUnion) classSetItem()   {}
