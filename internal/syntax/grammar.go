package syntax

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Inside brackets most operators are plain characters, hence the Class state.
// A ] right after [ or [^ is a literal, so it is lexed with the opening.
var regexLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "PerlClass", Pattern: `\\[dDsSwW]`},
		{Name: "Assertion", Pattern: `\\[bBAz]|[\^$]`},
		{Name: "Backref", Pattern: `\\[1-9]`},
		{Name: "Escaped", Pattern: `\\[\s\S]`},
		{Name: "Counted", Pattern: `\{[0-9]+(?:,[0-9]*)?\}`},
		{Name: "ClassOpenBracket", Pattern: `\[\^?\]`, Action: lexer.Push("Class")},
		{Name: "ClassOpen", Pattern: `\[\^?`, Action: lexer.Push("Class")},
		{Name: "Operator", Pattern: `[|*+?(){}.]`},
		{Name: "Char", Pattern: `[^\\]`},
	},
	"Class": {
		{Name: "ClassClose", Pattern: `\]`, Action: lexer.Pop()},
		{Name: "ClassOp", Pattern: `&&|--|~~`},
		{Name: "ClassPerl", Pattern: `\\[dDsSwW]`},
		{Name: "ClassEscaped", Pattern: `\\[\s\S]`},
		{Name: "Dash", Pattern: `-`},
		{Name: "ClassChar", Pattern: `[^\\]`},
	},
})

type alternationGrammar struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Branches []*concatGrammar `parser:"@@ ( '|' @@ )*"`
}

type concatGrammar struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Pieces []*pieceGrammar `parser:"@@*"`
}

type pieceGrammar struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Atom *atomGrammar       `parser:"@@"`
	Op   *quantifierGrammar `parser:"@@?"`
}

type quantifierGrammar struct {
	Kind    string   `parser:"(   @('*' | '+' | '?')"`
	Counted *counted `parser:"  | @Counted )"`
	Lazy    bool     `parser:"@'?'?"`
}

type atomGrammar struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Group     *alternationGrammar `parser:"  '(' @@ ')'"`
	Class     *classGrammar       `parser:"| @@"`
	Perl      *string             `parser:"| @PerlClass"`
	Assertion *string             `parser:"| @Assertion"`
	Backref   *string             `parser:"| @Backref"`
	Dot       bool                `parser:"| @'.'"`
	Literal   *char               `parser:"| @(Char | Escaped)"`
}

type classGrammar struct {
	Pos    lexer.Position
	EndPos lexer.Position

	OpenBracket string              `parser:"(   @ClassOpenBracket"`
	Lead        *classLeadGrammar   `parser:"    @@?"`
	Open        string              `parser:"  | @ClassOpen )"`
	Items       []*classItemGrammar `parser:"@@*"`
	Ops         []*classOpGrammar   `parser:"@@* ClassClose"`
}

// classLeadGrammar completes a range starting at a leading ], as in []-a].
type classLeadGrammar struct {
	Pos    lexer.Position
	EndPos lexer.Position

	End char `parser:"Dash @(ClassChar | ClassEscaped)"`
}

type classOpGrammar struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Op    string              `parser:"@ClassOp"`
	Items []*classItemGrammar `parser:"@@*"`
}

type classItemGrammar struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Range   *classRangeGrammar `parser:"  @@"`
	Perl    *string            `parser:"| @ClassPerl"`
	Literal *char              `parser:"| @(ClassChar | ClassEscaped | Dash)"`
}

type classRangeGrammar struct {
	Start char `parser:"@(ClassChar | ClassEscaped) Dash"`
	End   char `parser:"@(ClassChar | ClassEscaped)"`
}

// char is a single, possibly backslash-escaped, character token.
type char rune

func (c *char) Capture(values []string) error {
	s := strings.Join(values, "")
	if len(s) > 1 && s[0] == '\\' {
		s = s[1:]
	}
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) {
		return fmt.Errorf("invalid character %q", s)
	}
	*c = char(r)
	return nil
}

// counted is a {n}, {n,} or {n,m} quantifier.
type counted struct {
	kind     RepetitionKind
	min, max int
}

func (c *counted) Capture(values []string) error {
	body := strings.TrimSuffix(strings.TrimPrefix(strings.Join(values, ""), "{"), "}")
	lo, hi, hasComma := strings.Cut(body, ",")
	min, err := strconv.Atoi(lo)
	if err != nil {
		return fmt.Errorf("invalid repetition count %q", lo)
	}
	switch {
	case !hasComma:
		*c = counted{kind: Exactly, min: min, max: min}
	case hi == "":
		*c = counted{kind: AtLeast, min: min, max: -1}
	default:
		max, err := strconv.Atoi(hi)
		if err != nil {
			return fmt.Errorf("invalid repetition count %q", hi)
		}
		if max < min {
			return fmt.Errorf("invalid repetition range {%d,%d}", min, max)
		}
		*c = counted{kind: Bounded, min: min, max: max}
	}
	return nil
}

var grammar = participle.MustBuild[alternationGrammar](
	participle.Lexer(regexLexer),
	participle.UseLookahead(4),
)
