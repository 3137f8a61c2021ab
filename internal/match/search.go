package match

import (
	"unicode/utf8"

	"regexnfa/internal/automaton"
)

// Match is a matched substring as a half-open byte range.
type Match struct {
	Start, End int
}

// longestAt returns the length in bytes of the longest prefix of s accepted
// by a, or -1 if there is none.
func longestAt(a *automaton.Automaton, s string) int {
	cur := EpsilonClosure(a, StateSet{a.Start(): {}})
	longest := -1
	if hasAccepting(a, cur) {
		longest = 0
	}
	for pos, r := range s {
		cur = EpsilonClosure(a, Step(a, cur, r))
		if len(cur) == 0 {
			break
		}
		if hasAccepting(a, cur) {
			longest = pos + utf8.RuneLen(r)
		}
	}
	return longest
}

// FindAll returns the leftmost-longest non-overlapping matches of a in text.
// Empty matches are not reported.
func FindAll(a *automaton.Automaton, text string) []Match {
	if a.Start() == automaton.NoState {
		return nil
	}
	var out []Match
	for i := 0; i < len(text); {
		if l := longestAt(a, text[i:]); l > 0 {
			out = append(out, Match{Start: i, End: i + l})
			i += l
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return out
}
