// Package prefilter provides an Aho-Corasick search path for the common
// case of large keyword/operator tables, where most of a pattern set's
// tags reduce to a fixed literal string rather than a general regular
// language. It is driven by match.FindAllLiterals, separately from
// match.StringSearcher, which does not consult it. Grounded on
// meta.Engine's "large literal alternation" Aho-Corasick bypass (meta.go's findAhoCorasick), adapted from a
// byte-oriented ASCII/UTF-8 automaton to the UTF-16LE encoding this
// module's CharRange operates on.
package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/nobigsoftware/dfalex-go/charset"
)

// MinLiterals is the smallest literal count worth building an
// automaton for; below it, the reverse-finder DFA is already fast
// enough and the extra structure isn't worth its build cost. A set of
// exactly MinLiterals literals qualifies.
const MinLiterals = 8

// LiteralSet wraps an Aho-Corasick automaton over a collection of
// fixed-literal patterns, giving a multi-pattern O(n) search over
// literal-only tags without touching the DFA. A matched
// span's Index is recovered by looking its exact code units up in a
// side table rather than trusting the automaton to report which
// pattern fired, since this module has no local copy of
// github.com/coregx/ahocorasick to confirm a per-match pattern-id field
// exists on its Match type beyond Start/End (both of which meta.go
// does use directly).
type LiteralSet struct {
	auto   *ahocorasick.Automaton
	byText map[string]int
}

// Literal is one fixed code-unit sequence contributing to a LiteralSet,
// tagged with the index of whatever accept value it corresponds to
// (e.g. a position in a pattern list) so a caller can recover it from
// a match.
type Literal struct {
	CodeUnits []charset.Char
	Index     int
}

// Build compiles an Aho-Corasick automaton over lits' UTF-16LE
// encodings. Returns (nil, false) if there are fewer than MinLiterals
// entries, or if two literals share identical content (the index
// lookup would be ambiguous). Callers should fall back to the
// reverse-finder path in either case rather than pay for an automaton
// that won't pull its weight or can't be trusted.
func Build(lits []Literal) (*LiteralSet, bool) {
	if len(lits) < MinLiterals {
		return nil, false
	}

	builder := ahocorasick.NewBuilder()
	byText := make(map[string]int, len(lits))
	for _, lit := range lits {
		enc := encodeUTF16LE(lit.CodeUnits)
		if _, dup := byText[string(enc)]; dup {
			return nil, false
		}
		byText[string(enc)] = lit.Index
		builder.AddPattern(enc)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, false
	}
	return &LiteralSet{auto: auto, byText: byText}, true
}

// Lookup recovers the Literal.Index of the entry matching text[start:end].
func (s *LiteralSet) Lookup(text []uint16, start, end int) (index int, ok bool) {
	idx, ok := s.byText[string(encodeUTF16LE(charsOf(text[start:end])))]
	return idx, ok
}

// FindFirst returns the code-unit start and end of the first literal
// occurrence in text at or after code-unit offset at, or ok=false if
// none occurs. The automaton operates on the UTF-16LE byte encoding
// internally; offsets are translated back to code units here so
// callers never see the byte-doubled form.
func (s *LiteralSet) FindFirst(text []uint16, at int) (start, end int, ok bool) {
	haystack := encodeUTF16LE(charsOf(text))
	m := s.auto.Find(haystack, at*2)
	if m == nil {
		return 0, 0, false
	}
	return m.Start / 2, m.End / 2, true
}

// IsMatch reports whether any literal in the set occurs anywhere in
// text.
func (s *LiteralSet) IsMatch(text []uint16) bool {
	return s.auto.IsMatch(encodeUTF16LE(charsOf(text)))
}

func charsOf(text []uint16) []charset.Char {
	out := make([]charset.Char, len(text))
	copy(out, text)
	return out
}

func encodeUTF16LE(units []charset.Char) []byte {
	out := make([]byte, len(units)*2)
	for i, u := range units {
		out[i*2] = byte(u)
		out[i*2+1] = byte(u >> 8)
	}
	return out
}
