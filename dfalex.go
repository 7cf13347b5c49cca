// Package dfalex builds minimized, packed DFAs from combinator-built
// patterns and drives them over UTF-16 text, the way coregex's root
// regex.go sits over meta.Engine: a thin façade that re-exports the
// common construction/driver surface (spec.md 6.1/6.2) so most callers
// never need to import pattern/nfa/dfa/dfabuild/match directly.
package dfalex

import (
	"github.com/nobigsoftware/dfalex-go/cache"
	"github.com/nobigsoftware/dfalex-go/charset"
	"github.com/nobigsoftware/dfalex-go/dfa"
	"github.com/nobigsoftware/dfalex-go/dfabuild"
	"github.com/nobigsoftware/dfalex-go/match"
	"github.com/nobigsoftware/dfalex-go/nfa"
	"github.com/nobigsoftware/dfalex-go/pattern"
	"github.com/nobigsoftware/dfalex-go/prefilter"
)

// Pattern construction API (spec.md 6.1).
type Pattern = pattern.Pattern

var (
	Char            = pattern.Char
	Seq             = pattern.Seq
	Alt             = pattern.Alt
	Repeat          = pattern.Repeat
	Repeat1         = pattern.Repeat1
	Maybe           = pattern.Maybe
	MaybeRepeat     = pattern.MaybeRepeat
	CaseInsensitive = pattern.CaseInsensitive
)

// Empty matches the empty string and nothing else.
var Empty = pattern.Empty

// CharRange construction API (spec.md 6.1).
type CharRange = charset.CharRange

var (
	All       = charset.All
	None      = charset.None
	Single    = charset.Single
	RangeOf   = charset.Range
	AnyOf     = charset.AnyOf
	NotAnyOf  = charset.NotAnyOf
	Category  = charset.Category
)

// Language names a subset of accept tags to build a DFA for. See
// dfabuild.Language.
type Language[T comparable] = dfabuild.Language[T]

// Builder accumulates patterns under accept tags and builds DFAs from
// them. See dfabuild.Builder.
type Builder[T comparable] = dfabuild.Builder[T]

// BuildOption configures a Builder. See dfabuild.BuildOption.
type BuildOption[T comparable] = dfabuild.BuildOption[T]

// NewBuilder returns an empty Builder.
func NewBuilder[T comparable](opts ...BuildOption[T]) *Builder[T] {
	return dfabuild.NewBuilder(opts...)
}

// WithCache makes a Builder consult and populate c for matcher builds.
func WithCache[T comparable](c cache.BuilderCache[T]) BuildOption[T] {
	return dfabuild.WithCache[T](c)
}

// WithReverseCache makes a Builder consult and populate c for
// reverse-finder builds.
func WithReverseCache[T comparable](c cache.BuilderCache[bool]) BuildOption[T] {
	return dfabuild.WithReverseCache[T](c)
}

// WithAmbiguityResolver sets a Builder's default resolver, consulted
// whenever Build is called with a nil resolve argument.
func WithAmbiguityResolver[T comparable](resolve AmbiguityResolver[T]) BuildOption[T] {
	return dfabuild.WithAmbiguityResolver[T](resolve)
}

// BuildFromNFA builds a minimized, packed DFA directly from a
// caller-assembled NFA, bypassing Builder's pattern bookkeeping. See
// dfabuild.BuildFromNFA.
func BuildFromNFA[T comparable](n *nfa.NFA[T], starts []nfa.StateID, resolve AmbiguityResolver[T], c BuilderCache[T], key string) (*PackedDfa[T], error) {
	return dfabuild.BuildFromNFA(n, starts, resolve, c, key)
}

// BuilderCache is the cache backend interface Build/BuildReverseFinders
// consult. See cache.BuilderCache.
type BuilderCache[T comparable] = cache.BuilderCache[T]

// MemoryCache is an in-process, concurrency-safe BuilderCache. See
// cache.MemoryCache.
type MemoryCache[T comparable] = cache.MemoryCache[T]

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache[T comparable]() *MemoryCache[T] {
	return cache.NewMemoryCache[T]()
}

// AmbiguityResolver picks or combines a single accept tag when more
// than one pattern can match at the same position. See
// dfa.AmbiguityResolver.
type AmbiguityResolver[T comparable] = dfa.AmbiguityResolver[T]

// DefaultResolver rejects ambiguity with an AmbiguityError.
func DefaultResolver[T comparable](tags []T) (T, error) {
	return dfa.DefaultResolver[T](tags)
}

// AmbiguityError reports that a DFA state's closure carried more than
// one accept tag and the resolver in effect could not pick one.
type AmbiguityError[T comparable] = dfa.AmbiguityError[T]

// PackedDfa is an immutable, minimized, match-ready automaton. See
// dfa.PackedDfa.
type PackedDfa[T comparable] = dfa.PackedDfa[T]

// DfaState is a (dfa, state) pair giving the state-local view of
// PackedDfa's driver API (spec.md 6.2): NextState, Match, and
// EnumerateTransitions without needing to thread the state index
// through every call.
type DfaState[T comparable] struct {
	dfa   *PackedDfa[T]
	state uint32
}

// StateAt returns the DfaState for state within d.
func StateAt[T comparable](d *PackedDfa[T], state uint32) DfaState[T] {
	return DfaState[T]{dfa: d, state: state}
}

// NextState returns the state c advances to, or ok=false if that move
// is dead.
func (s DfaState[T]) NextState(c charset.Char) (next DfaState[T], ok bool) {
	id, ok := s.dfa.NextState(s.state, c)
	if !ok {
		return DfaState[T]{}, false
	}
	return DfaState[T]{dfa: s.dfa, state: id}, true
}

// Match returns s's accept tag, if any.
func (s DfaState[T]) Match() (tag T, ok bool) {
	return s.dfa.Match(s.state)
}

// EnumerateTransitions calls f once per live interval out of s, in
// ascending order.
func (s DfaState[T]) EnumerateTransitions(f func(lo, hi charset.Char, target DfaState[T])) {
	s.dfa.EnumerateTransitions(s.state, func(lo, hi charset.Char, target uint32) {
		f(lo, hi, DfaState[T]{dfa: s.dfa, state: target})
	})
}

// StringMatcher finds the longest match starting at a given position.
// See match.StringMatcher.
type StringMatcher[T comparable] = match.StringMatcher[T]

// NewStringMatcher builds a StringMatcher over a forward DFA, starting
// at start.
func NewStringMatcher[T comparable](d *PackedDfa[T], start uint32) *StringMatcher[T] {
	return match.NewStringMatcher(d, start)
}

// Match is one (start, end, tag) search result. See match.Match.
type Match[T comparable] = match.Match[T]

// StringSearcher finds every non-overlapping, leftmost-longest match
// in a string. See match.StringSearcher.
type StringSearcher[T comparable] = match.StringSearcher[T]

// NewStringSearcher builds a searcher over a forward matcher DFA and
// its corresponding reverse-finder DFA.
func NewStringSearcher[T comparable](forward *PackedDfa[T], forwardStart uint32, reverse *PackedDfa[bool], reverseStart uint32) *StringSearcher[T] {
	return match.NewStringSearcher(forward, forwardStart, reverse, reverseStart)
}

// Replacement rewrites one match during SearchAndReplace. See
// match.Replacement.
type Replacement = match.Replacement

var (
	Ignore         = match.Ignore
	Delete         = match.Delete
	ToUpper        = match.ToUpper
	ToLower        = match.ToLower
	SpaceOrNewline = match.SpaceOrNewline
	Literal        = match.Literal
	Surround       = match.Surround
)

// SearchAndReplace runs searcher over text and rewrites each match
// with the Replacement resolve returns for its tag.
func SearchAndReplace[T comparable](searcher *StringSearcher[T], text []uint16, resolve func(tag T) Replacement) []uint16 {
	return match.SearchAndReplace(searcher, text, resolve)
}

// LiteralSet is an Aho-Corasick fast path for large fixed-literal
// tables. See prefilter.LiteralSet.
type LiteralSet = prefilter.LiteralSet

// FindAllLiterals runs the Aho-Corasick-only search path over set. See
// match.FindAllLiterals.
func FindAllLiterals[T comparable](set *LiteralSet, indexToTag map[int]T, text []uint16) []Match[T] {
	return match.FindAllLiterals(set, indexToTag, text)
}
