// Package dfabuild orchestrates the pattern/nfa/dfa pipeline: collect
// patterns under accept tags, then build a minimized, packed DFA for
// one or more languages (subsets of tags) at once, sharing states
// across languages wherever subset construction and minimization allow
// it. It is the one place callers touch to go from patterns to a
// matchable automaton.
package dfabuild

import (
	"github.com/nobigsoftware/dfalex-go/cache"
	"github.com/nobigsoftware/dfalex-go/charset"
	"github.com/nobigsoftware/dfalex-go/dfa"
	"github.com/nobigsoftware/dfalex-go/nfa"
	"github.com/nobigsoftware/dfalex-go/pattern"
)

// Language names a subset of accept tags: a build for a Language
// includes every pattern registered under a tag the Language contains.
type Language[T comparable] map[T]bool

// AllTags returns a Language containing every tag currently registered
// on b, for building a single DFA that matches everything at once.
func (b *Builder[T]) AllTags() Language[T] {
	lang := make(Language[T], len(b.order))
	for _, tag := range b.order {
		lang[tag] = true
	}
	return lang
}

// BuildOption configures a Builder at construction time.
type BuildOption[T comparable] func(*Builder[T])

// WithCache makes b consult and populate cache for matcher builds
// (Build). Reverse-finder builds always use bool accept tags
// regardless of T, so they're cached separately; see WithReverseCache.
func WithCache[T comparable](c cache.BuilderCache[T]) BuildOption[T] {
	return func(b *Builder[T]) { b.cache = c }
}

// WithReverseCache makes b consult and populate cache for
// BuildReverseFinders builds.
func WithReverseCache[T comparable](c cache.BuilderCache[bool]) BuildOption[T] {
	return func(b *Builder[T]) { b.reverseCache = c }
}

// WithAmbiguityResolver sets the default resolver Build uses when
// called with a nil resolve argument. Without this option, Build falls
// back to dfa.DefaultResolver.
func WithAmbiguityResolver[T comparable](resolve dfa.AmbiguityResolver[T]) BuildOption[T] {
	return func(b *Builder[T]) { b.defaultResolve = resolve }
}

// Builder accumulates patterns under accept tags in insertion order,
// then builds DFAs for one or more languages over those tags.
// Grounded on DfaBuilder.java's LinkedHashMap<MATCHRESULT, List<Matchable>>
// and its build/buildReverseFinders orchestration (spec.md 4.5); Go has
// no ordered map, so insertion order is tracked explicitly via order.
type Builder[T comparable] struct {
	cache          cache.BuilderCache[T]
	reverseCache   cache.BuilderCache[bool]
	defaultResolve dfa.AmbiguityResolver[T]

	order []T
	index map[T]int
	lists [][]pattern.Pattern
}

// NewBuilder returns an empty Builder.
func NewBuilder[T comparable](opts ...BuildOption[T]) *Builder[T] {
	b := &Builder[T]{index: make(map[T]int)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddPattern appends pat to tag's pattern list.
func (b *Builder[T]) AddPattern(pat pattern.Pattern, tag T) {
	i, ok := b.index[tag]
	if !ok {
		i = len(b.order)
		b.index[tag] = i
		b.order = append(b.order, tag)
		b.lists = append(b.lists, nil)
	}
	b.lists[i] = append(b.lists[i], pat)
}

// Clear forgets every pattern added to b.
func (b *Builder[T]) Clear() {
	b.order = nil
	b.index = make(map[T]int)
	b.lists = nil
}

// Build constructs one minimized, packed DFA matching every language in
// languages simultaneously, sharing states across them. The result's
// Starts slice has one entry per language, in the same order.
func (b *Builder[T]) Build(languages []Language[T], resolve dfa.AmbiguityResolver[T]) (*dfa.PackedDfa[T], error) {
	if len(languages) == 0 {
		return &dfa.PackedDfa[T]{}, nil
	}
	if resolve == nil {
		resolve = b.defaultResolve
	}

	if b.cache != nil {
		key := b.cacheKey(cache.DfaTypeMatcher, languages)
		if packed, ok := b.cache.Get(key); ok {
			return packed, nil
		}
		packed, err := b.buildRaw(languages, resolve)
		if err != nil {
			return nil, err
		}
		b.cache.Put(key, packed)
		return packed, nil
	}

	return b.buildRaw(languages, resolve)
}

// buildRaw is DfaBuilder.java's _build: one NFA, one start state per
// language, and for each tag one accept state whose match-start (the
// pattern's fragment start, or a union state over several patterns) is
// ε-linked from every language start whose language contains that tag.
func (b *Builder[T]) buildRaw(languages []Language[T], resolve dfa.AmbiguityResolver[T]) (*dfa.PackedDfa[T], error) {
	nb := nfa.NewBuilder[T]()
	starts := make([]nfa.StateID, len(languages))
	for i := range languages {
		starts[i] = nb.NewState()
		nb.AddStart(starts[i])
	}

	for i, tag := range b.order {
		patList := b.lists[i]
		if len(patList) == 0 {
			continue
		}
		matchState := nfa.InvalidState
		for li, lang := range languages {
			if !lang[tag] {
				continue
			}
			if matchState == nfa.InvalidState {
				accept := nb.NewState()
				nb.SetAccept(accept, tag)
				if len(patList) > 1 {
					union := nb.NewState()
					for _, p := range patList {
						nb.AddEpsilonEdge(union, pattern.AddToNFA(p, nb, accept))
					}
					matchState = union
				} else {
					matchState = pattern.AddToNFA(patList[0], nb, accept)
				}
			}
			nb.AddEpsilonEdge(starts[li], matchState)
		}
	}

	n, err := nb.Build()
	if err != nil {
		return nil, err
	}
	raw, err := dfa.BuildRaw(n, starts, resolve)
	if err != nil {
		return nil, err
	}
	return dfa.Pack(dfa.Minimize(raw)), nil
}

// BuildReverseFinders builds one DFA, accepting bool true, whose start
// states (one per language, same order as languages) flag every
// position where a right-to-left scan has just crossed the start of a
// non-empty match for some pattern in that language.
func (b *Builder[T]) BuildReverseFinders(languages []Language[T]) (*dfa.PackedDfa[bool], error) {
	if len(languages) == 0 {
		return &dfa.PackedDfa[bool]{}, nil
	}

	if b.reverseCache != nil {
		key := b.cacheKey(cache.DfaTypeReverse, languages)
		if packed, ok := b.reverseCache.Get(key); ok {
			return packed, nil
		}
		packed, err := b.buildReverseRaw(languages)
		if err != nil {
			return nil, err
		}
		b.reverseCache.Put(key, packed)
		return packed, nil
	}

	return b.buildReverseRaw(languages)
}

func (b *Builder[T]) buildReverseRaw(languages []Language[T]) (*dfa.PackedDfa[bool], error) {
	nb := nfa.NewBuilder[bool]()
	end := nb.NewState()
	nb.SetAccept(end, true)

	starts := make([]nfa.StateID, len(languages))
	for i := range languages {
		starts[i] = nb.NewState()
	}

	for i, tag := range b.order {
		patList := b.lists[i]
		if len(patList) == 0 {
			continue
		}
		for li, lang := range languages {
			if !lang[tag] {
				continue
			}
			for _, p := range patList {
				st := pattern.AddToNFA(p.Reversed(), nb, end)
				nb.AddEpsilonEdge(starts[li], st)
			}
		}
	}

	finalStarts := make([]nfa.StateID, len(starts))
	for i, s := range starts {
		disemptified := nb.Disemptify(s)
		finalStarts[i] = pattern.AddToNFA(pattern.MaybeRepeat(pattern.Char(charset.All)), nb, disemptified)
		nb.AddStart(finalStarts[i])
	}

	n, err := nb.Build()
	if err != nil {
		return nil, err
	}
	raw, err := dfa.BuildRaw(n, finalStarts, dfa.DefaultResolver[bool])
	if err != nil {
		return nil, err
	}
	return dfa.Pack(dfa.Minimize(raw)), nil
}

// cacheKey builds a build-cache key from b's pattern lists restricted
// to the tags languages actually reference, per spec.md 6.3.
func (b *Builder[T]) cacheKey(dtype cache.DfaType, languages []Language[T]) string {
	numLangs := len(languages)
	var entries []cache.TagEntry[T]
	for i, tag := range b.order {
		patList := b.lists[i]
		if len(patList) == 0 {
			continue
		}
		included := false
		var membership uint64
		for li, lang := range languages {
			if lang[tag] {
				included = true
				if numLangs > 1 {
					membership |= 1 << uint(li)
				}
			}
		}
		if !included {
			continue
		}
		entries = append(entries, cache.TagEntry[T]{Tag: tag, Patterns: patList, Membership: membership})
	}
	return cache.Key(dtype, numLangs, entries)
}
