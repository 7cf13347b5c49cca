package dfabuild

import (
	"testing"

	"github.com/nobigsoftware/dfalex-go/cache"
	"github.com/nobigsoftware/dfalex-go/charset"
	"github.com/nobigsoftware/dfalex-go/dfa"
	"github.com/nobigsoftware/dfalex-go/match"
	"github.com/nobigsoftware/dfalex-go/nfa"
	"github.com/nobigsoftware/dfalex-go/pattern"
)

func u16(s string) []uint16 {
	units := make([]uint16, len(s))
	for i, c := range []byte(s) {
		units[i] = uint16(c)
	}
	return units
}

func word(s string) pattern.Pattern {
	ps := make([]pattern.Pattern, len(s))
	for i, c := range []byte(s) {
		ps[i] = pattern.Char(charset.Single(charset.Char(c)))
	}
	return pattern.Seq(ps...)
}

func TestBuilderMatchesLongestAlternative(t *testing.T) {
	b := NewBuilder[string]()
	b.AddPattern(word("if"), "IF")
	b.AddPattern(word("identifier"), "ID")

	packed, err := b.Build([]Language[string]{b.AllTags()}, dfa.DefaultResolver[string])
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	matcher := match.NewStringMatcher(packed, packed.Starts[0])
	end, tag, ok := matcher.MatchAt(u16("identifier"), 0)
	if !ok || tag != "ID" || end != len("identifier") {
		t.Fatalf("MatchAt(identifier) = (%d, %q, %v), want (%d, ID, true)", end, tag, ok, len("identifier"))
	}

	end, tag, ok = matcher.MatchAt(u16("if"), 0)
	if !ok || tag != "IF" || end != 2 {
		t.Fatalf("MatchAt(if) = (%d, %q, %v), want (2, IF, true)", end, tag, ok)
	}
}

func TestBuilderMultipleLanguagesShareStates(t *testing.T) {
	b := NewBuilder[string]()
	b.AddPattern(word("a"), "A")
	b.AddPattern(word("b"), "B")

	onlyA := Language[string]{"A": true}
	both := Language[string]{"A": true, "B": true}

	packed, err := b.Build([]Language[string]{onlyA, both}, dfa.DefaultResolver[string])
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(packed.Starts) != 2 {
		t.Fatalf("Starts has %d entries, want 2", len(packed.Starts))
	}

	matchFrom := func(start uint32, s string) (string, bool) {
		m := match.NewStringMatcher(packed, start)
		_, tag, ok := m.MatchAt(u16(s), 0)
		return tag, ok
	}

	if _, ok := matchFrom(packed.Starts[0], "b"); ok {
		t.Fatal("the A-only language unexpectedly matched 'b'")
	}
	if tag, ok := matchFrom(packed.Starts[1], "b"); !ok || tag != "B" {
		t.Fatalf("the A+B language failed to match 'b': (%q, %v)", tag, ok)
	}
}

func TestBuilderCacheHitAvoidsRebuild(t *testing.T) {
	memCache := cache.NewMemoryCache[string]()
	b := NewBuilder[string](WithCache[string](memCache))
	b.AddPattern(word("x"), "X")

	lang := []Language[string]{b.AllTags()}
	if _, err := b.Build(lang, nil); err != nil {
		t.Fatalf("Build (1): %v", err)
	}
	if _, err := b.Build(lang, nil); err != nil {
		t.Fatalf("Build (2): %v", err)
	}

	hits, misses := memCache.Stats()
	if hits != 1 || misses != 1 {
		t.Fatalf("Stats() = (%d, %d), want (1, 1)", hits, misses)
	}
}

func TestBuildReverseFindersFlagsNonEmptyMatchStarts(t *testing.T) {
	b := NewBuilder[string]()
	b.AddPattern(word("ab"), "AB")

	reverse, err := b.BuildReverseFinders([]Language[string]{b.AllTags()})
	if err != nil {
		t.Fatalf("BuildReverseFinders: %v", err)
	}

	text := u16("xxabxx")
	state := reverse.Starts[0]
	flagged := make([]bool, len(text))
	for i := len(text) - 1; i >= 0; i-- {
		next, ok := reverse.NextState(state, text[i])
		if !ok {
			t.Fatalf("reverse finder went dead at position %d", i)
		}
		state = next
		if _, accepted := reverse.Match(state); accepted {
			flagged[i] = true
		}
	}
	for i, want := range []bool{false, false, true, false, false, false} {
		if flagged[i] != want {
			t.Errorf("flagged[%d] = %v, want %v", i, flagged[i], want)
		}
	}
}

func TestBuilderDefaultAmbiguityResolverOption(t *testing.T) {
	resolveCalled := false
	resolve := func(tags []string) (string, error) {
		resolveCalled = true
		return tags[0], nil
	}

	b := NewBuilder[string](WithAmbiguityResolver[string](resolve))
	b.AddPattern(word("a"), "FIRST")
	b.AddPattern(word("a"), "SECOND")

	if _, err := b.Build([]Language[string]{b.AllTags()}, nil); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !resolveCalled {
		t.Fatal("WithAmbiguityResolver's resolver was never invoked for a nil Build argument")
	}
}

func TestBuildFromNFACachesByExplicitKey(t *testing.T) {
	nb := nfa.NewBuilder[string]()
	start := nb.NewState()
	accept := nb.NewState()
	nb.SetAccept(accept, "X")
	nb.AddCharEdges(start, charset.Single('x'), accept)
	nb.AddStart(start)
	n, err := nb.Build()
	if err != nil {
		t.Fatalf("nfa Build: %v", err)
	}

	memCache := cache.NewMemoryCache[string]()
	const key = "fixed-key"
	if _, err := BuildFromNFA(n, n.Starts(), nil, memCache, key); err != nil {
		t.Fatalf("BuildFromNFA (1): %v", err)
	}
	if _, err := BuildFromNFA(n, n.Starts(), nil, memCache, key); err != nil {
		t.Fatalf("BuildFromNFA (2): %v", err)
	}
	hits, misses := memCache.Stats()
	if hits != 1 || misses != 1 {
		t.Fatalf("Stats() = (%d, %d), want (1, 1)", hits, misses)
	}
}

func TestLiteralPrefilterRequiresMinimumLiterals(t *testing.T) {
	b := NewBuilder[string]()
	for i := 0; i < 3; i++ {
		b.AddPattern(word("kw"), "KW")
	}
	_, _, ok := b.LiteralPrefilter([]Language[string]{b.AllTags()})
	if ok {
		t.Fatal("expected LiteralPrefilter to decline below prefilter.MinLiterals entries")
	}
}

func TestLiteralPrefilterExcludesNonLiteralTags(t *testing.T) {
	b := NewBuilder[string]()
	for i := 0; i < 8; i++ {
		b.AddPattern(word(string(rune('a'+i))+string(rune('a'+i))), "KW"+string(rune('0'+i)))
	}
	b.AddPattern(pattern.Repeat(pattern.Char(charset.Range('a', 'z'))), "IDENT")

	_, indexToTag, ok := b.LiteralPrefilter([]Language[string]{b.AllTags()})
	if !ok {
		t.Fatal("expected LiteralPrefilter to succeed with 8 literal tags")
	}
	for _, tag := range indexToTag {
		if tag == "IDENT" {
			t.Fatal("LiteralPrefilter included a non-literal tag")
		}
	}
	if len(indexToTag) != 8 {
		t.Fatalf("indexToTag has %d entries, want 8", len(indexToTag))
	}
}
