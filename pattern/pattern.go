// Package pattern implements the combinator algebra patterns are built
// from: character sets, concatenation, alternation, repetition,
// optionality, case-insensitive wrapping, and reversal.
//
// Pattern is a tagged sum type, not a class hierarchy: AddToNFA and
// Reversed dispatch on a kind tag in a single switch, the way spec-style
// re-architectures of polymorphic AST nodes are meant to in a systems
// language (see nfa.State's own arena-of-tagged-structs shape).
package pattern

import (
	"github.com/nobigsoftware/dfalex-go/charset"
	"github.com/nobigsoftware/dfalex-go/internal/mixhash"
	"github.com/nobigsoftware/dfalex-go/nfa"
)

type kind uint8

const (
	kindEmpty kind = iota
	kindChar
	kindSeq
	kindAlt
	kindRepeat
	kindMaybeRepeat
	kindMaybe
	kindRepeat1
	kindCaseI
)

// Pattern is an algebraic pattern expression. The zero value is Empty.
type Pattern struct {
	kind     kind
	char     charset.CharRange
	children []Pattern
}

// Empty matches the empty string and nothing else.
var Empty = Pattern{kind: kindEmpty}

// Char returns a pattern matching exactly one code unit in r.
func Char(r charset.CharRange) Pattern {
	return Pattern{kind: kindChar, char: r}
}

// Seq returns a pattern matching each of ps in order.
func Seq(ps ...Pattern) Pattern {
	if len(ps) == 1 {
		return ps[0]
	}
	return Pattern{kind: kindSeq, children: append([]Pattern(nil), ps...)}
}

// Alt returns a pattern matching any one of ps.
func Alt(ps ...Pattern) Pattern {
	if len(ps) == 1 {
		return ps[0]
	}
	return Pattern{kind: kindAlt, children: append([]Pattern(nil), ps...)}
}

// Repeat returns a pattern matching zero or more repetitions of p.
func Repeat(p Pattern) Pattern {
	return Pattern{kind: kindRepeat, children: []Pattern{p}}
}

// Repeat1 returns a pattern matching one or more repetitions of p.
func Repeat1(p Pattern) Pattern {
	return Pattern{kind: kindRepeat1, children: []Pattern{p}}
}

// Maybe returns a pattern matching p or the empty string.
func Maybe(p Pattern) Pattern {
	return Pattern{kind: kindMaybe, children: []Pattern{p}}
}

// MaybeRepeat returns a pattern matching zero or more repetitions of p,
// like Repeat, except that its NFA fragment is guaranteed to introduce a
// distinct start state even when p cannot consume input. dfabuild uses
// this to prepend a "scan forward one code unit at a time" prefix to
// reverse finders, where a collapsed start would merge unrelated states.
func MaybeRepeat(p Pattern) Pattern {
	return Pattern{kind: kindMaybeRepeat, children: []Pattern{p}}
}

// CaseInsensitive returns a pattern matching the same language as p, case
// insensitively: every Char(R) reachable inside p is rewritten to
// Char(expandCases(R)).
func CaseInsensitive(p Pattern) Pattern {
	return Pattern{kind: kindCaseI, children: []Pattern{p}}
}

// Literal returns the sequence of code units p matches if p is a fixed,
// unambiguous literal (a Char of a single code unit, or a Seq of such
// Chars), and ok=false otherwise. dfabuild.Builder.LiteralPrefilter uses
// this to find patterns worth feeding to prefilter.LiteralSet's
// Aho-Corasick automaton.
func (p Pattern) Literal() (lit []charset.Char, ok bool) {
	switch p.kind {
	case kindEmpty:
		return nil, true
	case kindChar:
		bounds := p.char.Bounds()
		if len(bounds) != 2 || bounds[1] != bounds[0]+1 {
			return nil, false
		}
		return []charset.Char{bounds[0]}, true
	case kindSeq:
		out := make([]charset.Char, 0, len(p.children))
		for _, c := range p.children {
			cl, ok := c.Literal()
			if !ok {
				return nil, false
			}
			out = append(out, cl...)
		}
		return out, true
	default:
		return nil, false
	}
}

// AddToNFA appends p's sub-automaton to b, whose accepting edge enters
// target, and returns the fragment's start state. This is the C2/C3
// boundary: every Pattern variant's NFA contribution is one case here.
func AddToNFA[T comparable](p Pattern, b *nfa.Builder[T], target nfa.StateID) nfa.StateID {
	switch p.kind {
	case kindEmpty:
		return target

	case kindChar:
		start := b.NewState()
		b.AddCharEdges(start, p.char, target)
		return start

	case kindSeq:
		if len(p.children) == 0 {
			return target
		}
		t := target
		for i := len(p.children) - 1; i >= 0; i-- {
			t = AddToNFA(p.children[i], b, t)
		}
		return t

	case kindAlt:
		start := b.NewState()
		for _, c := range p.children {
			cs := AddToNFA(c, b, target)
			b.AddEpsilonEdge(start, cs)
		}
		return start

	case kindRepeat:
		loop := b.NewState()
		cs := AddToNFA(p.children[0], b, loop)
		if cs == loop {
			// The body can't consume input (e.g. it reduces to Empty), so
			// any number of repetitions is equivalent to zero: collapse to
			// the caller's target instead of leaving an unreachable loop.
			return target
		}
		b.AddEpsilonEdge(loop, cs)
		b.AddEpsilonEdge(loop, target)
		return loop

	case kindMaybeRepeat:
		loop := b.NewState()
		cs := AddToNFA(p.children[0], b, loop)
		b.AddEpsilonEdge(loop, cs)
		b.AddEpsilonEdge(loop, target)
		return loop

	case kindRepeat1:
		// Repeat1(p) = Seq(p, Repeat(p)).
		rest := AddToNFA(Repeat(p.children[0]), b, target)
		return AddToNFA(p.children[0], b, rest)

	case kindMaybe:
		start := b.NewState()
		cs := AddToNFA(p.children[0], b, target)
		b.AddEpsilonEdge(start, cs)
		b.AddEpsilonEdge(start, target)
		return start

	case kindCaseI:
		return AddToNFA(expandCases(p.children[0]), b, target)

	default:
		panic("pattern: unknown kind")
	}
}

// Reversed returns a pattern recognizing the reverse of p's language.
// Character sets are self-reverse; Seq reverses both its children and
// their order; Alt, Repeat, Repeat1, Maybe, MaybeRepeat, and CaseI
// reverse by reversing their children only.
func (p Pattern) Reversed() Pattern {
	switch p.kind {
	case kindEmpty, kindChar:
		return p
	case kindSeq:
		out := make([]Pattern, len(p.children))
		for i, c := range p.children {
			out[len(p.children)-1-i] = c.Reversed()
		}
		return Pattern{kind: kindSeq, children: out}
	default:
		out := make([]Pattern, len(p.children))
		for i, c := range p.children {
			out[i] = c.Reversed()
		}
		return Pattern{kind: p.kind, children: out}
	}
}

// StructuralHash combines p's variant tag, its CharRange boundaries (if
// any), and its children's structural hashes under the build-cache
// mixer, so that two patterns built the same way always hash the same,
// and Seq(a, b) never collides with Seq(b, a). cache.Key feeds this in
// as one word per pattern in a tag's pattern list.
func (p Pattern) StructuralHash() uint64 {
	words := []uint64{uint64(p.kind)}
	if p.kind == kindChar {
		for _, b := range p.char.Bounds() {
			words = append(words, uint64(b))
		}
	}
	for _, c := range p.children {
		words = append(words, c.StructuralHash())
	}
	return mixhash.Word(words)
}

// expandCases rewrites p, recursively replacing every Char(R) with
// Char(R.expandCases()).
func expandCases(p Pattern) Pattern {
	switch p.kind {
	case kindChar:
		b := charset.NewBuilder().AddRanges(p.char).ExpandCases()
		return Char(b.Build())
	case kindEmpty:
		return p
	default:
		out := make([]Pattern, len(p.children))
		for i, c := range p.children {
			out[i] = expandCases(c)
		}
		return Pattern{kind: p.kind, children: out}
	}
}
