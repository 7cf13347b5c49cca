package pattern

import (
	"testing"

	"github.com/nobigsoftware/dfalex-go/charset"
	"github.com/nobigsoftware/dfalex-go/nfa"
)

func build(t *testing.T, p Pattern) (*nfa.NFA[string], nfa.StateID) {
	t.Helper()
	b := nfa.NewBuilder[string]()
	accept := b.NewState()
	b.SetAccept(accept, "MATCH")
	start := AddToNFA(p, b, accept)
	b.AddStart(start)
	n, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return n, start
}

// run drives n over s from start, following every live edge at each step
// (tracking the full set of current states and their ε-closure), and
// reports whether an accepting state was reached exactly at the end of s.
func run(n *nfa.NFA[string], start nfa.StateID, s []charset.Char) bool {
	states := []nfa.StateID{start}
	closure(n, &states)
	for _, c := range s {
		var next []nfa.StateID
		for _, id := range states {
			for _, e := range n.State(id).Edges() {
				if c >= e.Lo && c <= e.Hi {
					next = append(next, e.To)
				}
			}
		}
		states = next
		closure(n, &states)
		if len(states) == 0 {
			return false
		}
	}
	for _, id := range states {
		if _, ok := n.State(id).Accept(); ok {
			return true
		}
	}
	return false
}

func closure(n *nfa.NFA[string], states *[]nfa.StateID) {
	seen := make(map[nfa.StateID]bool)
	var stack []nfa.StateID
	stack = append(stack, *states...)
	var out []nfa.StateID
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
		stack = append(stack, n.State(id).Epsilon()...)
	}
	*states = out
}

func chars(s string) []charset.Char {
	out := make([]charset.Char, len(s))
	for i, c := range []byte(s) {
		out[i] = charset.Char(c)
	}
	return out
}

func TestCharMatchesSingleUnit(t *testing.T) {
	n, start := build(t, Char(charset.Single('a')))
	if !run(n, start, chars("a")) {
		t.Error("Char('a') should match \"a\"")
	}
	if run(n, start, chars("b")) {
		t.Error("Char('a') should not match \"b\"")
	}
	if run(n, start, chars("aa")) {
		t.Error("Char('a') should not match \"aa\"")
	}
}

func TestSeqConcatenates(t *testing.T) {
	p := Seq(Char(charset.Single('a')), Char(charset.Single('b')))
	n, start := build(t, p)
	if !run(n, start, chars("ab")) {
		t.Error("Seq(a,b) should match \"ab\"")
	}
	if run(n, start, chars("a")) || run(n, start, chars("ba")) {
		t.Error("Seq(a,b) should only match \"ab\"")
	}
}

func TestAltEitherBranch(t *testing.T) {
	p := Alt(Char(charset.Single('a')), Char(charset.Single('b')))
	n, start := build(t, p)
	if !run(n, start, chars("a")) || !run(n, start, chars("b")) {
		t.Error("Alt(a,b) should match both \"a\" and \"b\"")
	}
	if run(n, start, chars("c")) {
		t.Error("Alt(a,b) should not match \"c\"")
	}
}

func TestRepeatZeroOrMore(t *testing.T) {
	p := Repeat(Char(charset.Single('a')))
	n, start := build(t, p)
	for _, s := range []string{"", "a", "aaaa"} {
		if !run(n, start, chars(s)) {
			t.Errorf("Repeat(a) should match %q", s)
		}
	}
	if run(n, start, chars("ab")) {
		t.Error("Repeat(a) should not match \"ab\"")
	}
}

func TestRepeat1OneOrMore(t *testing.T) {
	p := Repeat1(Char(charset.Single('a')))
	n, start := build(t, p)
	if run(n, start, chars("")) {
		t.Error("Repeat1(a) should not match empty string")
	}
	if !run(n, start, chars("a")) || !run(n, start, chars("aaa")) {
		t.Error("Repeat1(a) should match one or more a's")
	}
}

func TestMaybe(t *testing.T) {
	p := Maybe(Char(charset.Single('a')))
	n, start := build(t, p)
	if !run(n, start, chars("")) || !run(n, start, chars("a")) {
		t.Error("Maybe(a) should match \"\" and \"a\"")
	}
	if run(n, start, chars("aa")) {
		t.Error("Maybe(a) should not match \"aa\"")
	}
}

func TestEmpty(t *testing.T) {
	n, start := build(t, Empty)
	if !run(n, start, chars("")) {
		t.Error("Empty should match \"\"")
	}
	if run(n, start, chars("a")) {
		t.Error("Empty should not match \"a\"")
	}
}

// TestRepeatCollapsesOnEmptyBody exercises the recorded decision that
// Repeat may fold to the caller's target directly when its body can't
// consume input, while MaybeRepeat never does.
func TestRepeatCollapsesOnEmptyBody(t *testing.T) {
	b := nfa.NewBuilder[string]()
	target := b.NewState()
	start := AddToNFA(Repeat(Empty), b, target)
	if start != target {
		t.Errorf("Repeat(Empty) should collapse to target, got a distinct state")
	}
}

func TestMaybeRepeatNeverCollapses(t *testing.T) {
	b := nfa.NewBuilder[string]()
	target := b.NewState()
	start := AddToNFA(MaybeRepeat(Empty), b, target)
	if start == target {
		t.Errorf("MaybeRepeat(Empty) should always allocate a distinct start state")
	}
}

func TestReversedSeqReversesOrderAndChildren(t *testing.T) {
	p := Seq(Char(charset.Single('a')), Char(charset.Single('b')), Char(charset.Single('c')))
	n, start := build(t, p.Reversed())
	if !run(n, start, chars("cba")) {
		t.Error("Seq(a,b,c).Reversed() should match \"cba\"")
	}
	if run(n, start, chars("abc")) {
		t.Error("Seq(a,b,c).Reversed() should not match \"abc\"")
	}
}

func TestReversedCharIsSelfReverse(t *testing.T) {
	p := Char(charset.Range('a', 'z'))
	n, start := build(t, p.Reversed())
	if !run(n, start, chars("m")) {
		t.Error("Char([a-z]).Reversed() should still match a single letter")
	}
}

func TestLiteralDetection(t *testing.T) {
	p := Seq(Char(charset.Single('i')), Char(charset.Single('f')))
	lit, ok := p.Literal()
	if !ok {
		t.Fatal("Seq of single-char Chars should be a literal")
	}
	if string(runesOf(lit)) != "if" {
		t.Errorf("Literal() = %q, want \"if\"", string(runesOf(lit)))
	}

	if _, ok := Repeat(Char(charset.Single('a'))).Literal(); ok {
		t.Error("Repeat should not be reported as a literal")
	}
	if _, ok := Char(charset.Range('a', 'z')).Literal(); ok {
		t.Error("a multi-char range should not be reported as a literal")
	}
}

func runesOf(cs []charset.Char) []rune {
	out := make([]rune, len(cs))
	for i, c := range cs {
		out[i] = rune(c)
	}
	return out
}
