package match

import "github.com/nobigsoftware/dfalex-go/dfa"

// Match is one (start, end, tag) result from StringSearcher.FindAll.
type Match[T comparable] struct {
	Start, End int
	Tag        T
}

// StringSearcher finds every non-overlapping, leftmost-longest match in
// a string in two passes: a right-to-left reverse-finder pass that
// cheaply rejects the positions no pattern can start at, then a
// left-to-right forward pass over the remaining positions. Not safe for
// concurrent use.
type StringSearcher[T comparable] struct {
	forward      *dfa.PackedDfa[T]
	forwardStart uint32
	reverse      *dfa.PackedDfa[bool]
	reverseStart uint32
}

// NewStringSearcher builds a searcher over a forward matcher DFA and
// its corresponding reverse-finder DFA.
func NewStringSearcher[T comparable](forward *dfa.PackedDfa[T], forwardStart uint32, reverse *dfa.PackedDfa[bool], reverseStart uint32) *StringSearcher[T] {
	return &StringSearcher[T]{forward: forward, forwardStart: forwardStart, reverse: reverse, reverseStart: reverseStart}
}

// FindAll returns every match in text, in strictly increasing,
// non-overlapping start order.
//
// First pass: drive the reverse finder right-to-left over the whole
// input, recording every position flagged as a possible match start.
// Second pass: scan left to right, skipping any position the first
// pass didn't flag, and running the forward matcher only at flagged
// positions. Most of a non-matching input is rejected in the first
// pass without ever touching the (larger) forward DFA.
func (s *StringSearcher[T]) FindAll(text []uint16) []Match[T] {
	candidates := s.reverseScan(text)

	var out []Match[T]
	matcher := NewStringMatcher(s.forward, s.forwardStart)
	for i := 0; i < len(text); {
		if !candidates[i] {
			i++
			continue
		}
		end, tag, ok := matcher.MatchAt(text, i)
		if !ok {
			i++
			continue
		}
		out = append(out, Match[T]{Start: i, End: end, Tag: tag})
		i = end
	}
	return out
}

// reverseScan drives the reverse-finder DFA backward over text,
// returning a bool per index: candidates[i] is true iff some non-empty
// pattern could start a match at i.
func (s *StringSearcher[T]) reverseScan(text []uint16) []bool {
	candidates := make([]bool, len(text))
	state := s.reverseStart
	for i := len(text) - 1; i >= 0; i-- {
		// The reverse finder's start state always has a live transition for
		// every code unit (dfabuild prepends MaybeRepeat(CharRange.ALL)), so
		// this can never go dead; NextState's bool is only consulted to
		// satisfy the general PackedDfa contract.
		next, live := s.reverse.NextState(state, text[i])
		if !live {
			break
		}
		state = next
		if _, accepted := s.reverse.Match(state); accepted {
			candidates[i] = true
		}
	}
	return candidates
}
