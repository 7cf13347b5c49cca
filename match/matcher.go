// Package match implements the driver layer over a packed DFA:
// longest-match scanning from a position, reverse-finder-guided search
// over a whole string, and search-and-replace built on top of the
// searcher. Grounded on spec.md 4.6; a lazily-built DFA driven by its
// own PikeVM thread scheduler has no equivalent longest-match/
// reverse-finder driver pair to carry over directly.
package match

import "github.com/nobigsoftware/dfalex-go/dfa"

// StringMatcher finds the longest match starting at a given position.
// Not safe for concurrent use; construct one per goroutine.
type StringMatcher[T comparable] struct {
	dfa   *dfa.PackedDfa[T]
	start uint32
}

// NewStringMatcher returns a StringMatcher driving d from start.
func NewStringMatcher[T comparable](d *dfa.PackedDfa[T], start uint32) *StringMatcher[T] {
	return &StringMatcher[T]{dfa: d, start: start}
}

// MatchAt drives the DFA forward from pos, remembering the last
// position at which the current state had an accept tag, and returns
// that (end, tag) pair once no further transition is live, or ok=false
// if no prefix of text[pos:] matched at all.
func (m *StringMatcher[T]) MatchAt(text []uint16, pos int) (end int, tag T, ok bool) {
	state := m.start
	if t, accepted := m.dfa.Match(state); accepted {
		end, tag, ok = pos, t, true
	}
	for i := pos; i < len(text); i++ {
		next, live := m.dfa.NextState(state, text[i])
		if !live {
			break
		}
		state = next
		if t, accepted := m.dfa.Match(state); accepted {
			end, tag, ok = i+1, t, true
		}
	}
	return end, tag, ok
}
