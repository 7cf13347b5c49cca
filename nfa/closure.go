package nfa

import "github.com/nobigsoftware/dfalex-go/internal/sparse"

// Closure computes the ε-closure of roots (every state reachable from
// roots by following zero or more ε-edges) into into, which the caller
// owns and should Clear (or leave freshly allocated) before calling.
// Subset construction computes a fresh closure per DFA state processed
// and discards it immediately afterward, so the caller-supplied scratch
// set avoids reallocating a visited-set on every step.
func (n *NFA[T]) Closure(roots []StateID, into *sparse.SparseSet) {
	stack := make([]StateID, 0, len(roots))
	stack = append(stack, roots...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if into.Contains(uint32(id)) {
			continue
		}
		into.Insert(uint32(id))
		for _, next := range n.states[id].epsilon {
			if !into.Contains(uint32(next)) {
				stack = append(stack, next)
			}
		}
	}
}

// Disemptify returns a new start state whose language is identical to
// start's except that it never accepts the empty string: driving it over
// zero input characters never reports a match, even if start's ε-closure
// contains an accepting state.
//
// It works by computing the ε-closure of start once, dropping any
// accepting state (and, since accepting states are always sinks in this
// package's Thompson construction, anything only reachable through one),
// and flattening the labeled edges of every state that survives directly
// onto a single new state. The new state therefore has no ε-edges of its
// own, so its own ε-closure is just itself: trivially non-accepting.
func (b *Builder[T]) Disemptify(start StateID) StateID {
	newStart := b.NewState()

	visited := make(map[StateID]bool)
	var walk func(StateID)
	walk = func(id StateID) {
		if visited[id] {
			return
		}
		visited[id] = true
		s := b.State(id)
		if s.hasAccept {
			return
		}
		for _, e := range s.edges {
			b.AddRangeEdge(newStart, e.Lo, e.Hi, e.To)
		}
		for _, eps := range s.epsilon {
			walk(eps)
		}
	}
	walk(start)

	return newStart
}
