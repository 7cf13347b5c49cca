package nfa

import (
	"fmt"

	"github.com/nobigsoftware/dfalex-go/charset"
)

// Builder constructs an NFA incrementally: allocate a state, wire its
// edges, repeat. pattern.AddToNFA and dfabuild.Builder, which wires
// pattern fragments to language starts and accept states, are its
// in-tree callers; higher level code drives dfabuild.Builder instead.
type Builder[T comparable] struct {
	states []State[T]
	starts []StateID
}

// NewBuilder returns a new, empty Builder.
func NewBuilder[T comparable]() *Builder[T] {
	return NewBuilderWithCapacity[T](16)
}

// NewBuilderWithCapacity returns a new, empty Builder with room for
// capacity states before the first reallocation.
func NewBuilderWithCapacity[T comparable](capacity int) *Builder[T] {
	return &Builder[T]{states: make([]State[T], 0, capacity)}
}

// NewState allocates a fresh state with no edges, no ε-edges, and no
// accept tag, and returns its id.
func (b *Builder[T]) NewState() StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State[T]{id: id})
	return id
}

// AddRangeEdge adds a labeled edge from state to target covering every
// code unit in [lo, hi].
func (b *Builder[T]) AddRangeEdge(state StateID, lo, hi charset.Char, target StateID) {
	s := &b.states[state]
	s.edges = append(s.edges, Edge{Lo: lo, Hi: hi, To: target})
}

// AddCharEdges adds one labeled edge to target per disjoint range in cr,
// covering every code unit cr matches.
func (b *Builder[T]) AddCharEdges(state StateID, cr charset.CharRange, target StateID) {
	cr.Ranges(func(lo, hi charset.Char) {
		b.AddRangeEdge(state, lo, hi, target)
	})
}

// AddEpsilonEdge adds an ε-edge from state to target, unless one already
// exists. ε-closure cost dominates subset construction, so a duplicate
// ε-edge is pure waste rather than merely redundant.
func (b *Builder[T]) AddEpsilonEdge(state, target StateID) {
	s := &b.states[state]
	for _, e := range s.epsilon {
		if e == target {
			return
		}
	}
	s.epsilon = append(s.epsilon, target)
}

// SetAccept marks state as accepting with the given tag.
func (b *Builder[T]) SetAccept(state StateID, tag T) {
	s := &b.states[state]
	s.hasAccept = true
	s.accept = tag
}

// AddStart appends id to the NFA's ordered list of start states and
// returns its index within that list.
func (b *Builder[T]) AddStart(id StateID) int {
	b.starts = append(b.starts, id)
	return len(b.starts) - 1
}

// Len returns the number of states allocated so far.
func (b *Builder[T]) Len() int {
	return len(b.states)
}

// State returns a pointer to the state with the given id, for read-only
// use by NFA-level helpers such as Closure and Disemptify that need to
// walk the graph mid-construction.
func (b *Builder[T]) State(id StateID) *State[T] {
	if int(id) < 0 || int(id) >= len(b.states) {
		return nil
	}
	return &b.states[id]
}

// Validate checks that every edge and ε-edge targets a state that
// actually exists, and that at least one start state was recorded.
func (b *Builder[T]) Validate() error {
	if len(b.starts) == 0 {
		return &BuildError{Message: "no start states recorded"}
	}
	n := len(b.states)
	check := func(id StateID, from StateID) error {
		if int(id) >= n {
			return &BuildError{Message: fmt.Sprintf("invalid target state %d", id), StateID: from}
		}
		return nil
	}
	for _, start := range b.starts {
		if err := check(start, InvalidState); err != nil {
			return err
		}
	}
	for i := range b.states {
		s := &b.states[i]
		for _, e := range s.edges {
			if err := check(e.To, s.id); err != nil {
				return err
			}
		}
		for _, e := range s.epsilon {
			if err := check(e, s.id); err != nil {
				return err
			}
		}
	}
	return nil
}

// Build finalizes and returns the constructed NFA.
func (b *Builder[T]) Build() (*NFA[T], error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &NFA[T]{states: b.states, starts: append([]StateID(nil), b.starts...)}, nil
}
