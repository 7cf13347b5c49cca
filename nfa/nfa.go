// Package nfa implements a Thompson-style non-deterministic automaton over
// 16-bit code-unit ranges, with ε-transitions and a generic accept tag.
//
// States are addressed by dense integer ids in an arena owned by the NFA;
// this keeps the otherwise-cyclic state graph (loops from Repeat,
// diamonds from Alt) free of any ownership problem, and makes subset
// construction (package dfa) a matter of walking integer ids rather than
// pointers.
package nfa

import (
	"fmt"

	"github.com/nobigsoftware/dfalex-go/charset"
)

// StateID uniquely identifies an NFA state within one NFA.
type StateID uint32

// InvalidState is never a valid state id; it marks an unset reference.
const InvalidState StateID = 0xFFFFFFFF

// Edge is a labeled transition on any code unit in [Lo, Hi] to To.
// Edges never represent ε-moves; those are tracked separately on State.
type Edge struct {
	Lo, Hi charset.Char
	To     StateID
}

// State is a single NFA state: a set of labeled edges, a set of
// ε-edges, and an optional accept tag.
type State[T comparable] struct {
	id        StateID
	edges     []Edge
	epsilon   []StateID
	hasAccept bool
	accept    T
}

// ID returns the state's id.
func (s *State[T]) ID() StateID { return s.id }

// Edges returns the state's labeled transitions. The caller must not
// modify the returned slice.
func (s *State[T]) Edges() []Edge { return s.edges }

// Epsilon returns the state's ε-transitions. The caller must not modify
// the returned slice.
func (s *State[T]) Epsilon() []StateID { return s.epsilon }

// Accept returns the state's accept tag, if any.
func (s *State[T]) Accept() (tag T, ok bool) { return s.accept, s.hasAccept }

// NFA is a mutable arena of states, built up by Builder and consumed by
// the dfa package's subset construction.
//
// Additions are append-only; a StateID, once returned, refers to the
// same state for the lifetime of the NFA.
type NFA[T comparable] struct {
	states []State[T]
	starts []StateID
}

// State returns the state with the given id, or nil if id is out of
// range.
func (n *NFA[T]) State(id StateID) *State[T] {
	if int(id) < 0 || int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// Len returns the number of states in the NFA.
func (n *NFA[T]) Len() int { return len(n.states) }

// Starts returns the NFA's ordered list of start states, one per
// language in a multi-language build.
func (n *NFA[T]) Starts() []StateID { return n.starts }

// String returns a human-readable summary of the NFA's size.
func (n *NFA[T]) String() string {
	return fmt.Sprintf("NFA{states: %d, starts: %d}", len(n.states), len(n.starts))
}
