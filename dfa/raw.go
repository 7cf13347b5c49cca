// Package dfa implements the NFA→DFA subset construction, Hopcroft-style
// minimization, and the flat state-table representations (raw and
// packed) that the rest of the module builds and matches against.
package dfa

import "github.com/nobigsoftware/dfalex-go/charset"

// RawTransition is one outgoing edge of a RawState: every code unit in
// [Lo, Hi] advances to the state at index Target.
type RawTransition struct {
	Lo, Hi charset.Char
	Target uint32
}

// RawState is one state of a RawDfa: an optional accept tag plus a set
// of transitions sorted by Lo and covering disjoint ranges of code
// units. A code unit with no matching transition is a dead move.
type RawState[T comparable] struct {
	HasAccept bool
	Accept    T
	Trans     []RawTransition
}

// RawDfa is the flat, pre-minimization output of subset construction:
// one state per distinct reachable NFA closure, plus one start-state
// index per language processed.
type RawDfa[T comparable] struct {
	States []RawState[T]
	Starts []uint32
}
