package dfa

import (
	"sort"

	"github.com/nobigsoftware/dfalex-go/internal/conv"
	"github.com/nobigsoftware/dfalex-go/internal/sparse"
	"github.com/nobigsoftware/dfalex-go/nfa"
)

// AmbiguityResolver picks or combines a single accept tag when a DFA
// state's NFA closure carries more than one. DefaultResolver, which
// always fails, is the zero-configuration behavior; dfabuild.Builder
// callers may supply their own.
type AmbiguityResolver[T comparable] func(tags []T) (T, error)

// DefaultResolver always fails with AmbiguityError, per spec: ambiguous
// accepts are a build-time error unless the caller opts into resolving
// them.
func DefaultResolver[T comparable](tags []T) (T, error) {
	var zero T
	return zero, &AmbiguityError[T]{Tags: append([]T(nil), tags...)}
}

// BuildRaw performs subset construction over n, producing one RawDfa
// state per distinct NFA closure reachable from starts. Determinism
// requires walking NFA states and their transitions in insertion order,
// which nfa.NFA already guarantees (its edge and ε-edge slices are
// append-only); this function never introduces its own nondeterminism
// beyond that.
func BuildRaw[T comparable](n *nfa.NFA[T], starts []nfa.StateID, resolve AmbiguityResolver[T]) (*RawDfa[T], error) {
	if resolve == nil {
		resolve = DefaultResolver[T]
	}

	interner := newClosureInterner()
	scratch := sparse.NewSparseSet(conv.IntToUint32(n.Len()))

	d := &RawDfa[T]{}
	var pending [][]nfa.StateID

	// getOrCreate interns the ε-closure of roots, allocating a placeholder
	// RawDfa state and enqueuing the closure for processing the first time
	// it's seen.
	getOrCreate := func(roots []nfa.StateID) uint32 {
		scratch.Clear()
		n.Closure(roots, scratch)
		idx, isNew := interner.intern(scratch.Sorted())
		if isNew {
			d.States = append(d.States, RawState[T]{})
			pending = append(pending, interner.closureFor(idx))
		}
		return idx
	}

	for _, s := range starts {
		d.Starts = append(d.Starts, getOrCreate([]nfa.StateID{s}))
	}

	for i := 0; i < len(pending); i++ {
		state, err := buildState(n, pending[i], resolve, getOrCreate)
		if err != nil {
			return nil, err
		}
		d.States[i] = state
	}

	return d, nil
}

// buildState computes the accept tag and outgoing transitions for a
// single DFA state whose NFA closure is closureIDs (ascending, from
// SparseSet.Sorted). internState interns a target closure (computing
// its own ε-closure first) and returns its RawDfa state index.
func buildState[T comparable](
	n *nfa.NFA[T],
	closureIDs []nfa.StateID,
	resolve AmbiguityResolver[T],
	internState func(roots []nfa.StateID) uint32,
) (RawState[T], error) {
	var tags []T
	for _, id := range closureIDs {
		if tag, ok := n.State(id).Accept(); ok {
			tags = append(tags, tag)
		}
	}

	var state RawState[T]
	switch len(tags) {
	case 0:
	case 1:
		state.HasAccept = true
		state.Accept = tags[0]
	default:
		tag, err := resolve(tags)
		if err != nil {
			return RawState[T]{}, err
		}
		state.HasAccept = true
		state.Accept = tag
	}

	events := gatherEvents(n, closureIDs)
	state.Trans = partitionEvents(events, internState)
	return state, nil
}

// event is one endpoint of a labeled NFA edge, used to sweep the code
// unit space [0, 65536) into maximal intervals of constant active-edge
// set. 65536 is one past charset.MaxChar and is used only as an
// out-of-band sentinel; it is never written to a RawTransition.
type event struct {
	at     int32
	delta  int32
	target nfa.StateID
}

func gatherEvents[T comparable](n *nfa.NFA[T], closureIDs []nfa.StateID) []event {
	var events []event
	for _, id := range closureIDs {
		for _, e := range n.State(id).Edges() {
			events = append(events, event{at: int32(e.Lo), delta: 1, target: e.To})
			events = append(events, event{at: int32(e.Hi) + 1, delta: -1, target: e.To})
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].at != events[j].at {
			return events[i].at < events[j].at
		}
		// A range [x, c] emits a removal at c+1 and a range starting at
		// c+1 an addition at c+1. Ties are ordered removals first for a
		// fixed order; partitionEvents applies every event at one
		// breakpoint before emitting an interval, so the tie order does
		// not change the result.
		return events[i].delta < events[j].delta
	})
	return events
}

// partitionEvents sweeps events left to right, emitting one
// RawTransition per maximal interval whose active-target ε-closure is
// non-empty, merging adjacent intervals that resolve to the same
// interned DFA state.
func partitionEvents(events []event, internState func(roots []nfa.StateID) uint32) []RawTransition {
	if len(events) == 0 {
		return nil
	}

	active := make(map[nfa.StateID]int)
	var trans []RawTransition
	i := 0
	for i < len(events) {
		at := events[i].at
		for i < len(events) && events[i].at == at {
			active[events[i].target] += int(events[i].delta)
			i++
		}

		var end int32 = 65536
		if i < len(events) {
			end = events[i].at
		}
		if at >= end {
			continue
		}

		var roots []nfa.StateID
		for target, count := range active {
			if count > 0 {
				roots = append(roots, target)
			}
		}
		if len(roots) == 0 {
			continue
		}
		sort.Slice(roots, func(a, b int) bool { return roots[a] < roots[b] })

		target := internState(roots)
		lo, hi := charFromInt(at), charFromInt(end-1)
		if n := len(trans); n > 0 && trans[n-1].Target == target && int32(trans[n-1].Hi)+1 == at {
			trans[n-1].Hi = hi
			continue
		}
		trans = append(trans, RawTransition{Lo: lo, Hi: hi, Target: target})
	}
	return trans
}

func charFromInt(v int32) uint16 {
	return conv.IntToUint16(int(v))
}
