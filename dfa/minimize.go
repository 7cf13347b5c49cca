package dfa

import (
	"encoding/binary"
	"sort"
)

// Minimize refines d's states into equivalence classes (states with
// identical accept values and identical partition-labeled outgoing
// transitions collapse into one) and returns the minimal RawDfa.
//
// A lazily-built DFA that never revisits a state once constructed has
// no equivalent refinement step; this follows spec.md's own
// description of hash-signature partition refinement directly.
func Minimize[T comparable](d *RawDfa[T]) *RawDfa[T] {
	n := len(d.States)
	if n == 0 {
		return &RawDfa[T]{}
	}

	classOf := initialPartition(d)
	for {
		next := refine(d, classOf)
		if equalPartitions(classOf, next) {
			break
		}
		classOf = next
	}

	return emit(d, classOf)
}

// initialPartition groups states by accept identity: states with no
// accept share class 0; each distinct accept value seen gets its own
// class, assigned in ascending state-index order for determinism.
func initialPartition[T comparable](d *RawDfa[T]) []int {
	classOf := make([]int, len(d.States))
	seen := make(map[any]int)
	seen[nil] = 0
	next := 1
	for i, s := range d.States {
		if !s.HasAccept {
			classOf[i] = 0
			continue
		}
		key := any(s.Accept)
		id, ok := seen[key]
		if !ok {
			id = next
			seen[key] = id
			next++
		}
		classOf[i] = id
	}
	return classOf
}

// refine computes one round of hash-signature refinement: each state's
// signature is (currentClass, sorted transitions labeled by target
// class); states sharing a signature share a class. New class ids are
// assigned in order of first appearance scanning states 0..n-1, which is
// itself deterministic because RawDfa's state order is fixed by subset
// construction's worklist order.
func refine[T comparable](d *RawDfa[T], classOf []int) []int {
	type sigTrans struct {
		lo, hi uint16
		class  int32
	}

	sigKey := func(i int) string {
		s := &d.States[i]
		trans := make([]sigTrans, len(s.Trans))
		for j, t := range s.Trans {
			trans[j] = sigTrans{lo: t.Lo, hi: t.Hi, class: int32(classOf[t.Target])}
		}
		sort.Slice(trans, func(a, b int) bool {
			if trans[a].lo != trans[b].lo {
				return trans[a].lo < trans[b].lo
			}
			return trans[a].class < trans[b].class
		})
		buf := make([]byte, 4+len(trans)*8)
		binary.LittleEndian.PutUint32(buf, uint32(classOf[i]))
		off := 4
		for _, t := range trans {
			binary.LittleEndian.PutUint16(buf[off:], t.lo)
			binary.LittleEndian.PutUint16(buf[off+2:], t.hi)
			binary.LittleEndian.PutUint32(buf[off+4:], uint32(t.class))
			off += 8
		}
		return string(buf)
	}

	next := make([]int, len(d.States))
	ids := make(map[string]int)
	id := 0
	for i := range d.States {
		key := sigKey(i)
		classID, ok := ids[key]
		if !ok {
			classID = id
			ids[key] = classID
			id++
		}
		next[i] = classID
	}
	return next
}

func equalPartitions(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// emit produces the minimized RawDfa from a stable class assignment,
// numbering classes in the order they're first visited by a BFS from
// the start states, so that two builds that reach the same equivalence
// classes always number them identically regardless of incidental
// differences in original state order.
func emit[T comparable](d *RawDfa[T], classOf []int) *RawDfa[T] {
	canon := make(map[int]uint32)
	var order []int // original state index representing each canonical class, in class-id order

	var assign func(origState int) uint32
	assign = func(origState int) uint32 {
		cls := classOf[origState]
		if id, ok := canon[cls]; ok {
			return id
		}
		id := uint32(len(order))
		canon[cls] = id
		order = append(order, origState)
		return id
	}

	starts := make([]uint32, len(d.Starts))
	queue := make([]int, 0, len(d.Starts))
	for i, s := range d.Starts {
		starts[i] = assign(int(s))
		queue = append(queue, int(s))
	}
	for qi := 0; qi < len(queue); qi++ {
		for _, t := range d.States[queue[qi]].Trans {
			cls := classOf[t.Target]
			if _, ok := canon[cls]; !ok {
				assign(int(t.Target))
				queue = append(queue, int(t.Target))
			}
		}
	}

	states := make([]RawState[T], len(order))
	for newID, origState := range order {
		src := &d.States[origState]
		out := RawState[T]{HasAccept: src.HasAccept, Accept: src.Accept}
		out.Trans = make([]RawTransition, len(src.Trans))
		for j, t := range src.Trans {
			out.Trans[j] = RawTransition{Lo: t.Lo, Hi: t.Hi, Target: canon[classOf[t.Target]]}
		}
		states[newID] = out
	}

	return &RawDfa[T]{States: states, Starts: starts}
}
