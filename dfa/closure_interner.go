package dfa

import (
	"encoding/binary"

	"github.com/nobigsoftware/dfalex-go/nfa"
)

// closureInterner maps a canonicalized (sorted) NFA closure to the
// RawDfa state index that represents it, the way dfa/lazy's StateKey
// interned closures for its on-demand cache. Adapted here from a
// lazily-filled cache into an eager table that only ever grows during
// one subset-construction pass and is discarded afterward.
type closureInterner struct {
	byKey    map[string]uint32
	closures [][]nfa.StateID
}

func newClosureInterner() *closureInterner {
	return &closureInterner{byKey: make(map[string]uint32)}
}

// intern returns the index assigned to sorted, allocating a new one if
// this exact closure hasn't been seen before.
func (c *closureInterner) intern(sorted []uint32) (idx uint32, isNew bool) {
	key := closureKey(sorted)
	if idx, ok := c.byKey[key]; ok {
		return idx, false
	}
	idx = uint32(len(c.closures))
	ids := make([]nfa.StateID, len(sorted))
	for i, v := range sorted {
		ids[i] = nfa.StateID(v)
	}
	c.closures = append(c.closures, ids)
	c.byKey[key] = idx
	return idx, true
}

// closureFor returns the NFA state ids making up the closure interned
// at idx.
func (c *closureInterner) closureFor(idx uint32) []nfa.StateID {
	return c.closures[idx]
}

// closureKey builds an exact (collision-free) map key from a sorted
// closure: the sorted uint32 list packed little-endian. Using the exact
// bytes rather than a hash avoids ever having to handle a spurious
// collision during a build.
func closureKey(sorted []uint32) string {
	buf := make([]byte, len(sorted)*4)
	for i, v := range sorted {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	return string(buf)
}
