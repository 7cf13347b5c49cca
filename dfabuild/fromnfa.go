package dfabuild

import (
	"github.com/nobigsoftware/dfalex-go/cache"
	"github.com/nobigsoftware/dfalex-go/dfa"
	"github.com/nobigsoftware/dfalex-go/nfa"
)

// BuildFromNFA builds a minimized, packed DFA directly from a
// caller-supplied NFA, bypassing Builder's pattern bookkeeping
// entirely. Grounded on DfaBuilder.java's static buildFromNfa overload,
// which lets a caller who already has an NFA (e.g. assembled by hand,
// or shared across several builds) skip straight to subset
// construction and minimization.
//
// When c is non-nil and key is non-empty, c is consulted before the
// build and populated after; the caller owns key computation since an
// arbitrary NFA carries no pattern list for cache.Key to hash.
func BuildFromNFA[T comparable](n *nfa.NFA[T], starts []nfa.StateID, resolve dfa.AmbiguityResolver[T], c cache.BuilderCache[T], key string) (*dfa.PackedDfa[T], error) {
	if c != nil && key != "" {
		if packed, ok := c.Get(key); ok {
			return packed, nil
		}
	}

	raw, err := dfa.BuildRaw(n, starts, resolve)
	if err != nil {
		return nil, err
	}
	packed := dfa.Pack(dfa.Minimize(raw))

	if c != nil && key != "" {
		c.Put(key, packed)
	}
	return packed, nil
}
