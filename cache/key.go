package cache

import (
	"github.com/nobigsoftware/dfalex-go/internal/mixhash"
	"github.com/nobigsoftware/dfalex-go/pattern"
)

// DfaType distinguishes a forward matcher build from a reverse-finder
// build; the two never share a cache entry even for the same patterns.
type DfaType int

const (
	DfaTypeMatcher DfaType = 0
	DfaTypeReverse DfaType = 1
)

// TagEntry is one accept tag's contribution to a cache key: its
// pattern list, and (for a multi-language build) a bitmap of which
// language indices include this tag at all.
type TagEntry[T comparable] struct {
	Tag        T
	Patterns   []pattern.Pattern
	Membership uint64
}

// Key computes the 32-character cache key for a build over numLanguages
// languages, with tags supplied in the same insertion order the caller
// added them to the builder: order matters, since the mixer is
// order-sensitive by design (spec.md 6.3).
func Key[T comparable](dfaType DfaType, numLanguages int, tags []TagEntry[T]) string {
	words := []uint64{uint64(dfaType), uint64(numLanguages)}
	for _, t := range tags {
		words = append(words, uint64(len(t.Patterns)))
		if numLanguages > 1 {
			words = append(words, t.Membership)
		}
		for _, p := range t.Patterns {
			words = append(words, p.StructuralHash())
		}
	}
	return mixhash.Key(words)
}
