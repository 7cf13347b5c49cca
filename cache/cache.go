// Package cache implements the optional build-time cache dfabuild
// consults before running subset construction and minimization:
// building the same pattern set under the same languages twice should
// cost one build, not two.
package cache

import "github.com/nobigsoftware/dfalex-go/dfa"

// BuilderCache is the two-operation interface dfabuild.Builder consults.
// Implementations are responsible for their own concurrency control;
// the builder treats a hit and a miss identically except for timing
// (spec.md 5).
type BuilderCache[T comparable] interface {
	Get(key string) (*dfa.PackedDfa[T], bool)
	Put(key string, value *dfa.PackedDfa[T])
}
