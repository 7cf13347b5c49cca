package cache

import (
	"sync"
	"sync/atomic"

	"github.com/nobigsoftware/dfalex-go/dfa"
)

// MemoryCache is a process-local BuilderCache backed by a map, grounded
// on the lazy DFA state cache's RWMutex discipline: reads (the common
// case, since most builds are repeats) take a read lock, writes take a
// write lock, and hit/miss counts are tracked for callers who want to
// judge whether caching a given build is worthwhile.
//
// Unlike the lazy DFA cache, entries are never evicted: a BuilderCache
// holds a handful of whole-program token/pattern sets, not per-search
// automaton states, so unbounded growth is the expected shape.
type MemoryCache[T comparable] struct {
	mu      sync.RWMutex
	entries map[string]*dfa.PackedDfa[T]
	hits    uint64
	misses  uint64
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache[T comparable]() *MemoryCache[T] {
	return &MemoryCache[T]{entries: make(map[string]*dfa.PackedDfa[T])}
}

// Get implements BuilderCache.
func (c *MemoryCache[T]) Get(key string) (*dfa.PackedDfa[T], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	// Concurrent readers share the read lock, so the counters are
	// updated atomically.
	if ok {
		atomic.AddUint64(&c.hits, 1)
	} else {
		atomic.AddUint64(&c.misses, 1)
	}
	return v, ok
}

// Put implements BuilderCache.
func (c *MemoryCache[T]) Put(key string, value *dfa.PackedDfa[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Stats returns cumulative hit/miss counts, for callers judging cache
// effectiveness.
func (c *MemoryCache[T]) Stats() (hits, misses uint64) {
	return atomic.LoadUint64(&c.hits), atomic.LoadUint64(&c.misses)
}
