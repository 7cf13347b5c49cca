package cache

import (
	"sync"
	"testing"

	"github.com/nobigsoftware/dfalex-go/dfa"
)

func TestMemoryCacheGetPutRoundTrip(t *testing.T) {
	c := NewMemoryCache[string]()
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected a miss on an empty cache")
	}
	want := &dfa.PackedDfa[string]{}
	c.Put("k", want)
	got, ok := c.Get("k")
	if !ok || got != want {
		t.Fatalf("Get after Put = (%v, %v), want the same pointer", got, ok)
	}
}

func TestMemoryCacheStats(t *testing.T) {
	c := NewMemoryCache[string]()
	c.Put("k", &dfa.PackedDfa[string]{})
	c.Get("k")
	c.Get("k")
	c.Get("missing")

	hits, misses := c.Stats()
	if hits != 2 || misses != 1 {
		t.Fatalf("Stats() = (%d, %d), want (2, 1)", hits, misses)
	}
}

func TestMemoryCacheConcurrentAccess(t *testing.T) {
	c := NewMemoryCache[int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Put("k", &dfa.PackedDfa[int]{Starts: []uint32{uint32(i)}})
			c.Get("k")
		}()
	}
	wg.Wait()
	if _, ok := c.Get("k"); !ok {
		t.Fatal("expected an entry to remain after concurrent writers")
	}
}

// BuilderCache is satisfied by MemoryCache; a compile-time assertion
// that the interface is implemented as intended.
var _ BuilderCache[string] = (*MemoryCache[string])(nil)
