package jsonpath

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheCapacity bounds the process-wide default cache.
const DefaultCacheCapacity = 32

// Cache maps path expressions to their compiled form so repeated evaluations
// of the same path skip tokenization. It is safe for concurrent use.
//
// Returned paths are shared read-only values and stay valid even after
// eviction: the cache distributes references, it does not own their
// lifetime.
type Cache struct {
	mu      sync.Mutex // serializes the compile-on-miss path
	entries *lru.Cache[string, *Path]
}

// NewCache creates a cache bounded to capacity entries. Once full, the least
// recently used entry is evicted to admit a new path.
func NewCache(capacity int) (*Cache, error) {
	entries, err := lru.New[string, *Path](capacity)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// GetOrCompile returns the compiled form of expr, compiling and inserting it
// on first use. Concurrent calls with the same expression observe the same
// *Path. A compilation failure propagates to the caller and leaves the cache
// untouched, so a corrected expression can be retried.
func (c *Cache) GetOrCompile(expr string) (*Path, error) {
	if p, ok := c.entries.Get(expr); ok {
		return p, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.entries.Get(expr); ok {
		return p, nil
	}

	p, err := compile(expr)
	if err != nil {
		return nil, err
	}
	c.entries.Add(expr, p)
	return p, nil
}

// Len returns the number of currently cached paths.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Default returns the process-wide cache used by package-level extraction
// helpers. It is built lazily on first use.
var Default = sync.OnceValue(func() *Cache {
	c, err := NewCache(DefaultCacheCapacity)
	if err != nil {
		panic(err) // unreachable, capacity is a positive constant
	}
	return c
})
