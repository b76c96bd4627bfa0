package pattern

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds how many compiled patterns are kept alive.
const DefaultCacheSize = 256

// Cache hands out compiled matchers keyed by the exact pattern string, so
// repeated searches with the same pattern reuse one compiled object.
// Compilation failures are returned to the caller and never cached.
type Cache struct {
	mu  sync.Mutex
	lru *lru.Cache[string, *Matcher]
}

// NewCache creates a pattern cache holding up to size compiled patterns.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	l, _ := lru.New[string, *Matcher](size)
	return &Cache{lru: l}
}

// GetMatcher returns the cached matcher for pattern, compiling it on first
// use. Identical pattern strings return the identical *Matcher while the
// entry remains cached.
func (c *Cache) GetMatcher(pattern string) (*Matcher, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.lru.Get(pattern); ok {
		return m, nil
	}
	m, err := newMatcher(pattern)
	if err != nil {
		return nil, err
	}
	c.lru.Add(pattern, m)
	return m, nil
}

// Len returns the number of compiled patterns currently cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

var (
	defaultCache     *Cache
	defaultCacheOnce sync.Once
)

// Default returns the process-wide pattern cache. Its lifetime is not tied
// to any one document.
func Default() *Cache {
	defaultCacheOnce.Do(func() {
		defaultCache = NewCache(DefaultCacheSize)
	})
	return defaultCache
}
