// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

import (
	"strings"
	"sync"

	"github.com/pdiddy/scholar-atlas/pkg/types"
)

// DefaultCacheSize is the report cache bound used when the configured size
// is zero or negative.
const DefaultCacheSize = 20

// cacheKey is the composite lookup key. A structured key avoids the
// collision edge cases of concatenating query and depth into one string.
type cacheKey struct {
	query string
	depth types.Depth
}

// Cache is a bounded FIFO cache of search reports keyed by normalized query
// and depth. Once full, the oldest entry is retired; there is no recency
// tracking. Safe for concurrent use. The engine itself never caches; this
// is caller-side plumbing for long-lived processes such as the API server.
type Cache struct {
	mu      sync.Mutex
	size    int
	entries map[cacheKey]types.SearchReport
	order   []cacheKey
}

// NewCache returns a cache bounded to size entries; non-positive sizes use
// DefaultCacheSize.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cache{
		size:    size,
		entries: make(map[cacheKey]types.SearchReport),
	}
}

// Get returns the cached report for (query, depth), if present.
func (c *Cache) Get(query string, depth types.Depth) (types.SearchReport, bool) {
	key := cacheKey{query: normalizeQuery(query), depth: depth}

	c.mu.Lock()
	defer c.mu.Unlock()
	report, ok := c.entries[key]
	return report, ok
}

// Put stores a report, evicting the oldest entry when the bound is exceeded.
func (c *Cache) Put(query string, depth types.Depth, report types.SearchReport) {
	key := cacheKey{query: normalizeQuery(query), depth: depth}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		c.order = append(c.order, key)
		if len(c.order) > c.size {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
	}
	c.entries[key] = report
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func normalizeQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}
