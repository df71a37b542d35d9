package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/de-tools/shop-pulse/pkg/models/api"
)

// summaryCache keeps recent summary responses so repeated dashboard polls
// do not re-walk the upstream pagination. Entries expire by TTL only;
// a zero TTL disables caching.
type summaryCache struct {
	mu  sync.RWMutex
	ttl time.Duration

	entries map[string]cacheEntry
}

type cacheEntry struct {
	summary   api.Summary
	expiresAt time.Time
}

func newSummaryCache(ttl time.Duration) *summaryCache {
	return &summaryCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func (c *summaryCache) get(store string, days, topN int) (api.Summary, bool) {
	if c.ttl <= 0 {
		return api.Summary{}, false
	}

	c.mu.RLock()
	entry, ok := c.entries[cacheKey(store, days, topN)]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return api.Summary{}, false
	}
	return entry.summary, true
}

func (c *summaryCache) put(store string, days, topN int, summary api.Summary) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(store, days, topN)] = cacheEntry{
		summary:   summary,
		expiresAt: time.Now().Add(c.ttl),
	}
}

func cacheKey(store string, days, topN int) string {
	return fmt.Sprintf("%s/%d/%d", store, days, topN)
}
