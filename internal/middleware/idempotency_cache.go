package middleware

import (
	"sync"
	"time"
)

// idempotencyCache holds replayable responses keyed by request
// fingerprint. Entries expire after the configured TTL; a background
// sweep removes what lazy expiry has not already filtered out.
type idempotencyCache struct {
	mu    sync.RWMutex
	items map[string]*cachedResponse
	ttl   time.Duration
}

func newIdempotencyCache(ttl time.Duration) *idempotencyCache {
	c := &idempotencyCache{
		items: make(map[string]*cachedResponse),
		ttl:   ttl,
	}
	go c.sweep()
	return c
}

// Get returns the cached response unless it has expired.
func (c *idempotencyCache) Get(fp string) (*cachedResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	resp, ok := c.items[fp]
	if !ok || time.Since(resp.Timestamp) > c.ttl {
		return nil, false
	}
	return resp, true
}

// Set stores the response, stamping it for expiry.
func (c *idempotencyCache) Set(fp string, resp *cachedResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	resp.Timestamp = time.Now()
	c.items[fp] = resp
}

func (c *idempotencyCache) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

func (c *idempotencyCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for fp, resp := range c.items {
		if now.Sub(resp.Timestamp) > c.ttl {
			delete(c.items, fp)
		}
	}
}
