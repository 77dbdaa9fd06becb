package assets

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultCacheTTL      = time.Hour
	DefaultSweepInterval = time.Minute
)

type cacheEntry struct {
	data        []byte
	contentType string
	storedAt    time.Time
}

// Cache is a process-local, best-effort byte cache in front of asset
// storage. Entries are immutable once stored; replacement goes through
// Invalidate then Put. Losing the cache only costs extra storage reads.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *Cache) Get(key string) ([]byte, string, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(entry.storedAt) > c.ttl {
		return nil, "", false
	}

	return entry.data, entry.contentType, true
}

func (c *Cache) Put(key string, data []byte, contentType string) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{
		data:        data,
		contentType: contentType,
		storedAt:    c.now(),
	}
	c.mu.Unlock()
}

func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Sweep evicts every entry older than the TTL and reports how many
// were removed.
func (c *Cache) Sweep() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	for key, entry := range c.entries {
		if now.Sub(entry.storedAt) > c.ttl {
			delete(c.entries, key)
			evicted++
		}
	}

	return evicted
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// StartSweeper runs Sweep on the given interval until ctx is done.
func (c *Cache) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Sweep()
			}
		}
	}()
}
