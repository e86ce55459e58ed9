package webcache

import (
	"context"
	"sync"
)

// MemoryCache keeps entries in a map. Nothing survives the process, but
// it needs no database and is handy in tests.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string]Entry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: make(map[string]Entry)}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (Entry, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.data[key]
	return entry, ok, nil
}

func (c *MemoryCache) Put(ctx context.Context, key string, entry Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = entry
	return nil
}

func (c *MemoryCache) Purge(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]Entry)
	return nil
}
