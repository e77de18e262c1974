package inmemstore

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/courati/console/core"
)

type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

// QueryCache is the in-memory core.QueryCache used in dev and tests. Values
// round-trip through JSON like the Redis twin so both behave identically.
type QueryCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

var _ core.QueryCache = (*QueryCache)(nil)

func NewQueryCache() *QueryCache {
	return &QueryCache{entries: make(map[string]cacheEntry)}
}

func (c *QueryCache) Get(ctx context.Context, key string, out interface{}) (bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return false, nil
	}
	if err := json.Unmarshal(entry.data, out); err != nil {
		return false, nil
	}
	return true, nil
}

func (c *QueryCache) Set(ctx context.Context, key string, val interface{}, ttl time.Duration) error {
	data, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{data: data, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (c *QueryCache) Invalidate(ctx context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}
