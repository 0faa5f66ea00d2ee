// Package memory provides an in-process ports.ResponseCache.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ersonp/dex-core/internal/domain/ports"
)

type entry struct {
	body      []byte
	fetchedAt time.Time
}

// Cache is a ports.ResponseCache held in process memory. It is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

var _ ports.ResponseCache = (*Cache)(nil)

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the body cached for key if it is younger than maxAge.
// A maxAge of zero or less disables the age check.
func (c *Cache) Get(ctx context.Context, key string, maxAge time.Duration) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if maxAge > 0 && c.now().Sub(e.fetchedAt) >= maxAge {
		return nil, false, nil
	}
	return e.body, true, nil
}

// Put stores a copy of body for key.
func (c *Cache) Put(ctx context.Context, key string, body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		body:      append([]byte(nil), body...),
		fetchedAt: c.now(),
	}
	return nil
}

// Purge removes every entry.
func (c *Cache) Purge(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
	return nil
}

// Len returns the number of entries, fresh or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
