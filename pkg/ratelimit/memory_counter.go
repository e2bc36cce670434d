package ratelimit

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type MemoryCounter struct {
	mu    sync.Mutex
	cache *gocache.Cache
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{
		cache: gocache.New(time.Minute, 5*time.Minute),
	}
}

func (c *MemoryCounter) Increment(_ context.Context, key string, window time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, found := c.cache.Get(key); !found {
		c.cache.Set(key, int64(1), window)
		return 1, nil
	}

	// IncrementInt64 leaves the expiry untouched, keeping the window fixed
	// from the first hit.
	count, err := c.cache.IncrementInt64(key, 1)
	if err != nil {
		// Key expired between the lookup and the increment.
		c.cache.Set(key, int64(1), window)
		return 1, nil
	}
	return count, nil
}
