package services

import (
	"context"
	"sync"
)

// cache is a read-through cache over a loader function. Sources own one
// cache each; it is lazily populated on first use and emptied by explicit
// Invalidate calls (e.g. after a rescan). This replaces ambient module
// state with an object whose lifetime the adapter controls.
type cache[T any] struct {
	mu     sync.Mutex
	loaded bool
	value  T
	load   func(ctx context.Context) (T, error)
}

// newCache creates a cache around the loader.
func newCache[T any](load func(ctx context.Context) (T, error)) *cache[T] {
	return &cache[T]{load: load}
}

// Get returns the cached value, loading it on first use.
// A failed load leaves the cache empty so the next Get retries.
func (c *cache[T]) Get(ctx context.Context) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return c.value, nil
	}

	value, err := c.load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	c.value = value
	c.loaded = true
	return c.value, nil
}

// Invalidate empties the cache so the next Get reloads.
func (c *cache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	c.value = zero
	c.loaded = false
}
