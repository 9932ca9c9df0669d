package cache

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"gretutor/internal/metrics"
	"gretutor/internal/port"
)

// DefaultCapacity is the number of prompts kept when no capacity is configured.
const DefaultCapacity = 100

// LRUCache is a bounded prompt -> answer memo with least-recently-used eviction.
// It implements port.ResponseCache. Entries live for the process lifetime.
//
// Concurrent misses on the same prompt are not coalesced: each caller computes
// and stores its own answer, and the last write wins.
type LRUCache struct {
	entries *lru.Cache[string, string]
}

// NewLRUCache creates a cache holding at most capacity entries.
func NewLRUCache(capacity int) (*LRUCache, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	entries, err := lru.New[string, string](capacity)
	if err != nil {
		return nil, fmt.Errorf("creating lru cache: %w", err)
	}
	return &LRUCache{entries: entries}, nil
}

// GetOrCompute returns the cached answer for prompt, or computes and stores it.
// A failed compute is returned as-is and leaves the cache untouched.
func (c *LRUCache) GetOrCompute(ctx context.Context, prompt string, compute port.ComputeFunc) (string, error) {
	if answer, ok := c.entries.Get(prompt); ok {
		metrics.CacheHit()
		return answer, nil
	}
	metrics.CacheMiss()

	answer, err := compute(ctx, prompt)
	if err != nil {
		return "", err
	}
	c.entries.Add(prompt, answer)
	return answer, nil
}

// Contains reports whether prompt is cached without touching its recency.
func (c *LRUCache) Contains(prompt string) bool {
	return c.entries.Contains(prompt)
}

// Len returns the number of cached prompts.
func (c *LRUCache) Len() int {
	return c.entries.Len()
}
