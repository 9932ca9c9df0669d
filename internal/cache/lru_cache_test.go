package cache_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gretutor/internal/cache"
)

func countingCompute(calls *int32, answer string) func(context.Context, string) (string, error) {
	return func(_ context.Context, prompt string) (string, error) {
		atomic.AddInt32(calls, 1)
		return answer + ":" + prompt, nil
	}
}

func TestLRUCache_HitSkipsCompute(t *testing.T) {
	c, err := cache.NewLRUCache(100)
	require.NoError(t, err)

	var calls int32
	compute := countingCompute(&calls, "answer")

	first, err := c.GetOrCompute(context.Background(), "prompt-1", compute)
	require.NoError(t, err)
	second, err := c.GetOrCompute(context.Background(), "prompt-1", compute)
	require.NoError(t, err)

	assert.Equal(t, "answer:prompt-1", first)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestLRUCache_ExactMatchOnly(t *testing.T) {
	c, err := cache.NewLRUCache(100)
	require.NoError(t, err)

	var calls int32
	compute := countingCompute(&calls, "a")

	_, _ = c.GetOrCompute(context.Background(), "prompt", compute)
	_, _ = c.GetOrCompute(context.Background(), "prompt ", compute)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c, err := cache.NewLRUCache(100)
	require.NoError(t, err)

	var calls int32
	compute := countingCompute(&calls, "a")

	for i := 0; i < 101; i++ {
		_, err := c.GetOrCompute(context.Background(), fmt.Sprintf("prompt-%d", i), compute)
		require.NoError(t, err)
	}

	assert.Equal(t, 100, c.Len())
	assert.False(t, c.Contains("prompt-0"), "oldest prompt should be evicted")
	for i := 1; i < 101; i++ {
		assert.True(t, c.Contains(fmt.Sprintf("prompt-%d", i)), "prompt-%d should be cached", i)
	}
}

func TestLRUCache_HitRefreshesRecency(t *testing.T) {
	c, err := cache.NewLRUCache(2)
	require.NoError(t, err)

	var calls int32
	compute := countingCompute(&calls, "a")
	ctx := context.Background()

	_, _ = c.GetOrCompute(ctx, "a", compute)
	_, _ = c.GetOrCompute(ctx, "b", compute)
	_, _ = c.GetOrCompute(ctx, "a", compute) // a is now most recent
	_, _ = c.GetOrCompute(ctx, "c", compute) // evicts b

	assert.True(t, c.Contains("a"))
	assert.False(t, c.Contains("b"))
	assert.True(t, c.Contains("c"))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestLRUCache_ComputeErrorNotStored(t *testing.T) {
	c, err := cache.NewLRUCache(10)
	require.NoError(t, err)

	boom := errors.New("upstream down")
	_, err = c.GetOrCompute(context.Background(), "p", func(context.Context, string) (string, error) {
		return "", boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, c.Contains("p"))

	got, err := c.GetOrCompute(context.Background(), "p", func(context.Context, string) (string, error) {
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recovered", got)
}

func TestLRUCache_DefaultCapacity(t *testing.T) {
	c, err := cache.NewLRUCache(0)
	require.NoError(t, err)

	var calls int32
	compute := countingCompute(&calls, "a")
	for i := 0; i < cache.DefaultCapacity+5; i++ {
		_, _ = c.GetOrCompute(context.Background(), fmt.Sprintf("p%d", i), compute)
	}
	assert.Equal(t, cache.DefaultCapacity, c.Len())
}

func TestLRUCache_ConcurrentAccess(t *testing.T) {
	c, err := cache.NewLRUCache(10)
	require.NoError(t, err)

	var calls int32
	compute := countingCompute(&calls, "a")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := c.GetOrCompute(context.Background(), fmt.Sprintf("p%d", i%20), compute)
			assert.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("a:p%d", i%20), got)
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 10)
}
