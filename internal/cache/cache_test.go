package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c := New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { c.Close() })
	return c
}

func TestGetOrCompute_CachesWithinTTL(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	calls := 0
	compute := func(context.Context) (int, error) {
		calls++
		return 42, nil
	}

	got, err := GetOrCompute(ctx, c, "k", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	got, err = GetOrCompute(ctx, c, "k", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 1, calls, "second call should hit the cache")
}

func TestGetOrCompute_ErrorNotCached(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	calls := 0
	compute := func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, errors.New("transient")
		}
		return 7, nil
	}

	_, err := GetOrCompute(ctx, c, "k", time.Minute, compute)
	require.Error(t, err)

	got, err := GetOrCompute(ctx, c, "k", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Equal(t, 2, calls)
}

func TestRemove_ForcesRecompute(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	calls := 0
	compute := func(context.Context) (string, error) {
		calls++
		return "v", nil
	}

	_, err := GetOrCompute(ctx, c, "k", time.Minute, compute)
	require.NoError(t, err)

	c.Remove("k")

	_, err = GetOrCompute(ctx, c, "k", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRemoveByPrefix(t *testing.T) {
	c := newTestCache(t)

	c.Set("stats:overview", 1, time.Minute)
	c.Set("stats:authors", 2, time.Minute)
	c.Set("streak", 3, time.Minute)

	c.RemoveByPrefix("stats:")

	_, ok := c.Get("stats:overview")
	assert.False(t, ok)
	_, ok = c.Get("stats:authors")
	assert.False(t, ok)
	_, ok = c.Get("streak")
	assert.True(t, ok, "unrelated key must survive")
}

func TestInvalidateReadingData(t *testing.T) {
	c := newTestCache(t)

	c.Set(KeyStats("overview"), 1, time.Minute)
	c.Set(KeyHeatmap(2025), 2, time.Minute)
	c.Set(KeyStreak, 3, time.Minute)
	c.Set(KeyAuthors, 4, time.Minute)

	c.InvalidateReadingData()

	_, ok := c.Get(KeyStats("overview"))
	assert.False(t, ok)
	_, ok = c.Get(KeyHeatmap(2025))
	assert.False(t, ok)
	_, ok = c.Get(KeyStreak)
	assert.False(t, ok)
	_, ok = c.Get(KeyAuthors)
	assert.True(t, ok, "author cache is not reading-derived")
}

func TestInvalidateAuthor(t *testing.T) {
	c := newTestCache(t)

	c.Set(KeyAuthor("a1"), 1, time.Minute)
	c.Set(KeyAuthor("a2"), 2, time.Minute)
	c.Set(KeyAuthors, 3, time.Minute)

	c.InvalidateAuthor("a1")

	_, ok := c.Get(KeyAuthor("a1"))
	assert.False(t, ok)
	_, ok = c.Get(KeyAuthors)
	assert.False(t, ok, "list must be evicted with the member")
	_, ok = c.Get(KeyAuthor("a2"))
	assert.True(t, ok)
}

func TestExpiration(t *testing.T) {
	c := newTestCache(t)

	c.Set("short", 1, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get("short")
	assert.False(t, ok)
}
