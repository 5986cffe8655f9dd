package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sonchiik/Workout-Traker/internal/logging"
)

type item struct {
	Name string `json:"name"`
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, time.Minute, logging.Discard()), mr
}

func TestBuildKey_Versioned(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	key, err := c.BuildKey(ctx, "exercises", "list")
	require.NoError(t, err)
	assert.Equal(t, "exercises:list:1", key)

	require.NoError(t, c.Bump(ctx))
	key, err = c.BuildKey(ctx, "exercises", "list")
	require.NoError(t, err)
	assert.Equal(t, "exercises:list:2", key)
}

func TestFetchJSON_CachesLoaderResult(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return []item{{Name: "Squat"}}, nil
	}

	for i := 0; i < 3; i++ {
		var got []item
		require.NoError(t, c.FetchJSON(ctx, "k", &got, loader))
		assert.Equal(t, []item{{Name: "Squat"}}, got)
	}
	assert.Equal(t, 1, calls)
	assert.True(t, mr.Exists("k"))
	assert.Equal(t, time.Minute, mr.TTL("k"))
}

func TestFetchJSON_LoaderErrorNotCached(t *testing.T) {
	c, mr := newTestCache(t)
	boom := errors.New("boom")

	var got []item
	err := c.FetchJSON(context.Background(), "k", &got, func(context.Context) (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("k"))
}

func TestFetchJSON_RedisDownFallsBackToLoader(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	calls := 0
	var got []item
	err := c.FetchJSON(context.Background(), "k", &got, func(context.Context) (any, error) {
		calls++
		return []item{{Name: "Squat"}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []item{{Name: "Squat"}}, got)
	assert.Equal(t, 1, calls)
}

func TestFetchJSON_SetFailureStillReturnsValue(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	var got []item
	err := c.FetchJSON(ctx, "k", &got, func(context.Context) (any, error) {
		// Redis goes away after the GET miss, before the SET.
		mr.Close()
		return []item{{Name: "Row"}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []item{{Name: "Row"}}, got)
}

func TestFetchJSON_CorruptEntryReloads(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("k", "{not json"))

	var got []item
	err := c.FetchJSON(context.Background(), "k", &got, func(context.Context) (any, error) {
		return []item{{Name: "Plank"}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []item{{Name: "Plank"}}, got)

	raw, err := mr.Get("k")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"Plank"}]`, raw)
}

func TestNilCache_PassThrough(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	key, err := c.BuildKey(ctx, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "a:b", key)
	assert.NoError(t, c.Bump(ctx))

	calls := 0
	var got item
	for i := 0; i < 2; i++ {
		require.NoError(t, c.FetchJSON(ctx, key, &got, func(context.Context) (any, error) {
			calls++
			return item{Name: "x"}, nil
		}))
	}
	assert.Equal(t, 2, calls)
	assert.Equal(t, "x", got.Name)
}

func TestFetchJSON_RequiresLoader(t *testing.T) {
	c, _ := newTestCache(t)
	assert.Error(t, c.FetchJSON(context.Background(), "k", &item{}, nil))
}
