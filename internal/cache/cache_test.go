package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestGetSetJSON(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	t.Run("miss returns false without error", func(t *testing.T) {
		var out cachedThing
		found, err := GetJSON(ctx, "absent", &out)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("round trip", func(t *testing.T) {
		in := cachedThing{ID: 7, Name: "seven"}
		require.NoError(t, SetJSON(ctx, "thing:7", in, time.Minute))

		var out cachedThing
		found, err := GetJSON(ctx, "thing:7", &out)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, in, out)
	})
}

func TestAside(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedThing) func() error {
		return func() error {
			fetches++
			*dest = cachedThing{ID: 1, Name: "fetched"}
			return nil
		}
	}

	var first cachedThing
	require.NoError(t, Aside(ctx, "thing:1", &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "fetched", first.Name)

	// Second read is served from the cache.
	var second cachedThing
	require.NoError(t, Aside(ctx, "thing:1", &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "fetched", second.Name)

	// Invalidation forces a refetch.
	Invalidate(ctx, "thing:1")
	var third cachedThing
	require.NoError(t, Aside(ctx, "thing:1", &third, time.Minute, fetch(&third)))
	assert.Equal(t, 2, fetches)

	// Expiry behaves like invalidation.
	mr.FastForward(2 * time.Minute)
	var fourth cachedThing
	require.NoError(t, Aside(ctx, "thing:1", &fourth, time.Minute, fetch(&fourth)))
	assert.Equal(t, 3, fetches)
}

func TestNilClientIsANoop(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	var out cachedThing
	found, err := GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, "k", cachedThing{}, time.Minute))

	// Aside degrades to calling fetch every time.
	calls := 0
	for i := 0; i < 2; i++ {
		require.NoError(t, Aside(ctx, "k", &out, time.Minute, func() error {
			calls++
			return nil
		}))
	}
	assert.Equal(t, 2, calls)
}

func TestKeyInventory(t *testing.T) {
	assert.Equal(t, "user:42", UserKey(42))
	assert.Equal(t, "post:7", PostKey(7))
}
