package cache_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vayudrishti/vayudrishti/internal/cache"
)

func TestMemory_SetGet(t *testing.T) {
	store := cache.NewMemory()
	ctx := context.Background()

	store.Set(ctx, "k", []byte("v"), time.Minute)

	got, ok := store.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}

func TestMemory_Expiry(t *testing.T) {
	store := cache.NewMemory()
	ctx := context.Background()

	store.Set(ctx, "k", []byte("v"), -time.Second)

	_, ok := store.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestMemory_Delete(t *testing.T) {
	store := cache.NewMemory()
	ctx := context.Background()

	store.Set(ctx, "k", []byte("v"), time.Minute)
	store.Delete(ctx, "k")

	_, ok := store.Get(ctx, "k")
	assert.False(t, ok)
}

func TestRedis_SetGet(t *testing.T) {
	srv := miniredis.RunT(t)
	ctx := context.Background()

	store, err := cache.NewRedis(ctx, cache.RedisConfig{
		Addr:   srv.Addr(),
		Logger: zerolog.New(io.Discard),
	})
	require.NoError(t, err)
	defer store.Close()

	store.Set(ctx, "reading:28.614:77.209", []byte(`{"aqi":78}`), time.Minute)

	got, ok := store.Get(ctx, "reading:28.614:77.209")
	require.True(t, ok)
	assert.JSONEq(t, `{"aqi":78}`, string(got))

	_, ok = store.Get(ctx, "missing")
	assert.False(t, ok)
}

func TestRedis_TTL(t *testing.T) {
	srv := miniredis.RunT(t)
	ctx := context.Background()

	store, err := cache.NewRedis(ctx, cache.RedisConfig{
		Addr:   srv.Addr(),
		Logger: zerolog.New(io.Discard),
	})
	require.NoError(t, err)
	defer store.Close()

	store.Set(ctx, "k", []byte("v"), time.Minute)
	srv.FastForward(2 * time.Minute)

	_, ok := store.Get(ctx, "k")
	assert.False(t, ok)
}
