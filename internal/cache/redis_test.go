package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/flexo-toolkit/internal/config"
	"github.com/magabrotheeeer/flexo-toolkit/internal/models"
)

type testStruct struct {
	Name string
	Age  int
}

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestSetAndGet(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	expected := testStruct{Name: "Alice", Age: 30}
	require.NoError(t, cache.Set(ctx, "user:1", expected, time.Minute))

	var actual testStruct
	found, err := cache.Get(ctx, "user:1", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGetNotFound(t *testing.T) {
	cache, _ := setupTestCache(t)

	var out testStruct
	found, err := cache.Get(context.Background(), "no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", "value", time.Minute))
	require.NoError(t, cache.Invalidate(ctx, "key"))

	var out string
	found, err := cache.Get(ctx, "key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetInvalidJSON(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Db.Set(ctx, "bad", []byte("not-json"), time.Minute).Err())

	var out testStruct
	found, err := cache.Get(ctx, "bad", &out)
	assert.False(t, found)
	assert.Error(t, err)
}

func TestInitServerInvalidAddr(t *testing.T) {
	cfg := config.RedisConnection{
		AddressRedis: "127.0.0.1:1",
		DialTimeout:  200 * time.Millisecond,
	}

	cache, err := InitServer(context.Background(), cfg)
	assert.Nil(t, cache)
	assert.Error(t, err)
}

func TestSessionLifecycle(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	s := &models.Session{
		ID:            "sid-1",
		UserID:        "uid-1",
		Email:         "a@b.c",
		ProviderToken: "provider-token",
		CreatedAt:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, cache.SaveSession(ctx, s, time.Hour))
	assert.True(t, mr.Exists("session:sid-1"))
	assert.Equal(t, time.Hour, mr.TTL("session:sid-1"))

	got, err := cache.GetSession(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, s.UserID, got.UserID)
	assert.Equal(t, s.ProviderToken, got.ProviderToken)
	assert.True(t, s.CreatedAt.Equal(got.CreatedAt))

	require.NoError(t, cache.DeleteSession(ctx, "sid-1"))
	_, err = cache.GetSession(ctx, "sid-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, cache.DeleteSession(ctx, "sid-1"))
}

func TestSessionExpires(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SaveSession(ctx, &models.Session{ID: "sid-2", UserID: "u"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := cache.GetSession(ctx, "sid-2")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
