package points

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "test:points")
}

func TestRedisStoreAddAndGet(t *testing.T) {
	ctx := context.Background()
	store := newMiniredisStore(t)

	total, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, total, "unknown user reads zero")

	total, err = store.Add(ctx, "u1", 15)
	require.NoError(t, err)
	assert.EqualValues(t, 15, total)

	total, err = store.Add(ctx, "u1", 10)
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)

	total, err = store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
}

func TestRedisStoreTop(t *testing.T) {
	ctx := context.Background()
	store := newMiniredisStore(t)

	for user, pts := range map[string]int64{"u1": 30, "u2": 50, "u3": 10} {
		_, err := store.Add(ctx, user, pts)
		require.NoError(t, err)
	}

	top, err := store.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, Entry{UserID: "u2", Points: 50}, top[0])
	assert.Equal(t, Entry{UserID: "u1", Points: 30}, top[1])

	top, err = store.Top(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestRedisStoreDefaultKey(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, "")
	_, err := store.Add(context.Background(), "u1", 5)
	require.NoError(t, err)
	assert.True(t, mr.Exists(defaultLeaderboardKey))
}
