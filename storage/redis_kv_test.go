package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedisKV(t *testing.T) (*RedisKV, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisKV(client, "restaurant:"), mr
}

func TestRedisKV_GetMissingKey(t *testing.T) {
	kv, _ := setupTestRedisKV(t)

	value, ok, err := kv.Get(context.Background(), KeyTables)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestRedisKV_SetUsesPrefix(t *testing.T) {
	kv, mr := setupTestRedisKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, KeyMenuItems, `[]`))

	stored, err := mr.Get("restaurant:menuItems")
	require.NoError(t, err)
	assert.Equal(t, `[]`, stored)

	value, ok, err := kv.Get(ctx, KeyMenuItems)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, value)
}

func TestRedisKV_SetManyAndRemove(t *testing.T) {
	kv, mr := setupTestRedisKV(t)
	ctx := context.Background()

	require.NoError(t, kv.SetMany(ctx, map[string]string{
		KeyReservations: `reservations`,
		KeyTables:       `tables`,
	}))
	assert.True(t, mr.Exists("restaurant:reservations"))
	assert.True(t, mr.Exists("restaurant:tables"))

	require.NoError(t, kv.Remove(ctx, KeyTables))
	_, ok, err := kv.Get(ctx, KeyTables)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisKV_ServerDown(t *testing.T) {
	kv, mr := setupTestRedisKV(t)
	mr.Close()

	_, _, err := kv.Get(context.Background(), KeyOrders)
	assert.Error(t, err)
	assert.Error(t, kv.Set(context.Background(), KeyOrders, `[]`))
}
