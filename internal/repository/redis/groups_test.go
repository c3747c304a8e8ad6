package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pantry-app-go/internal/domain/group"
	"pantry-app-go/pkg/logger"
)

func newTestCache(t *testing.T) *GroupListCache {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR is not set")
	}

	client := goredis.NewClient(&goredis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())

	cache := NewGroupListCache(client, logger.NewNop())
	cache.prefix = "pantry-test:" + uuid.NewString() + ":"
	return cache
}

func TestGroupListCacheRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	cache.SetByUserID(ctx, "user-1", []group.Group{{ID: "g1", Name: "Pantry", CreatedAt: created}}, time.Minute)

	groups, ok := cache.GetByUserID(ctx, "user-1")
	require.True(t, ok)
	require.Len(t, groups, 1)
	assert.Equal(t, "Pantry", groups[0].Name)
	assert.True(t, created.Equal(groups[0].CreatedAt))

	cache.DeleteByUserID(ctx, "user-1")
	_, ok = cache.GetByUserID(ctx, "user-1")
	assert.False(t, ok)
}

func TestGroupListCacheEmptyList(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	cache.SetByUserID(ctx, "user-1", []group.Group{}, time.Minute)
	groups, ok := cache.GetByUserID(ctx, "user-1")
	require.True(t, ok)
	assert.Empty(t, groups)
	cache.DeleteByUserID(ctx, "user-1")
}

func TestGroupListCacheUnreachableIsMiss(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	cache := NewGroupListCache(client, logger.NewNop())
	ctx := context.Background()

	cache.SetByUserID(ctx, "user-1", []group.Group{{ID: "g1"}}, time.Minute)
	_, ok := cache.GetByUserID(ctx, "user-1")
	assert.False(t, ok)
}
