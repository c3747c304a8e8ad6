package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"pantry-app-go/internal/domain/group"
	"pantry-app-go/pkg/logger"
)

const defaultKeyPrefix = "pantry:groups:user:"

// GroupListCache stores each user's group list as JSON under a per-user key.
// Redis failures are logged and treated as cache misses.
type GroupListCache struct {
	client *goredis.Client
	log    logger.Logger
	prefix string
}

func NewGroupListCache(client *goredis.Client, log logger.Logger) *GroupListCache {
	return &GroupListCache{client: client, log: log, prefix: defaultKeyPrefix}
}

func (c *GroupListCache) key(userID string) string {
	return c.prefix + userID
}

func (c *GroupListCache) GetByUserID(ctx context.Context, userID string) ([]group.Group, bool) {
	data, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.log.InternalError("cache.groups: get failed", err, "user_id", userID)
		}
		return nil, false
	}

	var groups []group.Group
	if err := json.Unmarshal(data, &groups); err != nil {
		c.log.InternalError("cache.groups: decode failed", err, "user_id", userID)
		return nil, false
	}
	if groups == nil {
		groups = []group.Group{}
	}
	return groups, true
}

func (c *GroupListCache) SetByUserID(ctx context.Context, userID string, groups []group.Group, ttl time.Duration) {
	if groups == nil || ttl <= 0 {
		c.DeleteByUserID(ctx, userID)
		return
	}

	data, err := json.Marshal(groups)
	if err != nil {
		c.log.InternalError("cache.groups: encode failed", err, "user_id", userID)
		return
	}
	if err := c.client.Set(ctx, c.key(userID), data, ttl).Err(); err != nil {
		c.log.InternalError("cache.groups: set failed", err, "user_id", userID)
	}
}

func (c *GroupListCache) DeleteByUserID(ctx context.Context, userID string) {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		c.log.InternalError("cache.groups: delete failed", err, "user_id", userID)
	}
}
