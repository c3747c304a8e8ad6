package inmemory

import (
	"context"
	"sync"
	"time"

	"pantry-app-go/internal/domain/group"
)

// GroupListCache keeps each user's group list in process memory until its TTL passes.
type GroupListCache struct {
	mu    sync.RWMutex
	items map[string]groupListItem
	now   func() time.Time
}

type groupListItem struct {
	value     []group.Group
	expiresAt time.Time
}

func NewGroupListCache() *GroupListCache {
	return &GroupListCache{
		items: make(map[string]groupListItem),
		now:   time.Now,
	}
}

func (c *GroupListCache) GetByUserID(_ context.Context, userID string) ([]group.Group, bool) {
	now := c.now()

	c.mu.RLock()
	item, ok := c.items[userID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[userID]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, userID)
		}
		c.mu.Unlock()
		return nil, false
	}

	return append(make([]group.Group, 0, len(item.value)), item.value...), true
}

func (c *GroupListCache) SetByUserID(ctx context.Context, userID string, groups []group.Group, ttl time.Duration) {
	if groups == nil || ttl <= 0 {
		c.DeleteByUserID(ctx, userID)
		return
	}

	c.mu.Lock()
	c.items[userID] = groupListItem{
		value:     append([]group.Group{}, groups...),
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *GroupListCache) DeleteByUserID(_ context.Context, userID string) {
	c.mu.Lock()
	delete(c.items, userID)
	c.mu.Unlock()
}
