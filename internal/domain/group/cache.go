package group

import (
	"context"
	"time"
)

// Cache stores the group list of a user.
type Cache interface {
	GetByUserID(ctx context.Context, userID string) ([]Group, bool)
	SetByUserID(ctx context.Context, userID string, groups []Group, ttl time.Duration)
	DeleteByUserID(ctx context.Context, userID string)
}

type noopCache struct{}

func (noopCache) GetByUserID(context.Context, string) ([]Group, bool) {
	return nil, false
}

func (noopCache) SetByUserID(context.Context, string, []Group, time.Duration) {}

func (noopCache) DeleteByUserID(context.Context, string) {}
