package actionlog

import (
	"context"
	"time"
)

type Repository interface {
	ListSince(ctx context.Context, groupID string, since time.Time) ([]Entry, error)
	Get(ctx context.Context, groupID, entryID string) (*Entry, error)
}
