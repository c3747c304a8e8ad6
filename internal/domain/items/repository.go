package items

import (
	"context"

	"pantry-app-go/internal/domain/actionlog"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListItems(ctx context.Context, groupID string) ([]Item, error)
	GetItem(ctx context.Context, groupID, itemID string) (*Item, error)
	CreateItem(ctx context.Context, item *Item) error
	UpdateItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, groupID, itemID string) error
	AppendLog(ctx context.Context, entry *actionlog.Entry) error
}
