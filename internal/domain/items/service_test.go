package items

import (
	"context"
	"errors"
	"strings"
	"testing"

	"pantry-app-go/internal/domain/actionlog"
)

type fakeItemRepo struct {
	items map[string]*Item
	logs  []actionlog.Entry
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*Item)}
}

func (r *fakeItemRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeItemRepo) ListItems(ctx context.Context, groupID string) ([]Item, error) {
	var result []Item
	for _, item := range r.items {
		if item.GroupID == groupID {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (r *fakeItemRepo) GetItem(ctx context.Context, groupID, itemID string) (*Item, error) {
	item, ok := r.items[itemID]
	if !ok || item.GroupID != groupID {
		return nil, ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeItemRepo) CreateItem(ctx context.Context, item *Item) error {
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeItemRepo) UpdateItem(ctx context.Context, item *Item) error {
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeItemRepo) DeleteItem(ctx context.Context, groupID, itemID string) error {
	delete(r.items, itemID)
	return nil
}

func (r *fakeItemRepo) AppendLog(ctx context.Context, entry *actionlog.Entry) error {
	r.logs = append(r.logs, *entry)
	return nil
}

func (r *fakeItemRepo) lastLog() string {
	if len(r.logs) == 0 {
		return ""
	}
	return r.logs[len(r.logs)-1].LogMessage
}

func intPtr(v int) *int {
	return &v
}

func stringPtr(v string) *string {
	return &v
}

func TestCreateItem(t *testing.T) {
	repo := newFakeItemRepo()
	svc := NewService(repo)

	item, err := svc.CreateItem(context.Background(), "alice", CreateItemInput{
		GroupID:          "group-1",
		Name:             " Rice ",
		Category:         "Grains",
		PantryQuantity:   2,
		MinimumThreshold: 1,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if item.Name != "Rice" || item.GroupID != "group-1" {
		t.Fatalf("unexpected item %+v", item)
	}
	if repo.lastLog() != "alice added Rice to the pantry." {
		t.Fatalf("unexpected log %q", repo.lastLog())
	}
	if repo.logs[0].GroupID != "group-1" {
		t.Fatalf("expected log in group-1, got %s", repo.logs[0].GroupID)
	}
}

func TestCreateItemValidation(t *testing.T) {
	svc := NewService(newFakeItemRepo())

	cases := []struct {
		name  string
		input CreateItemInput
		want  error
	}{
		{name: "empty name", input: CreateItemInput{Name: "  "}, want: ErrNameRequired},
		{name: "long name", input: CreateItemInput{Name: strings.Repeat("a", 256)}, want: ErrNameTooLong},
		{name: "long category", input: CreateItemInput{Name: "Rice", Category: strings.Repeat("c", 256)}, want: ErrCategoryTooLong},
		{name: "negative quantity", input: CreateItemInput{Name: "Rice", PantryQuantity: -1}, want: ErrNegativeQuantity},
		{name: "negative shopping quantity", input: CreateItemInput{Name: "Rice", ShoppingListQuantity: -3}, want: ErrNegativeQuantity},
	}

	for _, tc := range cases {
		if _, err := svc.CreateItem(context.Background(), "alice", tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestUpdateItem(t *testing.T) {
	repo := newFakeItemRepo()
	svc := NewService(repo)

	item, err := svc.CreateItem(context.Background(), "alice", CreateItemInput{GroupID: "group-1", Name: "Rice", PantryQuantity: 2})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	updated, err := svc.UpdateItem(context.Background(), "bob", UpdateItemInput{
		GroupID:        "group-1",
		ID:             item.ID,
		PantryQuantity: intPtr(0),
		Description:    stringPtr("basmati"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.PantryQuantity != 0 || updated.Description != "basmati" || updated.Name != "Rice" {
		t.Fatalf("unexpected item %+v", updated)
	}
	if repo.items[item.ID].Description != "basmati" {
		t.Fatalf("expected stored description updated")
	}
	if repo.lastLog() != "bob updated Rice." {
		t.Fatalf("unexpected log %q", repo.lastLog())
	}

	if _, err := svc.UpdateItem(context.Background(), "bob", UpdateItemInput{GroupID: "group-1", ID: item.ID}); !errors.Is(err, ErrNoFields) {
		t.Fatalf("expected ErrNoFields, got %v", err)
	}
	if _, err := svc.UpdateItem(context.Background(), "bob", UpdateItemInput{GroupID: "group-1", ID: item.ID, MinimumThreshold: intPtr(-1)}); !errors.Is(err, ErrNegativeQuantity) {
		t.Fatalf("expected ErrNegativeQuantity, got %v", err)
	}
	if _, err := svc.UpdateItem(context.Background(), "bob", UpdateItemInput{GroupID: "group-2", ID: item.ID, Name: stringPtr("Oats")}); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound for other group, got %v", err)
	}
}

func TestDeleteItem(t *testing.T) {
	repo := newFakeItemRepo()
	svc := NewService(repo)

	item, err := svc.CreateItem(context.Background(), "alice", CreateItemInput{GroupID: "group-1", Name: "Rice"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := svc.DeleteItem(context.Background(), "alice", "group-2", item.ID); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
	if err := svc.DeleteItem(context.Background(), "alice", "group-1", item.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatalf("expected item deleted")
	}
	if repo.lastLog() != "alice removed Rice from the pantry." {
		t.Fatalf("unexpected log %q", repo.lastLog())
	}
}

func TestListItemsEmpty(t *testing.T) {
	svc := NewService(newFakeItemRepo())

	result, err := svc.ListItems(context.Background(), "group-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result == nil || len(result) != 0 {
		t.Fatalf("expected empty non-nil list, got %v", result)
	}
}
