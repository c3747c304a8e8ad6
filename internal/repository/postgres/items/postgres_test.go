package items

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pantry-app-go/internal/db"
	"pantry-app-go/internal/domain/actionlog"
	itemsdomain "pantry-app-go/internal/domain/items"
)

func newTestRepo(t *testing.T) *PostgresRepository {
	t.Helper()
	gormDB, err := db.NewSQLite(db.MemoryDSN())
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(context.Background(), gormDB))
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewPostgres(gormDB)
}

func TestItemsThroughService(t *testing.T) {
	repo := newTestRepo(t)
	svc := itemsdomain.NewService(repo)
	ctx := context.Background()
	groupID := uuid.NewString()

	created, err := svc.CreateItem(ctx, "alice", itemsdomain.CreateItemInput{GroupID: groupID, Name: "Rice", PantryQuantity: 3})
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, "alice", itemsdomain.CreateItemInput{GroupID: groupID, Name: "Beans"})
	require.NoError(t, err)

	list, err := svc.ListItems(ctx, groupID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Beans", list[0].Name)

	quantity := 0
	autoAdd := true
	updated, err := svc.UpdateItem(ctx, "bob", itemsdomain.UpdateItemInput{GroupID: groupID, ID: created.ID, PantryQuantity: &quantity, AutoAddToShoppingList: &autoAdd})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.PantryQuantity)

	stored, err := repo.GetItem(ctx, groupID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.PantryQuantity)
	assert.True(t, stored.AutoAddToShoppingList)

	require.NoError(t, svc.DeleteItem(ctx, "bob", groupID, created.ID))
	_, err = repo.GetItem(ctx, groupID, created.ID)
	assert.ErrorIs(t, err, itemsdomain.ErrItemNotFound)
	assert.ErrorIs(t, repo.DeleteItem(ctx, groupID, created.ID), itemsdomain.ErrItemNotFound)

	var messages []string
	require.NoError(t, repo.db.Model(&actionlog.Entry{}).Where("group_id = ?", groupID).Order(`"timestamp" asc, id asc`).Pluck("log_message", &messages).Error)
	assert.Contains(t, messages, "alice added Rice to the pantry.")
	assert.Contains(t, messages, "bob updated Rice.")
	assert.Contains(t, messages, "bob removed Rice from the pantry.")
}

func TestItemScopedToGroup(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	item := itemsdomain.Item{ID: uuid.NewString(), GroupID: uuid.NewString(), Name: "Rice", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.CreateItem(ctx, &item))

	_, err := repo.GetItem(ctx, uuid.NewString(), item.ID)
	assert.ErrorIs(t, err, itemsdomain.ErrItemNotFound)
}

func TestMalformedItemIDIsNotFound(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	groupID := uuid.NewString()

	_, err := repo.GetItem(ctx, groupID, "abc")
	assert.ErrorIs(t, err, itemsdomain.ErrItemNotFound)
	_, err = repo.GetItem(ctx, "abc", uuid.NewString())
	assert.ErrorIs(t, err, itemsdomain.ErrItemNotFound)
	assert.ErrorIs(t, repo.DeleteItem(ctx, groupID, "abc"), itemsdomain.ErrItemNotFound)
}
