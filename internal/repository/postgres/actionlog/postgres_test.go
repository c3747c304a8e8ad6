package actionlog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pantry-app-go/internal/db"
	domain "pantry-app-go/internal/domain/actionlog"
)

func TestListSince(t *testing.T) {
	gormDB, err := db.NewSQLite(db.MemoryDSN())
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(context.Background(), gormDB))
	repo := NewPostgres(gormDB)
	svc := domain.NewService(repo)
	ctx := context.Background()

	groupID := uuid.NewString()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, message := range []string{"first", "second", "third"} {
		entry := domain.New(groupID, message, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, gormDB.Create(&entry).Error)
	}
	other := domain.New(uuid.NewString(), "elsewhere", base)
	require.NoError(t, gormDB.Create(&other).Error)

	all, err := svc.ListSince(ctx, groupID, time.Time{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "first", all[0].LogMessage)
	assert.Equal(t, "third", all[2].LogMessage)

	newer, err := svc.ListSince(ctx, groupID, base.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, newer, 1)
	assert.Equal(t, "third", newer[0].LogMessage)

	none, err := svc.ListSince(ctx, groupID, base.Add(time.Hour))
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	entry, err := svc.Get(ctx, groupID, all[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "second", entry.LogMessage)

	_, err = svc.Get(ctx, groupID, other.ID)
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)

	_, err = svc.Get(ctx, groupID, "abc")
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
}
