package recipes

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pantry-app-go/internal/db"
	domain "pantry-app-go/internal/domain/recipes"
)

func TestRecipes(t *testing.T) {
	gormDB, err := db.NewSQLite(db.MemoryDSN())
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(context.Background(), gormDB))
	svc := domain.NewService(NewPostgres(gormDB))
	ctx := context.Background()

	userID := uuid.NewString()
	recipe, err := svc.Create(ctx, domain.CreateRecipeInput{UserID: userID, Name: "Soup", Ingredients: "water"})
	require.NoError(t, err)

	list, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "water", list[0].Ingredients)

	assert.ErrorIs(t, svc.Delete(ctx, uuid.NewString(), recipe.ID), domain.ErrRecipeNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, userID, "abc"), domain.ErrRecipeNotFound)
	require.NoError(t, svc.Delete(ctx, userID, recipe.ID))

	list, err = svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
