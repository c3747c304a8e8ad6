package recipes

import "context"

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]Recipe, error)
	Create(ctx context.Context, recipe *Recipe) error
	// Delete reports whether a recipe owned by userID was removed.
	Delete(ctx context.Context, userID, recipeID string) (bool, error)
}
