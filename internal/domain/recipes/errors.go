package recipes

import "pantry-app-go/internal/domain/apperr"

var (
	ErrRecipeNotFound = apperr.NotFound("recipe_not_found", "Recipe not found.")
	ErrNameRequired   = apperr.Validation("invalid_recipe", "Recipe name is required.")
	ErrNameTooLong    = apperr.Validation("invalid_recipe", "Recipe name is too long.")
)
