package items

import "pantry-app-go/internal/domain/apperr"

var (
	ErrItemNotFound     = apperr.NotFound("item_not_found", "Item not found.")
	ErrNameRequired     = apperr.Validation("invalid_item", "Item name is required.")
	ErrNameTooLong      = apperr.Validation("invalid_item", "Item name is too long.")
	ErrCategoryTooLong  = apperr.Validation("invalid_item", "Item category is too long.")
	ErrNegativeQuantity = apperr.Validation("invalid_item", "Quantities must not be negative.")
	ErrNoFields         = apperr.Validation("invalid_item", "No fields to update.")
)
