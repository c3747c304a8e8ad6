package items

import "time"

const (
	MaxNameLength     = 255
	MaxCategoryLength = 255
)

type Item struct {
	ID                        string    `gorm:"type:uuid;primaryKey"`
	GroupID                   string    `gorm:"type:uuid;not null;index"`
	Name                      string    `gorm:"size:255;not null"`
	Description               string    `gorm:"type:text;not null;default:''"`
	Category                  string    `gorm:"size:255;not null;default:''"`
	PantryQuantity            int       `gorm:"not null;default:0"`
	MinimumThreshold          int       `gorm:"not null;default:0"`
	AutoAddToShoppingList     bool      `gorm:"not null;default:false"`
	ShoppingListQuantity      int       `gorm:"not null;default:0"`
	DontAddToPantryOnPurchase bool      `gorm:"not null;default:false"`
	CreatedAt                 time.Time `gorm:"autoCreateTime"`
	UpdatedAt                 time.Time `gorm:"autoUpdateTime"`
}

type CreateItemInput struct {
	GroupID                   string
	Name                      string
	Description               string
	Category                  string
	PantryQuantity            int
	MinimumThreshold          int
	AutoAddToShoppingList     bool
	ShoppingListQuantity      int
	DontAddToPantryOnPurchase bool
}

// UpdateItemInput changes only the non-nil fields.
type UpdateItemInput struct {
	GroupID                   string
	ID                        string
	Name                      *string
	Description               *string
	Category                  *string
	PantryQuantity            *int
	MinimumThreshold          *int
	AutoAddToShoppingList     *bool
	ShoppingListQuantity      *int
	DontAddToPantryOnPurchase *bool
}

func (in UpdateItemInput) empty() bool {
	return in.Name == nil && in.Description == nil && in.Category == nil &&
		in.PantryQuantity == nil && in.MinimumThreshold == nil &&
		in.AutoAddToShoppingList == nil && in.ShoppingListQuantity == nil &&
		in.DontAddToPantryOnPurchase == nil
}
