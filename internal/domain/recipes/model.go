package recipes

import "time"

const MaxNameLength = 255

type Recipe struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	UserID       string    `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"size:255;not null"`
	Ingredients  string    `gorm:"type:text;not null;default:''"`
	Instructions string    `gorm:"type:text;not null;default:''"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

type CreateRecipeInput struct {
	UserID       string
	Name         string
	Ingredients  string
	Instructions string
}
