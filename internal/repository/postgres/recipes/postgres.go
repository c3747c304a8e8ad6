package recipes

import (
	"context"

	"gorm.io/gorm"
	domain "pantry-app-go/internal/domain/recipes"
	pgrepo "pantry-app-go/internal/repository/postgres"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]domain.Recipe, error) {
	recipes := make([]domain.Recipe, 0)
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name asc, id asc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *PostgresRepository) Create(ctx context.Context, recipe *domain.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, recipeID string) (bool, error) {
	if !pgrepo.ValidIDs(userID, recipeID) {
		return false, nil
	}
	result := r.db.WithContext(ctx).Delete(&domain.Recipe{}, "user_id = ? AND id = ?", userID, recipeID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
