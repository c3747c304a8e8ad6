package items

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"pantry-app-go/internal/domain/actionlog"
	itemsdomain "pantry-app-go/internal/domain/items"
	pgrepo "pantry-app-go/internal/repository/postgres"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(itemsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListItems(ctx context.Context, groupID string) ([]itemsdomain.Item, error) {
	items := make([]itemsdomain.Item, 0)
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("name asc, id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetItem(ctx context.Context, groupID, itemID string) (*itemsdomain.Item, error) {
	if !pgrepo.ValidIDs(groupID, itemID) {
		return nil, itemsdomain.ErrItemNotFound
	}
	var item itemsdomain.Item
	if err := r.db.WithContext(ctx).Where("group_id = ? AND id = ?", groupID, itemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, itemsdomain.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) CreateItem(ctx context.Context, item *itemsdomain.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *PostgresRepository) UpdateItem(ctx context.Context, item *itemsdomain.Item) error {
	return r.db.WithContext(ctx).
		Model(&itemsdomain.Item{}).
		Where("group_id = ? AND id = ?", item.GroupID, item.ID).
		Updates(map[string]interface{}{
			"name":                           item.Name,
			"description":                    item.Description,
			"category":                       item.Category,
			"pantry_quantity":                item.PantryQuantity,
			"minimum_threshold":              item.MinimumThreshold,
			"auto_add_to_shopping_list":      item.AutoAddToShoppingList,
			"shopping_list_quantity":         item.ShoppingListQuantity,
			"dont_add_to_pantry_on_purchase": item.DontAddToPantryOnPurchase,
			"updated_at":                     item.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteItem(ctx context.Context, groupID, itemID string) error {
	if !pgrepo.ValidIDs(groupID, itemID) {
		return itemsdomain.ErrItemNotFound
	}
	result := r.db.WithContext(ctx).Delete(&itemsdomain.Item{}, "group_id = ? AND id = ?", groupID, itemID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return itemsdomain.ErrItemNotFound
	}
	return nil
}

func (r *PostgresRepository) AppendLog(ctx context.Context, entry *actionlog.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
