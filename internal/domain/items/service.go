package items

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"pantry-app-go/internal/domain/actionlog"
)

// Service manages the pantry items of a group. Callers check group access
// before calling it; actor is the display name written to the history.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) ListItems(ctx context.Context, groupID string) ([]Item, error) {
	items, err := s.repo.ListItems(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

func (s *Service) GetItem(ctx context.Context, groupID, itemID string) (*Item, error) {
	return s.repo.GetItem(ctx, groupID, itemID)
}

func (s *Service) CreateItem(ctx context.Context, actor string, input CreateItemInput) (*Item, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	category := strings.TrimSpace(input.Category)
	if utf8.RuneCountInString(category) > MaxCategoryLength {
		return nil, ErrCategoryTooLong
	}
	if input.PantryQuantity < 0 || input.MinimumThreshold < 0 || input.ShoppingListQuantity < 0 {
		return nil, ErrNegativeQuantity
	}

	now := s.now().UTC()
	item := Item{
		ID:                        uuid.NewString(),
		GroupID:                   input.GroupID,
		Name:                      name,
		Description:               strings.TrimSpace(input.Description),
		Category:                  category,
		PantryQuantity:            input.PantryQuantity,
		MinimumThreshold:          input.MinimumThreshold,
		AutoAddToShoppingList:     input.AutoAddToShoppingList,
		ShoppingListQuantity:      input.ShoppingListQuantity,
		DontAddToPantryOnPurchase: input.DontAddToPantryOnPurchase,
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreateItem(ctx, &item); err != nil {
			return err
		}
		return s.appendLog(ctx, tx, item.GroupID, actionlog.ItemCreated(actor, item.Name))
	})
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (s *Service) UpdateItem(ctx context.Context, actor string, input UpdateItemInput) (*Item, error) {
	if input.empty() {
		return nil, ErrNoFields
	}

	var result Item
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		item, err := tx.GetItem(ctx, input.GroupID, input.ID)
		if err != nil {
			return err
		}
		if err := applyUpdate(item, input); err != nil {
			return err
		}
		item.UpdatedAt = s.now().UTC()

		if err := tx.UpdateItem(ctx, item); err != nil {
			return err
		}
		if err := s.appendLog(ctx, tx, item.GroupID, actionlog.ItemUpdated(actor, item.Name)); err != nil {
			return err
		}

		result = *item
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) DeleteItem(ctx context.Context, actor, groupID, itemID string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		item, err := tx.GetItem(ctx, groupID, itemID)
		if err != nil {
			return err
		}
		if err := tx.DeleteItem(ctx, groupID, itemID); err != nil {
			return err
		}
		return s.appendLog(ctx, tx, groupID, actionlog.ItemDeleted(actor, item.Name))
	})
}

func (s *Service) appendLog(ctx context.Context, tx Repository, groupID, message string) error {
	entry := actionlog.New(groupID, message, s.now())
	return tx.AppendLog(ctx, &entry)
}

func applyUpdate(item *Item, input UpdateItemInput) error {
	if input.Name != nil {
		name, err := validateName(*input.Name)
		if err != nil {
			return err
		}
		item.Name = name
	}
	if input.Description != nil {
		item.Description = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if utf8.RuneCountInString(category) > MaxCategoryLength {
			return ErrCategoryTooLong
		}
		item.Category = category
	}
	for _, quantity := range []*int{input.PantryQuantity, input.MinimumThreshold, input.ShoppingListQuantity} {
		if quantity != nil && *quantity < 0 {
			return ErrNegativeQuantity
		}
	}
	if input.PantryQuantity != nil {
		item.PantryQuantity = *input.PantryQuantity
	}
	if input.MinimumThreshold != nil {
		item.MinimumThreshold = *input.MinimumThreshold
	}
	if input.ShoppingListQuantity != nil {
		item.ShoppingListQuantity = *input.ShoppingListQuantity
	}
	if input.AutoAddToShoppingList != nil {
		item.AutoAddToShoppingList = *input.AutoAddToShoppingList
	}
	if input.DontAddToPantryOnPurchase != nil {
		item.DontAddToPantryOnPurchase = *input.DontAddToPantryOnPurchase
	}
	return nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}
