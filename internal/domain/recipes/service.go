package recipes

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) List(ctx context.Context, userID string) ([]Recipe, error) {
	recipes, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if recipes == nil {
		recipes = []Recipe{}
	}
	return recipes, nil
}

func (s *Service) Create(ctx context.Context, input CreateRecipeInput) (*Recipe, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return nil, ErrNameTooLong
	}

	recipe := Recipe{
		ID:           uuid.NewString(),
		UserID:       input.UserID,
		Name:         name,
		Ingredients:  strings.TrimSpace(input.Ingredients),
		Instructions: strings.TrimSpace(input.Instructions),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (s *Service) Delete(ctx context.Context, userID, recipeID string) error {
	deleted, err := s.repo.Delete(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrRecipeNotFound
	}
	return nil
}
