package common

import (
	"pantry-app-go/internal/domain/recipes"
	"pantry-app-go/internal/domain/user"
	"pantry-app-go/pkg/logger"
)

type Handlers struct {
	Users   *user.Service
	Recipes *recipes.Service
	log     logger.Logger
}

func New(users *user.Service, recipes *recipes.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Users:   users,
		Recipes: recipes,
		log:     log,
	}
}
