package common

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"pantry-app-go/internal/domain/recipes"
	"pantry-app-go/internal/transport/httpserver/middleware"
)

type createRecipeRequest struct {
	Name         string `json:"name"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
}

type recipeResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Ingredients  string    `json:"ingredients"`
	Instructions string    `json:"instructions"`
	CreatedAt    time.Time `json:"created_at"`
}

func (h *Handlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	list, err := h.Recipes.List(r.Context(), current.ID)
	if err != nil {
		writeDomainError(w, h.log, "recipes.list", err, "user_id", current.ID)
		return
	}

	response := make([]recipeResponse, 0, len(list))
	for i := range list {
		response = append(response, toRecipeResponse(&list[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req createRecipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	created, err := h.Recipes.Create(r.Context(), recipes.CreateRecipeInput{
		UserID:       current.ID,
		Name:         req.Name,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
	})
	if err != nil {
		writeDomainError(w, h.log, "recipes.create", err, "user_id", current.ID)
		return
	}

	writeJSON(w, http.StatusCreated, toRecipeResponse(created))
}

func (h *Handlers) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	recipeID := chi.URLParam(r, "recipe_id")
	if err := h.Recipes.Delete(r.Context(), current.ID, recipeID); err != nil {
		writeDomainError(w, h.log, "recipes.delete", err, "user_id", current.ID, "recipe_id", recipeID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toRecipeResponse(recipe *recipes.Recipe) recipeResponse {
	return recipeResponse{
		ID:           recipe.ID,
		Name:         recipe.Name,
		Ingredients:  recipe.Ingredients,
		Instructions: recipe.Instructions,
		CreatedAt:    recipe.CreatedAt,
	}
}
