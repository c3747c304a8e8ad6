package groups

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"pantry-app-go/internal/domain/authz"
	itemsdomain "pantry-app-go/internal/domain/items"
)

type createItemRequest struct {
	Name                      string `json:"name"`
	Description               string `json:"description"`
	Category                  string `json:"category"`
	PantryQuantity            int    `json:"pantry_quantity"`
	MinimumThreshold          int    `json:"minimum_threshold"`
	AutoAddToShoppingList     bool   `json:"auto_add_to_shopping_list"`
	ShoppingListQuantity      int    `json:"shopping_list_quantity"`
	DontAddToPantryOnPurchase bool   `json:"dont_add_to_pantry_on_purchase"`
}

type updateItemRequest struct {
	Name                      *string `json:"name"`
	Description               *string `json:"description"`
	Category                  *string `json:"category"`
	PantryQuantity            *int    `json:"pantry_quantity"`
	MinimumThreshold          *int    `json:"minimum_threshold"`
	AutoAddToShoppingList     *bool   `json:"auto_add_to_shopping_list"`
	ShoppingListQuantity      *int    `json:"shopping_list_quantity"`
	DontAddToPantryOnPurchase *bool   `json:"dont_add_to_pantry_on_purchase"`
}

// itemAccess checks that the caller belongs to the group before any item
// operation runs.
func (h *Handlers) itemAccess(w http.ResponseWriter, r *http.Request, op string) (string, string, bool) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return "", "", false
	}
	groupID := chi.URLParam(r, "group_id")

	if _, err := h.Groups.Access(r.Context(), actor.ID, groupID, authz.ActionManageItems); err != nil {
		writeDomainError(w, h.log, op, err, "user_id", actor.ID, "group_id", groupID)
		return "", "", false
	}
	return actor.Name, groupID, true
}

func (h *Handlers) ListItems(w http.ResponseWriter, r *http.Request) {
	_, groupID, ok := h.itemAccess(w, r, "items.list")
	if !ok {
		return
	}

	items, err := h.Items.ListItems(r.Context(), groupID)
	if err != nil {
		writeDomainError(w, h.log, "items.list", err, "group_id", groupID)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponses(items))
}

func (h *Handlers) CreateItem(w http.ResponseWriter, r *http.Request) {
	actorName, groupID, ok := h.itemAccess(w, r, "items.create")
	if !ok {
		return
	}

	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	item, err := h.Items.CreateItem(r.Context(), actorName, itemsdomain.CreateItemInput{
		GroupID:                   groupID,
		Name:                      req.Name,
		Description:               req.Description,
		Category:                  req.Category,
		PantryQuantity:            req.PantryQuantity,
		MinimumThreshold:          req.MinimumThreshold,
		AutoAddToShoppingList:     req.AutoAddToShoppingList,
		ShoppingListQuantity:      req.ShoppingListQuantity,
		DontAddToPantryOnPurchase: req.DontAddToPantryOnPurchase,
	})
	if err != nil {
		writeDomainError(w, h.log, "items.create", err, "group_id", groupID)
		return
	}

	writeJSON(w, http.StatusCreated, toItemResponse(*item))
}

func (h *Handlers) GetItem(w http.ResponseWriter, r *http.Request) {
	_, groupID, ok := h.itemAccess(w, r, "items.get")
	if !ok {
		return
	}
	itemID := chi.URLParam(r, "item_id")

	item, err := h.Items.GetItem(r.Context(), groupID, itemID)
	if err != nil {
		writeDomainError(w, h.log, "items.get", err, "group_id", groupID, "item_id", itemID)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(*item))
}

func (h *Handlers) UpdateItem(w http.ResponseWriter, r *http.Request) {
	actorName, groupID, ok := h.itemAccess(w, r, "items.update")
	if !ok {
		return
	}
	itemID := chi.URLParam(r, "item_id")

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	item, err := h.Items.UpdateItem(r.Context(), actorName, itemsdomain.UpdateItemInput{
		GroupID:                   groupID,
		ID:                        itemID,
		Name:                      req.Name,
		Description:               req.Description,
		Category:                  req.Category,
		PantryQuantity:            req.PantryQuantity,
		MinimumThreshold:          req.MinimumThreshold,
		AutoAddToShoppingList:     req.AutoAddToShoppingList,
		ShoppingListQuantity:      req.ShoppingListQuantity,
		DontAddToPantryOnPurchase: req.DontAddToPantryOnPurchase,
	})
	if err != nil {
		writeDomainError(w, h.log, "items.update", err, "group_id", groupID, "item_id", itemID)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(*item))
}

func (h *Handlers) DeleteItem(w http.ResponseWriter, r *http.Request) {
	actorName, groupID, ok := h.itemAccess(w, r, "items.delete")
	if !ok {
		return
	}
	itemID := chi.URLParam(r, "item_id")

	if err := h.Items.DeleteItem(r.Context(), actorName, groupID, itemID); err != nil {
		writeDomainError(w, h.log, "items.delete", err, "group_id", groupID, "item_id", itemID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
