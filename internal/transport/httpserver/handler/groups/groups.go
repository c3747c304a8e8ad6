package groups

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
	"pantry-app-go/internal/domain/actionlog"
	itemsdomain "pantry-app-go/internal/domain/items"
)

type groupNameRequest struct {
	Name string `json:"name"`
}

func (h *Handlers) ListGroups(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	list, err := h.Groups.ListGroups(r.Context(), actor.ID)
	if err != nil {
		writeDomainError(w, h.log, "groups.list", err, "user_id", actor.ID)
		return
	}

	response := make([]groupResponse, 0, len(list))
	for i := range list {
		response = append(response, toGroupResponse(&list[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateGroup(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req groupNameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	created, err := h.Groups.CreateGroup(r.Context(), actor, req.Name)
	if err != nil {
		writeDomainError(w, h.log, "groups.create", err, "user_id", actor.ID)
		return
	}

	writeJSON(w, http.StatusCreated, toGroupResponse(created))
}

// GetGroup returns the group with members, invites, items and full history.
func (h *Handlers) GetGroup(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}
	groupID := chi.URLParam(r, "group_id")

	details, err := h.Groups.Details(r.Context(), actor.ID, groupID)
	if err != nil {
		writeDomainError(w, h.log, "groups.get", err, "user_id", actor.ID, "group_id", groupID)
		return
	}

	var (
		items   []itemsdomain.Item
		history []actionlog.Entry
	)
	g, gctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		items, err = h.Items.ListItems(gctx, groupID)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = h.History.ListSince(gctx, groupID, time.Time{})
		return err
	})
	if err := g.Wait(); err != nil {
		writeDomainError(w, h.log, "groups.get", err, "user_id", actor.ID, "group_id", groupID)
		return
	}

	writeJSON(w, http.StatusOK, groupDetailsResponse{
		Group:   toGroupResponse(&details.Group),
		Role:    details.Caller.Role.String(),
		Members: toMemberResponses(details.Members),
		Invites: toInviteResponses(details.Invites),
		Items:   toItemResponses(items),
		History: toLogEntryResponses(history),
	})
}

func (h *Handlers) RenameGroup(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}
	groupID := chi.URLParam(r, "group_id")

	var req groupNameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	updated, err := h.Groups.RenameGroup(r.Context(), actor, groupID, req.Name)
	if err != nil {
		writeDomainError(w, h.log, "groups.rename", err, "user_id", actor.ID, "group_id", groupID)
		return
	}

	writeJSON(w, http.StatusOK, toGroupResponse(updated))
}

func (h *Handlers) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}
	groupID := chi.URLParam(r, "group_id")

	if err := h.Groups.DeleteGroup(r.Context(), actor, groupID); err != nil {
		writeDomainError(w, h.log, "groups.delete", err, "user_id", actor.ID, "group_id", groupID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
