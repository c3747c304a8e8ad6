package groups

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) ListInvites(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}
	groupID := chi.URLParam(r, "group_id")

	invites, err := h.Groups.ListInvites(r.Context(), actor.ID, groupID)
	if err != nil {
		writeDomainError(w, h.log, "invites.list", err, "user_id", actor.ID, "group_id", groupID)
		return
	}

	writeJSON(w, http.StatusOK, toInviteResponses(invites))
}

func (h *Handlers) CreateInvite(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}
	groupID := chi.URLParam(r, "group_id")

	invite, err := h.Groups.CreateInvite(r.Context(), actor, groupID)
	if err != nil {
		writeDomainError(w, h.log, "invites.create", err, "user_id", actor.ID, "group_id", groupID)
		return
	}

	writeJSON(w, http.StatusCreated, toInviteResponse(*invite))
}

func (h *Handlers) DeleteInvite(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}
	groupID := chi.URLParam(r, "group_id")
	inviteID := chi.URLParam(r, "invite_id")

	if err := h.Groups.DeleteInvite(r.Context(), actor, groupID, inviteID); err != nil {
		writeDomainError(w, h.log, "invites.delete", err, "user_id", actor.ID, "group_id", groupID, "invite_id", inviteID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) PreviewInvite(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	group, err := h.Groups.PreviewInvite(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeDomainError(w, h.log, "invites.preview", err, "user_id", actor.ID)
		return
	}

	writeJSON(w, http.StatusOK, invitePreviewResponse{GroupID: group.ID, GroupName: group.Name})
}

func (h *Handlers) ClaimInvite(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	group, err := h.Groups.ClaimInvite(r.Context(), actor, chi.URLParam(r, "code"))
	if err != nil {
		writeDomainError(w, h.log, "invites.claim", err, "user_id", actor.ID)
		return
	}

	writeJSON(w, http.StatusOK, toGroupResponse(group))
}
