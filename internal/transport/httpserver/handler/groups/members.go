package groups

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type addMemberRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}
	groupID := chi.URLParam(r, "group_id")

	members, err := h.Groups.ListMembers(r.Context(), actor.ID, groupID)
	if err != nil {
		writeDomainError(w, h.log, "groups.list_members", err, "user_id", actor.ID, "group_id", groupID)
		return
	}

	writeJSON(w, http.StatusOK, toMemberResponses(members))
}

func (h *Handlers) AddMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}
	groupID := chi.URLParam(r, "group_id")

	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.Role == "" {
		req.Role = "member"
	}

	member, err := h.Groups.AddMember(r.Context(), actor, groupID, req.UserID, req.Role)
	if err != nil {
		writeDomainError(w, h.log, "groups.add_member", err, "user_id", actor.ID, "group_id", groupID, "target_id", req.UserID)
		return
	}

	writeJSON(w, http.StatusCreated, toMemberResponse(*member))
}

// ChangeRole assigns a role. Assigning "owner" transfers ownership.
func (h *Handlers) ChangeRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}
	groupID := chi.URLParam(r, "group_id")
	targetID := chi.URLParam(r, "user_id")

	var req changeRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	member, err := h.Groups.ChangeRole(r.Context(), actor, groupID, targetID, req.Role)
	if err != nil {
		writeDomainError(w, h.log, "groups.change_role", err, "user_id", actor.ID, "group_id", groupID, "target_id", targetID, "role", req.Role)
		return
	}

	writeJSON(w, http.StatusOK, toMemberResponse(*member))
}

// RemoveMember removes a member; a caller removing themself leaves the group.
func (h *Handlers) RemoveMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}
	groupID := chi.URLParam(r, "group_id")
	targetID := chi.URLParam(r, "user_id")

	if err := h.Groups.RemoveMember(r.Context(), actor, groupID, targetID); err != nil {
		writeDomainError(w, h.log, "groups.remove_member", err, "user_id", actor.ID, "group_id", groupID, "target_id", targetID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
