package groups

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"pantry-app-go/internal/domain/authz"
)

func (h *Handlers) historyAccess(w http.ResponseWriter, r *http.Request, op string) (string, bool) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return "", false
	}
	groupID := chi.URLParam(r, "group_id")

	if _, err := h.Groups.Access(r.Context(), actor.ID, groupID, authz.ActionViewHistory); err != nil {
		writeDomainError(w, h.log, op, err, "user_id", actor.ID, "group_id", groupID)
		return "", false
	}
	return groupID, true
}

// ListHistory returns entries newer than ?since=, which accepts RFC 3339 or
// unix seconds. Without it the whole history is returned.
func (h *Handlers) ListHistory(w http.ResponseWriter, r *http.Request) {
	since, err := parseSince(r.URL.Query().Get("since"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_since", "since must be RFC 3339 or unix seconds")
		return
	}

	groupID, ok := h.historyAccess(w, r, "history.list")
	if !ok {
		return
	}

	entries, err := h.History.ListSince(r.Context(), groupID, since)
	if err != nil {
		writeDomainError(w, h.log, "history.list", err, "group_id", groupID)
		return
	}

	writeJSON(w, http.StatusOK, toLogEntryResponses(entries))
}

func (h *Handlers) GetHistoryEntry(w http.ResponseWriter, r *http.Request) {
	groupID, ok := h.historyAccess(w, r, "history.get")
	if !ok {
		return
	}
	entryID := chi.URLParam(r, "log_id")

	entry, err := h.History.Get(r.Context(), groupID, entryID)
	if err != nil {
		writeDomainError(w, h.log, "history.get", err, "group_id", groupID, "log_id", entryID)
		return
	}

	writeJSON(w, http.StatusOK, toLogEntryResponse(*entry))
}

func parseSince(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if seconds, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Unix(seconds, 0).UTC(), nil
	}
	return time.Parse(time.RFC3339Nano, raw)
}
