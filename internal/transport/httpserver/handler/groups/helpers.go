package groups

import (
	"net/http"

	groupdomain "pantry-app-go/internal/domain/group"
	commonhandler "pantry-app-go/internal/transport/httpserver/handler/common"
	"pantry-app-go/internal/transport/httpserver/middleware"
	"pantry-app-go/pkg/logger"
)

func writeError(w http.ResponseWriter, status int, code, message string) {
	commonhandler.WriteError(w, status, code, message)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	commonhandler.WriteJSON(w, status, payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return commonhandler.DecodeJSON(r, dst)
}

func writeDomainError(w http.ResponseWriter, log logger.Logger, op string, err error, args ...any) {
	commonhandler.WriteDomainError(w, log, op, err, args...)
}

func actorFromRequest(w http.ResponseWriter, r *http.Request) (groupdomain.Actor, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return groupdomain.Actor{}, false
	}
	return groupdomain.Actor{ID: user.ID, Name: user.Name}, true
}
