package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pantry-app-go/internal/domain/apperr"
	"pantry-app-go/internal/domain/user"
	"pantry-app-go/pkg/logger"
)

// TokenValidator resolves a session token to its user.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*user.User, error)
}

type SessionAuth struct {
	validator TokenValidator
	log       logger.Logger
}

type contextKey int

const userKey contextKey = 0

type User struct {
	ID    string
	Name  string
	Email string
}

func NewSessionAuth(validator TokenValidator, log logger.Logger) *SessionAuth {
	return &SessionAuth{validator: validator, log: log}
}

func (a *SessionAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		found, err := a.validator.ValidateToken(r.Context(), token)
		if err != nil {
			if !errors.Is(err, apperr.ErrUnauthorized) {
				a.log.InternalError("auth: validate token failed", err)
				writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
				return
			}
			unauthorized(w)
			return
		}

		ctx := WithUser(r.Context(), User{ID: found.ID, Name: found.Name, Email: found.Email})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (User, bool) {
	value := ctx.Value(userKey)
	user, ok := value.(User)
	if !ok || user.ID == "" {
		return User{}, false
	}
	return user, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
