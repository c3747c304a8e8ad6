package common

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"pantry-app-go/internal/domain/user"
	"pantry-app-go/internal/transport/httpserver/middleware"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	created, err := h.Users.Register(r.Context(), user.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeDomainError(w, h.log, "users.register", err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(created))
}

// NameAvailable answers 200 when the username is taken and 404 when it is free.
func (h *Handlers) NameAvailable(w http.ResponseWriter, r *http.Request) {
	available, err := h.Users.NameAvailable(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeDomainError(w, h.log, "users.name_available", err)
		return
	}

	if available {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	session, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, h.log, "sessions.create", err)
		return
	}

	found, err := h.Users.GetUser(r.Context(), session.UserID)
	if err != nil {
		writeDomainError(w, h.log, "sessions.create", err, "user_id", session.UserID)
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{Token: session.Token, User: toUserResponse(found)})
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Users.Logout(r.Context(), current.ID); err != nil {
		writeDomainError(w, h.log, "sessions.delete", err, "user_id", current.ID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	found, err := h.Users.GetUser(r.Context(), current.ID)
	if err != nil {
		writeDomainError(w, h.log, "users.me", err, "user_id", current.ID)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(found))
}

func (h *Handlers) DeleteMe(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Users.DeleteAccount(r.Context(), current.ID); err != nil {
		writeDomainError(w, h.log, "users.delete", err, "user_id", current.ID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toUserResponse(u *user.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
