package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"pantry-app-go/internal/config"
	"pantry-app-go/internal/transport/httpserver/handler"
	authmw "pantry-app-go/internal/transport/httpserver/middleware"
	"pantry-app-go/pkg/logger"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, tokens authmw.TokenValidator, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(authmw.NewRequestLogger(log))
	r.Use(chimw.Recoverer)
	if cfg.HTTP.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.HTTP.RequestTimeout))
	}
	r.Use(authmw.NewCORS(cfg.HTTP.CORSAllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Common.Health)
		r.Post("/users", handlers.Common.Register)
		r.Head("/users/{name}", handlers.Common.NameAvailable)
		r.Post("/sessions", handlers.Common.Login)

		auth := authmw.NewSessionAuth(tokens, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Delete("/sessions", handlers.Common.Logout)
			r.Get("/users/me", handlers.Common.Me)
			r.Delete("/users/me", handlers.Common.DeleteMe)

			r.Get("/groups", handlers.Groups.ListGroups)
			r.Post("/groups", handlers.Groups.CreateGroup)
			r.Get("/groups/{group_id}", handlers.Groups.GetGroup)
			r.Patch("/groups/{group_id}", handlers.Groups.RenameGroup)
			r.Delete("/groups/{group_id}", handlers.Groups.DeleteGroup)

			r.Get("/groups/{group_id}/members", handlers.Groups.ListMembers)
			r.Post("/groups/{group_id}/members", handlers.Groups.AddMember)
			r.Patch("/groups/{group_id}/members/{user_id}", handlers.Groups.ChangeRole)
			r.Delete("/groups/{group_id}/members/{user_id}", handlers.Groups.RemoveMember)

			r.Get("/groups/{group_id}/invites", handlers.Groups.ListInvites)
			r.Post("/groups/{group_id}/invites", handlers.Groups.CreateInvite)
			r.Delete("/groups/{group_id}/invites/{invite_id}", handlers.Groups.DeleteInvite)
			r.Get("/invites/{code}", handlers.Groups.PreviewInvite)
			r.Post("/invites/{code}", handlers.Groups.ClaimInvite)

			r.Get("/groups/{group_id}/items", handlers.Groups.ListItems)
			r.Post("/groups/{group_id}/items", handlers.Groups.CreateItem)
			r.Get("/groups/{group_id}/items/{item_id}", handlers.Groups.GetItem)
			r.Patch("/groups/{group_id}/items/{item_id}", handlers.Groups.UpdateItem)
			r.Delete("/groups/{group_id}/items/{item_id}", handlers.Groups.DeleteItem)

			r.Get("/groups/{group_id}/history", handlers.Groups.ListHistory)
			r.Get("/groups/{group_id}/history/{log_id}", handlers.Groups.GetHistoryEntry)

			r.Get("/recipes", handlers.Common.ListRecipes)
			r.Post("/recipes", handlers.Common.CreateRecipe)
			r.Delete("/recipes/{recipe_id}", handlers.Common.DeleteRecipe)
		})
	})

	return r
}
