package auth

import (
	"github.com/go-chi/chi/v5"

	"github.com/thecodedeck/cookie-server/internal/middleware"
)

// SetupRoutes registers the auth surface on r. The session resolver wraps
// every auth route so handlers see a resolved payload (or none); the auth
// gate additionally protects the routes that require a logged-in caller.
func SetupRoutes(r chi.Router, h *Handler, fetcher middleware.SessionFetcher, secret string) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionResolver(fetcher, secret))

		r.Post("/sign-up", h.SignUpHandler)
		r.Post("/sign-in", h.SignInHandler)
		r.Post("/logout", h.LogoutHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/is-authenticated", h.IsAuthenticatedHandler)
			r.Get("/me", h.MeHandler)
			r.Delete("/user/{id}", h.DeleteUserHandler)
		})
	})
}
