package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/gratia-app/gratia-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux) {
	// Auth routes
	r.Post("/api/auth/signup", handlers.Signup)
	r.Post("/api/auth/signin", handlers.Signin)
	r.Post("/api/auth/signout", handlers.Signout)
	r.Get("/api/auth/me", handlers.GetMe)

	// Journal entry routes
	r.Post("/api/entries", handlers.CreateEntry)
	r.Get("/api/entries", handlers.GetEntries)
	r.Get("/api/entries/favorites", handlers.GetFavoriteEntries)
	r.Get("/api/entries/{id}", handlers.GetEntryByID)
	r.Put("/api/entries/{id}/favorite", handlers.UpdateEntryFavorite)

	// Today page providers (quote + writing prompt)
	r.Get("/api/today/quote", handlers.GetDailyQuote)
	r.Get("/api/today/prompt", handlers.GetRandomPrompt)
}
