package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/otlink-il/otlink-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux) {
	// Auth routes
	r.Post("/api/auth/register", handlers.Register)
	r.Post("/api/auth/signin", handlers.Signin)
	r.Post("/api/auth/signout", handlers.Signout)
	r.Get("/api/auth/me", handlers.GetMe)
	r.Post("/api/auth/set-role", handlers.SetRole)

	// Directory search + profile lookup
	r.Get("/api/ots", handlers.SearchOTs)
	r.Get("/api/ots/{slug}", handlers.GetOTBySlug)

	// Dashboard (OT's own profile)
	r.Get("/api/dashboard/profile", handlers.GetMyProfile)
	r.Patch("/api/dashboard/profile", handlers.UpdateMyProfile)

	// Profile photo upload
	r.Post("/api/upload", handlers.UploadPhoto)
}
