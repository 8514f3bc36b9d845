package routes

import (
	"Masterblog/internal/api/handlers/post"
	"Masterblog/internal/api/middleware"
	"Masterblog/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// RegisterPostRoutes registers the /api/posts endpoints on the router.
// Only the combined list/create route is rate limited.
func RegisterPostRoutes(r chi.Router, service posts.Service, rateLimiter *middleware.RateLimiter) {
	// Initialize handlers
	listHandler := post.NewListHandler(service)
	createHandler := post.NewCreateHandler(service)
	updateHandler := post.NewUpdateHandler(service)
	deleteHandler := post.NewDeleteHandler(service)
	searchHandler := post.NewSearchHandler(service)

	// Bare patterns only: "/api/posts/" with a trailing slash is a 404
	limited := r.With(rateLimiter.Middleware)
	limited.Get("/api/posts", listHandler.HandleList)
	limited.Post("/api/posts", createHandler.HandleCreate)

	r.Get("/api/posts/search", searchHandler.HandleSearch)

	r.Put("/api/posts/{id:[0-9]+}", updateHandler.HandleUpdate)
	r.Delete("/api/posts/{id:[0-9]+}", deleteHandler.HandleDelete)
}
