package boundaries

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes wires the district lookup endpoints. The rate limiter and admin
// guard are supplied by the composition root.
func (h *Handler) SetupRoutes(rateLimit, adminOnly func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	// Public routes
	r.With(rateLimit).Get("/lookup", h.Lookup)
	r.Get("/health", h.Health)

	// Admin routes
	r.With(adminOnly).Post("/preload", h.PreloadBoundaries)

	return r
}
