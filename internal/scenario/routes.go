package scenario

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.CreateSession)
	r.Get("/{id}", h.GetSession)
	r.Post("/{id}/toggle", h.ToggleDistrict)
	r.Post("/{id}/districts/{district}", h.SetDistrict)
	r.Post("/{id}/reset", h.ResetSession)

	return r
}
