// internal/app/features/order/routes.go
package order

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the admin-only ordering endpoints, mounted under /order.
func Routes(h *Handler, requireAdmin func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(requireAdmin)
	r.Get("/", h.ServeGet)
	r.Post("/", h.HandleSet)
	return r
}
