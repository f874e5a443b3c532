// internal/app/features/classes/routes.go
package classes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts the class catalog under whatever base path the caller
// chooses (typically "/classes" from bootstrap). requireAdmin guards the
// mutating endpoints.
//
// Example from bootstrap:
//
//	h := classes.NewHandler(...)
//	r.Mount("/classes", classes.Routes(h, requireAdmin))
func Routes(h *Handler, requireAdmin func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Public reads.
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeGet)
	r.Get("/{id}/image", h.ServeImage)
	r.Get("/{id}/signups/date/{date}", h.ServeOccupancy)

	// Admin writes.
	r.Group(func(pr chi.Router) {
		pr.Use(requireAdmin)

		pr.Post("/", h.HandleCreate)
		pr.Post("/{id}", h.HandleUpdate)
		pr.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
