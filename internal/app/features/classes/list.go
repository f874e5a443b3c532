// internal/app/features/classes/list.go
package classes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	classstore "github.com/dalemusser/classreserve/internal/app/store/classes"
	"github.com/dalemusser/classreserve/internal/app/system/timeouts"
	"github.com/dalemusser/classreserve/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeList handles GET /classes.
//
// Classes come back in the admin-managed display order. With ?ongoing=true,
// classes whose whole series has already ended are dropped.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	all, err := h.Classes.List(ctx)
	if err != nil {
		h.ErrLog.Internal(w, r, err)
		return
	}

	order, err := h.Order.Get(ctx)
	if err != nil {
		h.ErrLog.Internal(w, r, err)
		return
	}

	ordered := applyOrder(all, order)

	if r.URL.Query().Get("ongoing") == "true" {
		today := h.Clock.Now()
		kept := ordered[:0]
		for _, c := range ordered {
			if !c.SeriesEnded(today) {
				kept = append(kept, c)
			}
		}
		ordered = kept
	}

	views := make([]classView, 0, len(ordered))
	for i := range ordered {
		views = append(views, toView(&ordered[i]))
	}

	writeJSON(w, http.StatusOK, views)
}

// applyOrder arranges classes per the ordering document. Classes the
// ordering does not know yet keep their stored (newest first) position at
// the end.
func applyOrder(all []models.Class, order []primitive.ObjectID) []models.Class {
	byID := make(map[primitive.ObjectID]int, len(all))
	for i := range all {
		byID[all[i].ID] = i
	}

	out := make([]models.Class, 0, len(all))
	seen := make(map[primitive.ObjectID]bool, len(order))
	for _, id := range order {
		if i, ok := byID[id]; ok && !seen[id] {
			out = append(out, all[i])
			seen[id] = true
		}
	}
	for i := range all {
		if !seen[all[i].ID] {
			out = append(out, all[i])
		}
	}
	return out
}

// ServeGet handles GET /classes/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	class, ok := h.loadClass(ctx, w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toView(class))
}

// ServeOccupancy handles GET /classes/{id}/signups/date/{date}.
// It reports fill level only; attendee names are admin-only via the export.
func (h *Handler) ServeOccupancy(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.NotFound(w, "class not found")
		return
	}

	occ, err := h.Booking.OccupancyOn(ctx, id, chi.URLParam(r, "date"))
	if err != nil {
		h.ErrLog.WriteBooking(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, occ)
}

// loadClass resolves {id} and fetches the class, writing the error response
// itself when that fails.
func (h *Handler) loadClass(ctx context.Context, w http.ResponseWriter, r *http.Request) (*models.Class, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.NotFound(w, "class not found")
		return nil, false
	}

	class, err := h.Classes.GetByID(ctx, id)
	if errors.Is(err, classstore.ErrNotFound) {
		h.ErrLog.NotFound(w, "class not found")
		return nil, false
	}
	if err != nil {
		h.ErrLog.Internal(w, r, err)
		return nil, false
	}
	return class, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
