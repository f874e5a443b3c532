// internal/app/features/classes/delete.go
package classes

import (
	"context"
	"net/http"

	"github.com/dalemusser/classreserve/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete handles POST /classes/{id}/delete.
//
// The class, its signups, its ordering entry, and its stored image all go.
// These are separate operations; if one of the follow-up deletes fails the
// class itself is already gone, so we log and keep going rather than leave
// the catalog entry resurrected.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	class, ok := h.loadClass(ctx, w, r)
	if !ok {
		return
	}

	if err := h.Classes.Delete(ctx, class.ID); err != nil {
		h.ErrLog.Internal(w, r, err)
		return
	}

	if n, err := h.Signups.DeleteForClass(ctx, class.ID); err != nil {
		h.Log.Error("failed to delete signups for removed class",
			zap.String("class_id", class.ID.Hex()),
			zap.Error(err))
	} else if n > 0 {
		h.Log.Info("deleted signups with class",
			zap.String("class_id", class.ID.Hex()),
			zap.Int64("count", n))
	}

	if err := h.Order.RemoveClass(ctx, class.ID); err != nil {
		h.Log.Error("failed to remove class from ordering",
			zap.String("class_id", class.ID.Hex()),
			zap.Error(err))
	}

	if class.HasImage() {
		h.cleanupImage(ctx, class.ImagePath)
	}

	writeJSON(w, http.StatusOK, map[string]string{"deleted": class.ID.Hex()})
}
