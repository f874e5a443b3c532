// internal/app/features/classes/image.go
package classes

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/classreserve/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"
)

// ServeImage handles GET /classes/{id}/image.
//
// Local storage serves the file directly; anything else gets a short-lived
// signed URL redirect.
func (h *Handler) ServeImage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	class, ok := h.loadClass(ctx, w, r)
	if !ok {
		return
	}
	if !class.HasImage() {
		h.ErrLog.NotFound(w, "class has no image")
		return
	}

	if class.ImageType != "" {
		w.Header().Set("Content-Type", class.ImageType)
	}

	if localStorage, ok := h.Storage.(*storage.Local); ok {
		fullPath, err := localStorage.GetFullPath(class.ImagePath)
		if err != nil {
			h.Log.Error("error resolving image path",
				zap.String("path", class.ImagePath),
				zap.Error(err))
			h.ErrLog.Internal(w, r, err)
			return
		}
		http.ServeFile(w, r, fullPath)
		return
	}

	signedURL, err := h.Storage.PresignedURL(ctx, class.ImagePath, &storage.PresignOptions{
		Expires: 15 * time.Minute,
	})
	if err != nil {
		h.Log.Error("error generating signed image URL",
			zap.String("path", class.ImagePath),
			zap.Error(err))
		h.ErrLog.Internal(w, r, err)
		return
	}
	http.Redirect(w, r, signedURL, http.StatusSeeOther)
}
