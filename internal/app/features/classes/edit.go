// internal/app/features/classes/edit.go
package classes

import (
	"context"
	"net/http"

	apierrors "github.com/dalemusser/classreserve/internal/app/features/errors"
	"github.com/dalemusser/classreserve/internal/app/system/timeouts"
)

// HandleUpdate handles POST /classes/{id} (multipart form).
//
// The whole definition is replaced from the form, the same shape the create
// endpoint takes. An uploaded image replaces the existing one; omitting the
// image field keeps whatever is stored. Existing signups are left alone.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.ErrLog.Write(w, http.StatusBadRequest, apierrors.ReasonValidation, "invalid form data")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	existing, ok := h.loadClass(ctx, w, r)
	if !ok {
		return
	}

	class, msg := h.classFromForm(r)
	if msg != "" {
		h.ErrLog.Write(w, http.StatusUnprocessableEntity, apierrors.ReasonValidation, msg)
		return
	}

	var oldImage string
	if file, header, err := r.FormFile("image"); err == nil && header.Size > 0 {
		defer file.Close()
		img, err := h.uploadImage(ctx, file, header)
		if err != nil {
			h.ErrLog.Write(w, http.StatusUnprocessableEntity, apierrors.ReasonValidation, err.Error())
			return
		}
		class.ImagePath = img.path
		class.ImageName = img.name
		class.ImageType = img.contentType
		oldImage = existing.ImagePath
	}

	if err := h.Classes.Update(ctx, existing.ID, *class); err != nil {
		h.cleanupImage(ctx, class.ImagePath)
		h.ErrLog.Internal(w, r, err)
		return
	}

	// The replaced image is unreferenced now.
	if oldImage != "" && oldImage != class.ImagePath {
		h.cleanupImage(ctx, oldImage)
	}

	updated, err := h.Classes.GetByID(ctx, existing.ID)
	if err != nil {
		h.ErrLog.Internal(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toView(updated))
}
