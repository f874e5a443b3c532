// internal/app/features/classes/create.go
package classes

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	apierrors "github.com/dalemusser/classreserve/internal/app/features/errors"
	"github.com/dalemusser/classreserve/internal/app/system/htmlsanitize"
	"github.com/dalemusser/classreserve/internal/app/system/inputval"
	"github.com/dalemusser/classreserve/internal/app/system/timeouts"
	"github.com/dalemusser/classreserve/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxUploadBytes = 10 << 20 // card images, not course material

// classInput defines validation rules for class create and update forms.
type classInput struct {
	Title     string `validate:"required,max=200" label:"Title"`
	StartDate string `validate:"required,datetime=2006-01-02" label:"Start date"`
	Size      int    `validate:"required,gt=0" label:"Size"`
	Frequency string `validate:"required" label:"Frequency"`
}

// HandleCreate handles POST /classes (multipart form).
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.ErrLog.Write(w, http.StatusBadRequest, apierrors.ReasonValidation, "invalid form data")
		return
	}

	class, msg := h.classFromForm(r)
	if msg != "" {
		h.ErrLog.Write(w, http.StatusUnprocessableEntity, apierrors.ReasonValidation, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

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
	}

	created, err := h.Classes.Create(ctx, *class)
	if err != nil {
		h.cleanupImage(ctx, class.ImagePath)
		h.ErrLog.Internal(w, r, err)
		return
	}

	// New classes surface at the top of the display order.
	if err := h.Order.PrependClass(ctx, created.ID); err != nil {
		h.Log.Error("failed to prepend class to ordering",
			zap.String("class_id", created.ID.Hex()),
			zap.Error(err))
	}

	writeJSON(w, http.StatusCreated, toView(&created))
}

// classFromForm builds a Class from the posted form. A non-empty message
// means validation failed.
func (h *Handler) classFromForm(r *http.Request) (*models.Class, string) {
	title := strings.TrimSpace(r.FormValue("title"))
	startDate := strings.TrimSpace(r.FormValue("start_date"))
	frequency := strings.TrimSpace(r.FormValue("frequency"))

	size, _ := strconv.Atoi(strings.TrimSpace(r.FormValue("size")))

	input := classInput{Title: title, StartDate: startDate, Size: size, Frequency: frequency}
	if result := inputval.Validate(input); result.HasErrors() {
		return nil, result.First()
	}
	if !models.IsValidFrequency(frequency) {
		return nil, "Frequency is invalid."
	}

	start, err := time.ParseInLocation("2006-01-02", startDate, time.UTC)
	if err != nil {
		return nil, "Start date must be YYYY-MM-DD."
	}

	class := &models.Class{
		Title: title,
		// Rich text from the admin editor; strip anything dangerous.
		Description: htmlsanitize.Sanitize(strings.TrimSpace(r.FormValue("description"))),
		Sponsor:     strings.TrimSpace(r.FormValue("sponsor")),
		Trainer:     strings.TrimSpace(r.FormValue("trainer")),
		StartDate:   start,
		EndTime:     strings.TrimSpace(r.FormValue("end_time")),
		Size:        size,
		Frequency:   frequency,
	}

	if endDate := strings.TrimSpace(r.FormValue("end_date")); endDate != "" {
		end, err := time.ParseInLocation("2006-01-02", endDate, time.UTC)
		if err != nil {
			return nil, "End date must be YYYY-MM-DD."
		}
		if end.Before(start) {
			return nil, "End date must not precede the start date."
		}
		class.EndDate = &end
	}

	for _, d := range r.Form["days"] {
		n, err := strconv.Atoi(d)
		if err != nil || n < 0 || n > 6 {
			return nil, "Days must be weekday numbers 0 through 6."
		}
		class.Days = append(class.Days, n)
	}

	if v := strings.TrimSpace(r.FormValue("days_prior_can_sign_up")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, "Sign-up window must be a non-negative number of days."
		}
		class.DaysPriorCanSignUp = n
	}

	if v := strings.TrimSpace(r.FormValue("fee")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return nil, "Fee must be a non-negative amount in cents."
		}
		class.Fee = n
	}

	return class, ""
}

type uploadedImage struct {
	path        string
	name        string
	contentType string
}

// uploadImage sniffs the upload's magic bytes and stores it. Only PNG and
// JPEG are accepted; the browser-reported content type is ignored.
func (h *Handler) uploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (uploadedImage, error) {
	contentType, err := sniffImageType(file)
	if err != nil {
		return uploadedImage{}, err
	}

	now := time.Now().UTC()
	ext := ".jpg"
	if contentType == "image/png" {
		ext = ".png"
	}
	path := fmt.Sprintf("classes/%04d/%02d/%s%s", now.Year(), now.Month(), uuid.New().String()[:8], ext)

	opts := &storage.PutOptions{ContentType: contentType}
	if err := h.Storage.Put(ctx, path, file, opts); err != nil {
		return uploadedImage{}, fmt.Errorf("failed to store image: %w", err)
	}

	return uploadedImage{
		path:        path,
		name:        filepath.Base(header.Filename),
		contentType: contentType,
	}, nil
}

var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
)

// sniffImageType identifies the upload from its leading bytes and rewinds
// the reader for the subsequent store.
func sniffImageType(file multipart.File) (string, error) {
	head := make([]byte, 8)
	n, _ := io.ReadFull(file, head)
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	switch {
	case n >= len(pngMagic) && bytes.Equal(head[:len(pngMagic)], pngMagic):
		return "image/png", nil
	case n >= len(jpegMagic) && bytes.Equal(head[:len(jpegMagic)], jpegMagic):
		return "image/jpeg", nil
	default:
		return "", fmt.Errorf("image must be a PNG or JPEG file")
	}
}

// cleanupImage deletes an uploaded image after a failed create so storage
// does not accumulate orphans.
func (h *Handler) cleanupImage(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := h.Storage.Delete(ctx, path); err != nil {
		h.Log.Warn("failed to clean up uploaded image",
			zap.String("path", path),
			zap.Error(err))
	}
}
