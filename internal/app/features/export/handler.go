// internal/app/features/export/handler.go

// Package export produces the admin CSV download of all signups.
package export

import (
	"context"
	"encoding/csv"
	"net/http"

	apierrors "github.com/dalemusser/classreserve/internal/app/features/errors"
	classstore "github.com/dalemusser/classreserve/internal/app/store/classes"
	signupstore "github.com/dalemusser/classreserve/internal/app/store/signups"
	"github.com/dalemusser/classreserve/internal/app/system/csvutil"
	"github.com/dalemusser/classreserve/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler holds the stores the export joins.
type Handler struct {
	Classes *classstore.Store
	Signups *signupstore.Store
	ErrLog  *apierrors.ErrorLogger
	Log     *zap.Logger
}

// NewHandler constructs an export Handler.
func NewHandler(classes *classstore.Store, signups *signupstore.Store, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Classes: classes, Signups: signups, ErrLog: errLog, Log: logger}
}

var header = []string{
	"Class", "Date", "Name", "Phone",
	"Insurance", "Insurance Member ID", "Gym Membership", "Signed Up At",
}

// ServeCSV handles GET /signups.csv.
//
// Every signup, joined with its class title, UTF-8 BOM and CRLF line endings
// so spreadsheet apps open it cleanly. Field values are sanitized against
// formula injection.
func (h *Handler) ServeCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	signups, err := h.Signups.ListAll(ctx)
	if err != nil {
		h.ErrLog.Internal(w, r, err)
		return
	}

	classList, err := h.Classes.List(ctx)
	if err != nil {
		h.ErrLog.Internal(w, r, err)
		return
	}
	titles := make(map[string]string, len(classList))
	for _, c := range classList {
		titles[c.ID.Hex()] = c.Title
	}

	csvutil.SetDownloadHeaders(w, "signups.csv")
	if _, err := w.Write(csvutil.BOM); err != nil {
		return
	}

	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(header); err != nil {
		h.Log.Error("csv write failed", zap.Error(err))
		return
	}

	for _, s := range signups {
		title := titles[s.SelectedClass.Hex()]
		if title == "" {
			// Signup outlived its class; keep the row, flag the gap.
			title = "(deleted class)"
		}
		row := []string{
			csvutil.Sanitize(title),
			s.SelectedDate.UTC().Format("2006-01-02"),
			csvutil.Sanitize(s.Name),
			csvutil.Sanitize(s.Phone),
			csvutil.Sanitize(s.Insurance),
			csvutil.Sanitize(s.InsuranceMemberID),
			csvutil.Sanitize(s.GymMembership),
			s.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		if err := cw.Write(row); err != nil {
			h.Log.Error("csv write failed", zap.Error(err))
			return
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		h.Log.Error("csv flush failed", zap.Error(err))
	}
}
