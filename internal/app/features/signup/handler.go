// internal/app/features/signup/handler.go

// Package signup exposes the public booking endpoint.
package signup

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dalemusser/classreserve/internal/app/booking"
	apierrors "github.com/dalemusser/classreserve/internal/app/features/errors"
	"github.com/dalemusser/classreserve/internal/app/system/inputval"
	"github.com/dalemusser/classreserve/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler holds the booking service the endpoint drives.
type Handler struct {
	Booking *booking.Service
	ErrLog  *apierrors.ErrorLogger
	Log     *zap.Logger
}

// NewHandler constructs a signup Handler.
func NewHandler(bookingSvc *booking.Service, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Booking: bookingSvc, ErrLog: errLog, Log: logger}
}

// signupInput defines validation rules for the signup form.
type signupInput struct {
	Name      string `validate:"required,max=120" label:"Name"`
	Phone     string `validate:"required,max=40" label:"Phone"`
	Insurance string `validate:"required,max=120" label:"Insurance"`
}

// HandleSignup handles POST /signup (form encoded).
//
// On acceptance: 201 with the recorded signup. On rejection: the taxonomy
// status and reason for the first failed admission rule.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.Write(w, http.StatusBadRequest, apierrors.ReasonValidation, "invalid form data")
		return
	}

	classID, err := primitive.ObjectIDFromHex(strings.TrimSpace(r.FormValue("class_id")))
	if err != nil {
		h.ErrLog.NotFound(w, "class not found")
		return
	}

	req := booking.Request{
		ClassID:           classID,
		Date:              strings.TrimSpace(r.FormValue("date")),
		Name:              r.FormValue("name"),
		Phone:             r.FormValue("phone"),
		Insurance:         r.FormValue("insurance"),
		InsuranceMemberID: r.FormValue("insurance_member_id"),
		GymMembership:     r.FormValue("gym_membership"),
	}

	input := signupInput{Name: req.Name, Phone: req.Phone, Insurance: req.Insurance}
	if result := inputval.Validate(input); result.HasErrors() {
		h.ErrLog.Write(w, http.StatusUnprocessableEntity, apierrors.ReasonValidation, result.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	signup, err := h.Booking.Attempt(ctx, req)
	if err != nil {
		h.ErrLog.WriteBooking(w, r, err)
		return
	}

	h.Log.Info("signup accepted",
		zap.String("class_id", signup.SelectedClass.Hex()),
		zap.String("date", signup.SelectedDate.Format(booking.DateLayout)))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(signup)
}
