// internal/app/features/order/handler.go

// Package order manages the admin-controlled display ordering of classes.
package order

import (
	"context"
	"encoding/json"
	"net/http"

	apierrors "github.com/dalemusser/classreserve/internal/app/features/errors"
	orderstore "github.com/dalemusser/classreserve/internal/app/store/classorder"
	"github.com/dalemusser/classreserve/internal/app/system/timeouts"
	"github.com/dalemusser/classreserve/internal/domain/ordering"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler holds the ordering store.
type Handler struct {
	Order  *orderstore.Store
	ErrLog *apierrors.ErrorLogger
	Log    *zap.Logger
}

// NewHandler constructs an order Handler.
func NewHandler(order *orderstore.Store, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Order: order, ErrLog: errLog, Log: logger}
}

type orderView struct {
	Order []string `json:"order"`
}

// ServeGet handles GET /order.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ids, err := h.Order.Get(ctx)
	if err != nil {
		h.ErrLog.Internal(w, r, err)
		return
	}
	writeView(w, ids)
}

// HandleSet handles POST /order.
//
// The posted ids may be any subset of the stored sequence, in the admin's
// desired relative order. They are folded into the stored sequence: member
// slots are refilled in the posted order, everything else keeps its
// position. Unknown ids are ignored, so a concurrently deleted class cannot
// corrupt the sequence.
func (h *Handler) HandleSet(w http.ResponseWriter, r *http.Request) {
	var body orderView
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ErrLog.Write(w, http.StatusBadRequest, apierrors.ReasonValidation, "body must be {\"order\": [ids]}")
		return
	}

	subset := make([]primitive.ObjectID, 0, len(body.Order))
	for _, s := range body.Order {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			h.ErrLog.Write(w, http.StatusBadRequest, apierrors.ReasonValidation, "order entries must be class ids")
			return
		}
		subset = append(subset, id)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	current, err := h.Order.Get(ctx)
	if err != nil {
		h.ErrLog.Internal(w, r, err)
		return
	}

	merged := ordering.Reconcile(current, subset)
	if err := h.Order.Set(ctx, merged); err != nil {
		h.ErrLog.Internal(w, r, err)
		return
	}

	h.Log.Info("class ordering updated", zap.Int("classes", len(merged)))
	writeView(w, merged)
}

func writeView(w http.ResponseWriter, ids []primitive.ObjectID) {
	out := orderView{Order: make([]string, 0, len(ids))}
	for _, id := range ids {
		out.Order = append(out.Order, id.Hex())
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}
