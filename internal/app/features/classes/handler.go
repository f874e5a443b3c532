// internal/app/features/classes/handler.go
package classes

import (
	"github.com/dalemusser/classreserve/internal/app/booking"
	apierrors "github.com/dalemusser/classreserve/internal/app/features/errors"
	classstore "github.com/dalemusser/classreserve/internal/app/store/classes"
	orderstore "github.com/dalemusser/classreserve/internal/app/store/classorder"
	signupstore "github.com/dalemusser/classreserve/internal/app/store/signups"
	"github.com/dalemusser/classreserve/internal/app/system/clock"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"
)

// Handler owns the class catalog endpoints: the public list/detail/image
// reads and the admin create/update/delete writes.
//
// It is constructed once at startup in bootstrap, using the shared stores,
// file storage, and logger.
type Handler struct {
	Classes *classstore.Store
	Signups *signupstore.Store
	Order   *orderstore.Store
	Booking *booking.Service
	Storage storage.Store
	Clock   clock.Clock
	ErrLog  *apierrors.ErrorLogger
	Log     *zap.Logger
}

// NewHandler constructs a classes Handler.
func NewHandler(
	classes *classstore.Store,
	signups *signupstore.Store,
	order *orderstore.Store,
	bookingSvc *booking.Service,
	store storage.Store,
	clk clock.Clock,
	errLog *apierrors.ErrorLogger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Classes: classes,
		Signups: signups,
		Order:   order,
		Booking: bookingSvc,
		Storage: store,
		Clock:   clk,
		ErrLog:  errLog,
		Log:     logger,
	}
}
