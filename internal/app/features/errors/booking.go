// internal/app/features/errors/booking.go
package errors

import (
	"errors"
	"net/http"

	"github.com/dalemusser/classreserve/internal/app/booking"
)

// WriteBooking maps a booking rejection onto the wire taxonomy. Unknown
// errors are treated as server-side failures and logged.
func (e *ErrorLogger) WriteBooking(w http.ResponseWriter, r *http.Request, err error) {
	var we *booking.WindowError

	switch {
	case errors.Is(err, booking.ErrClassNotFound):
		e.Write(w, http.StatusNotFound, ReasonClassNotFound, "class not found")
	case errors.Is(err, booking.ErrInvalidDate):
		e.Write(w, http.StatusBadRequest, ReasonInvalidDate, "date must be YYYY-MM-DD")
	case errors.Is(err, booking.ErrNotAClassDay):
		e.Write(w, http.StatusUnprocessableEntity, ReasonNotAClassDay, "the class does not meet on that date")
	case errors.As(err, &we):
		e.Write(w, http.StatusUnprocessableEntity, ReasonOutsideWindow, we.Error())
	case errors.Is(err, booking.ErrMissingInsuranceID):
		e.Write(w, http.StatusUnprocessableEntity, ReasonMissingInsuranceID, "an insurance member id is required for the selected insurance")
	case errors.Is(err, booking.ErrClassFull):
		e.Write(w, http.StatusConflict, ReasonClassFull, "the class is full on that date")
	default:
		e.Internal(w, r, err)
	}
}
