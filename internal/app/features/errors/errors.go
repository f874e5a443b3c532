// internal/app/features/errors/errors.go

// Package errors renders API error responses in one consistent shape and
// makes sure server-side failures are logged before they go over the wire.
package errors

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Reason codes carried in the "reason" field of error responses.
const (
	ReasonClassNotFound      = "class_not_found"
	ReasonInvalidDate        = "invalid_date"
	ReasonNotAClassDay       = "not_a_class_day"
	ReasonOutsideWindow      = "outside_signup_window"
	ReasonMissingInsuranceID = "missing_insurance_id"
	ReasonClassFull          = "class_full"
	ReasonAuthorization      = "authorization_error"
	ReasonValidation         = "validation_error"
	ReasonStorage            = "storage_error"
)

// response is the wire shape of every error this API returns.
type response struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

// ErrorLogger writes error responses and logs the ones operators care about.
// It is constructed once at startup in bootstrap and shared by handlers.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger over the app logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// Write sends a client error with the given status, reason code and message.
func (e *ErrorLogger) Write(w http.ResponseWriter, status int, reason, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response{Error: msg, Reason: reason})
}

// Unauthorized sends the 401 response mutating endpoints use when no valid
// admin credential accompanies the request.
func (e *ErrorLogger) Unauthorized(w http.ResponseWriter, r *http.Request) {
	e.Write(w, http.StatusUnauthorized, ReasonAuthorization, "a valid admin credential is required")
}

// NotFound sends a 404 for an unknown resource.
func (e *ErrorLogger) NotFound(w http.ResponseWriter, msg string) {
	e.Write(w, http.StatusNotFound, ReasonClassNotFound, msg)
}

// Internal logs err with context and sends an opaque 500. The underlying
// error text never leaves the server.
func (e *ErrorLogger) Internal(w http.ResponseWriter, r *http.Request, err error) {
	e.log.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	e.Write(w, http.StatusInternalServerError, ReasonStorage, "something went wrong")
}
