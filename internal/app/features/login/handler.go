// internal/app/features/login/handler.go

// Package login verifies the admin credential pair and issues the opaque
// keys the rest of the admin surface authenticates with.
package login

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	apierrors "github.com/dalemusser/classreserve/internal/app/features/errors"
	"github.com/dalemusser/classreserve/internal/app/store/authkeys"
	"github.com/dalemusser/classreserve/internal/app/system/auth"
	"github.com/dalemusser/classreserve/internal/app/system/ratelimit"
	"github.com/dalemusser/classreserve/internal/app/system/timeouts"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Handler verifies credentials against the configured admin account and
// mints admin keys on success.
type Handler struct {
	Username     string // configured admin username
	PasswordHash string // bcrypt digest of the admin password
	KeyTTL       time.Duration

	Keys    *authkeys.Store
	Limiter *ratelimit.LoginLimiter
	ErrLog  *apierrors.ErrorLogger
	Log     *zap.Logger
}

// NewHandler constructs a login Handler.
func NewHandler(username, passwordHash string, keyTTL time.Duration, keys *authkeys.Store, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Username:     username,
		PasswordHash: passwordHash,
		KeyTTL:       keyTTL,
		Keys:         keys,
		Limiter:      ratelimit.NewLoginLimiter(),
		ErrLog:       errLog,
		Log:          logger,
	}
}

type loginResponse struct {
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// HandleLogin handles POST /login (form encoded: username, password).
//
// On success the response carries a fresh admin key, and the session cookie
// is marked so browser clients need not store the key themselves. Failures
// are uniform 401s; which half of the pair was wrong is not disclosed.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.Write(w, http.StatusBadRequest, apierrors.ReasonValidation, "invalid form data")
		return
	}

	if ok, reason := h.Limiter.Check(r); !ok {
		h.ErrLog.Write(w, http.StatusTooManyRequests, apierrors.ReasonAuthorization, reason)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if !h.credentialsOK(username, password) {
		h.Log.Info("rejected login attempt", zap.String("username", username))
		h.ErrLog.Unauthorized(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	key, err := h.Keys.Issue(ctx, h.KeyTTL)
	if err != nil {
		h.ErrLog.Internal(w, r, err)
		return
	}

	if err := auth.GrantSession(w, r); err != nil {
		h.Log.Warn("failed to set admin session", zap.Error(err))
	}

	h.Limiter.ResetIP(r)
	h.Log.Info("admin login", zap.String("username", username))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(loginResponse{
		Key:       key,
		ExpiresAt: time.Now().UTC().Add(h.KeyTTL),
	})
}

// HandleLogout handles POST /logout. The session is dropped; issued keys
// stay valid until they expire or are revoked.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := auth.ClearSession(w, r); err != nil {
		h.Log.Warn("failed to clear admin session", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

// credentialsOK compares both halves in constant time.
func (h *Handler) credentialsOK(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.Username)) == 1
	passOK := bcrypt.CompareHashAndPassword([]byte(h.PasswordHash), []byte(password)) == nil
	return userOK && passOK
}
