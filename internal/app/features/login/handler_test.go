package login_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	apierrors "github.com/dalemusser/classreserve/internal/app/features/errors"
	"github.com/dalemusser/classreserve/internal/app/features/login"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newHandler(t *testing.T) *login.Handler {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	logger := zap.NewNop()
	return login.NewHandler("admin", string(hash), time.Hour, nil, apierrors.NewErrorLogger(logger), logger)
}

func postLogin(h *login.Handler, username, password string) *httptest.ResponseRecorder {
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)
	return rec
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	h := newHandler(t)

	rec := postLogin(h, "admin", "wrong")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(rec.Body.String(), "authorization_error") {
		t.Errorf("body = %q, want authorization_error reason", rec.Body.String())
	}
}

func TestHandleLogin_WrongUsername(t *testing.T) {
	h := newHandler(t)

	rec := postLogin(h, "root", "correct horse")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestHandleLogin_EmptyForm(t *testing.T) {
	h := newHandler(t)

	rec := postLogin(h, "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
