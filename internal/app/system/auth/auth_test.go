package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/classreserve/internal/app/system/auth"
	"github.com/dalemusser/classreserve/internal/app/system/clock"
	"go.uber.org/zap"
)

// fakeChecker accepts exactly one key.
type fakeChecker struct {
	valid string
	err   error
}

func (f fakeChecker) Check(_ context.Context, key string, _ time.Time) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return key != "" && key == f.valid, nil
}

func deny(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

func adminChain(keys auth.KeyChecker, next http.Handler) http.Handler {
	clk := clock.Fixed{T: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	load := auth.LoadAdmin(keys, clk, zap.NewNop())
	return load(auth.RequireAdmin(deny)(next))
}

func TestRequireAdmin_NoKey_Returns401(t *testing.T) {
	handler := adminChain(fakeChecker{valid: "secret"}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/classes", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireAdmin_HeaderKey_Proceeds(t *testing.T) {
	called := false
	handler := adminChain(fakeChecker{valid: "secret"}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if !auth.IsAdmin(r) {
			t.Error("expected request to be marked admin")
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/classes", nil)
	req.Header.Set(auth.HeaderKey, "secret")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if !called {
		t.Error("expected handler to be called")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestRequireAdmin_FormKey_Proceeds(t *testing.T) {
	handler := adminChain(fakeChecker{valid: "secret"}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	form := url.Values{auth.FormKey: {"secret"}}
	req := httptest.NewRequest("POST", "/classes", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestRequireAdmin_WrongKey_Returns401(t *testing.T) {
	handler := adminChain(fakeChecker{valid: "secret"}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/classes", nil)
	req.Header.Set(auth.HeaderKey, "wrong")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestIsAdmin_DefaultFalse(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if auth.IsAdmin(req) {
		t.Error("expected IsAdmin to be false without middleware")
	}
}
