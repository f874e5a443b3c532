package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/classreserve/internal/app/system/clock"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
 | Session constants & globals                                                |
 *─────────────────────────────────────────────────────────────────────────────*/

const (
	SessionName = "classreserve-session"

	isAdminKey = "is_admin"

	// HeaderKey is the request header admin clients send their issued key in.
	HeaderKey = "X-Admin-Key"

	// FormKey is the form field fallback for clients that cannot set headers.
	FormKey = "key"
)

// Store is initialised once via InitSessionStore.
var Store *sessions.CookieStore

// KeyChecker verifies an opaque admin key against issued credentials.
type KeyChecker interface {
	Check(ctx context.Context, key string, now time.Time) (bool, error)
}

type ctxKey string

const adminCtxKey ctxKey = "isAdmin"

// IsAdmin reports whether the request carries verified admin credentials.
func IsAdmin(r *http.Request) bool {
	v, _ := r.Context().Value(adminCtxKey).(bool)
	return v
}

/*─────────────────────────────────────────────────────────────────────────────*
 | Middleware                                                                 |
 *─────────────────────────────────────────────────────────────────────────────*/

// LoadAdmin flags the request as admin when either the session says so or a
// valid issued key accompanies the request. A key can arrive in the
// X-Admin-Key header or, for form posts, in the "key" field. Verification
// failures are not fatal here; RequireAdmin decides whether access is denied.
func LoadAdmin(keys KeyChecker, clk clock.Clock, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sessionIsAdmin(r) {
				next.ServeHTTP(w, r.WithContext(markAdmin(r.Context())))
				return
			}

			if key := requestKey(r); key != "" {
				ok, err := keys.Check(r.Context(), key, clk.Now())
				if err != nil {
					logger.Error("admin key check failed", zap.Error(err))
				}
				if ok {
					next.ServeHTTP(w, r.WithContext(markAdmin(r.Context())))
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin rejects requests that LoadAdmin did not mark as admin.
// The deny function writes the response so the error shape stays consistent
// with the rest of the API.
func RequireAdmin(deny http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsAdmin(r) {
				deny(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
 | Session helpers                                                            |
 *─────────────────────────────────────────────────────────────────────────────*/

// GrantSession marks the current session as an authenticated admin.
// No-op when the session store has not been initialised.
func GrantSession(w http.ResponseWriter, r *http.Request) error {
	if Store == nil {
		return nil
	}
	sess, _ := Store.Get(r, SessionName)
	sess.Values[isAdminKey] = true
	return sess.Save(r, w)
}

// ClearSession drops the admin flag from the current session.
func ClearSession(w http.ResponseWriter, r *http.Request) error {
	if Store == nil {
		return nil
	}
	sess, _ := Store.Get(r, SessionName)
	delete(sess.Values, isAdminKey)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// InitSessionStore initializes the global session Store using the provided
// session key and domain. The `secure` flag controls whether cookies are
// marked Secure and which SameSite mode is used.
//
// In production (secure=true), cookies should be Secure + SameSite=None
// (for cross-site use with HTTPS).
// In local dev over http://localhost, use secure=false so cookies are accepted.
func InitSessionStore(sessionKey, domain string, secure bool, logger *zap.Logger) error {
	if sessionKey == "" {
		return fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}

	// SameSite handling: in prod with Secure cookies, we use None
	// so cookies can be sent in cross-site contexts. In dev, Lax is fine.
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}

	store.Options = opts
	Store = store

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return nil
}

// helpers

func markAdmin(ctx context.Context) context.Context {
	return context.WithValue(ctx, adminCtxKey, true)
}

func sessionIsAdmin(r *http.Request) bool {
	if Store == nil {
		return false
	}
	sess, _ := Store.Get(r, SessionName)
	v, _ := sess.Values[isAdminKey].(bool)
	return v
}

func requestKey(r *http.Request) string {
	if k := r.Header.Get(HeaderKey); k != "" {
		return k
	}
	// Only consult the form for methods that carry one.
	if r.Method == http.MethodPost || r.Method == http.MethodPut {
		return r.PostFormValue(FormKey)
	}
	return ""
}
