// Package session resolves a stable per-client session identity from the
// session_id cookie. The cookie value is the identity; there is no session
// table and the server never invalidates it.
package session

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// CookieName is the session cookie. It is deliberately not HttpOnly: the
// landing page scripts read it to tag client-reported events.
const CookieName = "session_id"

type contextKey string

const sessionIDKey contextKey = "session_id"

// FromContext returns the session id resolved for this request, or empty
// string if the resolver middleware did not run.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}

// Resolve is middleware that assigns exactly one session id per request: the
// incoming cookie value verbatim when present, otherwise a fresh UUID that is
// also written back as a Set-Cookie. It must be installed ahead of every
// handler that records events.
func Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sid string
		if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
			sid = c.Value
		} else {
			sid = uuid.New().String()
			// No Expires/MaxAge (browser-default lifetime), no HttpOnly,
			// no Secure/SameSite beyond browser defaults.
			http.SetCookie(w, &http.Cookie{
				Name:  CookieName,
				Value: sid,
				Path:  "/",
			})
		}
		ctx := context.WithValue(r.Context(), sessionIDKey, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
