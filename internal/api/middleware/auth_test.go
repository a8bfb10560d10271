package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scantrack/scantrack-backend/internal/config"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doBasicAuth(cfg *config.Config, user, pass string, withCreds bool) *httptest.ResponseRecorder {
	h := BasicAuth(cfg)(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	if withCreds {
		req.SetBasicAuth(user, pass)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestBasicAuthDisabledWhenUnconfigured(t *testing.T) {
	rec := doBasicAuth(&config.Config{}, "", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBasicAuthDisabledWhenPartiallyConfigured(t *testing.T) {
	rec := doBasicAuth(&config.Config{AdminUser: "admin"}, "", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBasicAuthMissingCredentials(t *testing.T) {
	cfg := &config.Config{AdminUser: "admin", AdminPass: "secret"}
	rec := doBasicAuth(cfg, "", "", false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, `Basic realm="admin"`, rec.Header().Get("WWW-Authenticate"))
}

func TestBasicAuthWrongCredentials(t *testing.T) {
	cfg := &config.Config{AdminUser: "admin", AdminPass: "secret"}

	for _, tc := range [][2]string{
		{"admin", "wrong"},
		{"wrong", "secret"},
		{"Admin", "secret"}, // case-sensitive
		{"admin", "Secret"},
	} {
		rec := doBasicAuth(cfg, tc[0], tc[1], true)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "creds %q:%q", tc[0], tc[1])
	}
}

func TestBasicAuthCorrectCredentials(t *testing.T) {
	cfg := &config.Config{AdminUser: "admin", AdminPass: "secret"}
	rec := doBasicAuth(cfg, "admin", "secret", true)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBasicAuthMalformedHeader(t *testing.T) {
	cfg := &config.Config{AdminUser: "admin", AdminPass: "secret"}
	h := BasicAuth(cfg)(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Authorization", "Basic not-base64!!!")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
