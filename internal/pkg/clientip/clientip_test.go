package clientip

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDirect(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "198.51.100.4:51234"

	assert.Equal(t, "198.51.100.4", Resolve(r, false))
}

func TestResolveIgnoresForwardedForWhenNotBehindProxy(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.2:443"
	r.Header.Set("X-Forwarded-For", "203.0.113.9")

	assert.Equal(t, "10.0.0.2", Resolve(r, false))
}

func TestResolveBehindProxyTrustsFirstHop(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.2:443"
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.1.24")

	assert.Equal(t, "203.0.113.9", Resolve(r, true))
}

func TestResolveBehindProxyFallsBackOnGarbage(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.2:443"
	r.Header.Set("X-Forwarded-For", "not-an-ip")

	assert.Equal(t, "10.0.0.2", Resolve(r, true))
}

func TestResolveIPv6(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "[2001:db8::1]:9000"

	assert.Equal(t, "2001:db8::1", Resolve(r, false))
}
