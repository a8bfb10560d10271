// Package clientip resolves the requester's network address, optionally
// trusting a single reverse-proxy hop.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Resolve returns the client IP for a request. When behindProxy is set the
// first entry of X-Forwarded-For is trusted (exactly one proxy hop; deeper
// chains are not inferred). Otherwise the raw socket address is used.
func Resolve(r *http.Request, behindProxy bool) string {
	if behindProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first := xff
			if idx := strings.Index(xff, ","); idx >= 0 {
				first = xff[:idx]
			}
			if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
				return ip.String()
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr without a port (some tests and proxies).
		return r.RemoteAddr
	}
	return host
}
