package middleware

import (
	"net/http"

	"github.com/scantrack/scantrack-backend/internal/config"
)

// BasicAuth returns middleware guarding the admin surface. When the admin
// credential pair is not fully configured the gate is open. Otherwise the
// Authorization header must carry exactly the configured user and password;
// any mismatch gets 401 with a Basic challenge and no hint about which part
// was wrong.
func BasicAuth(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.AuthEnabled() {
				next.ServeHTTP(w, r)
				return
			}

			user, pass, ok := r.BasicAuth()
			if !ok || user != cfg.AdminUser || pass != cfg.AdminPass {
				w.Header().Set("WWW-Authenticate", `Basic realm="admin"`)
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
