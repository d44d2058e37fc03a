package api

import (
	"net/http"
	"strings"

	"github.com/vkoshev/gamehall/internal/auth"
)

// TokenAuth guards admin routes with a bearer token issued by the login
// endpoint.
func TokenAuth(tokens *auth.TokenStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) || !tokens.Valid(header[len(prefix):]) {
				httpError(w, http.StatusUnauthorized, "authentication_error", "invalid or missing bearer token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
