package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// Auth guards the HTTP API with a bearer token. An empty token disables
// the check entirely. The health check, the map UI, and the WebSocket
// endpoint always bypass it; the WebSocket performs its own auth
// handshake in-band.
func Auth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if bypassesAuth(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Invalid authorization header", http.StatusUnauthorized)
				return
			}

			if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(token)) != 1 {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bypassesAuth(path string) bool {
	if path == "/" || path == "/health" || path == "/ws" {
		return true
	}
	return strings.HasPrefix(path, "/static/")
}
