package middleware

import (
	"net/http"
	"strings"
)

// openPrefixes lists path prefixes reachable without authentication: the
// inference and speech endpoints used by devices, plus login itself.
var openPrefixes = []string{
	"/upload-image",
	"/infer",
	"/speak",
	"/audio",
	"/api/events",
	"/auth/login",
}

// AuthMiddleware gates the management API (records, logs) behind the
// 'authenticated' cookie while leaving the inference endpoints open.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, prefix := range openPrefixes {
			if strings.HasPrefix(r.URL.Path, prefix) {
				next.ServeHTTP(w, r)
				return
			}
		}

		cookie, err := r.Cookie("authenticated")
		if err != nil || cookie.Value != "true" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
