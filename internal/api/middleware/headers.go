package middleware

import (
	"net/http"

	"github.com/mcoot/ricotte-api/internal/api/response"
)

// Headers sets the JSON content type on every response and echoes the
// request Origin so browsers on any origin can read it
func Headers() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", response.ContentTypeJSON)
			if origin := r.Header.Get("Origin"); origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			}
			next.ServeHTTP(w, r)
		})
	}
}
