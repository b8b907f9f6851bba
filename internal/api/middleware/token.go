package middleware

import (
	"context"
	"net/http"

	"github.com/mcoot/ricotte-api/internal/api/request"
)

type contextKey string

const accessTokenContextKey contextKey = "access-token"

type accessToken struct {
	token string
	err   error
}

// AccessToken extracts the bearer token once per request.
// Extraction errors are kept too; each route decides whether they are fatal.
func AccessToken() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := request.ExtractAccessToken(r.Header)
			ctx := context.WithValue(r.Context(), accessTokenContextKey, accessToken{token: token, err: err})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAccessToken returns the token extracted by AccessToken.
// Without the middleware it extracts from nothing and reports a missing header.
func GetAccessToken(ctx context.Context) (string, error) {
	at, ok := ctx.Value(accessTokenContextKey).(accessToken)
	if !ok {
		return request.ExtractAccessToken(http.Header{})
	}
	return at.token, at.err
}
