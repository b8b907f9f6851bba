package request

import (
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// TokenError reports why no access token could be taken from a request
type TokenError struct {
	Message string
}

// Error implements error interface
func (e *TokenError) Error() string {
	return e.Message
}

// ExtractAccessToken returns the bearer token from the Authorization header.
// With several "Bearer " markers the text after the last one wins.
func ExtractAccessToken(header http.Header) (string, error) {
	raw := header.Get("Authorization")
	if raw == "" {
		return "", &TokenError{Message: "No Authorization header"}
	}
	if !strings.Contains(raw, strings.TrimSpace(bearerPrefix)) {
		return "", &TokenError{Message: "Invalid Authorization header: " + raw}
	}

	idx := strings.LastIndex(raw, bearerPrefix)
	if idx < 0 {
		return raw, nil
	}
	return raw[idx+len(bearerPrefix):], nil
}
