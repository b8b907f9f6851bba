package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/ricotte-api/internal/api/response"
	"github.com/mcoot/ricotte-api/internal/middleware"
)

// Recovery creates panic recovery middleware for the API.
// A panic is rendered as a JSON 500 like any other fault.
func Recovery(logger *slog.Logger, renderer *response.Renderer) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, r *http.Request, _ any) {
		renderer.Error(w, r, "Internal server error", http.StatusInternalServerError)
	})
}
