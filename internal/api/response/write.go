package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mcoot/ricotte-api/internal/api/apierr"
)

// ContentTypeJSON is set on every response the API writes
const ContentTypeJSON = "application/json; charset=UTF-8"

// Renderer writes JSON responses and logs the failures it renders
type Renderer struct {
	logger *slog.Logger
}

// NewRenderer creates a new Renderer
func NewRenderer(logger *slog.Logger) *Renderer {
	return &Renderer{logger: logger}
}

// Data writes payload as a 200 JSON response
func (rd *Renderer) Data(w http.ResponseWriter, payload any) {
	rd.json(w, http.StatusOK, payload)
}

// Empty writes a 200 response without a body
func (rd *Renderer) Empty(w http.ResponseWriter) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(http.StatusOK)
}

// Error logs message and writes it as {"error": message} with the given status
func (rd *Renderer) Error(w http.ResponseWriter, r *http.Request, message string, status int) {
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	rd.logger.LogAttrs(r.Context(), level, "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.String("error", message),
	)

	rd.json(w, status, ErrorResponse{Error: message})
}

// Err renders err, using its status when it is an *apierr.Error
func (rd *Renderer) Err(w http.ResponseWriter, r *http.Request, err error) {
	e := apierr.From(err)
	rd.Error(w, r, e.Message, e.Status)
}

func (rd *Renderer) json(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			rd.logger.Error("encode response", slog.String("error", err.Error()))
		}
	}
}
