package handler

import (
	"net/http"

	"github.com/mcoot/ricotte-api/internal/api/apierr"
	"github.com/mcoot/ricotte-api/internal/api/response"
)

const welcomeMessage = "Welcome to Ricotte API"

// HomeHandler answers the requests no battle or player route takes
type HomeHandler struct {
	renderer *response.Renderer
}

// NewHomeHandler creates a new home handler
func NewHomeHandler(renderer *response.Renderer) *HomeHandler {
	return &HomeHandler{renderer: renderer}
}

// Welcome handles every path no other route matched
func (h *HomeHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	h.renderer.Data(w, response.Welcome{Message: welcomeMessage})
}

// Preflight answers CORS preflight requests on any path
func (h *HomeHandler) Preflight(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Headers", "Authorization")
	h.renderer.Empty(w)
}

// MethodNotAllowed rejects methods the API does not serve
func (h *HomeHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.renderer.Err(w, r, apierr.MethodNotAllowed(r.Method))
}
