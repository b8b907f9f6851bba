package handler

import (
	"errors"
	"net/http"

	"github.com/mcoot/ricotte-api/internal/api/apierr"
	"github.com/mcoot/ricotte-api/internal/api/request"
	"github.com/mcoot/ricotte-api/internal/api/response"
	"github.com/mcoot/ricotte-api/internal/roster"
)

// PlayerHandler handles registration and login
type PlayerHandler struct {
	engine   Engine
	roster   *roster.Roster
	renderer *response.Renderer
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(engine Engine, r *roster.Roster, renderer *response.Renderer) *PlayerHandler {
	return &PlayerHandler{
		engine:   engine,
		roster:   r,
		renderer: renderer,
	}
}

// Register handles POST /register
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.renderer.Err(w, r, apierr.MethodNotAllowed(r.Method))
		return
	}

	var req request.RegisterRequest
	if err := decodeBody(r, &req, "playername, username and password are required"); err != nil {
		h.renderer.Err(w, r, err)
		return
	}

	player := h.roster.NewRegistrant(req.PlayerName)
	playerID, err := h.engine.RegisterPlayer(r.Context(), player, req.PlayerName, req.UserName, req.Password)
	if err != nil {
		h.renderer.Err(w, r, apierr.BadRequest("Registration failed: %s", err))
		return
	}

	h.renderer.Data(w, response.PlayerRegistered{PlayerID: playerID})
}

// Login handles POST /login
func (h *PlayerHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.renderer.Err(w, r, apierr.MethodNotAllowed(r.Method))
		return
	}

	var req request.LoginRequest
	if err := decodeBody(r, &req, "username and password are required"); err != nil {
		h.renderer.Err(w, r, err)
		return
	}

	player, err := h.engine.Login(r.Context(), req.UserName, req.Password)
	if err != nil {
		h.renderer.Err(w, r, apierr.BadRequest("Login failed: %s", err))
		return
	}

	h.renderer.Data(w, player)
}

// decodeBody maps body failures to 400s; missing fields get the given message
func decodeBody(r *http.Request, v any, missingFields string) error {
	err := request.Decode(r.Body, v)
	if err == nil {
		return nil
	}

	var de *request.DecodeError
	if errors.As(err, &de) {
		return apierr.BadRequest("Cannot parse request body: %s", de.Err)
	}
	return apierr.BadRequest("%s", missingFields)
}
