package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mcoot/ricotte-api/internal/api/apierr"
	"github.com/mcoot/ricotte-api/internal/api/middleware"
	"github.com/mcoot/ricotte-api/internal/api/response"
	"github.com/mcoot/ricotte-api/internal/model"
	"github.com/mcoot/ricotte-api/internal/roster"
)

// BattleHandler handles battle creation, lookup and attacks
type BattleHandler struct {
	engine   Engine
	roster   *roster.Roster
	renderer *response.Renderer
}

// NewBattleHandler creates a new battle handler
func NewBattleHandler(engine Engine, r *roster.Roster, renderer *response.Renderer) *BattleHandler {
	return &BattleHandler{
		engine:   engine,
		roster:   r,
		renderer: renderer,
	}
}

// CreateUserBattle handles /createUserBattle/{playerId}
func (h *BattleHandler) CreateUserBattle(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(r)
	if len(segments) < 3 {
		h.renderer.Err(w, r, apierr.BadRequest("Not enough parameters provided in URL path"))
		return
	}

	playerID := model.PlayerID(segments[2])
	if playerID == "" {
		h.renderer.Err(w, r, apierr.BadRequest("Cannot find playerId in URL path"))
		return
	}

	token, err := middleware.GetAccessToken(r.Context())
	if err != nil {
		h.renderer.Err(w, r, apierr.BadRequest("Cannot create battle for playerId %s: %s", playerID, err))
		return
	}

	h.createBattle(w, r, playerID, false, token)
}

// CreateTutorialBattle handles /createBattle
func (h *BattleHandler) CreateTutorialBattle(w http.ResponseWriter, r *http.Request) {
	h.createBattle(w, r, h.roster.TutorialPlayer.PlayerID, true, "")
}

func (h *BattleHandler) createBattle(w http.ResponseWriter, r *http.Request, playerID model.PlayerID, isTutorial bool, token string) {
	battleID, err := h.engine.CreateBattle(r.Context(), playerID, h.roster.Opponent.PlayerID, h.roster.CounterAttack, isTutorial, token)

	switch classify(err) {
	case outcomeFound:
		h.renderer.Data(w, response.BattleCreated{BattleID: battleID})
	case outcomeFault:
		h.renderer.Err(w, r, apierr.Internal("Creating battle failed: %s", err))
	default:
		h.renderer.Err(w, r, apierr.Internal("Creating battle failed"))
	}
}

// GetBattle handles /getBattle/{battleId}
func (h *BattleHandler) GetBattle(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(r)
	battleID := model.BattleID(segments[len(segments)-1])
	if battleID == "" {
		h.renderer.Err(w, r, apierr.BadRequest("Cannot find battleId in URL path"))
		return
	}

	// the engine decides whether a battle needs a token
	token, _ := middleware.GetAccessToken(r.Context())

	battle, err := h.engine.GetBattle(r.Context(), battleID, token)
	switch classify(err) {
	case outcomeFound:
		h.renderer.Data(w, battle)
	case outcomeNotFound:
		h.renderer.Err(w, r, apierr.BadRequest("Cannot find battle for battleId %s", battleID))
	case outcomeDomainError:
		h.renderer.Err(w, r, apierr.BadRequest("Cannot get battle %s: %s", battleID, err))
	default:
		h.renderer.Err(w, r, apierr.BadRequest("Error while getting battle %s: %s", battleID, err))
	}
}

// Attack handles /attack/{battleId}/{attackingUnitId}/{defendingUnitId}
func (h *BattleHandler) Attack(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(r)
	if len(segments) < 5 {
		h.renderer.Err(w, r, apierr.BadRequest("Not enough parameters provided in URL path"))
		return
	}

	battleID, attacking, defending := segments[2], segments[3], segments[4]
	if battleID == "" || attacking == "" || defending == "" {
		h.renderer.Err(w, r, apierr.BadRequest("battleId, attackingUnitId and defendingUnitId are required in URL path"))
		return
	}

	token, _ := middleware.GetAccessToken(r.Context())

	battle, err := h.engine.Attack(r.Context(), model.BattleID(battleID), unitNumber(attacking), unitNumber(defending), token)
	if classify(err) != outcomeFound {
		h.renderer.Err(w, r, apierr.BadRequest("Attack failed: %s", err))
		return
	}

	h.renderer.Data(w, battle)
}

// pathSegments splits the raw path on "/" and unescapes each segment,
// so an id sent as "a%2Fb" stays one segment.
func pathSegments(r *http.Request) []string {
	segments := strings.Split(r.URL.EscapedPath(), "/")
	for i, seg := range segments {
		if unescaped, err := url.PathUnescape(seg); err == nil {
			segments[i] = unescaped
		}
	}
	return segments
}

// unitNumber parses a unit join number; anything unparsable becomes model.NoUnit
func unitNumber(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return model.NoUnit
	}
	return n
}
