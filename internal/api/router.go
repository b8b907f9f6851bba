package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/mcoot/ricotte-api/internal/api/handler"
	"github.com/mcoot/ricotte-api/internal/api/middleware"
	"github.com/mcoot/ricotte-api/internal/api/response"
	logmw "github.com/mcoot/ricotte-api/internal/middleware"
	"github.com/mcoot/ricotte-api/internal/roster"
)

// Engine is the game collaborator behind the router
type Engine = handler.Engine

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger *slog.Logger
	Engine Engine
	Roster *roster.Roster
	// RequestTimeout bounds each request's context; zero means no deadline
	RequestTimeout time.Duration
}

// NewRouter creates the API router.
// Routes match on path substrings and are tried in registration order, so
// /createUserBattle has to come before /createBattle.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.SkipClean(true)

	renderer := response.NewRenderer(cfg.Logger)

	// Create handlers
	homeHandler := handler.NewHomeHandler(renderer)
	battleHandler := handler.NewBattleHandler(cfg.Engine, cfg.Roster, renderer)
	playerHandler := handler.NewPlayerHandler(cfg.Engine, cfg.Roster, renderer)

	r.Use(middleware.Recovery(cfg.Logger, renderer))
	r.Use(logmw.Logging(cfg.Logger))
	r.Use(middleware.Headers())
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.AccessToken())

	r.MatcherFunc(methodIs(http.MethodOptions)).HandlerFunc(homeHandler.Preflight)
	r.MatcherFunc(methodUnsupported).HandlerFunc(homeHandler.MethodNotAllowed)

	r.MatcherFunc(pathContains("/createUserBattle")).HandlerFunc(battleHandler.CreateUserBattle)
	r.MatcherFunc(pathContains("/createBattle")).HandlerFunc(battleHandler.CreateTutorialBattle)
	r.MatcherFunc(pathContains("/getBattle")).HandlerFunc(battleHandler.GetBattle)
	r.MatcherFunc(pathContains("/attack")).HandlerFunc(battleHandler.Attack)
	r.MatcherFunc(pathContains("/register")).HandlerFunc(playerHandler.Register)
	r.MatcherFunc(pathContains("/login")).HandlerFunc(playerHandler.Login)

	r.MatcherFunc(matchAll).HandlerFunc(homeHandler.Welcome)

	return r
}

func methodIs(method string) mux.MatcherFunc {
	return func(r *http.Request, _ *mux.RouteMatch) bool {
		return r.Method == method
	}
}

func methodUnsupported(r *http.Request, _ *mux.RouteMatch) bool {
	switch r.Method {
	case http.MethodGet, http.MethodPost, http.MethodOptions:
		return false
	}
	return true
}

func pathContains(fragment string) mux.MatcherFunc {
	return func(r *http.Request, _ *mux.RouteMatch) bool {
		return strings.Contains(r.URL.Path, fragment)
	}
}

func matchAll(*http.Request, *mux.RouteMatch) bool {
	return true
}
