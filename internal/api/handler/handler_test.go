package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/ricotte-api/internal/api/middleware"
	"github.com/mcoot/ricotte-api/internal/api/response"
	"github.com/mcoot/ricotte-api/internal/model"
	"github.com/mcoot/ricotte-api/internal/roster"
	"github.com/mcoot/ricotte-api/internal/testutil"
)

// fakeEngine returns canned results and records calls
type fakeEngine struct {
	calls []string

	battleID model.BattleID
	battle   *model.Battle
	playerID model.PlayerID
	player   *model.LoggedInPlayer
	err      error

	lastToken     string
	lastPlayerID  model.PlayerID
	lastBattleID  model.BattleID
	lastAttacking int
	lastDefending int
}

func (f *fakeEngine) CreateBattle(_ context.Context, playerID, _ model.PlayerID, _ string, _ bool, accessToken string) (model.BattleID, error) {
	f.calls = append(f.calls, "CreateBattle")
	f.lastPlayerID = playerID
	f.lastToken = accessToken
	return f.battleID, f.err
}

func (f *fakeEngine) GetBattle(_ context.Context, battleID model.BattleID, accessToken string) (*model.Battle, error) {
	f.calls = append(f.calls, "GetBattle")
	f.lastBattleID = battleID
	f.lastToken = accessToken
	return f.battle, f.err
}

func (f *fakeEngine) Attack(_ context.Context, battleID model.BattleID, attacking, defending int, accessToken string) (*model.Battle, error) {
	f.calls = append(f.calls, "Attack")
	f.lastBattleID = battleID
	f.lastToken = accessToken
	f.lastAttacking, f.lastDefending = attacking, defending
	return f.battle, f.err
}

func (f *fakeEngine) RegisterPlayer(_ context.Context, _ *model.Player, _, _, _ string) (model.PlayerID, error) {
	f.calls = append(f.calls, "RegisterPlayer")
	return f.playerID, f.err
}

func (f *fakeEngine) Login(_ context.Context, _, _ string) (*model.LoggedInPlayer, error) {
	f.calls = append(f.calls, "Login")
	return f.player, f.err
}

type HandlerSuite struct {
	suite.Suite
	engine  *fakeEngine
	battles *BattleHandler
	players *PlayerHandler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.engine = &fakeEngine{}
	renderer := response.NewRenderer(testutil.NopLogger())
	s.battles = NewBattleHandler(s.engine, roster.Default(), renderer)
	s.players = NewPlayerHandler(s.engine, roster.Default(), renderer)
}

func (s *HandlerSuite) serve(h http.HandlerFunc, method, path, body, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rr := httptest.NewRecorder()
	middleware.AccessToken()(h).ServeHTTP(rr, req)
	return rr
}

func (s *HandlerSuite) TestCreateBattle_FaultIncludesMessage() {
	s.engine.err = errors.New("redis down")

	rr := s.serve(s.battles.CreateTutorialBattle, http.MethodGet, "/createBattle", "", "")

	s.Equal(http.StatusInternalServerError, rr.Code)
	s.JSONEq(`{"error":"Creating battle failed: redis down"}`, rr.Body.String())
}

func (s *HandlerSuite) TestCreateBattle_DomainError() {
	s.engine.err = model.NewDomainError("Player p1 not found")

	rr := s.serve(s.battles.CreateTutorialBattle, http.MethodGet, "/createBattle", "", "")

	s.Equal(http.StatusInternalServerError, rr.Code)
	s.JSONEq(`{"error":"Creating battle failed"}`, rr.Body.String())
}

func (s *HandlerSuite) TestCreateUserBattle_PassesToken() {
	s.engine.battleID = "u-p2_1"

	rr := s.serve(s.battles.CreateUserBattle, http.MethodGet, "/createUserBattle/u", "", "Bearer tok")

	s.Equal(http.StatusOK, rr.Code)
	s.JSONEq(`{"battleId":"u-p2_1"}`, rr.Body.String())
	s.Equal("tok", s.engine.lastToken)
}

func (s *HandlerSuite) TestEscapedSlashStaysInOneSegment() {
	s.engine.battleID = "b1"
	s.engine.battle = &model.Battle{BattleID: "a/b"}

	rr := s.serve(s.battles.CreateUserBattle, http.MethodGet, "/createUserBattle/team%2Fhero", "", "Bearer tok")
	s.Equal(http.StatusOK, rr.Code)
	s.Equal(model.PlayerID("team/hero"), s.engine.lastPlayerID)

	rr = s.serve(s.battles.GetBattle, http.MethodGet, "/getBattle/a%2Fb", "", "")
	s.Equal(http.StatusOK, rr.Code)
	s.Equal(model.BattleID("a/b"), s.engine.lastBattleID)

	rr = s.serve(s.battles.Attack, http.MethodGet, "/attack/a%2Fb/1/2", "", "")
	s.Equal(http.StatusOK, rr.Code)
	s.Equal(model.BattleID("a/b"), s.engine.lastBattleID)
	s.Equal(1, s.engine.lastAttacking)
	s.Equal(2, s.engine.lastDefending)
}

func (s *HandlerSuite) TestGetBattle_TokenErrorIsNotFatal() {
	s.engine.battle = &model.Battle{BattleID: "b1"}

	rr := s.serve(s.battles.GetBattle, http.MethodGet, "/getBattle/b1", "", "Basic nope")

	s.Equal(http.StatusOK, rr.Code)
	s.Equal([]string{"GetBattle"}, s.engine.calls)
	s.Empty(s.engine.lastToken)
}

func (s *HandlerSuite) TestGetBattle_Fault() {
	s.engine.err = errors.New("timeout")

	rr := s.serve(s.battles.GetBattle, http.MethodGet, "/getBattle/b1", "", "")

	s.Equal(http.StatusBadRequest, rr.Code)
	s.JSONEq(`{"error":"Error while getting battle b1: timeout"}`, rr.Body.String())
}

func (s *HandlerSuite) TestAttack_UnparsableUnitsBecomeNoUnit() {
	s.engine.err = model.NewDomainError("Cannot find attacking unit 0 for player p1")

	rr := s.serve(s.battles.Attack, http.MethodGet, "/attack/b1/one/2x", "", "")

	s.Equal(http.StatusBadRequest, rr.Code)
	s.Equal(model.NoUnit, s.engine.lastAttacking)
	s.Equal(model.NoUnit, s.engine.lastDefending)
}

func (s *HandlerSuite) TestAttack_Fault() {
	s.engine.err = errors.New("store unavailable")

	rr := s.serve(s.battles.Attack, http.MethodGet, "/attack/b1/1/2", "", "")

	s.Equal(http.StatusBadRequest, rr.Code)
	s.JSONEq(`{"error":"Attack failed: store unavailable"}`, rr.Body.String())
	s.Equal(1, s.engine.lastAttacking)
	s.Equal(2, s.engine.lastDefending)
}

func (s *HandlerSuite) TestRegister_MissingFieldsNeverReachEngine() {
	bodies := []string{
		`{}`,
		`{"playername":"Hero"}`,
		`{"playername":"Hero","username":"h1"}`,
		`{"username":"h1","password":"pw"}`,
	}
	for _, body := range bodies {
		rr := s.serve(s.players.Register, http.MethodPost, "/register", body, "")
		s.Equal(http.StatusBadRequest, rr.Code, body)
	}
	s.Empty(s.engine.calls)
}

func (s *HandlerSuite) TestRegister_Fault() {
	s.engine.err = errors.New("connection refused")

	rr := s.serve(s.players.Register, http.MethodPost, "/register", `{"playername":"Hero","username":"h1","password":"pw"}`, "")

	s.Equal(http.StatusBadRequest, rr.Code)
	s.JSONEq(`{"error":"Registration failed: connection refused"}`, rr.Body.String())
}

func (s *HandlerSuite) TestLogin_ReturnsPlayer() {
	s.engine.player = &model.LoggedInPlayer{PlayerID: "id1", Name: "Hero", UserName: "h1", AccessToken: "t"}

	rr := s.serve(s.players.Login, http.MethodPost, "/login", `{"username":"h1","password":"pw"}`, "")

	s.Equal(http.StatusOK, rr.Code)
	s.JSONEq(`{"playerId":"id1","name":"Hero","userName":"h1","accessToken":"t"}`, rr.Body.String())
}

func TestClassify(t *testing.T) {
	assert.Equal(t, outcomeFound, classify(nil))
	assert.Equal(t, outcomeNotFound, classify(model.ErrBattleNotFound))
	assert.Equal(t, outcomeDomainError, classify(model.NewDomainError("nope")))
	assert.Equal(t, outcomeFault, classify(errors.New("boom")))
}
