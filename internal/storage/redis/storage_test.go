package redis

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/ricotte-api/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func slime() model.UnitTemplate {
	return model.UnitTemplate{Name: "Slime", JoinNumber: 1, DefaultStatus: model.UnitStatus{HP: 5, Atk: 2, Def: 1}}
}

func newBattle(id model.BattleID) *model.Battle {
	return &model.Battle{
		BattleID:     id,
		BattleStatus: model.BattleStatusActive,
		PlayersInBattle: []*model.Player{
			model.NewPlayer("p1", "Player", slime()),
			model.NewPlayer("p2", "Opponent", slime()),
		},
		CounterAttack: "random",
		AccessToken:   "secret",
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := model.NewPlayer("p1", "Player", slime())

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal(player, retrieved)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Account tests

func (s *StorageSuite) TestAddPlayerAccountAssignsID() {
	id, err := s.storage.AddPlayerAccount(s.ctx, &model.PlayerAccount{
		Name:             "Hero",
		UserName:         "h1",
		UserPasswordHash: "hash",
	})
	s.Require().NoError(err)
	s.NotEmpty(id)

	account, err := s.storage.GetPlayerAccountByUserName(s.ctx, "h1")
	s.Require().NoError(err)
	s.Equal(id, account.PlayerID)
	s.Equal("Hero", account.Name)

	indexed, err := s.mini.Get(userNameIndexKey("h1"))
	s.Require().NoError(err)
	s.Equal(string(id), indexed)
}

func (s *StorageSuite) TestAddPlayerAccountRejectsDuplicateUserName() {
	_, err := s.storage.AddPlayerAccount(s.ctx, &model.PlayerAccount{UserName: "h1"})
	s.Require().NoError(err)

	_, err = s.storage.AddPlayerAccount(s.ctx, &model.PlayerAccount{UserName: "h1"})
	s.ErrorIs(err, model.ErrUserNameExists)
}

func (s *StorageSuite) TestAddPlayerAccountDuplicateLeavesNoAccount() {
	_, err := s.storage.AddPlayerAccount(s.ctx, &model.PlayerAccount{UserName: "h1"})
	s.Require().NoError(err)

	_, err = s.storage.AddPlayerAccount(s.ctx, &model.PlayerAccount{PlayerID: "second", UserName: "h1"})
	s.Require().ErrorIs(err, model.ErrUserNameExists)

	s.False(s.mini.Exists(accountKey("second")))
}

func (s *StorageSuite) TestAddPlayerAccountServerErrorKeepsUserNameFree() {
	s.mini.SetError("LOADING redis is loading")
	_, err := s.storage.AddPlayerAccount(s.ctx, &model.PlayerAccount{UserName: "h1"})
	s.Require().Error(err)
	s.mini.SetError("")

	s.False(s.mini.Exists(userNameIndexKey("h1")))

	_, err = s.storage.AddPlayerAccount(s.ctx, &model.PlayerAccount{UserName: "h1"})
	s.NoError(err)
}

func (s *StorageSuite) TestAddPlayerAccountFailedAccountWriteKeepsUserNameFree() {
	client := redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	hook := &failCommandHook{command: "set"}
	client.AddHook(hook)
	store := NewWithClient(client, DefaultConfig())
	defer store.Close()

	hook.failing.Store(true)
	_, err := store.AddPlayerAccount(s.ctx, &model.PlayerAccount{UserName: "h1"})
	s.Require().Error(err)
	hook.failing.Store(false)

	s.False(s.mini.Exists(userNameIndexKey("h1")))

	id, err := store.AddPlayerAccount(s.ctx, &model.PlayerAccount{UserName: "h1"})
	s.Require().NoError(err)

	account, err := store.GetPlayerAccountByUserName(s.ctx, "h1")
	s.Require().NoError(err)
	s.Equal(id, account.PlayerID)
}

func (s *StorageSuite) TestRemovePlayerAccountFreesUserName() {
	id, err := s.storage.AddPlayerAccount(s.ctx, &model.PlayerAccount{UserName: "h1"})
	s.Require().NoError(err)

	s.Require().NoError(s.storage.RemovePlayerAccount(s.ctx, id))

	_, err = s.storage.GetPlayerAccountByUserName(s.ctx, "h1")
	s.ErrorIs(err, model.ErrAccountNotFound)
	s.False(s.mini.Exists(accountKey(id)))
	s.False(s.mini.Exists(userNameIndexKey("h1")))

	_, err = s.storage.AddPlayerAccount(s.ctx, &model.PlayerAccount{UserName: "h1"})
	s.NoError(err)
}

func (s *StorageSuite) TestRemovePlayerAccountUnknownIsNoop() {
	s.NoError(s.storage.RemovePlayerAccount(s.ctx, "nobody"))
}

func (s *StorageSuite) TestGetPlayerAccountNotFound() {
	_, err := s.storage.GetPlayerAccountByUserName(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

// Battle tests

func (s *StorageSuite) TestCreateAndGetBattleKeepsHiddenFields() {
	battle := newBattle("p1-p2_1")

	err := s.storage.CreateBattle(s.ctx, battle)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetBattle(s.ctx, "p1-p2_1")
	s.Require().NoError(err)
	s.Equal(battle, retrieved)
	s.Equal("secret", retrieved.AccessToken)
	s.Equal("random", retrieved.CounterAttack)
}

func (s *StorageSuite) TestCreateBattleRejectsExistingID() {
	_ = s.storage.CreateBattle(s.ctx, newBattle("p1-p2_1"))

	err := s.storage.CreateBattle(s.ctx, newBattle("p1-p2_1"))
	s.ErrorIs(err, model.ErrBattleExists)
}

func (s *StorageSuite) TestSaveBattleOverwrites() {
	battle := newBattle("p1-p2_1")
	_ = s.storage.CreateBattle(s.ctx, battle)

	battle.End("p2")
	s.Require().NoError(s.storage.SaveBattle(s.ctx, battle))

	retrieved, err := s.storage.GetBattle(s.ctx, "p1-p2_1")
	s.Require().NoError(err)
	s.Equal(model.BattleStatusEnded, retrieved.BattleStatus)
	s.Equal(model.PlayerID("p2"), retrieved.Winner)
}

func (s *StorageSuite) TestGetBattleNotFound() {
	_, err := s.storage.GetBattle(s.ctx, "missing")
	s.ErrorIs(err, model.ErrBattleNotFound)
}

func (s *StorageSuite) TestBattleTTL() {
	s.storage.cfg.BattleTTL = time.Hour
	_ = s.storage.CreateBattle(s.ctx, newBattle("p1-p2_1"))

	s.Equal(time.Hour, s.mini.TTL(battleKey("p1-p2_1")))
}

func (s *StorageSuite) TestBattleWithoutTTLIsKept() {
	_ = s.storage.CreateBattle(s.ctx, newBattle("p1-p2_1"))

	s.Equal(time.Duration(0), s.mini.TTL(battleKey("p1-p2_1")))
}

// Access token tests

func (s *StorageSuite) TestSaveAndGetAccessToken() {
	token := &model.AccessToken{Token: "abc", PlayerID: "p1", ExpiresAt: time.Now().Add(time.Hour)}
	err := s.storage.SaveAccessToken(s.ctx, token)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetAccessToken(s.ctx, "abc")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p1"), retrieved.PlayerID)
	s.True(s.mini.TTL(accessTokenKey("abc")) > 0, "token should expire")
}

func (s *StorageSuite) TestGetAccessTokenNotFound() {
	_, err := s.storage.GetAccessToken(s.ctx, "missing")
	s.ErrorIs(err, model.ErrAccessTokenNotFound)
}

// failCommandHook fails every command with the given name while failing is set
type failCommandHook struct {
	command string
	failing atomic.Bool
}

func (h *failCommandHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h *failCommandHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if h.failing.Load() && cmd.Name() == h.command {
			err := errors.New("write refused")
			cmd.SetErr(err)
			return err
		}
		return next(ctx, cmd)
	}
}

func (h *failCommandHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}
