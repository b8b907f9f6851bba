package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mcoot/ricotte-api/internal/model"
	"github.com/mcoot/ricotte-api/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Values are copied on the way in and out so callers never share state.
type Storage struct {
	mu sync.RWMutex

	players       map[model.PlayerID]*model.Player
	accounts      map[model.PlayerID]*model.PlayerAccount
	userNameIndex map[string]model.PlayerID
	battles       map[model.BattleID]*model.Battle
	accessTokens  map[string]*model.AccessToken
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:       make(map[model.PlayerID]*model.Player),
		accounts:      make(map[model.PlayerID]*model.PlayerAccount),
		userNameIndex: make(map[string]model.PlayerID),
		battles:       make(map[model.BattleID]*model.Battle),
		accessTokens:  make(map[string]*model.AccessToken),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.PlayerID] = player.Clone()
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player.Clone(), nil
}

// Account operations

func (s *Storage) AddPlayerAccount(ctx context.Context, account *model.PlayerAccount) (model.PlayerID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.userNameIndex[account.UserName]; taken {
		return "", model.ErrUserNameExists
	}

	stored := *account
	if stored.PlayerID == "" {
		stored.PlayerID = model.PlayerID(uuid.New().String())
	}
	s.accounts[stored.PlayerID] = &stored
	s.userNameIndex[stored.UserName] = stored.PlayerID
	return stored.PlayerID, nil
}

func (s *Storage) GetPlayerAccountByUserName(ctx context.Context, userName string) (*model.PlayerAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.userNameIndex[userName]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	account, ok := s.accounts[playerID]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	found := *account
	return &found, nil
}

func (s *Storage) RemovePlayerAccount(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil
	}
	if s.userNameIndex[account.UserName] == id {
		delete(s.userNameIndex, account.UserName)
	}
	delete(s.accounts, id)
	return nil
}

// Battle operations

func (s *Storage) CreateBattle(ctx context.Context, battle *model.Battle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.battles[battle.BattleID]; exists {
		return model.ErrBattleExists
	}
	s.battles[battle.BattleID] = battle.Clone()
	return nil
}

func (s *Storage) SaveBattle(ctx context.Context, battle *model.Battle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.battles[battle.BattleID] = battle.Clone()
	return nil
}

func (s *Storage) GetBattle(ctx context.Context, id model.BattleID) (*model.Battle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	battle, ok := s.battles[id]
	if !ok {
		return nil, model.ErrBattleNotFound
	}
	return battle.Clone(), nil
}

// Access token operations

func (s *Storage) SaveAccessToken(ctx context.Context, token *model.AccessToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *token
	s.accessTokens[token.Token] = &stored
	return nil
}

func (s *Storage) GetAccessToken(ctx context.Context, token string) (*model.AccessToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	at, ok := s.accessTokens[token]
	if !ok {
		return nil, model.ErrAccessTokenNotFound
	}
	found := *at
	return &found, nil
}
