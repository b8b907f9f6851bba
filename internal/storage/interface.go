package storage

import (
	"context"

	"github.com/mcoot/ricotte-api/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)

	// Account operations
	// AddPlayerAccount assigns a new player ID when the account has none and returns it.
	// It fails with model.ErrUserNameExists when the user name is taken.
	AddPlayerAccount(ctx context.Context, account *model.PlayerAccount) (model.PlayerID, error)
	GetPlayerAccountByUserName(ctx context.Context, userName string) (*model.PlayerAccount, error)
	// RemovePlayerAccount deletes the account and frees its user name.
	// Removing an unknown account is not an error.
	RemovePlayerAccount(ctx context.Context, id model.PlayerID) error

	// Battle operations
	// CreateBattle fails with model.ErrBattleExists when the ID is already in use
	CreateBattle(ctx context.Context, battle *model.Battle) error
	SaveBattle(ctx context.Context, battle *model.Battle) error
	GetBattle(ctx context.Context, id model.BattleID) (*model.Battle, error)

	// Access token operations
	SaveAccessToken(ctx context.Context, token *model.AccessToken) error
	GetAccessToken(ctx context.Context, token string) (*model.AccessToken, error)
}
