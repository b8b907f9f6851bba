package handler

import (
	"context"
	"errors"

	"github.com/mcoot/ricotte-api/internal/model"
)

// Engine is the game the gateway forwards to.
// Domain failures come back as *model.DomainError, a missing battle as
// model.ErrBattleNotFound; any other error is a fault.
type Engine interface {
	CreateBattle(ctx context.Context, playerID, opponentID model.PlayerID, counterAttack string, isTutorial bool, accessToken string) (model.BattleID, error)
	GetBattle(ctx context.Context, battleID model.BattleID, accessToken string) (*model.Battle, error)
	Attack(ctx context.Context, battleID model.BattleID, attackingUnit, defendingUnit int, accessToken string) (*model.Battle, error)
	RegisterPlayer(ctx context.Context, player *model.Player, playerName, userName, password string) (model.PlayerID, error)
	Login(ctx context.Context, userName, password string) (*model.LoggedInPlayer, error)
}

type outcome int

const (
	outcomeFound outcome = iota
	outcomeNotFound
	outcomeDomainError
	outcomeFault
)

// classify sorts an engine error into the outcome the gateway maps to a response
func classify(err error) outcome {
	switch {
	case err == nil:
		return outcomeFound
	case errors.Is(err, model.ErrBattleNotFound):
		return outcomeNotFound
	}
	if _, ok := model.AsDomainError(err); ok {
		return outcomeDomainError
	}
	return outcomeFault
}
