package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/ricotte-api/internal/dependencies/clock"
	"github.com/mcoot/ricotte-api/internal/model"
	"github.com/mcoot/ricotte-api/internal/services/account"
	"github.com/mcoot/ricotte-api/internal/services/ai"
	"github.com/mcoot/ricotte-api/internal/storage"
)

// maxBattleIDAttempts bounds the search for a free battle ID
const maxBattleIDAttempts = 100

// Controller runs battles between players and the AI opponent
type Controller struct {
	storage    storage.Storage
	accounts   *account.Service
	strategies ai.Registry
	clock      clock.Clock
	logger     *slog.Logger

	// locks serializes attacks on the same battle
	locks *battleLocks
}

// NewController creates a new game Controller
func NewController(
	store storage.Storage,
	accounts *account.Service,
	strategies ai.Registry,
	clk clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:    store,
		accounts:   accounts,
		strategies: strategies,
		clock:      clk,
		logger:     logger.With(slog.String("component", "game-controller")),
		locks:      newBattleLocks(),
	}
}

// CreatePlayer stores a player so it can take part in battles
func (c *Controller) CreatePlayer(ctx context.Context, player *model.Player) (model.PlayerID, error) {
	if err := c.storage.SavePlayer(ctx, player); err != nil {
		return "", err
	}
	return player.PlayerID, nil
}

// CreateBattle starts a battle between playerID and opponentID.
// User battles (isTutorial false) require an access token issued to playerID;
// the token is then bound to the battle.
func (c *Controller) CreateBattle(
	ctx context.Context,
	playerID, opponentID model.PlayerID,
	counterAttack string,
	isTutorial bool,
	accessToken string,
) (model.BattleID, error) {
	if _, err := c.strategies.Get(counterAttack); err != nil {
		return "", model.NewDomainError("Cannot create battle: %s", err)
	}

	if !isTutorial {
		if err := c.accounts.ValidateAccessToken(ctx, accessToken, playerID); err != nil {
			if errors.Is(err, account.ErrInvalidAccessToken) {
				return "", model.NewDomainError("Access token is invalid for player %s", playerID)
			}
			return "", fmt.Errorf("validate access token: %w", err)
		}
	}

	player, err := c.loadPlayer(ctx, playerID)
	if err != nil {
		return "", err
	}
	opponent, err := c.loadPlayer(ctx, opponentID)
	if err != nil {
		return "", err
	}

	battle := &model.Battle{
		BattleStatus:    model.BattleStatusActive,
		PlayersInBattle: []*model.Player{freshUnits(player), freshUnits(opponent)},
		IsTutorial:      isTutorial,
		CounterAttack:   counterAttack,
	}
	if !isTutorial {
		battle.AccessToken = accessToken
	}

	// IDs are built from creation millis; step forward on collision
	millis := c.clock.Now().UnixMilli()
	for attempt := 0; ; attempt++ {
		if attempt == maxBattleIDAttempts {
			return "", fmt.Errorf("no free battle id for %s vs %s", playerID, opponentID)
		}
		battle.BattleID = model.NewBattleID(playerID, opponentID, millis+int64(attempt))
		err := c.storage.CreateBattle(ctx, battle)
		if err == nil {
			break
		}
		if !errors.Is(err, model.ErrBattleExists) {
			return "", fmt.Errorf("create battle: %w", err)
		}
	}

	c.logger.Info("battle created",
		slog.String("battle_id", string(battle.BattleID)),
		slog.String("player_id", string(playerID)),
		slog.String("opponent_id", string(opponentID)),
		slog.Bool("tutorial", isTutorial),
	)

	return battle.BattleID, nil
}

// GetBattle returns the battle if the caller token may see it.
// A missing battle is reported as model.ErrBattleNotFound.
func (c *Controller) GetBattle(ctx context.Context, battleID model.BattleID, accessToken string) (*model.Battle, error) {
	return c.authorizedBattle(ctx, battleID, accessToken)
}

// Attack resolves the player's attack and the opponent's counter-attack
func (c *Controller) Attack(
	ctx context.Context,
	battleID model.BattleID,
	attackingUnit, defendingUnit int,
	accessToken string,
) (*model.Battle, error) {
	unlock := c.locks.lock(battleID)
	defer unlock()

	battle, err := c.authorizedBattle(ctx, battleID, accessToken)
	if err != nil {
		return nil, err
	}

	if !battle.IsActive() {
		return nil, model.NewDomainError("Battle %s has already ended", battleID)
	}

	player, opponent := battle.Player(), battle.Opponent()

	attacker, err := livingUnit(player, attackingUnit, "attacking")
	if err != nil {
		return nil, err
	}
	defender, err := livingUnit(opponent, defendingUnit, "defending")
	if err != nil {
		return nil, err
	}

	strike(attacker, defender)

	if opponent.IsDefeated() {
		battle.End(player.PlayerID)
	} else {
		c.counterAttack(battle)
	}

	if err := c.storage.SaveBattle(ctx, battle); err != nil {
		return nil, fmt.Errorf("save battle: %w", err)
	}

	c.logger.Info("attack resolved",
		slog.String("battle_id", string(battleID)),
		slog.Int("attacking_unit", attackingUnit),
		slog.Int("defending_unit", defendingUnit),
		slog.String("battle_status", string(battle.BattleStatus)),
	)

	return battle, nil
}

// RegisterPlayer creates an account for a new player
func (c *Controller) RegisterPlayer(ctx context.Context, player *model.Player, playerName, userName, password string) (model.PlayerID, error) {
	return c.accounts.RegisterPlayer(ctx, player, playerName, userName, password)
}

// Login authenticates a registered player
func (c *Controller) Login(ctx context.Context, userName, password string) (*model.LoggedInPlayer, error) {
	return c.accounts.Login(ctx, userName, password)
}

// counterAttack lets the opponent strike back using the battle's strategy
func (c *Controller) counterAttack(battle *model.Battle) {
	strategy, err := c.strategies.Get(battle.CounterAttack)
	if err != nil {
		c.logger.Warn("skipping counter-attack",
			slog.String("battle_id", string(battle.BattleID)),
			slog.String("error", err.Error()),
		)
		return
	}

	player, opponent := battle.Player(), battle.Opponent()
	choice, ok := strategy.ChooseCounterAttack(battle, opponent, player)
	if !ok {
		return
	}

	attacker := opponent.Unit(choice.AttackingUnit)
	defender := player.Unit(choice.DefendingUnit)
	if attacker == nil || defender == nil || attacker.IsDefeated() || defender.IsDefeated() {
		return
	}

	strike(attacker, defender)

	if player.IsDefeated() {
		battle.End(opponent.PlayerID)
	}
}

// authorizedBattle loads a battle and checks the caller token against it
func (c *Controller) authorizedBattle(ctx context.Context, battleID model.BattleID, accessToken string) (*model.Battle, error) {
	battle, err := c.storage.GetBattle(ctx, battleID)
	if err != nil {
		if errors.Is(err, model.ErrBattleNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get battle: %w", err)
	}

	if !battle.AcceptsToken(accessToken) {
		return nil, model.NewDomainError("Access token is invalid for battle %s", battleID)
	}
	return battle, nil
}

func (c *Controller) loadPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	player, err := c.storage.GetPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, model.NewDomainError("Player %s not found", id)
		}
		return nil, fmt.Errorf("get player: %w", err)
	}
	return player, nil
}

// freshUnits copies a player with every unit back at its default status
func freshUnits(p *model.Player) *model.Player {
	fresh := p.Clone()
	for i := range fresh.Units {
		fresh.Units[i].CurrentStatus = fresh.Units[i].DefaultStatus
	}
	return fresh
}

func livingUnit(p *model.Player, joinNumber int, role string) (*model.Unit, error) {
	unit := p.Unit(joinNumber)
	if unit == nil {
		return nil, model.NewDomainError("Cannot find %s unit %d for player %s", role, joinNumber, p.PlayerID)
	}
	if unit.IsDefeated() {
		return nil, model.NewDomainError("The %s unit %d of player %s is already defeated", role, joinNumber, p.PlayerID)
	}
	return unit, nil
}
