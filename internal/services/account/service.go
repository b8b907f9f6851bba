package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/ricotte-api/internal/dependencies/clock"
	"github.com/mcoot/ricotte-api/internal/dependencies/random"
	"github.com/mcoot/ricotte-api/internal/model"
	"github.com/mcoot/ricotte-api/internal/storage"
)

// tokenBytes is the entropy of an issued access token
const tokenBytes = 24

// Errors
var (
	ErrInvalidAccessToken = errors.New("invalid or expired access token")
)

// Config holds configuration for the account service
type Config struct {
	TokenDuration time.Duration
	// BcryptCost defaults to bcrypt.DefaultCost
	BcryptCost int
}

// DefaultConfig returns default account configuration
func DefaultConfig() Config {
	return Config{
		TokenDuration: 24 * time.Hour,
		BcryptCost:    bcrypt.DefaultCost,
	}
}

// Service handles registration, login and access tokens
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	cfg     Config
	logger  *slog.Logger
}

// New creates a new account Service
func New(store storage.Storage, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *Service {
	defaults := DefaultConfig()
	if cfg.TokenDuration == 0 {
		cfg.TokenDuration = defaults.TokenDuration
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = defaults.BcryptCost
	}
	return &Service{
		storage: store,
		clock:   clk,
		random:  rnd,
		cfg:     cfg,
		logger:  logger.With(slog.String("component", "account-service")),
	}
}

// RegisterPlayer creates an account for the given player and stores the player under the new ID.
// A taken user name is reported as a model.DomainError.
func (s *Service) RegisterPlayer(ctx context.Context, player *model.Player, playerName, userName, password string) (model.PlayerID, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	playerID, err := s.storage.AddPlayerAccount(ctx, &model.PlayerAccount{
		PlayerID:         player.PlayerID,
		Name:             playerName,
		UserName:         userName,
		UserPasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, model.ErrUserNameExists) {
			return "", model.NewDomainError("User name %s is already taken", userName)
		}
		return "", fmt.Errorf("add player account: %w", err)
	}

	registered := player.Clone()
	registered.PlayerID = playerID
	registered.Name = playerName
	if err := s.storage.SavePlayer(ctx, registered); err != nil {
		if rmErr := s.storage.RemovePlayerAccount(context.WithoutCancel(ctx), playerID); rmErr != nil {
			s.logger.Error("failed to roll back player account",
				slog.String("player_id", string(playerID)),
				slog.String("error", rmErr.Error()),
			)
		}
		return "", fmt.Errorf("save player: %w", err)
	}

	s.logger.Info("player registered",
		slog.String("player_id", string(playerID)),
		slog.String("user_name", userName),
	)

	return playerID, nil
}

// Login checks the credentials and issues a fresh access token
func (s *Service) Login(ctx context.Context, userName, password string) (*model.LoggedInPlayer, error) {
	account, err := s.storage.GetPlayerAccountByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return nil, invalidCredentials()
		}
		return nil, fmt.Errorf("get player account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.UserPasswordHash), []byte(password)); err != nil {
		return nil, invalidCredentials()
	}

	token := &model.AccessToken{
		Token:     s.random.Token(tokenBytes),
		PlayerID:  account.PlayerID,
		ExpiresAt: s.clock.Now().Add(s.cfg.TokenDuration),
	}
	if err := s.storage.SaveAccessToken(ctx, token); err != nil {
		return nil, fmt.Errorf("save access token: %w", err)
	}

	s.logger.Info("player logged in", slog.String("player_id", string(account.PlayerID)))

	return &model.LoggedInPlayer{
		PlayerID:    account.PlayerID,
		Name:        account.Name,
		UserName:    account.UserName,
		AccessToken: token.Token,
	}, nil
}

// ValidateAccessToken checks that token is live and was issued to playerID
func (s *Service) ValidateAccessToken(ctx context.Context, token string, playerID model.PlayerID) error {
	if token == "" {
		return ErrInvalidAccessToken
	}

	at, err := s.storage.GetAccessToken(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrAccessTokenNotFound) {
			return ErrInvalidAccessToken
		}
		return err
	}

	if at.PlayerID != playerID || s.clock.Now().After(at.ExpiresAt) {
		return ErrInvalidAccessToken
	}
	return nil
}

func invalidCredentials() error {
	return model.NewDomainError("Invalid user name or password")
}
