package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/ricotte-api/internal/dependencies/clock"
	"github.com/mcoot/ricotte-api/internal/dependencies/random"
	"github.com/mcoot/ricotte-api/internal/roster"
	"github.com/mcoot/ricotte-api/internal/services/account"
	"github.com/mcoot/ricotte-api/internal/services/ai"
	"github.com/mcoot/ricotte-api/internal/services/game"
	"github.com/mcoot/ricotte-api/internal/storage"
	"github.com/mcoot/ricotte-api/internal/storage/memory"
	redisstorage "github.com/mcoot/ricotte-api/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Strategies     ai.Registry
	AccountService *account.Service
	GameController *game.Controller

	// Roster is the set of players seeded at startup
	Roster *roster.Roster
}

// Config holds configuration for the application factory
type Config struct {
	// AccountConfig holds configuration for the account service (optional)
	// If zero value, defaults to account.DefaultConfig()
	AccountConfig account.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Roster overrides the bootstrap players (optional)
	Roster *roster.Roster
}

// New creates a new application with all dependencies wired and the roster seeded
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	rstr := cfg.Roster
	if rstr == nil {
		rstr = roster.Default()
	}

	app := newWithDependencies(store, clock.New(), random.New(), cfg.AccountConfig, rstr, logger)
	if err := app.seedRoster(ctx); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	accountCfg account.Config,
	rstr *roster.Roster,
	logger *slog.Logger,
) *App {
	strategies := ai.NewRegistry(rnd)
	accountService := account.New(store, clk, rnd, accountCfg, logger)
	gameController := game.NewController(store, accountService, strategies, clk, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		Strategies:     strategies,
		AccountService: accountService,
		GameController: gameController,
		Roster:         rstr,
	}
}

// seedRoster stores the bootstrap players; it is safe to run on every start
func (a *App) seedRoster(ctx context.Context) error {
	for _, p := range a.Roster.Players() {
		if _, err := a.GameController.CreatePlayer(ctx, p); err != nil {
			return fmt.Errorf("seed player %s: %w", p.PlayerID, err)
		}
	}
	return nil
}

// Close releases storage connections
func (a *App) Close() error {
	if c, ok := a.Storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
