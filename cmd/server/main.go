package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/ricotte-api/internal/api"
	"github.com/mcoot/ricotte-api/internal/config"
	"github.com/mcoot/ricotte-api/internal/factory"
	"github.com/mcoot/ricotte-api/internal/services/account"
	redisstorage "github.com/mcoot/ricotte-api/internal/storage/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	// Build factory config
	accountCfg := account.DefaultConfig()
	accountCfg.TokenDuration = cfg.TokenDuration

	factoryCfg := factory.Config{
		AccountConfig: accountCfg,
		Logger:        logger,
		StorageType:   cfg.StorageType,
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create application factory
	app, err := factory.New(ctx, factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = app.Close() }()

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		Engine:         app.GameController,
		Roster:         app.Roster,
		RequestTimeout: cfg.RequestTimeout,
	})

	server := api.NewServer(router, cfg, logger)
	if err := server.Run(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped")
}
