package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	envconfig "github.com/JeremyLoy/config"
	"github.com/joho/godotenv"

	"github.com/mcoot/ricotte-api/internal/factory"
)

// DefaultPort is the port the gateway listens on unless PORT is set
const DefaultPort = 3017

// Config is the server configuration
type Config struct {
	Host           string
	Port           int
	StorageType    string
	RedisURL       string
	LogLevel       slog.Level
	RequestTimeout time.Duration
	TokenDuration  time.Duration

	// Zero read and write timeouts leave connections unbounded
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// env mirrors the environment variables the server reads
type env struct {
	Host           string `config:"HOST"`
	Port           int    `config:"PORT"`
	StorageType    string `config:"STORAGE_TYPE"`
	RedisURL       string `config:"REDIS_URL"`
	LogLevel       string `config:"LOG_LEVEL"`
	RequestTimeout string `config:"REQUEST_TIMEOUT"`
	TokenDuration  string `config:"TOKEN_DURATION"`

	ReadTimeout     string `config:"READ_TIMEOUT"`
	WriteTimeout    string `config:"WRITE_TIMEOUT"`
	ShutdownTimeout string `config:"SHUTDOWN_TIMEOUT"`
}

func defaults() env {
	return env{
		Port:            DefaultPort,
		StorageType:     factory.StorageTypeMemory,
		RedisURL:        "redis://localhost:6379",
		LogLevel:        "info",
		RequestTimeout:  "0s",
		TokenDuration:   "24h",
		ReadTimeout:     "0s",
		WriteTimeout:    "0s",
		ShutdownTimeout: "30s",
	}
}

// Load reads .env (if present) and then the process environment
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only
func FromEnv() (Config, error) {
	raw := defaults()
	if err := envconfig.FromEnv().To(&raw); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	return raw.parse()
}

func (e env) parse() (Config, error) {
	cfg := Config{
		Host:        e.Host,
		Port:        e.Port,
		StorageType: strings.ToLower(e.StorageType),
		RedisURL:    e.RedisURL,
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid PORT %d", e.Port)
	}

	switch cfg.StorageType {
	case factory.StorageTypeMemory, factory.StorageTypeRedis:
	default:
		return Config{}, fmt.Errorf("invalid STORAGE_TYPE %q: must be %q or %q",
			e.StorageType, factory.StorageTypeMemory, factory.StorageTypeRedis)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(e.LogLevel)); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	durations := []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"REQUEST_TIMEOUT", e.RequestTimeout, &cfg.RequestTimeout},
		{"TOKEN_DURATION", e.TokenDuration, &cfg.TokenDuration},
		{"READ_TIMEOUT", e.ReadTimeout, &cfg.ReadTimeout},
		{"WRITE_TIMEOUT", e.WriteTimeout, &cfg.WriteTimeout},
		{"SHUTDOWN_TIMEOUT", e.ShutdownTimeout, &cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		v, err := parseDuration(d.name, d.value)
		if err != nil {
			return Config{}, err
		}
		*d.dst = v
	}
	if cfg.TokenDuration == 0 {
		return Config{}, errors.New("TOKEN_DURATION must be positive")
	}

	return cfg, nil
}

func parseDuration(name, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", name)
	}
	return d, nil
}
