package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	envconfig "github.com/JeremyLoy/config"

	"github.com/mcoot/ricotte-api/internal/model"
)

const (
	defaultServerURL = "http://localhost:3017"
	defaultOutput    = "text"
)

// Config holds CLI settings. Flags override the RICOTTE_* environment.
type Config struct {
	ServerURL   string `config:"RICOTTE_SERVER"`
	Token       string `config:"RICOTTE_TOKEN"`
	SessionFile string `config:"RICOTTE_SESSION"`
	Output      string `config:"RICOTTE_OUTPUT"`
}

// LoadConfig reads the RICOTTE_* environment, falling back to defaults for unset values
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.FromEnv().To(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ServerURL == "" {
		c.ServerURL = defaultServerURL
	}
	if c.SessionFile == "" {
		c.SessionFile = defaultSessionFile()
	}
	if c.Output == "" {
		c.Output = defaultOutput
	}
}

// LoadSession returns the login saved by `player login`, or nil if there is none
func (c *Config) LoadSession() (*model.LoggedInPlayer, error) {
	data, err := os.ReadFile(c.SessionFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var session model.LoggedInPlayer
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("corrupt session file %s: %w", c.SessionFile, err)
	}
	return &session, nil
}

// SaveSession stores a login so later commands act as that player
func (c *Config) SaveSession(session *model.LoggedInPlayer) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.SessionFile), 0o700); err != nil {
		return err
	}
	return os.WriteFile(c.SessionFile, data, 0o600)
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".ricotte", "session.json")
	}
	return filepath.Join(home, ".ricotte", "session.json")
}
