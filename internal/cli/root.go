package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/ricotte-api/internal/model"
)

var (
	cfg     *Config
	client  *Client
	session *model.LoggedInPlayer
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var loadErr error
	cfg, loadErr = LoadConfig()
	if cfg == nil {
		cfg = &Config{}
		cfg.applyDefaults()
	}

	rootCmd := &cobra.Command{
		Use:   "ricotte",
		Short: "CLI tool for the Ricotte battle API",
		Long: `ricotte is a CLI tool for the Ricotte battle API.

It can start tutorial and player battles, attack opponent units,
and register or log in players.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if loadErr != nil {
				return loadErr
			}

			var err error
			if session, err = cfg.LoadSession(); err != nil {
				return err
			}

			token := cfg.Token
			if token == "" && session != nil {
				token = session.AccessToken
			}
			client = NewClient(cfg.ServerURL, token)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: RICOTTE_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Access token (env: RICOTTE_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.SessionFile, "session", cfg.SessionFile, "Saved login file (env: RICOTTE_SESSION)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json (env: RICOTTE_OUTPUT)")

	// Add subcommands
	rootCmd.AddCommand(newWelcomeCmd())
	rootCmd.AddCommand(newBattleCmd())
	rootCmd.AddCommand(newPlayerCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
