package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/ricotte-api/internal/model"
)

func newBattleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "battle",
		Short: "Battle commands",
	}

	cmd.AddCommand(newBattleTutorialCmd())
	cmd.AddCommand(newBattleCreateCmd())
	cmd.AddCommand(newBattleGetCmd())
	cmd.AddCommand(newBattleAttackCmd())

	return cmd
}

func newBattleTutorialCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tutorial",
		Short: "Start a tutorial battle",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result BattleCreated

			if err := client.Get(cmd.Context(), "/createBattle", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newBattleCreateCmd() *cobra.Command {
	var playerID string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Start a battle for a logged in player",
		RunE: func(cmd *cobra.Command, args []string) error {
			if playerID == "" && session != nil {
				playerID = string(session.PlayerID)
			}
			if playerID == "" {
				return fmt.Errorf("--player is required when no login is saved")
			}

			var result BattleCreated

			if err := client.Get(cmd.Context(), "/createUserBattle/"+url.PathEscape(playerID), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player", "", "Player ID (defaults to the saved login)")

	return cmd
}

func newBattleGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <battle-id>",
		Short: "Show a battle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result model.Battle

			if err := client.Get(cmd.Context(), "/getBattle/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newBattleAttackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attack <battle-id> <attacking-unit> <defending-unit>",
		Short: "Attack an opponent unit",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, unit := range args[1:] {
				if _, err := strconv.Atoi(unit); err != nil {
					return fmt.Errorf("invalid unit number %q", unit)
				}
			}

			var result model.Battle

			path := fmt.Sprintf("/attack/%s/%s/%s", url.PathEscape(args[0]), args[1], args[2])
			if err := client.Get(cmd.Context(), path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
