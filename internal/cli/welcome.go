package cli

import (
	"github.com/spf13/cobra"
)

func newWelcomeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "welcome",
		Short: "Check that the server is up",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Welcome

			if err := client.Get(cmd.Context(), "/", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
