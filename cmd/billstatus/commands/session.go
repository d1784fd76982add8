package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sessionCmd)
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Print the current legislative session.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := client.CurrentSession(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), session)
		return nil
	},
}

// resolveSession returns `session` or, when empty, the current session.
func resolveSession(ctx context.Context, session string) (string, error) {
	if session != "" {
		return session, nil
	}
	return client.CurrentSession(ctx)
}
