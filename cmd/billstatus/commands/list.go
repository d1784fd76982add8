package commands

import (
	"fmt"
	"log/slog"

	"govinfo-billstatus/internal/scrapers/govinfo"

	"github.com/spf13/cobra"
)

var (
	listSession string
	listType    string
)

func init() {
	listCmd.Flags().StringVar(&listSession, "session", "", "Session to list (default: current session).")
	listCmd.Flags().StringVar(&listType, "type", "", "Only list this bill type (default: every type).")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list [--session <session>] [--type <bill type>]",
	Short: "List the bill ids of a session.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		session, err := resolveSession(ctx, listSession)
		if err != nil {
			return err
		}

		var ids []string
		if listType == "" {
			ids, err = client.ListAllBills(ctx, session)
		} else {
			billType, parseErr := govinfo.ParseBillType(listType)
			if parseErr != nil {
				return parseErr
			}
			ids, err = client.ListBills(ctx, session, billType)
		}
		if err != nil {
			return err
		}

		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		slog.Info("listed bills", "session", session, "count", len(ids))
		return nil
	},
}
