package commands

import (
	"fmt"
	"log/slog"

	"govinfo-billstatus/internal/scrapers/govinfo"

	"github.com/spf13/cobra"
)

var (
	filterSession    string
	filterIgnoreCase bool
)

func init() {
	filterCmd.Flags().StringVar(&filterSession, "session", "", "Session to search (default: current session).")
	filterCmd.Flags().BoolVarP(&filterIgnoreCase, "ignore-case", "i", false, "Match the pattern case-insensitively.")
	rootCmd.AddCommand(filterCmd)
}

var filterCmd = &cobra.Command{
	Use:   "filter <bill type> <pattern> [--session <session>] [-i]",
	Short: "List the bills of a type whose latest action matches a regular expression.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		billType, err := govinfo.ParseBillType(args[0])
		if err != nil {
			return err
		}
		pattern, err := compilePattern(args[1], filterIgnoreCase)
		if err != nil {
			return fmt.Errorf("compile pattern: %w", err)
		}
		session, err := resolveSession(ctx, filterSession)
		if err != nil {
			return err
		}

		records, err := client.FilterByAction(ctx, session, billType, pattern)
		if err != nil {
			return err
		}
		renderActions(cmd, records)
		slog.Info("filtered bills", "session", session, "type", billType, "matched", len(records))
		return nil
	},
}
