package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status <bill id>",
	Short: "Show the headline information of a bill's status document.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := client.Summary(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		t := newTable(cmd.OutOrStdout())
		t.AppendRows([]table.Row{
			{"bill", summary.Id},
			{"session", summary.Bill.Session},
			{"type", summary.Bill.Type},
			{"number", summary.Bill.Number},
			{"title", summary.Title},
			{"introduced", summary.IntroducedDate},
			{"chamber", summary.OriginChamber},
			{"latest action date", summary.LatestAction.Date},
			{"latest action", summary.LatestAction.Text},
		})
		t.Render()
		return nil
	},
}
