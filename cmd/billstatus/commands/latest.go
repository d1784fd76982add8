package commands

import (
	"govinfo-billstatus/internal/scrapers/govinfo"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(latestCmd)
}

var latestCmd = &cobra.Command{
	Use:   "latest <bill id>...",
	Short: "Show the latest action of one or more bills.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := client.LatestActions(cmd.Context(), args)
		if err != nil {
			return err
		}
		renderActions(cmd, records)
		return nil
	},
}

func renderActions(cmd *cobra.Command, records []govinfo.ActionRecord) {
	t := newTable(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"bill", "date", "latest action"})
	for _, r := range records {
		t.AppendRow(table.Row{r.Id, r.Date, r.Text})
	}
	t.Render()
}
