package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rjoshi/studyops/internal/ui/theme"
	"github.com/rjoshi/studyops/internal/wakatime"
)

var statsCmd = &cobra.Command{
	Use:   "stats [date]",
	Short: "Show coding-time telemetry (today, or a YYYY-MM-DD date)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.ValidateStats(); err != nil {
			return err
		}

		client := wakatime.NewClient(cfg.WakaTimeAPIKey)

		var stats *wakatime.DayStats
		if len(args) == 1 {
			stats, err = client.GetDateStats(cmd.Context(), args[0])
		} else {
			stats, err = client.GetTodayStats(cmd.Context())
		}
		if err != nil {
			return err
		}

		out := theme.NewPrinter(os.Stdout)
		out.Header("Coding time for %s", stats.Range.Date)
		out.Success("%s total", stats.GrandTotal.Text)
		for _, l := range stats.Languages {
			out.Info("  %-16s %s (%.1f%%)", l.Name, l.Text, l.Percent)
		}
		return nil
	},
}
