package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"filegrab.dev/pkg/filegrab/internal/domain"
	m "filegrab.dev/pkg/filegrab/internal/model"
)

var reportEventsFlag bool

// reportCmd represents the report command.
var reportCmd = newReportCmd()

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "View the most recent run report",
		Long:  "View the most recent run report from the reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			reportsPath := m.Path(viper.GetString(outputFlagName))

			return workflow.View(context.Background(), domain.ViewArgs{
				Reports:      reportsPath,
				ReplayEvents: reportEventsFlag,
			})
		},
	}

	cmd.Flags().BoolVar(&reportEventsFlag, "events", false, "replay the per-file event journal of the last run")

	return cmd
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
