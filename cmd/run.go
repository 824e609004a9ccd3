package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"filegrab.dev/pkg/filegrab/internal/domain"
	m "filegrab.dev/pkg/filegrab/internal/model"
)

var runSrcFlag string
var runDstFlag string
var runKeywordsFlag []string
var runKeywordsFileFlag string
var runParallelFlag int

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Search filenames by keyword and copy matches",
		Long: `Scan the source tree for files whose names contain any of the given
keywords and copy each match into the destination folder. The destination is
excluded from the scan, and existing files are never overwritten.`,
		Args: cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			keywords, err := collectKeywords(runKeywordsFlag, runKeywordsFileFlag)
			if err != nil {
				return err
			}

			if err := requireDirectory("source", runSrcFlag); err != nil {
				return err
			}

			if err := requireDirectory("destination", runDstFlag); err != nil {
				return err
			}

			return workflow.Run(context.Background(), domain.RunArgs{
				Keywords:    keywords,
				Source:      m.Path(runSrcFlag),
				Destination: m.Path(runDstFlag),
				Threads:     viper.GetInt(runParallelConfigKey),
				Reports:     m.Path(viper.GetString(outputFlagName)),
				SaveReport:  !viper.GetBool(noReportFlagName),
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&runSrcFlag, srcFlagName, "", "source directory to search")
	cmd.Flags().StringVar(&runDstFlag, dstFlagName, "", "destination directory for copies")
	cmd.Flags().StringArrayVarP(&runKeywordsFlag, keywordFlagName, "k", nil, "keyword to search for in filenames (can be repeated)")
	cmd.Flags().StringVarP(&runKeywordsFileFlag, keywordsFileFlagName, "f", "", "file with one keyword per line")

	cmd.Flags().IntVarP(&runParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of parallel copy workers (0 = one per CPU)")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)

	_ = cmd.MarkFlagRequired(srcFlagName)
	_ = cmd.MarkFlagRequired(dstFlagName)
}
