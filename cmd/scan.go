package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"filegrab.dev/pkg/filegrab/internal/domain"
	m "filegrab.dev/pkg/filegrab/internal/model"
)

var scanSrcFlag string
var scanDstFlag string
var scanKeywordsFlag []string
var scanKeywordsFileFlag string

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Dry run: show what a run would copy",
		Long: `Scan the source tree and report how many files each keyword would match,
without copying anything. The destination is excluded from the scan exactly
as it would be during a real run.`,
		Args: cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			keywords, err := collectKeywords(scanKeywordsFlag, scanKeywordsFileFlag)
			if err != nil {
				return err
			}

			if err := requireDirectory("source", scanSrcFlag); err != nil {
				return err
			}

			if err := requireDirectory("destination", scanDstFlag); err != nil {
				return err
			}

			return workflow.Estimate(context.Background(), domain.EstimateArgs{
				Keywords:    keywords,
				Source:      m.Path(scanSrcFlag),
				Destination: m.Path(scanDstFlag),
			})
		},
	}

	cmd.Flags().StringVar(&scanSrcFlag, srcFlagName, "", "source directory to search")
	cmd.Flags().StringVar(&scanDstFlag, dstFlagName, "", "destination directory a run would copy into")
	cmd.Flags().StringArrayVarP(&scanKeywordsFlag, keywordFlagName, "k", nil, "keyword to search for in filenames (can be repeated)")
	cmd.Flags().StringVarP(&scanKeywordsFileFlag, keywordsFileFlagName, "f", "", "file with one keyword per line")

	_ = cmd.MarkFlagRequired(srcFlagName)
	_ = cmd.MarkFlagRequired(dstFlagName)

	return cmd
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
