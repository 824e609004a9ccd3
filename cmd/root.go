// Package cmd provides the root command and CLI setup for filegrab.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"filegrab.dev/pkg/filegrab/internal/adapter"
	"filegrab.dev/pkg/filegrab/internal/controller"
	"filegrab.dev/pkg/filegrab/internal/domain"
	m "filegrab.dev/pkg/filegrab/internal/model"
)

var fsAdapter adapter.TargetFSAdapter
var reportStore adapter.ReportStore
var scanner domain.Scanner
var dispatcher domain.Dispatcher
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read and
// write run reports.
var reportsOutputDirFlag string

// noReportFlag disables report and journal persistence when set.
var noReportFlag bool

var verboseFlag bool
var logFileFlag string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewSimpleUI(rootCmd)
	fsAdapter = adapter.NewLocalTargetFSAdapter()
	reportStore = adapter.NewYAMLReportStore()
	scanner = domain.NewScanner(fsAdapter)
	dispatcher = domain.NewDispatcher(fsAdapter)
	workflow = domain.NewWorkflow(
		fsAdapter,
		reportStore,
		ui,
		scanner,
		dispatcher,
	)
}

const rootLongDescription = `Filegrab searches a directory tree for files whose names contain any of a
set of keywords and copies every match, in parallel, into a destination
folder. Name clashes in the destination are resolved with numeric suffixes
(report.txt -> report_1.txt) and the destination itself is never scanned.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filegrab",
		Short: "Keyword filename search and copy tool",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			verbose := verboseFlag || viper.GetBool(logVerboseKey)
			configureLogger(logFileFlag, verbose)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for run reports and the event journal",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVar(&noReportFlag, noReportFlagName, viper.GetBool(noReportFlagName), "do not persist a run report")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(noReportFlagName), noReportFlagName)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, "", "log file path (defaults to "+defaultLogFilename+")")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// collectKeywords merges the repeated --keyword flags with the optional
// keywords file (one keyword per line, blank lines ignored) and requires the
// result to be non-empty.
func collectKeywords(flagKeywords []string, keywordsFile string) ([]string, error) {
	keywords := make([]string, 0, len(flagKeywords))

	for _, keyword := range flagKeywords {
		if trimmed := strings.TrimSpace(keyword); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}

	if keywordsFile != "" {
		data, err := fsAdapter.ReadFile(m.Path(keywordsFile))
		if err != nil {
			return nil, fmt.Errorf("read keywords file %s: %w", keywordsFile, err)
		}

		for _, line := range strings.Split(string(data), "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				keywords = append(keywords, trimmed)
			}
		}
	}

	if len(keywords) == 0 {
		return nil, fmt.Errorf("at least one keyword is required (use --%s or --%s)", keywordFlagName, keywordsFileFlagName)
	}

	return keywords, nil
}

// requireDirectory validates that path names an existing directory before
// any scanning starts.
func requireDirectory(label string, path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%s directory is required", label)
	}

	info, err := fsAdapter.FileInfo(m.Path(path))
	if err != nil {
		return fmt.Errorf("%s directory %s: %w", label, path, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%s path %s is not a directory", label, path)
	}

	return nil
}
