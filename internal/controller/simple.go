package controller

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "filegrab.dev/pkg/filegrab/internal/model"
)

// SimpleUI implements UI using the cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// FileCopied prints one successful copy as it completes.
func (s *SimpleUI) FileCopied(ctx context.Context, event m.Event) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("copied: %s (hit: %s) -> %s\n", event.Name, event.Keyword, event.Destination)
}

// FileFailed prints one failed copy as it completes.
func (s *SimpleUI) FileFailed(ctx context.Context, event m.Event) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("failed: %s\n", event.Reason)
}

// RunFinished prints the final summary once every worker has reported.
func (s *SimpleUI) RunFinished(ctx context.Context, copied int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("--- done: copied %d file(s) ---\n", copied)
}

// DisplayScanInfo shows the candidate count and any skipped directories.
func (s *SimpleUI) DisplayScanInfo(ctx context.Context, files int, warnings []m.ScanWarning) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Found %d candidate file(s)\n", files)

	for _, warning := range warnings {
		s.printf("skipped %s: %s\n", warning.Path, warning.Reason)
	}
}

// DisplayConcurrencyInfo shows the worker pool size for this run.
func (s *SimpleUI) DisplayConcurrencyInfo(ctx context.Context, threads int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Copying with %d worker(s)\n", threads)
}

// DisplayEstimation renders a per-keyword match-count table for a dry run.
func (s *SimpleUI) DisplayEstimation(ctx context.Context, scanned int, matches map[string]int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	keywords := make([]string, 0, len(matches))
	for keyword := range matches {
		keywords = append(keywords, keyword)
	}

	sort.Strings(keywords)

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Keyword", "Matches"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	total := 0

	for _, keyword := range keywords {
		table.Append([]string{keyword, fmt.Sprintf("%d", matches[keyword])})

		total += matches[keyword]
	}

	table.SetFooter([]string{
		fmt.Sprintf("Scanned %d", scanned),
		fmt.Sprintf("%d", total),
	})

	table.Render()

	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayReport renders a previously saved run report.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("Run of %s\n", report.StartedAt.Format("2006-01-02 15:04:05"))
	s.printf("Source: %s\nDestination: %s\n", report.Source, report.Destination)

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"File", "Keyword", "Destination"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, record := range report.Copied {
		table.Append([]string{record.Name, record.Keyword, string(record.Destination)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Scanned %d", report.Scanned),
		"Copied",
		fmt.Sprintf("%d", report.TotalCopied),
	})

	table.Render()

	s.printf("\n%s", tableBuffer.String())

	for _, failure := range report.Failed {
		s.printf("failed: %s\n", failure.Reason)
	}

	return nil
}

// DisplayReplayedEvent prints one journaled event during replay.
func (s *SimpleUI) DisplayReplayedEvent(ctx context.Context, index uint64, event m.Event) {
	if err := ctx.Err(); err != nil {
		return
	}

	switch event.Outcome {
	case m.OutcomeCopied:
		s.printf("%4d copied: %s (hit: %s) -> %s\n", index, event.Name, event.Keyword, event.Destination)
	case m.OutcomeFailed:
		s.printf("%4d failed: %s\n", index, event.Reason)
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
