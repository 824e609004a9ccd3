package domain

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"filegrab.dev/pkg/filegrab/internal/adapter"
	"filegrab.dev/pkg/filegrab/internal/controller"
	m "filegrab.dev/pkg/filegrab/internal/model"
)

// EventJournalFileName is the journal written into the reports directory on
// each run; a new run overwrites the previous journal.
const EventJournalFileName = "last-run.events"

const reportsDirPerm = 0o750

// RunArgs contains the arguments for a search-and-copy run.
type RunArgs struct {
	Keywords    []string
	Source      m.Path
	Destination m.Path
	Threads     int
	Reports     m.Path
	SaveReport  bool
}

// EstimateArgs contains the arguments for a dry run.
type EstimateArgs struct {
	Keywords    []string
	Source      m.Path
	Destination m.Path
}

// ViewArgs contains the arguments for viewing a saved run report.
type ViewArgs struct {
	Reports      m.Path
	ReplayEvents bool
}

// Workflow ties the scanner, dispatcher and presentation together for the
// CLI commands.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) error
	Estimate(ctx context.Context, args EstimateArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.TargetFSAdapter
	adapter.ReportStore
	controller.UI
	Scanner
	Dispatcher
}

// NewWorkflow creates a Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.TargetFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	scanner Scanner,
	dispatcher Dispatcher,
) Workflow {
	return &workflow{
		TargetFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		UI:              ui,
		Scanner:         scanner,
		Dispatcher:      dispatcher,
	}
}

// Run scans the source tree, copies every keyword match into the destination
// on the worker pool and, unless disabled, persists a run report plus the
// raw event journal.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	startedAt := time.Now()

	destination, err := w.AbsPath(args.Destination)
	if err != nil {
		return fmt.Errorf("resolve destination %s: %w", args.Destination, err)
	}

	scan, err := w.Scan(ctx, args.Source, destination)
	if err != nil {
		slog.Error("scan failed", "source", args.Source, "error", err)
		return err
	}

	w.DisplayScanInfo(ctx, len(scan.Files), scan.Warnings)
	w.DisplayConcurrencyInfo(ctx, normalizeWorkerCount(args.Threads))

	sink := &recordingSink{inner: w.UI}

	if args.SaveReport {
		if err := w.MkdirAll(args.Reports, reportsDirPerm); err != nil {
			return fmt.Errorf("create reports dir %s: %w", args.Reports, err)
		}

		journal, err := adapter.NewGobEventJournal(w.JoinPath(string(args.Reports), EventJournalFileName))
		if err != nil {
			return err
		}

		defer func() { _ = journal.Close() }()

		sink.journal = journal
	}

	copied, err := w.Dispatcher.Run(ctx, scan.Files, args.Keywords, destination, args.Threads, sink)
	if err != nil {
		return err
	}

	if !args.SaveReport {
		return nil
	}

	source, err := w.AbsPath(args.Source)
	if err != nil {
		return fmt.Errorf("resolve source %s: %w", args.Source, err)
	}

	report := m.RunReport{
		StartedAt:   startedAt,
		FinishedAt:  time.Now(),
		Source:      source,
		Destination: destination,
		Keywords:    args.Keywords,
		Scanned:     len(scan.Files),
		Copied:      sink.copiedRecords(),
		Failed:      sink.failedRecords(),
		TotalCopied: copied,
	}

	path, err := w.SaveReport(args.Reports, report)
	if err != nil {
		slog.Error("saving run report failed", "reports", args.Reports, "error", err)
		return err
	}

	slog.Info("run report saved", "path", path, "copied", copied)

	return nil
}

// Estimate scans and matches without copying anything, then renders the
// per-keyword match counts.
func (w *workflow) Estimate(ctx context.Context, args EstimateArgs) error {
	destination, err := w.AbsPath(args.Destination)
	if err != nil {
		return fmt.Errorf("resolve destination %s: %w", args.Destination, err)
	}

	scan, err := w.Scan(ctx, args.Source, destination)
	if err != nil {
		return err
	}

	w.DisplayScanInfo(ctx, len(scan.Files), scan.Warnings)

	matches := make(map[string]int, len(args.Keywords))
	for _, keyword := range args.Keywords {
		matches[keyword] = 0
	}

	for _, file := range scan.Files {
		if keyword, ok := MatchKeyword(file.Name, args.Keywords); ok {
			matches[keyword]++
		}
	}

	return w.DisplayEstimation(ctx, len(scan.Files), matches)
}

// View renders the most recent saved run report and optionally replays the
// journaled event stream.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	report, err := w.LoadLatestReport(args.Reports)
	if err != nil {
		return err
	}

	if err := w.DisplayReport(ctx, report); err != nil {
		return err
	}

	if !args.ReplayEvents {
		return nil
	}

	journalPath := w.JoinPath(string(args.Reports), EventJournalFileName)

	return adapter.ReplayEventJournal(journalPath, func(index uint64, event m.Event) error {
		w.DisplayReplayedEvent(ctx, index, event)
		return nil
	})
}

// recordingSink forwards events to the UI while collecting the records that
// feed the run report and, when enabled, the on-disk event journal.
type recordingSink struct {
	inner   EventSink
	journal adapter.EventJournal

	mu     sync.Mutex
	copied []m.CopyRecord
	failed []m.FailureRecord
}

func (s *recordingSink) FileCopied(ctx context.Context, event m.Event) {
	s.record(event)
	s.inner.FileCopied(ctx, event)
}

func (s *recordingSink) FileFailed(ctx context.Context, event m.Event) {
	s.record(event)
	s.inner.FileFailed(ctx, event)
}

func (s *recordingSink) RunFinished(ctx context.Context, copied int) {
	s.inner.RunFinished(ctx, copied)
}

func (s *recordingSink) record(event m.Event) {
	s.mu.Lock()

	switch event.Outcome {
	case m.OutcomeCopied:
		s.copied = append(s.copied, m.CopyRecord{
			Name:        event.Name,
			Keyword:     event.Keyword,
			Destination: event.Destination,
		})
	case m.OutcomeFailed:
		s.failed = append(s.failed, m.FailureRecord{
			Name:   event.Name,
			Reason: event.Reason,
		})
	}

	s.mu.Unlock()

	if s.journal == nil {
		return
	}

	if err := s.journal.Append(event); err != nil {
		slog.Error("journaling event failed", "file", event.Name, "error", err)
	}
}

func (s *recordingSink) copiedRecords() []m.CopyRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.copied
}

func (s *recordingSink) failedRecords() []m.FailureRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.failed
}
