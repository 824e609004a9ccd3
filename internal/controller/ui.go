// Package controller provides output adapters for displaying search-and-copy
// run progress and results.
package controller

import (
	"context"

	m "filegrab.dev/pkg/filegrab/internal/model"
)

// UI defines the interface for rendering run progress and results.
// Implementations can use different output methods (plain text, log file,
// etc). The event methods double as the dispatcher's sink, so they may be
// called concurrently from worker goroutines.
type UI interface {
	FileCopied(ctx context.Context, event m.Event)
	FileFailed(ctx context.Context, event m.Event)
	RunFinished(ctx context.Context, copied int)

	DisplayScanInfo(ctx context.Context, files int, warnings []m.ScanWarning)
	DisplayConcurrencyInfo(ctx context.Context, threads int)
	DisplayEstimation(ctx context.Context, scanned int, matches map[string]int) error
	DisplayReport(ctx context.Context, report m.RunReport) error
	DisplayReplayedEvent(ctx context.Context, index uint64, event m.Event)
}
