package domain

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"filegrab.dev/pkg/filegrab/internal/adapter"
	m "filegrab.dev/pkg/filegrab/internal/model"
)

// EventSink receives per-file results as workers complete, in completion
// order, and the final copy count once every task has reported.
// Implementations must tolerate concurrent calls from multiple workers.
type EventSink interface {
	FileCopied(ctx context.Context, event m.Event)
	FileFailed(ctx context.Context, event m.Event)
	RunFinished(ctx context.Context, copied int)
}

// Dispatcher fans candidate files out across a bounded worker pool, running
// match, collision resolution and copy for each file independently.
type Dispatcher interface {
	Run(ctx context.Context, files []m.CandidateFile, keywords []string, destinationRoot m.Path, threads int, sink EventSink) (int, error)
}

type dispatcher struct {
	fs       adapter.TargetFSAdapter
	resolver *CollisionResolver
}

// NewDispatcher constructs a Dispatcher backed by the provided filesystem
// adapter.
func NewDispatcher(fs adapter.TargetFSAdapter) Dispatcher {
	return &dispatcher{
		fs:       fs,
		resolver: NewCollisionResolver(fs),
	}
}

// Run processes every candidate file on the worker pool and returns the
// number of successful copies. Files that match no keyword contribute no
// event. One file's failure never affects the others; the returned error is
// non-nil only when the run was cancelled.
//
// RunFinished fires only after all submitted tasks have reported.
func (d *dispatcher) Run(ctx context.Context, files []m.CandidateFile, keywords []string, destinationRoot m.Path, threads int, sink EventSink) (int, error) {
	threads = normalizeWorkerCount(threads)

	slog.Debug("dispatch starting", "files", len(files), "threads", threads)

	var (
		copied   int
		sinkLock sync.Mutex
	)

	var group errgroup.Group
	group.SetLimit(threads)

	for _, file := range files {
		currentFile := file

		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			event, matched := d.processFile(currentFile, keywords, destinationRoot)
			if !matched {
				return nil
			}

			sinkLock.Lock()
			defer sinkLock.Unlock()

			switch event.Outcome {
			case m.OutcomeCopied:
				copied++

				sink.FileCopied(ctx, event)
			case m.OutcomeFailed:
				sink.FileFailed(ctx, event)
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return copied, fmt.Errorf("dispatch interrupted: %w", err)
	}

	sink.RunFinished(ctx, copied)

	return copied, nil
}

// processFile runs the per-file pipeline: match, resolve, copy. The second
// return value is false when the file matched no keyword.
func (d *dispatcher) processFile(file m.CandidateFile, keywords []string, destinationRoot m.Path) (m.Event, bool) {
	keyword, matched := MatchKeyword(file.Name, keywords)
	if !matched {
		return m.Event{}, false
	}

	target, err := d.resolver.Resolve(destinationRoot, file.Name)
	if err != nil {
		slog.Error("collision resolution failed", "file", file.Path, "error", err)

		return m.Event{
			Outcome: m.OutcomeFailed,
			Name:    file.Name,
			Reason:  fmt.Sprintf("%s: %v", file.Name, err),
		}, true
	}

	if err := d.fs.CopyFile(file.Path, target); err != nil {
		slog.Error("copy failed", "file", file.Path, "target", target, "error", err)

		return m.Event{
			Outcome: m.OutcomeFailed,
			Name:    file.Name,
			Reason:  fmt.Sprintf("%s: %v", file.Name, err),
		}, true
	}

	slog.Debug("copied file", "file", file.Path, "target", target, "keyword", keyword)

	return m.Event{
		Outcome:     m.OutcomeCopied,
		Name:        file.Name,
		Keyword:     keyword,
		Destination: target,
	}, true
}

// normalizeWorkerCount maps a non-positive worker count to one worker per
// logical CPU.
func normalizeWorkerCount(threads int) int {
	if threads <= 0 {
		return runtime.NumCPU()
	}

	return threads
}
