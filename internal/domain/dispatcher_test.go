package domain_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filegrab.dev/pkg/filegrab/internal/adapter"
	"filegrab.dev/pkg/filegrab/internal/domain"
	m "filegrab.dev/pkg/filegrab/internal/model"
)

// collectorSink records every event the dispatcher emits.
type collectorSink struct {
	mu       sync.Mutex
	copied   []m.Event
	failed   []m.Event
	finished []int
}

func (s *collectorSink) FileCopied(_ context.Context, event m.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.copied = append(s.copied, event)
}

func (s *collectorSink) FileFailed(_ context.Context, event m.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failed = append(s.failed, event)
}

func (s *collectorSink) RunFinished(_ context.Context, copied int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.finished = append(s.finished, copied)
}

func scanFiles(t *testing.T, src, dst string) []m.CandidateFile {
	t.Helper()

	result, err := newTestScanner().Scan(context.Background(), m.Path(src), m.Path(dst))
	require.NoError(t, err)

	return result.Files
}

func TestDispatcher_EndToEndScenario(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFixtureFile(t, filepath.Join(src, "invoice_jan.txt"))
	writeFixtureFile(t, filepath.Join(src, "report.txt"))
	writeFixtureFile(t, filepath.Join(src, "data_2023.csv"))

	dispatcher := domain.NewDispatcher(adapter.NewLocalTargetFSAdapter())
	sink := &collectorSink{}

	copied, err := dispatcher.Run(context.Background(), scanFiles(t, src, dst), []string{"invoice", "2023"}, m.Path(dst), 4, sink)

	require.NoError(t, err)
	assert.Equal(t, 2, copied)
	assert.Equal(t, []int{2}, sink.finished)
	assert.Len(t, sink.copied, 2)
	assert.Empty(t, sink.failed)

	assert.FileExists(t, filepath.Join(dst, "invoice_jan.txt"))
	assert.FileExists(t, filepath.Join(dst, "data_2023.csv"))
	assert.NoFileExists(t, filepath.Join(dst, "report.txt"))
}

func TestDispatcher_CollisionScenario(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFixtureFile(t, filepath.Join(src, "invoice_jan.txt"))
	writeFixtureFile(t, filepath.Join(src, "report.txt"))
	writeFixtureFile(t, filepath.Join(src, "data_2023.csv"))
	writeFixtureFile(t, filepath.Join(dst, "invoice_jan.txt"))

	dispatcher := domain.NewDispatcher(adapter.NewLocalTargetFSAdapter())
	sink := &collectorSink{}

	copied, err := dispatcher.Run(context.Background(), scanFiles(t, src, dst), []string{"invoice", "2023"}, m.Path(dst), 4, sink)

	require.NoError(t, err)
	assert.Equal(t, 2, copied)
	assert.FileExists(t, filepath.Join(dst, "invoice_jan.txt"))
	assert.FileExists(t, filepath.Join(dst, "invoice_jan_1.txt"))
	assert.FileExists(t, filepath.Join(dst, "data_2023.csv"))
}

func TestDispatcher_DistinctNamesAllArrive(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	const fileCount = 40

	for i := 0; i < fileCount; i++ {
		writeFixtureFile(t, filepath.Join(src, "match_"+string(rune('a'+i%26))+string(rune('a'+i/26))+".txt"))
	}

	dispatcher := domain.NewDispatcher(adapter.NewLocalTargetFSAdapter())
	sink := &collectorSink{}

	copied, err := dispatcher.Run(context.Background(), scanFiles(t, src, dst), []string{"match"}, m.Path(dst), 8, sink)

	require.NoError(t, err)
	assert.Equal(t, fileCount, copied)

	entries, err := os.ReadDir(dst)
	require.NoError(t, err)
	assert.Len(t, entries, fileCount)
}

func TestDispatcher_NoMatchEmitsNothing(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFixtureFile(t, filepath.Join(src, "report.txt"))

	dispatcher := domain.NewDispatcher(adapter.NewLocalTargetFSAdapter())
	sink := &collectorSink{}

	copied, err := dispatcher.Run(context.Background(), scanFiles(t, src, dst), []string{"invoice"}, m.Path(dst), 2, sink)

	require.NoError(t, err)
	assert.Zero(t, copied)
	assert.Empty(t, sink.copied)
	assert.Empty(t, sink.failed)
	assert.Equal(t, []int{0}, sink.finished)
}

func TestDispatcher_FailureIsolation(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFixtureFile(t, filepath.Join(src, "invoice_jan.txt"))
	vanished := filepath.Join(src, "invoice_gone.txt")
	writeFixtureFile(t, vanished)

	files := scanFiles(t, src, dst)

	// Remove one source after the scan so its copy fails mid-run.
	require.NoError(t, os.Remove(vanished))

	dispatcher := domain.NewDispatcher(adapter.NewLocalTargetFSAdapter())
	sink := &collectorSink{}

	copied, err := dispatcher.Run(context.Background(), files, []string{"invoice"}, m.Path(dst), 2, sink)

	require.NoError(t, err)
	assert.Equal(t, 1, copied)
	require.Len(t, sink.failed, 1)
	assert.Equal(t, "invoice_gone.txt", sink.failed[0].Name)
	assert.Contains(t, sink.failed[0].Reason, "invoice_gone.txt")
	assert.FileExists(t, filepath.Join(dst, "invoice_jan.txt"))
}

func TestDispatcher_CopiedEventCarriesDetails(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFixtureFile(t, filepath.Join(src, "data_2023.csv"))

	dispatcher := domain.NewDispatcher(adapter.NewLocalTargetFSAdapter())
	sink := &collectorSink{}

	_, err := dispatcher.Run(context.Background(), scanFiles(t, src, dst), []string{"2023"}, m.Path(dst), 1, sink)

	require.NoError(t, err)
	require.Len(t, sink.copied, 1)

	event := sink.copied[0]
	assert.Equal(t, m.OutcomeCopied, event.Outcome)
	assert.Equal(t, "data_2023.csv", event.Name)
	assert.Equal(t, "2023", event.Keyword)
	assert.Equal(t, m.Path(filepath.Join(dst, "data_2023.csv")), event.Destination)
}

func TestDispatcher_RerunSuffixesInsteadOfOverwriting(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFixtureFile(t, filepath.Join(src, "invoice_jan.txt"))

	dispatcher := domain.NewDispatcher(adapter.NewLocalTargetFSAdapter())

	for run := 0; run < 2; run++ {
		sink := &collectorSink{}

		copied, err := dispatcher.Run(context.Background(), scanFiles(t, src, dst), []string{"invoice"}, m.Path(dst), 2, sink)
		require.NoError(t, err)
		assert.Equal(t, 1, copied)
	}

	assert.FileExists(t, filepath.Join(dst, "invoice_jan.txt"))
	assert.FileExists(t, filepath.Join(dst, "invoice_jan_1.txt"))
}

func TestDispatcher_CancelledContext(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFixtureFile(t, filepath.Join(src, "invoice_jan.txt"))

	files := scanFiles(t, src, dst)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dispatcher := domain.NewDispatcher(adapter.NewLocalTargetFSAdapter())
	sink := &collectorSink{}

	_, err := dispatcher.Run(ctx, files, []string{"invoice"}, m.Path(dst), 2, sink)

	assert.Error(t, err)
	assert.Empty(t, sink.finished)
}
