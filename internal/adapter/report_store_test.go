package adapter

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "filegrab.dev/pkg/filegrab/internal/model"
)

func sampleReport(finished time.Time, copied int) m.RunReport {
	return m.RunReport{
		StartedAt:   finished.Add(-time.Minute),
		FinishedAt:  finished,
		Source:      "/data",
		Destination: "/data/out",
		Keywords:    []string{"invoice"},
		Scanned:     3,
		Copied: []m.CopyRecord{
			{Name: "invoice_jan.txt", Keyword: "invoice", Destination: "/data/out/invoice_jan.txt"},
		},
		TotalCopied: copied,
	}
}

func TestYAMLReportStore_SaveAndLoad(t *testing.T) {
	store := NewYAMLReportStore()
	dir := filepath.Join(t.TempDir(), "reports")

	finished := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	path, err := store.SaveReport(m.Path(dir), sampleReport(finished, 1))

	require.NoError(t, err)
	assert.FileExists(t, string(path))

	report, err := store.LoadLatestReport(m.Path(dir))
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalCopied)
	assert.Equal(t, m.Path("/data/out"), report.Destination)
	require.Len(t, report.Copied, 1)
	assert.Equal(t, "invoice", report.Copied[0].Keyword)
}

func TestYAMLReportStore_LoadLatestPicksNewest(t *testing.T) {
	store := NewYAMLReportStore()
	dir := t.TempDir()

	older := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)

	_, err := store.SaveReport(m.Path(dir), sampleReport(older, 1))
	require.NoError(t, err)
	_, err = store.SaveReport(m.Path(dir), sampleReport(newer, 7))
	require.NoError(t, err)

	report, err := store.LoadLatestReport(m.Path(dir))
	require.NoError(t, err)
	assert.Equal(t, 7, report.TotalCopied)
}

func TestYAMLReportStore_LoadLatestEmptyDir(t *testing.T) {
	store := NewYAMLReportStore()

	_, err := store.LoadLatestReport(m.Path(t.TempDir()))

	assert.Error(t, err)
}
