package controller

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "filegrab.dev/pkg/filegrab/internal/model"
)

func newBufferedUI() (*SimpleUI, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(out)

	return NewSimpleUI(cmd), out
}

func TestSimpleUI_FileCopied(t *testing.T) {
	ui, out := newBufferedUI()

	ui.FileCopied(context.Background(), m.Event{
		Outcome:     m.OutcomeCopied,
		Name:        "invoice_jan.txt",
		Keyword:     "invoice",
		Destination: "/out/invoice_jan.txt",
	})

	assert.Equal(t, "copied: invoice_jan.txt (hit: invoice) -> /out/invoice_jan.txt\n", out.String())
}

func TestSimpleUI_FileFailed(t *testing.T) {
	ui, out := newBufferedUI()

	ui.FileFailed(context.Background(), m.Event{
		Outcome: m.OutcomeFailed,
		Name:    "data.csv",
		Reason:  "data.csv: permission denied",
	})

	assert.Equal(t, "failed: data.csv: permission denied\n", out.String())
}

func TestSimpleUI_RunFinished(t *testing.T) {
	ui, out := newBufferedUI()

	ui.RunFinished(context.Background(), 4)

	assert.Equal(t, "--- done: copied 4 file(s) ---\n", out.String())
}

func TestSimpleUI_DisplayScanInfo(t *testing.T) {
	ui, out := newBufferedUI()

	ui.DisplayScanInfo(context.Background(), 12, []m.ScanWarning{
		{Path: "/data/locked", Reason: "permission denied"},
	})

	assert.Contains(t, out.String(), "Found 12 candidate file(s)")
	assert.Contains(t, out.String(), "skipped /data/locked: permission denied")
}

func TestSimpleUI_DisplayEstimation(t *testing.T) {
	ui, out := newBufferedUI()

	err := ui.DisplayEstimation(context.Background(), 10, map[string]int{
		"invoice": 3,
		"2023":    1,
	})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "invoice")
	assert.Contains(t, out.String(), "3")
	assert.Contains(t, out.String(), "2023")
	assert.Contains(t, out.String(), "Scanned 10")
}

func TestSimpleUI_DisplayReport(t *testing.T) {
	ui, out := newBufferedUI()

	err := ui.DisplayReport(context.Background(), m.RunReport{
		StartedAt:   time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
		Source:      "/data",
		Destination: "/data/out",
		Scanned:     5,
		Copied: []m.CopyRecord{
			{Name: "invoice_jan.txt", Keyword: "invoice", Destination: "/data/out/invoice_jan.txt"},
		},
		Failed: []m.FailureRecord{
			{Name: "bad.txt", Reason: "bad.txt: disk full"},
		},
		TotalCopied: 1,
	})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Source: /data")
	assert.Contains(t, out.String(), "invoice_jan.txt")
	assert.Contains(t, out.String(), "failed: bad.txt: disk full")
}

func TestSimpleUI_CancelledContextIsSilent(t *testing.T) {
	ui, out := newBufferedUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ui.FileCopied(ctx, m.Event{Name: "invoice.txt"})
	ui.RunFinished(ctx, 1)

	assert.Empty(t, out.String())
}
