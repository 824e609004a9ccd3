package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"filegrab.dev/pkg/filegrab/internal/adapter"
	m "filegrab.dev/pkg/filegrab/internal/model"
)

// ScanResult holds the fully materialized candidate list plus any
// directories the scan had to skip.
type ScanResult struct {
	Files    []m.CandidateFile
	Warnings []m.ScanWarning
}

// Scanner enumerates candidate files under a source root while pruning the
// destination subtree from the traversal.
type Scanner interface {
	Scan(ctx context.Context, sourceRoot, destinationRoot m.Path) (ScanResult, error)
}

type scanner struct {
	fs adapter.TargetFSAdapter
}

// NewScanner constructs a Scanner backed by the provided filesystem adapter.
func NewScanner(fs adapter.TargetFSAdapter) Scanner {
	return &scanner{fs: fs}
}

// Scan walks sourceRoot recursively and returns every regular file found,
// except anything at or below destinationRoot. Unreadable subtrees are
// recorded as warnings and skipped; an unreadable sourceRoot is the only
// fatal condition.
func (s *scanner) Scan(ctx context.Context, sourceRoot, destinationRoot m.Path) (ScanResult, error) {
	src, err := s.fs.AbsPath(sourceRoot)
	if err != nil {
		return ScanResult{}, fmt.Errorf("resolve source root %s: %w", sourceRoot, err)
	}

	dst, err := s.fs.AbsPath(destinationRoot)
	if err != nil {
		return ScanResult{}, fmt.Errorf("resolve destination root %s: %w", destinationRoot, err)
	}

	info, err := s.fs.FileInfo(src)
	if err != nil {
		return ScanResult{}, fmt.Errorf("source root %s: %w", src, err)
	}

	if !info.IsDir() {
		return ScanResult{}, fmt.Errorf("source root %s is not a directory", src)
	}

	var result ScanResult

	walkErr := s.fs.Walk(src, true, func(path string, info os.FileInfo, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if err != nil {
			result.Warnings = append(result.Warnings, m.ScanWarning{
				Path:   m.Path(path),
				Reason: err.Error(),
			})

			slog.Warn("skipping unreadable path", "path", path, "error", err)

			return nil
		}

		if info.IsDir() {
			if isWithin(path, string(dst)) {
				slog.Debug("pruning destination subtree", "path", path)
				return filepath.SkipDir
			}

			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		result.Files = append(result.Files, m.CandidateFile{
			Path: m.Path(path),
			Name: filepath.Base(path),
		})

		return nil
	})

	if walkErr != nil {
		return ScanResult{}, fmt.Errorf("scan %s: %w", src, walkErr)
	}

	slog.Debug("scan complete", "source", src, "files", len(result.Files), "warnings", len(result.Warnings))

	return result, nil
}

// isWithin reports whether path equals root or sits anywhere below it. Both
// arguments must already be absolute and cleaned.
func isWithin(path, root string) bool {
	if path == root {
		return true
	}

	return strings.HasPrefix(path, root+string(filepath.Separator))
}
