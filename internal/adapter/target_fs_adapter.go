// Package adapter contains filesystem and persistence adapters for the
// filegrab CLI.
package adapter

import (
	"io"
	"os"
	"path/filepath"

	m "filegrab.dev/pkg/filegrab/internal/model"
)

// TargetFSAdapter abstracts filesystem-specific operations that the domain
// layer relies on when scanning source trees and writing copies. It
// intentionally hides direct `os` access so the workflow logic can be tested
// without touching the disk.
type TargetFSAdapter interface {
	// Walk traverses the provided root path. When recursive is false the
	// implementation should limit itself to the root directory (no sub-dirs).
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// AbsPath resolves path to an absolute, cleaned form.
	AbsPath(path m.Path) (m.Path, error)

	// FileInfo returns metadata for a path so the domain can check existence
	// or distinguish between files and directories when necessary.
	FileInfo(path m.Path) (os.FileInfo, error)

	// Exists reports whether a file or directory exists at path.
	Exists(path m.Path) (bool, error)

	// CopyFile copies a single file's contents to dst and preserves its mode
	// and modification time.
	CopyFile(src, dst m.Path) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path m.Path, perm os.FileMode) error

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalTargetFSAdapter is the concrete implementation backing TargetFSAdapter
// with direct os and path/filepath calls.
type LocalTargetFSAdapter struct{}

// NewLocalTargetFSAdapter constructs a LocalTargetFSAdapter instance ready to
// be wired into the workflow.
func NewLocalTargetFSAdapter() *LocalTargetFSAdapter {
	return &LocalTargetFSAdapter{}
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalTargetFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// AbsPath resolves path to an absolute, cleaned form.
func (a *LocalTargetFSAdapter) AbsPath(path m.Path) (m.Path, error) {
	abs, err := filepath.Abs(string(path))
	if err != nil {
		return "", err
	}

	return m.Path(abs), nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalTargetFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// Exists reports whether anything exists at path.
func (a *LocalTargetFSAdapter) Exists(path m.Path) (bool, error) {
	_, err := os.Stat(string(path))
	if err == nil {
		return true, nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, err
}

// CopyFile copies src to dst, carrying over the source's permission bits and
// modification time so the copy keeps the original's metadata.
func (a *LocalTargetFSAdapter) CopyFile(src, dst m.Path) error {
	info, err := os.Stat(string(src))
	if err != nil {
		return err
	}

	// #nosec G304 - src comes from the directory scan, not raw user input
	sourceFile, err := os.Open(string(src))
	if err != nil {
		return err
	}

	defer func() { _ = sourceFile.Close() }()

	// #nosec G304 - dst is produced by the collision resolver
	destFile, err := os.Create(string(dst))
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		_ = destFile.Close()
		return err
	}

	if err := destFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(string(dst), info.Mode()); err != nil {
		return err
	}

	return os.Chtimes(string(dst), info.ModTime(), info.ModTime())
}

// ReadFile loads file contents from disk.
func (a *LocalTargetFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// MkdirAll creates a directory and any missing parents.
func (a *LocalTargetFSAdapter) MkdirAll(path m.Path, perm os.FileMode) error {
	return os.MkdirAll(string(path), perm)
}

// JoinPath joins path elements into a single path.
func (a *LocalTargetFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
