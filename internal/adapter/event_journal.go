package adapter

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	m "filegrab.dev/pkg/filegrab/internal/model"
)

// EventJournal is an append-only on-disk log of per-file run events. The full
// event stream of a large run can be far bigger than the summary report, so
// it is spilled to disk as it happens instead of being held in memory.
type EventJournal interface {
	Append(event m.Event) error
	Len() uint64
	Close() error
}

type gobEventJournal struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
}

// NewGobEventJournal creates (or truncates) the journal file at path and
// returns a journal ready for appending. Safe for concurrent Append calls.
func NewGobEventJournal(path m.Path) (EventJournal, error) {
	// #nosec G304 - path lives under the configured reports directory
	file, err := os.Create(string(path))
	if err != nil {
		slog.Error("failed to create event journal", "path", path, "error", err)
		return nil, fmt.Errorf("create event journal: %w", err)
	}

	slog.Debug("created event journal", "path", path)

	return &gobEventJournal{
		path:    string(path),
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

// Append encodes one event at the end of the journal.
func (j *gobEventJournal) Append(event m.Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.encoder.Encode(event); err != nil {
		slog.Error("failed to encode event", "path", j.path, "index", j.length, "error", err)
		return fmt.Errorf("encode event: %w", err)
	}

	j.length++

	return nil
}

// Len returns the number of events appended so far.
func (j *gobEventJournal) Len() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.length
}

// Close flushes and closes the underlying file.
func (j *gobEventJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file == nil {
		return nil
	}

	if err := j.file.Close(); err != nil {
		slog.Error("failed to close event journal", "path", j.path, "error", err)
		return err
	}

	slog.Debug("closed event journal", "path", j.path, "length", j.length)
	j.file = nil

	return nil
}

// ReplayEventJournal decodes the journal at path and invokes fn for each
// event in append order. Decoding stops at the first callback error.
func ReplayEventJournal(path m.Path, fn func(index uint64, event m.Event) error) error {
	// #nosec G304 - path lives under the configured reports directory
	file, err := os.Open(string(path))
	if err != nil {
		return fmt.Errorf("open event journal: %w", err)
	}

	defer func() { _ = file.Close() }()

	decoder := gob.NewDecoder(file)

	var event m.Event

	for index := uint64(0); ; index++ {
		if err := decoder.Decode(&event); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("decode event at index %d: %w", index, err)
		}

		if err := fn(index, event); err != nil {
			return err
		}
	}
}
