package model

// Outcome represents the terminal result of processing one candidate file.
type Outcome string

const (
	// OutcomeCopied indicates the file matched a keyword and was copied.
	OutcomeCopied Outcome = "copied"
	// OutcomeFailed indicates the file matched a keyword but could not be copied.
	OutcomeFailed Outcome = "failed"
)

// Event is a single per-file result streamed to the caller as workers
// complete. Files that match no keyword produce no event.
type Event struct {
	Outcome     Outcome
	Name        string // base name of the source file
	Keyword     string // matched keyword (copied only)
	Destination Path   // resolved destination path (copied only)
	Reason      string // failure description (failed only)
}
