package model

import "time"

// CopyRecord is one successful copy as persisted in a run report.
type CopyRecord struct {
	Name        string `yaml:"name"`
	Keyword     string `yaml:"keyword"`
	Destination Path   `yaml:"destination"`
}

// FailureRecord is one failed copy as persisted in a run report.
type FailureRecord struct {
	Name   string `yaml:"name"`
	Reason string `yaml:"reason"`
}

// RunReport is the persisted summary of a completed search-and-copy run.
type RunReport struct {
	StartedAt   time.Time       `yaml:"started_at"`
	FinishedAt  time.Time       `yaml:"finished_at"`
	Source      Path            `yaml:"source"`
	Destination Path            `yaml:"destination"`
	Keywords    []string        `yaml:"keywords"`
	Scanned     int             `yaml:"scanned"`
	Copied      []CopyRecord    `yaml:"copied"`
	Failed      []FailureRecord `yaml:"failed,omitempty"`
	TotalCopied int             `yaml:"total_copied"`
}
