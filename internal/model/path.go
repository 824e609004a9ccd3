// Package model defines the data structures for filename search and copy runs.
package model

// Path represents a file system path.
type Path string

// CandidateFile is one file discovered under the source root and eligible for
// keyword matching. The path is absolute and resolved; Name caches the base
// name so workers do not re-derive it.
type CandidateFile struct {
	Path Path
	Name string
}

// ScanWarning records a directory that could not be listed during the scan.
// Warnings never abort the traversal.
type ScanWarning struct {
	Path   Path
	Reason string
}
