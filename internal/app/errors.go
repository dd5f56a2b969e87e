package service

import "errors"

// Sentinel errors surfaced to the operator.
var (
	// ErrNoCandidatesFound means the history scan found no report links.
	ErrNoCandidatesFound = errors.New("no reports found in browser history")
	// ErrUnknownReport means a report reference matched no listing.
	ErrUnknownReport = errors.New("unknown report")
)
