package history

import "errors"

// Sentinel errors for history discovery.
var (
	// ErrStoreUnavailable means the browser store is missing or unreadable.
	ErrStoreUnavailable = errors.New("history store unavailable")
)
