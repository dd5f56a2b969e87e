package credentials

import "errors"

// Sentinel errors for credential lookup.
var (
	// ErrAuthenticationMissing means no usable bearer token was found.
	ErrAuthenticationMissing = errors.New("authentication missing")
)
