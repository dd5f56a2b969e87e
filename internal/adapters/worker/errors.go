package worker

import "errors"

// Sentinel errors for pool tasks.
var (
	ErrTaskPanicked = errors.New("task panicked")
)
