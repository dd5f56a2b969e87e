package trackman

import (
	"errors"
	"fmt"
)

// Sentinel errors for vendor API calls.
var (
	// ErrRetrievalFailed is matched by every failed vendor request.
	ErrRetrievalFailed = errors.New("report retrieval failed")
)

// RetrievalError carries the status and body of a non-success response.
type RetrievalError struct {
	StatusCode int
	Body       string
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("report retrieval failed: status %d: %s", e.StatusCode, e.Body)
}

// Is makes errors.Is(err, ErrRetrievalFailed) hold.
func (e *RetrievalError) Is(target error) bool {
	return target == ErrRetrievalFailed
}
