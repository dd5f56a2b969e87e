package repository

import "errors"

// Sentinel kinds for raw report storage errors.
var (
	ErrNotFound  = errors.New("raw report not found")
	ErrEmptyBody = errors.New("raw report body is empty")
)
