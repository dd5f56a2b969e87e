package workbook

import "errors"

// Sentinel errors for workbook synthesis.
var (
	// ErrMalformedReport marks a payload without a usable StrokeGroups list.
	// Synthesis logs it and emits the placeholder sheet instead of failing.
	ErrMalformedReport = errors.New("malformed report")
	ErrWriteWorkbook   = errors.New("write workbook")
)
