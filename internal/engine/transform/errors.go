package transform

import "errors"

// Errors returned when decoding a raw correction result.
var (
	// ErrInvalidResult indicates the payload is not valid JSON.
	ErrInvalidResult = errors.New("correction result is not valid JSON")

	// ErrMissingRules indicates the payload has no rulesApplied array.
	ErrMissingRules = errors.New("correction result has no rulesApplied")
)
