package engine

import "errors"

// Errors returned by session construction. State-changing session
// operations report precondition failures as boolean returns instead.
var (
	// ErrMissingResult indicates the correction result carries no
	// sentences and cannot be reviewed.
	ErrMissingResult = errors.New("correction result has no sentences")
)
