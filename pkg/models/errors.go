package models

import "errors"

// Round failure taxonomy. Every failed round wraps exactly one of these.
var (
	ErrEmptyEvidence     = errors.New("no usable code token")
	ErrLookupFailure     = errors.New("candidate repository lookup failed")
	ErrOracleUnavailable = errors.New("code search unavailable")
	ErrNoCandidates      = errors.New("round has no candidates")
)
