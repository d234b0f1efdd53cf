package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/kwshi/stripcode-bot/pkg/models"
)

// RoundError tags a round failure with the stage that produced it
type RoundError struct {
	Stage Stage
	Err   error
}

func (e *RoundError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *RoundError) Unwrap() error {
	return e.Err
}

// FailureKind is the coarse classification of a failed round, used in logs
// and the journal
type FailureKind string

const (
	KindEmptyEvidence     FailureKind = "empty_evidence"
	KindLookupFailure     FailureKind = "lookup_failure"
	KindOracleUnavailable FailureKind = "oracle_unavailable"
	KindNoCandidates      FailureKind = "no_candidates"
	KindExtraction        FailureKind = "extraction"
	KindSubmission        FailureKind = "submission"
	KindCancelled         FailureKind = "cancelled"
	KindUnknown           FailureKind = "unknown"
)

// Classify maps an error to a FailureKind using sentinels only
func Classify(err error) FailureKind {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, context.Canceled):
		return KindCancelled
	case errors.Is(err, models.ErrEmptyEvidence):
		return KindEmptyEvidence
	case errors.Is(err, models.ErrNoCandidates):
		return KindNoCandidates
	case errors.Is(err, models.ErrLookupFailure):
		return KindLookupFailure
	case errors.Is(err, models.ErrOracleUnavailable):
		return KindOracleUnavailable
	}

	var re *RoundError
	if errors.As(err, &re) {
		switch re.Stage {
		case StageExtracting:
			return KindExtraction
		case StageSubmitting:
			return KindSubmission
		}
	}
	return KindUnknown
}
