package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kwshi/stripcode-bot/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FailureKind
	}{
		{"nil", nil, ""},
		{"empty evidence", &RoundError{StageReducing, models.ErrEmptyEvidence}, KindEmptyEvidence},
		{"wrapped lookup", fmt.Errorf("%w: repository 7: 404", models.ErrLookupFailure), KindLookupFailure},
		{"oracle", &RoundError{StageQuerying, fmt.Errorf("%w: timeout", models.ErrOracleUnavailable)}, KindOracleUnavailable},
		{"no candidates", models.ErrNoCandidates, KindNoCandidates},
		{"cancelled", &RoundError{StageResolving, context.Canceled}, KindCancelled},
		{"cancelled during search", &RoundError{StageQuerying, fmt.Errorf("%w: %w", models.ErrOracleUnavailable, context.Canceled)}, KindCancelled},
		{"extraction", &RoundError{StageExtracting, errors.New("element missing")}, KindExtraction},
		{"submission", &RoundError{StageSubmitting, errors.New("element detached")}, KindSubmission},
		{"unknown", errors.New("something else"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestRoundError(t *testing.T) {
	err := &RoundError{Stage: StageResolving, Err: models.ErrLookupFailure}
	assert.Equal(t, "resolving: candidate repository lookup failed", err.Error())
	assert.ErrorIs(t, err, models.ErrLookupFailure)
}
