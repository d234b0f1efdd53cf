package steps

import (
	"fmt"

	"github.com/kwshi/stripcode-bot/internal/pipeline/core"
	"github.com/kwshi/stripcode-bot/internal/score"
	"github.com/kwshi/stripcode-bot/pkg/models"
)

// AggregateScores folds the search hits into per-candidate totals.
type AggregateScores struct{}

// NewAggregateScores creates a new aggregation step
func NewAggregateScores() *AggregateScores {
	return &AggregateScores{}
}

func (s *AggregateScores) Name() string {
	return "aggregate_scores"
}

func (s *AggregateScores) Stage() core.Stage {
	return core.StageScoring
}

func (s *AggregateScores) Run(ctx *core.Context) error {
	ctx.Scores = score.Aggregate(ctx.Candidates, ctx.Hits)
	return nil
}

// SelectCandidate commits to the highest scoring candidate.
// Zero scores and ties still produce a decision.
type SelectCandidate struct{}

// NewSelectCandidate creates a new selection step
func NewSelectCandidate() *SelectCandidate {
	return &SelectCandidate{}
}

func (s *SelectCandidate) Name() string {
	return "select_candidate"
}

func (s *SelectCandidate) Stage() core.Stage {
	return core.StageScoring
}

func (s *SelectCandidate) Run(ctx *core.Context) error {
	if ctx.Scores == nil {
		return fmt.Errorf("select_candidate ran before aggregate_scores")
	}

	best, _, ok := ctx.Scores.Best()
	if !ok {
		return models.ErrNoCandidates
	}

	ctx.Decision = &models.Decision{ChosenRepositoryID: best}
	return nil
}
