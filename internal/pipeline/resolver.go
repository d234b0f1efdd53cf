package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/kwshi/stripcode-bot/internal/config"
	"github.com/kwshi/stripcode-bot/internal/pipeline/core"
	"github.com/kwshi/stripcode-bot/internal/pipeline/steps"
	"github.com/kwshi/stripcode-bot/pkg/models"
	"go.uber.org/zap"
)

var errNoEvidence = errors.New("no evidence supplied")

// RoundResolver turns one round's evidence into a decision
type RoundResolver struct {
	marker string
	logger *zap.Logger

	// pipeline is the sequence of steps run for every round
	pipeline []core.Step
}

// NewRoundResolver creates a resolver running the default pipeline
func NewRoundResolver(cfg *config.Config, resolver steps.CandidateResolver, searcher steps.Searcher, logger *zap.Logger) *RoundResolver {
	if logger == nil {
		logger = zap.NewNop()
	}

	builder := NewBuilder(resolver, searcher, cfg.GitHub.SearchTimeout)
	return &RoundResolver{
		marker:   cfg.Game.RedactionMarker,
		logger:   logger,
		pipeline: builder.BuildDefault(),
	}
}

// ResolveRound runs the pipeline once. The returned outcome is never nil:
// on failure it is in the failed state and the same *core.RoundError is
// returned as err. Nothing is retried.
func (r *RoundResolver) ResolveRound(ctx context.Context, ev *models.RoundEvidence) (*core.Outcome, error) {
	if ev == nil {
		return r.fail(&core.Context{}, core.StageExtracting, errNoEvidence)
	}

	pCtx := &core.Context{
		Ctx:      ctx,
		Evidence: ev,
		Marker:   r.marker,
	}

	for _, step := range r.pipeline {
		if err := step.Run(pCtx); err != nil {
			return r.fail(pCtx, step.Stage(), err)
		}
		r.logger.Debug("step complete", zap.String("step", step.Name()))
	}

	out := snapshot(pCtx)
	out.State = core.StageDecided
	out.Decision = pCtx.Decision
	return out, nil
}

func (r *RoundResolver) fail(pCtx *core.Context, stage core.Stage, err error) (*core.Outcome, error) {
	rerr := &core.RoundError{Stage: stage, Err: err}

	out := snapshot(pCtx)
	out.State = core.StageFailed
	out.FailedAt = stage
	out.Err = rerr
	out.Failure = rerr.Error()
	out.Kind = core.Classify(rerr)
	return out, rerr
}

func snapshot(pCtx *core.Context) *core.Outcome {
	out := &core.Outcome{
		Token:      pCtx.Token,
		Candidates: pCtx.Candidates,
		Query:      pCtx.Query,
		HitCount:   len(pCtx.Hits),
	}
	if pCtx.Scores != nil {
		out.Scores = pCtx.Scores.Map()
		out.Ranking = pCtx.Scores.IDs()
	}
	return out
}

// PrintOutcome outputs the round result to stdout
// Helper method for CLI visualization
func PrintOutcome(out *core.Outcome) {
	fmt.Println("\n=== Round Result ===")

	if out.Token != "" {
		fmt.Printf("Token: %s\n", out.Token)
	}
	if out.Query != "" {
		fmt.Printf("Query: %s\n", out.Query)
	}

	if len(out.Candidates) > 0 {
		names := make(map[string]string, len(out.Candidates))
		for _, c := range out.Candidates {
			names[c.ID] = c.FullName
		}

		fmt.Printf("Candidates (%d hits):\n", out.HitCount)
		for _, id := range out.Ranking {
			marker := " "
			if out.Decision != nil && out.Decision.ChosenRepositoryID == id {
				marker = "*"
			}
			fmt.Printf(" %s %s (%s): %.2f\n", marker, names[id], id, out.Scores[id])
		}
	}

	if !out.Decided() {
		fmt.Printf("Failed at %s [%s]: %s\n", out.FailedAt, out.Kind, out.Failure)
		return
	}
	fmt.Printf("Decision: %s\n", out.Decision.ChosenRepositoryID)
}
