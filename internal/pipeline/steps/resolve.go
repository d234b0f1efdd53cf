package steps

import (
	"context"

	"github.com/kwshi/stripcode-bot/internal/pipeline/core"
	"github.com/kwshi/stripcode-bot/pkg/models"
)

// CandidateResolver defines the interface for candidate resolution
type CandidateResolver interface {
	Resolve(ctx context.Context, ids []string) ([]models.Repository, error)
}

// ResolveCandidates turns the round's candidate ids into repositories.
type ResolveCandidates struct {
	resolver CandidateResolver
}

// NewResolveCandidates creates a new candidate resolution step
func NewResolveCandidates(resolver CandidateResolver) *ResolveCandidates {
	return &ResolveCandidates{resolver: resolver}
}

func (s *ResolveCandidates) Name() string {
	return "resolve_candidates"
}

func (s *ResolveCandidates) Stage() core.Stage {
	return core.StageResolving
}

func (s *ResolveCandidates) Run(ctx *core.Context) error {
	if len(ctx.Evidence.CandidateIDs) == 0 {
		return models.ErrNoCandidates
	}

	repos, err := s.resolver.Resolve(ctx.Ctx, ctx.Evidence.CandidateIDs)
	if err != nil {
		return err
	}
	if len(repos) == 0 {
		return models.ErrNoCandidates
	}

	ctx.Candidates = repos
	return nil
}
