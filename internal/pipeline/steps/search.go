package steps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kwshi/stripcode-bot/internal/pipeline/core"
	"github.com/kwshi/stripcode-bot/internal/query"
	"github.com/kwshi/stripcode-bot/pkg/models"
)

// BuildQuery composes the code search query for the round.
type BuildQuery struct{}

// NewBuildQuery creates a new query building step
func NewBuildQuery() *BuildQuery {
	return &BuildQuery{}
}

func (s *BuildQuery) Name() string {
	return "build_query"
}

func (s *BuildQuery) Stage() core.Stage {
	return core.StageQuerying
}

func (s *BuildQuery) Run(ctx *core.Context) error {
	q, err := query.Build(ctx.Candidates, ctx.Evidence.FileNameHint, ctx.Token, ctx.Marker)
	if err != nil {
		return err
	}
	ctx.Query = q
	return nil
}

// Searcher defines the interface for the code search oracle
type Searcher interface {
	SearchCode(ctx context.Context, query string) ([]models.SearchHit, error)
}

// SearchCode issues the round's single code search.
type SearchCode struct {
	searcher Searcher
	timeout  time.Duration
}

// NewSearchCode creates a new search step. A zero timeout means no limit
// beyond the caller's context.
func NewSearchCode(searcher Searcher, timeout time.Duration) *SearchCode {
	return &SearchCode{searcher: searcher, timeout: timeout}
}

func (s *SearchCode) Name() string {
	return "search_code"
}

func (s *SearchCode) Stage() core.Stage {
	return core.StageQuerying
}

func (s *SearchCode) Run(ctx *core.Context) error {
	searchCtx := ctx.Ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx.Ctx, s.timeout)
		defer cancel()
	}

	hits, err := s.searcher.SearchCode(searchCtx, ctx.Query)
	if err != nil {
		if errors.Is(err, models.ErrOracleUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %w", models.ErrOracleUnavailable, err)
	}

	ctx.Hits = hits
	return nil
}
