package pipeline

import (
	"time"

	"github.com/kwshi/stripcode-bot/internal/pipeline/core"
	"github.com/kwshi/stripcode-bot/internal/pipeline/steps"
)

// Builder constructs the round pipeline.
type Builder struct {
	resolver      steps.CandidateResolver
	searcher      steps.Searcher
	searchTimeout time.Duration
}

// NewBuilder creates a new pipeline builder
func NewBuilder(resolver steps.CandidateResolver, searcher steps.Searcher, searchTimeout time.Duration) *Builder {
	return &Builder{
		resolver:      resolver,
		searcher:      searcher,
		searchTimeout: searchTimeout,
	}
}

// BuildDefault creates the standard round pipeline. The order is fixed:
// reduction runs before any lookup so an unusable snippet costs no API calls.
func (b *Builder) BuildDefault() []core.Step {
	return []core.Step{
		steps.NewReduceSnippet(),
		steps.NewResolveCandidates(b.resolver),
		steps.NewBuildQuery(),
		steps.NewSearchCode(b.searcher, b.searchTimeout),
		steps.NewAggregateScores(),
		steps.NewSelectCandidate(),
	}
}
