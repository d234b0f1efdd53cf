package steps

import (
	"github.com/kwshi/stripcode-bot/internal/pipeline/core"
	"github.com/kwshi/stripcode-bot/internal/snippet"
)

// ReduceSnippet picks the code token the search will match on.
type ReduceSnippet struct{}

// NewReduceSnippet creates a new snippet reduction step
func NewReduceSnippet() *ReduceSnippet {
	return &ReduceSnippet{}
}

func (s *ReduceSnippet) Name() string {
	return "reduce_snippet"
}

func (s *ReduceSnippet) Stage() core.Stage {
	return core.StageReducing
}

func (s *ReduceSnippet) Run(ctx *core.Context) error {
	token, err := snippet.Reduce(ctx.Evidence.CodeBlock, ctx.Marker)
	if err != nil {
		return err
	}
	ctx.Token = token
	return nil
}
