// Package evidence reads one round's display regions from the game page.
package evidence

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kwshi/stripcode-bot/internal/config"
	"github.com/kwshi/stripcode-bot/pkg/models"
)

// Reader is the read side of the UI collaborator
type Reader interface {
	// WaitForElements blocks until every selector matches at least one element
	WaitForElements(ctx context.Context, selectors ...string) error
	// ReadText returns the text of the first match; ok is false when nothing matches
	ReadText(ctx context.Context, selector string) (text string, ok bool, err error)
	ReadAll(ctx context.Context, selector string) ([]string, error)
	ReadAttributes(ctx context.Context, selector, attr string) ([]string, error)
}

// Extractor collects RoundEvidence from a Reader
type Extractor struct {
	reader    Reader
	selectors config.SelectorsConfig
	logger    *zap.Logger
}

// NewExtractor creates an extractor for the given page regions
func NewExtractor(reader Reader, selectors config.SelectorsConfig, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		reader:    reader,
		selectors: selectors,
		logger:    logger,
	}
}

// Extract waits for the round to render and reads it. It never clicks.
func (e *Extractor) Extract(ctx context.Context) (*models.RoundEvidence, error) {
	sel := e.selectors

	if err := e.reader.WaitForElements(ctx, sel.Required()...); err != nil {
		return nil, fmt.Errorf("failed to wait for round: %w", err)
	}

	var (
		ev         models.RoundEvidence
		statsText  []string
		pointsText string
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		texts, err := e.reader.ReadAll(gctx, sel.Stats)
		if err != nil {
			return fmt.Errorf("failed to read stats: %w", err)
		}
		statsText = texts
		return nil
	})

	g.Go(func() error {
		ids, err := e.reader.ReadAttributes(gctx, sel.Candidates, sel.CandidateAttr)
		if err != nil {
			return fmt.Errorf("failed to read candidates: %w", err)
		}
		ev.CandidateIDs = ids
		return nil
	})

	g.Go(func() error {
		text, ok, err := e.reader.ReadText(gctx, sel.FileName)
		if err != nil {
			return fmt.Errorf("failed to read file name: %w", err)
		}
		if ok {
			ev.FileNameHint = &text
		}
		return nil
	})

	g.Go(func() error {
		text, ok, err := e.reader.ReadText(gctx, sel.Code)
		if err != nil {
			return fmt.Errorf("failed to read code block: %w", err)
		}
		if ok {
			ev.CodeBlock = &text
		}
		return nil
	})

	g.Go(func() error {
		text, _, err := e.reader.ReadText(gctx, sel.Points)
		if err != nil {
			return fmt.Errorf("failed to read points: %w", err)
		}
		pointsText = text
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	ev.Stats = ParseStats(statsText)
	ev.DisplayedPoints = ParsePoints(pointsText)

	e.logger.Debug("round extracted",
		zap.Strings("candidates", ev.CandidateIDs),
		zap.String("file_name", ev.FileName()),
		zap.Int("points", ev.DisplayedPoints),
	)

	return &ev, nil
}

var statPattern = regexp.MustCompile(`(your total points|your rank|active users): #?([0-9]+)`)

// ParseStats picks the recognized statistics out of the page's stat texts.
// Unrecognized texts are ignored; a later match for the same label wins.
func ParseStats(texts []string) models.Stats {
	stats := make(models.Stats)
	for _, text := range texts {
		m := statPattern.FindStringSubmatch(strings.ToLower(text))
		if m == nil {
			continue
		}
		stats[models.StatLabel(m[1])] = m[2]
	}
	return stats
}

var leadingInt = regexp.MustCompile(`^\s*[+-]?[0-9]+`)

// ParsePoints returns the integer at the start of text, or 0
func ParsePoints(text string) int {
	m := leadingInt.FindString(text)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(m))
	if err != nil {
		return 0
	}
	return n
}
