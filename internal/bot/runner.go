// Package bot plays ranked rounds: read the page, resolve, click, repeat.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kwshi/stripcode-bot/internal/config"
	"github.com/kwshi/stripcode-bot/internal/evidence"
	"github.com/kwshi/stripcode-bot/internal/journal"
	"github.com/kwshi/stripcode-bot/internal/pipeline/core"
	"github.com/kwshi/stripcode-bot/pkg/models"
)

// ErrSession marks failures of the browser session itself. The loop stops on them.
var ErrSession = errors.New("browser session")

// Driver reads and clicks the game page
type Driver interface {
	evidence.Reader
	Click(ctx context.Context, selector string) error
}

// Session keeps the page logged in and on the game
type Session interface {
	EnsureAuthenticated(ctx context.Context) error
	Reload(ctx context.Context) error
}

// Resolver decides a round from its evidence
type Resolver interface {
	ResolveRound(ctx context.Context, ev *models.RoundEvidence) (*core.Outcome, error)
}

// Journal records finished rounds
type Journal interface {
	Put(rec *journal.Record) error
}

// Options controls the loop
type Options struct {
	DryRun bool
}

// RoundResult is what one round produced
type RoundResult struct {
	ID       string
	Evidence *models.RoundEvidence
	Outcome  *core.Outcome
	Verdict  string
}

// Runner plays rounds one at a time on a single page
type Runner struct {
	session   Session
	driver    Driver
	extractor *evidence.Extractor
	resolver  Resolver
	journal   Journal
	logger    *zap.Logger

	selectors config.SelectorsConfig
	idleDelay time.Duration
	dryRun    bool

	now func() time.Time
}

// NewRunner creates a runner. journal may be nil.
func NewRunner(cfg *config.Config, session Session, driver Driver, resolver Resolver, j Journal, logger *zap.Logger, opts Options) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		session:   session,
		driver:    driver,
		extractor: evidence.NewExtractor(driver, cfg.Game.Selectors, logger),
		resolver:  resolver,
		journal:   j,
		logger:    logger,
		selectors: cfg.Game.Selectors,
		idleDelay: cfg.Game.IdleDelay,
		dryRun:    opts.DryRun,
		now:       time.Now,
	}
}

// Run plays rounds until ctx is cancelled, a session error occurs, or
// rounds have been played. rounds <= 0 means no limit, except in dry-run
// mode where the page never advances and a single round is played.
func (r *Runner) Run(ctx context.Context, rounds int) error {
	if r.dryRun && rounds <= 0 {
		rounds = 1
	}

	played, decided := 0, 0
	defer func() {
		r.logger.Info("stopped", zap.Int("rounds", played), zap.Int("decided", decided))
	}()

	for rounds <= 0 || played < rounds {
		if ctx.Err() != nil {
			return nil
		}

		res, err := r.RunRound(ctx)
		played++

		switch {
		case err == nil:
			if res.Outcome.Decided() {
				decided++
			}
		case ctx.Err() != nil:
			return nil
		case errors.Is(err, ErrSession):
			return err
		default:
			r.logger.Warn("round failed, continuing", zap.Error(err))
			if err := r.session.Reload(ctx); err != nil {
				return fmt.Errorf("%w: %w", ErrSession, err)
			}
		}
	}

	return nil
}

// RunRound plays a single round. A failed resolution is returned as a
// *core.RoundError alongside the result.
func (r *Runner) RunRound(ctx context.Context) (*RoundResult, error) {
	res := &RoundResult{ID: uuid.NewString()}
	started := r.now()
	log := r.logger.With(zap.String("round_id", res.ID))

	if err := r.session.EnsureAuthenticated(ctx); err != nil {
		return res, fmt.Errorf("%w: %w", ErrSession, err)
	}

	ev, err := r.extractor.Extract(ctx)
	if err != nil {
		rerr := &core.RoundError{Stage: core.StageExtracting, Err: err}
		res.Outcome = &core.Outcome{
			State:    core.StageFailed,
			FailedAt: core.StageExtracting,
			Failure:  rerr.Error(),
			Kind:     core.Classify(rerr),
			Err:      rerr,
		}
		r.record(log, res, started)
		return res, rerr
	}
	res.Evidence = ev

	log.Info("round started",
		zap.Any("stats", ev.Stats),
		zap.Int("points", ev.DisplayedPoints),
		zap.Strings("candidates", ev.CandidateIDs),
		zap.String("file_name", ev.FileName()),
	)

	out, err := r.resolver.ResolveRound(ctx, ev)
	res.Outcome = out
	if err != nil {
		r.record(log, res, started)
		return res, err
	}

	if !r.dryRun {
		verdict, err := r.submit(ctx, out.Decision.ChosenRepositoryID)
		if err != nil {
			rerr := &core.RoundError{Stage: core.StageSubmitting, Err: err}
			out.State = core.StageFailed
			out.FailedAt = core.StageSubmitting
			out.Failure = rerr.Error()
			out.Kind = core.Classify(rerr)
			out.Err = rerr
			r.record(log, res, started)
			return res, rerr
		}
		res.Verdict = verdict
	}

	r.record(log, res, started)
	return res, nil
}

// submit clicks the chosen candidate, reads the verdict and moves on to the next question
func (r *Runner) submit(ctx context.Context, id string) (string, error) {
	sel := r.selectors

	if err := r.driver.Click(ctx, sel.Candidate(id)); err != nil {
		return "", fmt.Errorf("submit guess: %w", err)
	}
	if err := r.driver.WaitForElements(ctx, sel.Answer, sel.Next); err != nil {
		return "", fmt.Errorf("wait for answer: %w", err)
	}

	verdict, _, err := r.driver.ReadText(ctx, sel.Answer)
	if err != nil {
		return "", fmt.Errorf("read answer: %w", err)
	}

	// idle between questions to stay under the search rate limit
	if err := sleep(ctx, r.idleDelay); err != nil {
		return "", err
	}
	if err := r.driver.Click(ctx, sel.Next); err != nil {
		return "", fmt.Errorf("next question: %w", err)
	}
	if err := sleep(ctx, r.idleDelay); err != nil {
		return "", err
	}

	return strings.TrimSpace(verdict), nil
}

func (r *Runner) record(log *zap.Logger, res *RoundResult, started time.Time) {
	rec := newRecord(res, started, r.now().Sub(started), r.dryRun)

	out := res.Outcome
	if out.Decided() {
		log.Info("round decided",
			zap.String("token", out.Token),
			zap.String("chosen", out.Decision.ChosenRepositoryID),
			zap.String("chosen_name", rec.ChosenName()),
			zap.Any("scores", out.Scores),
			zap.String("verdict", res.Verdict),
			zap.Bool("dry_run", r.dryRun),
		)
	} else {
		log.Warn("round failed",
			zap.String("stage", string(out.FailedAt)),
			zap.String("kind", string(out.Kind)),
			zap.Error(out.Err),
		)
	}

	if r.journal == nil {
		return
	}
	if err := r.journal.Put(rec); err != nil {
		log.Error("failed to journal round", zap.Error(err))
	}
}

func newRecord(res *RoundResult, started time.Time, took time.Duration, dryRun bool) *journal.Record {
	rec := &journal.Record{
		ID:        res.ID,
		StartedAt: started,
		Duration:  took,
		DryRun:    dryRun,
		Verdict:   res.Verdict,
	}

	if ev := res.Evidence; ev != nil {
		rec.Stats = ev.Stats
		rec.Points = ev.DisplayedPoints
		rec.FileName = ev.FileName()
	}

	if out := res.Outcome; out != nil {
		rec.Stage = string(out.State)
		if !out.Decided() && out.FailedAt != "" {
			rec.Stage = string(out.FailedAt)
		}
		rec.Candidates = out.Candidates
		rec.Token = out.Token
		rec.Query = out.Query
		rec.Scores = out.Scores
		rec.Failure = out.Failure
		rec.Kind = string(out.Kind)
		if out.Decided() {
			rec.Chosen = out.Decision.ChosenRepositoryID
		}
	}

	return rec
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
