// Package candidate maps the game's opaque candidate ids to canonical
// GitHub repositories.
package candidate

import (
	"context"
	"fmt"
	"sync"

	"github.com/kwshi/stripcode-bot/pkg/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Lookup fetches a single repository by id
type Lookup interface {
	GetRepository(ctx context.Context, id string) (*models.Repository, error)
}

// Resolver resolves candidate ids concurrently and caches results for the
// life of the process. Names shown on the page are never used; they do not
// always match the real repository.
type Resolver struct {
	lookup Lookup
	logger *zap.Logger

	mu    sync.Mutex
	cache map[string]models.Repository
}

// NewResolver creates a resolver backed by lookup
func NewResolver(lookup Lookup, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		lookup: lookup,
		logger: logger,
		cache:  make(map[string]models.Repository),
	}
}

// Resolve returns one repository per distinct id, in first-seen order.
// A single failed lookup fails the whole call.
func (r *Resolver) Resolve(ctx context.Context, ids []string) ([]models.Repository, error) {
	distinct := dedupe(ids)
	if len(distinct) == 0 {
		return nil, models.ErrNoCandidates
	}

	repos := make([]models.Repository, len(distinct))
	g, gctx := errgroup.WithContext(ctx)

	for i, id := range distinct {
		i, id := i, id
		g.Go(func() error {
			repo, err := r.get(gctx, id)
			if err != nil {
				return fmt.Errorf("%w: repository %s: %w", models.ErrLookupFailure, id, err)
			}
			repos[i] = repo
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return repos, nil
}

func (r *Resolver) get(ctx context.Context, id string) (models.Repository, error) {
	r.mu.Lock()
	repo, ok := r.cache[id]
	r.mu.Unlock()
	if ok {
		return repo, nil
	}

	fetched, err := r.lookup.GetRepository(ctx, id)
	if err != nil {
		return models.Repository{}, err
	}

	r.mu.Lock()
	r.cache[id] = *fetched
	r.mu.Unlock()

	r.logger.Debug("resolved candidate",
		zap.String("id", id),
		zap.String("full_name", fetched.FullName))
	return *fetched, nil
}

// Cached returns the number of repositories held in the cache
func (r *Resolver) Cached() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cache)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
