package candidate

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kwshi/stripcode-bot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var errBoom = errors.New("boom")

type fakeLookup struct {
	mu    sync.Mutex
	repos map[string]models.Repository
	fail  map[string]error
	calls atomic.Int32
}

func (f *fakeLookup) GetRepository(ctx context.Context, id string) (*models.Repository, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.fail[id]; ok {
		return nil, err
	}
	repo, ok := f.repos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &repo, nil
}

func newFakeLookup() *fakeLookup {
	return &fakeLookup{
		repos: map[string]models.Repository{
			"1": models.NewRepository("1", "x", "proj1"),
			"2": models.NewRepository("2", "y", "proj2"),
			"3": models.NewRepository("3", "z", "proj3"),
		},
		fail: map[string]error{},
	}
}

func TestResolver_Resolve(t *testing.T) {
	lookup := newFakeLookup()
	r := NewResolver(lookup, nil)

	got, err := r.Resolve(context.Background(), []string{"2", "1", "3"})
	require.NoError(t, err)

	want := []models.Repository{
		models.NewRepository("2", "y", "proj2"),
		models.NewRepository("1", "x", "proj1"),
		models.NewRepository("3", "z", "proj3"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolver_Resolve_Duplicates(t *testing.T) {
	lookup := newFakeLookup()
	r := NewResolver(lookup, nil)

	got, err := r.Resolve(context.Background(), []string{"1", "2", "1"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, int32(2), lookup.calls.Load())
}

func TestResolver_Resolve_Idempotent(t *testing.T) {
	lookup := newFakeLookup()
	r := NewResolver(lookup, nil)
	ids := []string{"1", "2"}

	first, err := r.Resolve(context.Background(), ids)
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), ids)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second Resolve() differs (-first +second):\n%s", diff)
	}
	assert.Equal(t, int32(2), lookup.calls.Load(), "second call should be served from cache")
	assert.Equal(t, 2, r.Cached())
}

func TestResolver_Resolve_LookupFailure(t *testing.T) {
	lookup := newFakeLookup()
	lookup.fail["2"] = errBoom
	r := NewResolver(lookup, nil)

	got, err := r.Resolve(context.Background(), []string{"1", "2", "3"})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, models.ErrLookupFailure)
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "repository 2")
}

func TestResolver_Resolve_NoCandidates(t *testing.T) {
	lookup := newFakeLookup()
	r := NewResolver(lookup, nil)

	_, err := r.Resolve(context.Background(), nil)
	assert.ErrorIs(t, err, models.ErrNoCandidates)
	assert.Zero(t, lookup.calls.Load())
}
