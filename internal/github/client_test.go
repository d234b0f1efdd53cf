package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwshi/stripcode-bot/pkg/models"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(req *http.Request, status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Header:     http.Header{"Content-Type": []string{"application/json; charset=utf-8"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}
}

// recorder serves canned responses keyed by path and records requests
type recorder struct {
	mu       sync.Mutex
	requests []*http.Request
	status   int
	body     string
}

func (r *recorder) transport() http.RoundTripper {
	return roundTripFunc(func(req *http.Request) (*http.Response, error) {
		r.mu.Lock()
		r.requests = append(r.requests, req)
		r.mu.Unlock()
		return jsonResponse(req, r.status, r.body), nil
	})
}

func newTestClient(t *testing.T, rec *recorder) *Client {
	t.Helper()
	c, err := NewClient(Options{
		Host:      "github.com",
		Token:     "x",
		UserAgent: "kwshi-stripcode-bot",
		Transport: rec.transport(),
	})
	require.NoError(t, err)
	return c
}

func TestGetRepository(t *testing.T) {
	rec := &recorder{
		status: http.StatusOK,
		body:   `{"id": 12345, "name": "react", "full_name": "facebook/react", "owner": {"login": "facebook"}}`,
	}
	c := newTestClient(t, rec)

	repo, err := c.GetRepository(context.Background(), "12345")
	require.NoError(t, err)

	assert.Equal(t, &models.Repository{ID: "12345", Owner: "facebook", Name: "react", FullName: "facebook/react"}, repo)

	require.Len(t, rec.requests, 1)
	req := rec.requests[0]
	assert.Equal(t, "https://api.github.com/repositories/12345", req.URL.String())
	assert.Equal(t, "kwshi-stripcode-bot", req.Header.Get("User-Agent"))
}

func TestGetRepository_Errors(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		status  int
		wantErr error
	}{
		{name: "not found", id: "1", status: http.StatusNotFound, wantErr: ErrNotFound},
		{name: "server error", id: "1", status: http.StatusBadGateway, wantErr: ErrUnavailable},
		{name: "rate limited", id: "1", status: http.StatusForbidden, wantErr: ErrUnavailable},
		{name: "non-numeric id", id: "abc", status: http.StatusOK, wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{status: tt.status, body: `{"message": "nope"}`}
			c := newTestClient(t, rec)

			_, err := c.GetRepository(context.Background(), tt.id)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "GetRepository() error = %v, want %v", err, tt.wantErr)
		})
	}
}

func TestSearchCode(t *testing.T) {
	rec := &recorder{
		status: http.StatusOK,
		body: `{
			"total_count": 3,
			"incomplete_results": false,
			"items": [
				{"name": "a.go", "path": "a.go", "score": 1.5, "repository": {"id": 2, "full_name": "o/b"}},
				{"name": "b.go", "path": "b.go", "score": 3, "repository": {"id": 1, "full_name": "o/a"}},
				{"name": "c.go", "path": "c.go", "score": 0.5, "repository": {"id": 2, "full_name": "o/b"}}
			]
		}`,
	}
	c := newTestClient(t, rec)

	q := `repo:"o/a" repo:"o/b" "parseHeader"`
	hits, err := c.SearchCode(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, []models.SearchHit{
		{RepositoryID: "2", Relevance: 1.5},
		{RepositoryID: "1", Relevance: 3},
		{RepositoryID: "2", Relevance: 0.5},
	}, hits)

	require.Len(t, rec.requests, 1)
	assert.Equal(t, "/search/code", rec.requests[0].URL.Path)
	assert.Equal(t, q, rec.requests[0].URL.Query().Get("q"))
}

func TestSearchCode_Unavailable(t *testing.T) {
	c, err := NewClient(Options{
		Host:  "github.com",
		Token: "x",
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection reset")
		}),
	})
	require.NoError(t, err)

	_, err = c.SearchCode(context.Background(), `"token"`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSearchCode_CancelledContext(t *testing.T) {
	rec := &recorder{status: http.StatusOK, body: `{"items": []}`}
	c := newTestClient(t, rec)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.SearchCode(ctx, `"token"`)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.requests)
}
