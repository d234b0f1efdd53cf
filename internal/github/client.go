package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cli/go-gh/v2/pkg/api"
	"golang.org/x/time/rate"
)

var (
	// ErrNotFound is returned when GitHub reports that a resource does not exist
	ErrNotFound = errors.New("not found")
	// ErrUnavailable is returned for every other API or transport failure
	ErrUnavailable = errors.New("github unavailable")
)

// Options configures a Client
type Options struct {
	Host              string
	Token             string
	UserAgent         string
	RequestsPerSecond int
	Timeout           time.Duration
	// Transport overrides the HTTP transport, mainly for tests
	Transport http.RoundTripper
}

// Client wraps GitHub API operations
type Client struct {
	rest    *api.RESTClient
	limiter *rate.Limiter
}

// NewClient creates a new GitHub client. An empty token is resolved from
// GH_TOKEN or the gh credential store.
func NewClient(opts Options) (*Client, error) {
	headers := map[string]string{}
	if opts.UserAgent != "" {
		headers["User-Agent"] = opts.UserAgent
	}

	rest, err := api.NewRESTClient(api.ClientOptions{
		Host:      opts.Host,
		AuthToken: opts.Token,
		Headers:   headers,
		Timeout:   opts.Timeout,
		Transport: opts.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create REST client: %w", err)
	}

	limit := rate.Inf
	burst := 1
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
		burst = opts.RequestsPerSecond
	}

	return &Client{
		rest:    rest,
		limiter: rate.NewLimiter(limit, burst),
	}, nil
}

// Close releases resources
func (c *Client) Close() error {
	return nil
}

// get performs a rate limited GET and decodes the JSON response
func (c *Client) get(ctx context.Context, path string, resp interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	return c.rest.DoWithContext(ctx, http.MethodGet, path, nil, resp)
}

// classify maps a go-gh error onto ErrNotFound or ErrUnavailable
func classify(err error) error {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
