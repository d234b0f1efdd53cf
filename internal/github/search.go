package github

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/kwshi/stripcode-bot/pkg/models"
)

// CodeSearchResult is the response of the code search endpoint
type CodeSearchResult struct {
	TotalCount        int              `json:"total_count"`
	IncompleteResults bool             `json:"incomplete_results"`
	Items             []CodeSearchItem `json:"items"`
}

// CodeSearchItem is one matching file
type CodeSearchItem struct {
	Name       string     `json:"name"`
	Path       string     `json:"path"`
	Score      float64    `json:"score"`
	Repository Repository `json:"repository"`
}

// SearchCode runs a code search and returns one hit per result item, in
// the order GitHub returned them
func (c *Client) SearchCode(ctx context.Context, query string) ([]models.SearchHit, error) {
	params := url.Values{}
	params.Set("q", query)

	var result CodeSearchResult
	if err := c.get(ctx, "search/code?"+params.Encode(), &result); err != nil {
		return nil, fmt.Errorf("failed to search code: %w", classify(err))
	}

	hits := make([]models.SearchHit, 0, len(result.Items))
	for _, item := range result.Items {
		hits = append(hits, models.SearchHit{
			RepositoryID: strconv.FormatInt(item.Repository.ID, 10),
			Relevance:    item.Score,
		})
	}

	return hits, nil
}
