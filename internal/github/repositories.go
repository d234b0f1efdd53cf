package github

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/kwshi/stripcode-bot/pkg/models"
)

// Repository represents a GitHub repository from the API
type Repository struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Owner    User   `json:"owner"`
}

// User represents a GitHub user
type User struct {
	Login string `json:"login"`
}

// ToModel converts API Repository to models.Repository
func (r *Repository) ToModel() *models.Repository {
	repo := models.NewRepository(strconv.FormatInt(r.ID, 10), r.Owner.Login, r.Name)
	if r.FullName != "" {
		repo.FullName = r.FullName
	}
	return &repo
}

// GetRepository looks up a repository by its numeric id
func (c *Client) GetRepository(ctx context.Context, id string) (*models.Repository, error) {
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return nil, fmt.Errorf("%w: invalid repository id %q", ErrNotFound, id)
	}

	var repo Repository
	if err := c.get(ctx, "repositories/"+url.PathEscape(id), &repo); err != nil {
		return nil, fmt.Errorf("failed to get repository %s: %w", id, classify(err))
	}

	return repo.ToModel(), nil
}
