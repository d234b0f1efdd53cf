package models

import "fmt"

// Repository is a canonical GitHub repository record as returned by the lookup provider
type Repository struct {
	ID       string `json:"id"`
	Owner    string `json:"owner"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
}

// NewRepository builds a Repository, deriving FullName from owner and name
func NewRepository(id, owner, name string) Repository {
	return Repository{
		ID:       id,
		Owner:    owner,
		Name:     name,
		FullName: fmt.Sprintf("%s/%s", owner, name),
	}
}

// SearchHit is a single ranked result from the code search oracle
type SearchHit struct {
	RepositoryID string  `json:"repository_id"`
	Relevance    float64 `json:"relevance"`
}

// Decision is the engine's committed guess for a round
type Decision struct {
	ChosenRepositoryID string `json:"chosen_repository_id"`
}
