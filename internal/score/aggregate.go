// Package score folds code search hits into per-candidate totals.
package score

import (
	"fmt"
	"strings"

	"github.com/kwshi/stripcode-bot/pkg/models"
)

// Table holds accumulated relevance per candidate id.
// Iteration order is the order candidates were first added.
type Table struct {
	order  []string
	scores map[string]float64
}

// NewTable creates a table with every candidate at zero
func NewTable(candidates []models.Repository) *Table {
	t := &Table{
		order:  make([]string, 0, len(candidates)),
		scores: make(map[string]float64, len(candidates)),
	}
	for _, repo := range candidates {
		if _, ok := t.scores[repo.ID]; ok {
			continue
		}
		t.order = append(t.order, repo.ID)
		t.scores[repo.ID] = 0
	}
	return t
}

// Aggregate sums hit relevance per candidate. Hits for repositories outside
// the candidate set are dropped.
func Aggregate(candidates []models.Repository, hits []models.SearchHit) *Table {
	t := NewTable(candidates)
	for _, hit := range hits {
		t.Add(hit)
	}
	return t
}

// Add folds a single hit into the table and reports whether it was counted
func (t *Table) Add(hit models.SearchHit) bool {
	if _, ok := t.scores[hit.RepositoryID]; !ok {
		return false
	}
	t.scores[hit.RepositoryID] += hit.Relevance
	return true
}

// Score returns the total for id
func (t *Table) Score(id string) (float64, bool) {
	s, ok := t.scores[id]
	return s, ok
}

// IDs returns candidate ids in iteration order
func (t *Table) IDs() []string {
	ids := make([]string, len(t.order))
	copy(ids, t.order)
	return ids
}

// Len returns the number of candidates
func (t *Table) Len() int {
	return len(t.order)
}

// Best returns the highest scoring candidate. Ties go to the candidate that
// comes first in iteration order.
func (t *Table) Best() (string, float64, bool) {
	if len(t.order) == 0 {
		return "", 0, false
	}

	bestID := t.order[0]
	best := t.scores[bestID]
	for _, id := range t.order[1:] {
		if s := t.scores[id]; s > best {
			bestID, best = id, s
		}
	}
	return bestID, best, true
}

// Map returns a copy of the scores keyed by candidate id
func (t *Table) Map() map[string]float64 {
	m := make(map[string]float64, len(t.scores))
	for id, s := range t.scores {
		m[id] = s
	}
	return m
}

// String renders the table in iteration order, e.g. "{1:0.00 2:4.50}"
func (t *Table) String() string {
	parts := make([]string, len(t.order))
	for i, id := range t.order {
		parts[i] = fmt.Sprintf("%s:%.2f", id, t.scores[id])
	}
	return "{" + strings.Join(parts, " ") + "}"
}
