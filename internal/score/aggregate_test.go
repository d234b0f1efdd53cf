package score

import (
	"testing"

	"github.com/kwshi/stripcode-bot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repos(ids ...string) []models.Repository {
	out := make([]models.Repository, len(ids))
	for i, id := range ids {
		out[i] = models.Repository{ID: id}
	}
	return out
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name string
		hits []models.SearchHit
		want map[string]float64
	}{
		{
			name: "no hits leaves every candidate at zero",
			hits: nil,
			want: map[string]float64{"A": 0, "B": 0, "C": 0},
		},
		{
			name: "hits for the same repository add up",
			hits: []models.SearchHit{
				{RepositoryID: "B", Relevance: 3.0},
				{RepositoryID: "B", Relevance: 1.5},
			},
			want: map[string]float64{"A": 0, "B": 4.5, "C": 0},
		},
		{
			name: "unknown repositories are dropped",
			hits: []models.SearchHit{
				{RepositoryID: "Z", Relevance: 100},
				{RepositoryID: "C", Relevance: 2},
			},
			want: map[string]float64{"A": 0, "B": 0, "C": 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := Aggregate(repos("A", "B", "C"), tt.hits)
			assert.Equal(t, tt.want, table.Map())
			assert.Equal(t, []string{"A", "B", "C"}, table.IDs())
		})
	}
}

func TestTable_Best_TieBreak(t *testing.T) {
	table := Aggregate(repos("A", "B", "C"), []models.SearchHit{
		{RepositoryID: "B", Relevance: 4.5},
		{RepositoryID: "C", Relevance: 4.5},
	})

	id, s, ok := table.Best()
	require.True(t, ok)
	assert.Equal(t, "B", id)
	assert.Equal(t, 4.5, s)
}

func TestTable_Best_AllZero(t *testing.T) {
	id, s, ok := Aggregate(repos("A", "B"), nil).Best()
	require.True(t, ok)
	assert.Equal(t, "A", id)
	assert.Zero(t, s)
}

func TestTable_Best_Empty(t *testing.T) {
	_, _, ok := NewTable(nil).Best()
	assert.False(t, ok)
}

func TestNewTable_DuplicateCandidates(t *testing.T) {
	table := Aggregate(repos("A", "B", "A"), []models.SearchHit{{RepositoryID: "A", Relevance: 1}})
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"A", "B"}, table.IDs())

	s, ok := table.Score("A")
	require.True(t, ok)
	assert.Equal(t, 1.0, s)
}

func TestTable_String(t *testing.T) {
	table := Aggregate(repos("1", "2"), []models.SearchHit{{RepositoryID: "2", Relevance: 4.5}})
	assert.Equal(t, "{1:0.00 2:4.50}", table.String())
}
