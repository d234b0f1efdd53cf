// Package query composes GitHub code search queries for a round.
package query

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/kwshi/stripcode-bot/pkg/models"
)

// Build composes a single code search query scoped to every candidate.
// Term groups are emitted in a fixed order: repo terms, filename terms, then
// the code term. A file name hint containing marker expands into one
// filename term per repository with the marker replaced by the repo name.
func Build(repos []models.Repository, fileNameHint *string, codeToken, marker string) (string, error) {
	if len(repos) == 0 {
		return "", models.ErrNoCandidates
	}
	if codeToken == "" {
		return "", models.ErrEmptyEvidence
	}

	terms := make([]string, 0, 2*len(repos)+1)
	for _, repo := range repos {
		terms = append(terms, "repo:"+Quote(repo.FullName))
	}
	for _, name := range FileNames(repos, fileNameHint, marker) {
		terms = append(terms, "filename:"+Quote(name))
	}
	terms = append(terms, Quote(codeToken))

	return strings.Join(terms, " "), nil
}

// FileNames expands the file name hint into the names to search for
func FileNames(repos []models.Repository, fileNameHint *string, marker string) []string {
	if fileNameHint == nil || *fileNameHint == "" {
		return nil
	}

	hint := *fileNameHint
	if marker == "" || !strings.Contains(hint, marker) {
		return []string{hint}
	}

	names := make([]string, len(repos))
	for i, repo := range repos {
		names[i] = strings.Replace(hint, marker, repo.Name, 1)
	}
	return names
}

// Quote renders s as a JSON string literal, which GitHub search treats as an
// exact-match phrase
func Quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		// strings always encode
		return `"` + s + `"`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
