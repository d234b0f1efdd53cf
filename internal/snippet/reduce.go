// Package snippet reduces a code block to its most distinctive token.
package snippet

import (
	"regexp"
	"strings"

	"github.com/kwshi/stripcode-bot/pkg/models"
)

// DefaultMarker is the substring the game uses for redacted identifiers
const DefaultMarker = "redacted"

var tokenPattern = regexp.MustCompile(`[0-9A-Za-z_-]{1,128}`)

// Tokens returns every word-like run in code, in source order, skipping
// tokens whose lowercase form contains marker
func Tokens(code, marker string) []string {
	marker = strings.ToLower(marker)

	var tokens []string
	for _, tok := range tokenPattern.FindAllString(code, -1) {
		if marker != "" && strings.Contains(strings.ToLower(tok), marker) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Reduce returns the longest unredacted token in code.
// Equal-length tokens resolve to the first occurrence.
func Reduce(code *string, marker string) (string, error) {
	if code == nil {
		return "", models.ErrEmptyEvidence
	}

	longest := ""
	for _, tok := range Tokens(*code, marker) {
		if len(tok) > len(longest) {
			longest = tok
		}
	}

	if longest == "" {
		return "", models.ErrEmptyEvidence
	}
	return longest, nil
}
