package models

// StatLabel names one of the player statistics shown beside the round
type StatLabel string

const (
	StatTotalPoints StatLabel = "your total points"
	StatRank        StatLabel = "your rank"
	StatActiveUsers StatLabel = "active users"
)

// Stats maps a recognized label to its numeric text
type Stats map[StatLabel]string

// RoundEvidence holds everything read from the page for a single round.
// FileNameHint and CodeBlock are nil when the page did not render them.
type RoundEvidence struct {
	Stats           Stats    `json:"stats"`
	CandidateIDs    []string `json:"candidate_ids"`
	FileNameHint    *string  `json:"file_name_hint,omitempty"`
	CodeBlock       *string  `json:"code_block,omitempty"`
	DisplayedPoints int      `json:"displayed_points"`
}

// FileName returns the file name hint or "" when absent
func (e *RoundEvidence) FileName() string {
	if e.FileNameHint == nil {
		return ""
	}
	return *e.FileNameHint
}
