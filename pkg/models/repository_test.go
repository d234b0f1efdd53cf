package models

import (
	"testing"
)

func TestNewRepository_FullName(t *testing.T) {
	tests := []struct {
		owner string
		name  string
		want  string
	}{
		{"x", "proj1", "x/proj1"},
		{"golang", "go", "golang/go"},
		{"Some-Org", "repo.js", "Some-Org/repo.js"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			repo := NewRepository("1", tt.owner, tt.name)
			if repo.FullName != tt.want {
				t.Errorf("FullName = %v, want %v", repo.FullName, tt.want)
			}
			if repo.ID != "1" {
				t.Errorf("ID = %v, want 1", repo.ID)
			}
		})
	}
}

func TestRoundEvidence_FileName(t *testing.T) {
	ev := &RoundEvidence{}
	if ev.FileName() != "" {
		t.Errorf("FileName() = %q, want empty", ev.FileName())
	}

	name := "redacted.py"
	ev.FileNameHint = &name
	if ev.FileName() != "redacted.py" {
		t.Errorf("FileName() = %q, want redacted.py", ev.FileName())
	}
}
