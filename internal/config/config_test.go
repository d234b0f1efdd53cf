package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_VAR", "test-value")

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "expands env var",
			input:  "${TEST_VAR}",
			expect: "test-value",
		},
		{
			name:   "keeps unset var",
			input:  "${UNSET_VAR}",
			expect: "${UNSET_VAR}",
		},
		{
			name:   "expands in string",
			input:  "token-${TEST_VAR}-suffix",
			expect: "token-test-value-suffix",
		},
		{
			name:   "no vars",
			input:  "plain string",
			expect: "plain string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandEnvVars(tt.input)
			if result != tt.expect {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tt.input, result, tt.expect)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("STRIPCODE_TEST_TOKEN", "ghp_test")

	// Create temp config file
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")

	content := `
game:
  url: "https://stripcode.dev/ranked"
  idle_delay: 2s
  selectors:
    code: "pre#code"

github:
  token: "${STRIPCODE_TEST_TOKEN}"
  search_timeout: 10s

browser:
  show_window: true

journal:
  enabled: true
`

	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Game.IdleDelay != 2*time.Second {
		t.Errorf("Game.IdleDelay = %v, want 2s", cfg.Game.IdleDelay)
	}

	if cfg.Game.Selectors.Code != "pre#code" {
		t.Errorf("Selectors.Code = %v, want pre#code", cfg.Game.Selectors.Code)
	}

	if cfg.Game.Selectors.Stats != "div.text-lg" {
		t.Errorf("Selectors.Stats = %v, want default div.text-lg", cfg.Game.Selectors.Stats)
	}

	if cfg.GitHub.Token != "ghp_test" {
		t.Errorf("GitHub.Token = %v, want ghp_test", cfg.GitHub.Token)
	}

	if cfg.GitHub.SearchTimeout != 10*time.Second {
		t.Errorf("GitHub.SearchTimeout = %v, want 10s", cfg.GitHub.SearchTimeout)
	}

	if !cfg.Browser.ShowWindow || !cfg.Journal.Enabled {
		t.Errorf("Browser.ShowWindow = %v, Journal.Enabled = %v, want both true", cfg.Browser.ShowWindow, cfg.Journal.Enabled)
	}
}

func TestLoad_UnsetSecretsAreCleared(t *testing.T) {
	t.Setenv("GH_USERNAME", "")
	t.Setenv("GH_PASSWORD", "")
	t.Setenv("GH_TOKEN", "")

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `
github:
  token: "${GH_TOKEN}"
auth:
  username: "${GH_USERNAME}"
  password: "${GH_PASSWORD}"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.GitHub.Token != "" {
		t.Errorf("GitHub.Token = %q, want empty", cfg.GitHub.Token)
	}
	if cfg.Auth.Username != "" || cfg.Auth.Password != "" {
		t.Errorf("Auth = %q/%q, want both empty", cfg.Auth.Username, cfg.Auth.Password)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	if cfg.Game.URL != "https://stripcode.dev/ranked" {
		t.Errorf("Game.URL = %v, want https://stripcode.dev/ranked", cfg.Game.URL)
	}

	if cfg.Game.RedactionMarker != "redacted" {
		t.Errorf("RedactionMarker = %v, want redacted", cfg.Game.RedactionMarker)
	}

	if cfg.Game.IdleDelay != 500*time.Millisecond {
		t.Errorf("IdleDelay = %v, want 500ms", cfg.Game.IdleDelay)
	}

	if cfg.Game.Selectors.Candidates != "button[phx-value-githubrepoid]" {
		t.Errorf("Selectors.Candidates = %v, want button[phx-value-githubrepoid]", cfg.Game.Selectors.Candidates)
	}

	if cfg.GitHub.RequestsPerSecond != 10 {
		t.Errorf("RequestsPerSecond = %v, want 10", cfg.GitHub.RequestsPerSecond)
	}

	if cfg.Browser.CookiesPath != filepath.Join("run", "cookies.json") {
		t.Errorf("CookiesPath = %v, want run/cookies.json", cfg.Browser.CookiesPath)
	}

	if cfg.Journal.Enabled {
		t.Errorf("Journal.Enabled = true, want false by default")
	}
}

func TestDefault_ClearsUnsetSecrets(t *testing.T) {
	t.Setenv("GH_USERNAME", "octocat")
	t.Setenv("GH_PASSWORD", "")
	t.Setenv("GH_TOKEN", "")

	cfg := Default()

	if cfg.Auth.Username != "octocat" {
		t.Errorf("Auth.Username = %q, want octocat", cfg.Auth.Username)
	}
	if cfg.Auth.Password != "" {
		t.Errorf("Auth.Password = %q, want empty", cfg.Auth.Password)
	}
	if cfg.GitHub.Token != "" {
		t.Errorf("GitHub.Token = %q, want empty", cfg.GitHub.Token)
	}
}

func TestSelectorsConfig_Candidate(t *testing.T) {
	sel := SelectorsConfig{CandidateAttr: "phx-value-githubrepoid"}

	got := sel.Candidate("12345")
	want := `[phx-value-githubrepoid="12345"]`
	if got != want {
		t.Errorf("Candidate() = %v, want %v", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr int
	}{
		{
			name:    "defaults are valid",
			mutate:  func(cfg *Config) {},
			wantErr: 0,
		},
		{
			name:    "relative game url",
			mutate:  func(cfg *Config) { cfg.Game.URL = "stripcode.dev" },
			wantErr: 1,
		},
		{
			name: "negative durations",
			mutate: func(cfg *Config) {
				cfg.Game.IdleDelay = -time.Second
				cfg.GitHub.SearchTimeout = -time.Second
			},
			wantErr: 2,
		},
		{
			name: "journal enabled without path",
			mutate: func(cfg *Config) {
				cfg.Journal.Enabled = true
				cfg.Journal.Path = ""
			},
			wantErr: 1,
		},
		{
			name:    "missing selector",
			mutate:  func(cfg *Config) { cfg.Game.Selectors.Answer = "" },
			wantErr: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			applyDefaults(cfg)
			tt.mutate(cfg)

			errs := Validate(cfg)
			if len(errs) != tt.wantErr {
				t.Errorf("Validate() returned %d errors %v, want %d", len(errs), errs, tt.wantErr)
			}
		})
	}
}
