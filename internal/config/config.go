package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the full application configuration
type Config struct {
	Game    GameConfig    `yaml:"game"`
	GitHub  GitHubConfig  `yaml:"github"`
	Auth    AuthConfig    `yaml:"auth"`
	Browser BrowserConfig `yaml:"browser"`
	Journal JournalConfig `yaml:"journal"`
}

// GameConfig describes the game page and its round loop
type GameConfig struct {
	URL             string          `yaml:"url"`
	RedactionMarker string          `yaml:"redaction_marker"`
	IdleDelay       time.Duration   `yaml:"idle_delay"`
	Selectors       SelectorsConfig `yaml:"selectors"`
}

// SelectorsConfig holds the CSS selectors for every region the bot reads or clicks
type SelectorsConfig struct {
	Stats         string `yaml:"stats"`
	Candidates    string `yaml:"candidates"`
	CandidateAttr string `yaml:"candidate_attribute"`
	FileName      string `yaml:"file_name"`
	Code          string `yaml:"code"`
	Points        string `yaml:"points"`
	Answer        string `yaml:"answer"`
	Next          string `yaml:"next"`
}

// Candidate returns the selector for the button of one candidate id
func (s SelectorsConfig) Candidate(id string) string {
	return fmt.Sprintf("[%s=%q]", s.CandidateAttr, id)
}

// Required returns the selectors that must be present before a round is read
func (s SelectorsConfig) Required() []string {
	return []string{s.Stats, s.Candidates, s.FileName, s.Code, s.Points}
}

// GitHubConfig contains GitHub API settings
type GitHubConfig struct {
	Host              string        `yaml:"host"`
	Token             string        `yaml:"token"`
	UserAgent         string        `yaml:"user_agent"`
	SearchTimeout     time.Duration `yaml:"search_timeout"`
	RequestsPerSecond int           `yaml:"requests_per_second"`
}

// AuthConfig holds GitHub web login credentials. Empty values are prompted for.
type AuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// BrowserConfig contains browser session settings
type BrowserConfig struct {
	Bin               string        `yaml:"bin"`
	ShowWindow        bool          `yaml:"show_window"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout"`
	CookiesPath       string        `yaml:"cookies_path"`
	LoginHost         string        `yaml:"login_host"`
}

// JournalConfig contains round journal settings
type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load reads and parses config from the given path
func Load(path string) (*Config, error) {
	loadDotEnv()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	expandConfigEnvVars(&cfg)
	clearUnexpanded(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

// Default returns the configuration used when no config file exists
func Default() *Config {
	loadDotEnv()

	cfg := &Config{
		Auth: AuthConfig{
			Username: "${GH_USERNAME}",
			Password: "${GH_PASSWORD}",
		},
		GitHub: GitHubConfig{Token: "${GH_TOKEN}"},
	}
	expandConfigEnvVars(cfg)
	clearUnexpanded(cfg)
	applyDefaults(cfg)
	return cfg
}

// FindConfigPath looks for config in common locations
func FindConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}

	// Check common locations
	paths := []string{
		"stripcode.yaml",
		"stripcode.yml",
		"run/stripcode.yaml",
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	// Check home directory
	if home, err := os.UserHomeDir(); err == nil {
		homePath := filepath.Join(home, ".config", "stripcode-bot", "config.yaml")
		if _, err := os.Stat(homePath); err == nil {
			return homePath
		}
	}

	return ""
}

// loadDotEnv is a no-op when .env does not exist
func loadDotEnv() {
	_ = godotenv.Load()
}

// applyDefaults sets default values for unset fields
func applyDefaults(cfg *Config) {
	if cfg.Game.URL == "" {
		cfg.Game.URL = "https://stripcode.dev/ranked"
	}
	if cfg.Game.RedactionMarker == "" {
		cfg.Game.RedactionMarker = "redacted"
	}
	if cfg.Game.IdleDelay == 0 {
		cfg.Game.IdleDelay = 500 * time.Millisecond
	}

	sel := &cfg.Game.Selectors
	if sel.Stats == "" {
		sel.Stats = "div.text-lg"
	}
	if sel.CandidateAttr == "" {
		sel.CandidateAttr = "phx-value-githubrepoid"
	}
	if sel.Candidates == "" {
		sel.Candidates = fmt.Sprintf("button[%s]", sel.CandidateAttr)
	}
	if sel.FileName == "" {
		sel.FileName = ".code-half > h1"
	}
	if sel.Code == "" {
		sel.Code = "#main-code-block"
	}
	if sel.Points == "" {
		sel.Points = ".code-half > div.text-lg"
	}
	if sel.Answer == "" {
		sel.Answer = ".answer-half div.text-3xl.rounded"
	}
	if sel.Next == "" {
		sel.Next = "[phx-click='nextQuestion']"
	}

	if cfg.GitHub.Host == "" {
		cfg.GitHub.Host = "github.com"
	}
	if cfg.GitHub.UserAgent == "" {
		cfg.GitHub.UserAgent = "kwshi-stripcode-bot"
	}
	if cfg.GitHub.SearchTimeout == 0 {
		cfg.GitHub.SearchTimeout = 30 * time.Second
	}
	if cfg.GitHub.RequestsPerSecond == 0 {
		cfg.GitHub.RequestsPerSecond = 10
	}

	if cfg.Browser.NavigationTimeout == 0 {
		cfg.Browser.NavigationTimeout = 30 * time.Second
	}
	if cfg.Browser.CookiesPath == "" {
		cfg.Browser.CookiesPath = filepath.Join("run", "cookies.json")
	}
	if cfg.Browser.LoginHost == "" {
		cfg.Browser.LoginHost = "github.com"
	}

	if cfg.Journal.Path == "" {
		cfg.Journal.Path = filepath.Join("run", "journal.db")
	}
	// Journal.Enabled defaults to false (zero value) - must be explicitly enabled
}
