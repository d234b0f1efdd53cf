package config

import (
	"fmt"
	"net/url"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for errors
func Validate(cfg *Config) []error {
	var errs []error

	// Validate game config
	if cfg.Game.URL == "" {
		errs = append(errs, ValidationError{"game.url", "required"})
	} else if u, err := url.Parse(cfg.Game.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{"game.url", "must be an absolute URL"})
	}

	if cfg.Game.RedactionMarker == "" {
		errs = append(errs, ValidationError{"game.redaction_marker", "required"})
	}

	if cfg.Game.IdleDelay < 0 {
		errs = append(errs, ValidationError{"game.idle_delay", "must not be negative"})
	}

	selectors := []struct {
		field string
		value string
	}{
		{"game.selectors.stats", cfg.Game.Selectors.Stats},
		{"game.selectors.candidates", cfg.Game.Selectors.Candidates},
		{"game.selectors.candidate_attribute", cfg.Game.Selectors.CandidateAttr},
		{"game.selectors.file_name", cfg.Game.Selectors.FileName},
		{"game.selectors.code", cfg.Game.Selectors.Code},
		{"game.selectors.points", cfg.Game.Selectors.Points},
		{"game.selectors.answer", cfg.Game.Selectors.Answer},
		{"game.selectors.next", cfg.Game.Selectors.Next},
	}
	for _, s := range selectors {
		if s.value == "" {
			errs = append(errs, ValidationError{s.field, "required"})
		}
	}

	// Validate GitHub config
	if cfg.GitHub.Host == "" {
		errs = append(errs, ValidationError{"github.host", "required"})
	}

	if cfg.GitHub.RequestsPerSecond < 0 {
		errs = append(errs, ValidationError{"github.requests_per_second", "must not be negative"})
	}

	if cfg.GitHub.SearchTimeout < 0 {
		errs = append(errs, ValidationError{"github.search_timeout", "must not be negative"})
	}

	// Validate browser config
	if cfg.Browser.CookiesPath == "" {
		errs = append(errs, ValidationError{"browser.cookies_path", "required"})
	}

	if cfg.Browser.NavigationTimeout < 0 {
		errs = append(errs, ValidationError{"browser.navigation_timeout", "must not be negative"})
	}

	// Validate journal config (only if enabled)
	if cfg.Journal.Enabled && cfg.Journal.Path == "" {
		errs = append(errs, ValidationError{"journal.path", "required when journal is enabled"})
	}

	return errs
}
