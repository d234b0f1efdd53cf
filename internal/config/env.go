package config

import (
	"os"
	"regexp"
)

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable values
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// Extract variable name from ${VAR_NAME}
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if value := os.Getenv(varName); value != "" {
			return value
		}
		return match // Keep original if env var not set
	})
}

// expandConfigEnvVars expands environment variables in config string fields
func expandConfigEnvVars(cfg *Config) {
	cfg.GitHub.Token = expandEnvVars(cfg.GitHub.Token)
	cfg.Auth.Username = expandEnvVars(cfg.Auth.Username)
	cfg.Auth.Password = expandEnvVars(cfg.Auth.Password)
	cfg.Browser.Bin = expandEnvVars(cfg.Browser.Bin)
}

// clearUnexpanded blanks secrets whose variables were not set, so callers
// fall back to prompting or the gh credential store
func clearUnexpanded(cfg *Config) {
	for _, s := range []*string{&cfg.GitHub.Token, &cfg.Auth.Username, &cfg.Auth.Password} {
		if envVarPattern.MatchString(*s) {
			*s = ""
		}
	}
}
