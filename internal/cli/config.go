package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kwshi/stripcode-bot/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
	}

	cmd.AddCommand(newConfigValidateCmd())
	return cmd
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := config.FindConfigPath(cfgFile)
			if cfgPath == "" {
				return fmt.Errorf("config file not found")
			}

			fmt.Printf("Validating config: %s\n", cfgPath)

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			errs := config.Validate(cfg)
			if len(errs) > 0 {
				fmt.Println("\nValidation errors:")
				for _, e := range errs {
					fmt.Printf("  - %v\n", e)
				}
				return fmt.Errorf("configuration is invalid")
			}

			fmt.Println("\nConfiguration is valid!")
			fmt.Printf("  - Game URL: %s\n", cfg.Game.URL)
			fmt.Printf("  - Redaction marker: %q\n", cfg.Game.RedactionMarker)
			fmt.Printf("  - GitHub host: %s (%d req/s)\n", cfg.GitHub.Host, cfg.GitHub.RequestsPerSecond)
			fmt.Printf("  - Cookies: %s\n", cfg.Browser.CookiesPath)
			if cfg.Journal.Enabled {
				fmt.Printf("  - Journal: %s\n", cfg.Journal.Path)
			} else {
				fmt.Println("  - Journal: disabled")
			}

			return nil
		},
	}
}
