package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kwshi/stripcode-bot/internal/auth"
	"github.com/kwshi/stripcode-bot/internal/browser"
)

func newLoginCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in through GitHub and save the session cookies",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if force {
				if err := os.Remove(cfg.Browser.CookiesPath); err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("failed to remove saved cookies: %w", err)
				}
			}

			session := browser.NewSession(cfg, auth.NewPrompter(cfg.Auth, os.Stdin, os.Stderr), logger)
			defer session.Close()

			if err := session.Open(ctx); err != nil {
				return fmt.Errorf("failed to open browser: %w", err)
			}
			if err := session.EnsureAuthenticated(ctx); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			if err := session.SaveCookies(ctx); err != nil {
				return err
			}

			fmt.Printf("Session saved to %s\n", cfg.Browser.CookiesPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "discard saved cookies and log in again")

	return cmd
}
