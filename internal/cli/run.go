package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kwshi/stripcode-bot/internal/auth"
	"github.com/kwshi/stripcode-bot/internal/bot"
	"github.com/kwshi/stripcode-bot/internal/browser"
	"github.com/kwshi/stripcode-bot/internal/journal"
)

func newRunCmd() *cobra.Command {
	var rounds int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Play ranked rounds in a browser",
		Long: `Open the game in Chrome, log in if needed, and play rounds until
interrupted or --rounds have been played. With --dry-run the bot resolves the
current round and logs its decision without clicking.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			engine, gh, err := newEngine(cfg)
			if err != nil {
				return err
			}
			defer gh.Close()

			var j bot.Journal
			if cfg.Journal.Enabled {
				store, err := journal.Open(cfg.Journal.Path)
				if err != nil {
					return err
				}
				defer store.Close()
				j = store
			}

			session := browser.NewSession(cfg, auth.NewPrompter(cfg.Auth, os.Stdin, os.Stderr), logger)
			defer session.Close()

			if err := session.Open(ctx); err != nil {
				return fmt.Errorf("failed to open browser: %w", err)
			}

			runner := bot.NewRunner(cfg, session, session.Page(), engine, j, logger, bot.Options{DryRun: dryRun})

			logger.Info("starting",
				zap.String("url", cfg.Game.URL),
				zap.Int("rounds", rounds),
				zap.Bool("dry_run", dryRun),
				zap.Bool("journal", cfg.Journal.Enabled),
			)
			return runner.Run(ctx, rounds)
		},
	}

	cmd.Flags().IntVar(&rounds, "rounds", 0, "number of rounds to play (0 = until interrupted)")

	return cmd
}
