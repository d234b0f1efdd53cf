package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/kwshi/stripcode-bot/internal/journal"
)

func newHistoryCmd() *cobra.Command {
	var (
		since   string
		limit   int
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show journalled rounds",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			sinceTime, err := journal.ParseSince(since, time.Now())
			if err != nil {
				return fmt.Errorf("invalid --since: %w", err)
			}

			store, err := journal.Open(cfg.Journal.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			if summary {
				sum, err := store.Summary(sinceTime)
				if err != nil {
					return err
				}
				printSummary(sum)
				return nil
			}

			records, err := store.List(sinceTime, limit)
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Println("No rounds found")
				return nil
			}

			for _, rec := range records {
				printRecord(&rec)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "only rounds newer than this (e.g. 24h, 7d)")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum rounds to show (0 = all)")
	cmd.Flags().BoolVar(&summary, "summary", false, "print totals instead of rounds")

	return cmd
}

func printRecord(rec *journal.Record) {
	ts := rec.StartedAt.Local().Format("2006-01-02 15:04:05")

	if !rec.Decided() {
		fmt.Printf("%s  FAILED   %-18s %s\n", ts, rec.Kind, rec.Failure)
		return
	}

	mode := "guessed"
	if rec.DryRun {
		mode = "dry-run"
	}
	fmt.Printf("%s  %-8s %s", ts, mode, rec.ChosenName())
	if rec.Token != "" {
		fmt.Printf("  token=%s", rec.Token)
	}
	if rec.Verdict != "" {
		fmt.Printf("  %q", rec.Verdict)
	}
	fmt.Println()
}

func printSummary(sum journal.Summary) {
	fmt.Printf("Rounds:  %d\n", sum.Rounds)
	fmt.Printf("Decided: %d (%d dry-run)\n", sum.Decided, sum.DryRun)
	fmt.Printf("Failed:  %d\n", sum.Failed)

	kinds := make([]string, 0, len(sum.ByKind))
	for k := range sum.ByKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Printf("  - %s: %d\n", k, sum.ByKind[k])
	}

	if sum.LastPoints != "" {
		fmt.Printf("Total points: %s\n", sum.LastPoints)
	}
}
