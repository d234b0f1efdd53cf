package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kwshi/stripcode-bot/internal/candidate"
	"github.com/kwshi/stripcode-bot/internal/config"
	"github.com/kwshi/stripcode-bot/internal/github"
	"github.com/kwshi/stripcode-bot/internal/pipeline"
)

var (
	cfgFile string
	dryRun  bool
	verbose bool
	version = "dev"

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "stripcode-bot",
	Short: "Plays stripcode.dev ranked rounds",
	Long: `stripcode-bot reads each stripcode.dev round from a browser session,
guesses which candidate repository the snippet came from using GitHub code
search, and submits the guess.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "resolve rounds without clicking a guess")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newGuessCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("stripcode-bot version %s\n", version)
		},
	}
}

// loadConfig reads the config file when one exists, falling back to defaults
func loadConfig() (*config.Config, error) {
	var cfg *config.Config

	cfgPath := config.FindConfigPath(cfgFile)
	if cfgPath == "" {
		cfg = config.Default()
	} else {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if errs := config.Validate(cfg); len(errs) > 0 {
		for _, e := range errs {
			fmt.Printf("config error: %v\n", e)
		}
		return nil, fmt.Errorf("invalid configuration")
	}

	return cfg, nil
}

// newEngine wires the round resolver to the GitHub API
func newEngine(cfg *config.Config) (*pipeline.RoundResolver, *github.Client, error) {
	gh, err := github.NewClient(github.Options{
		Host:              cfg.GitHub.Host,
		Token:             cfg.GitHub.Token,
		UserAgent:         cfg.GitHub.UserAgent,
		RequestsPerSecond: cfg.GitHub.RequestsPerSecond,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	resolver := candidate.NewResolver(gh, logger)
	return pipeline.NewRoundResolver(cfg, resolver, gh, logger), gh, nil
}
