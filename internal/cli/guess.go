package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kwshi/stripcode-bot/internal/pipeline"
	"github.com/kwshi/stripcode-bot/pkg/models"
)

func newGuessCmd() *cobra.Command {
	var (
		candidates []string
		fileName   string
		codeFile   string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "guess",
		Short: "Resolve a round offline (debugging/testing)",
		Long: `Run the resolution engine on evidence given on the command line.
The code snippet is read from --code-file, or stdin when it is "-".`,
		Example: `  stripcode-bot guess --candidates 10270250,29028775 --file-name redacted.js --code-file snippet.js`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			code, err := readCode(codeFile, cmd.InOrStdin())
			if err != nil {
				return err
			}

			ev := &models.RoundEvidence{
				CandidateIDs: candidates,
				CodeBlock:    &code,
			}
			if cmd.Flags().Changed("file-name") {
				ev.FileNameHint = &fileName
			}

			engine, gh, err := newEngine(cfg)
			if err != nil {
				return err
			}
			defer gh.Close()

			out, roundErr := engine.ResolveRound(ctx, ev)

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(out); err != nil {
					return err
				}
			} else {
				pipeline.PrintOutcome(out)
			}

			if roundErr != nil {
				return fmt.Errorf("round failed: %w", roundErr)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&candidates, "candidates", nil, "candidate repository ids")
	cmd.Flags().StringVar(&fileName, "file-name", "", "file name shown above the snippet")
	cmd.Flags().StringVar(&codeFile, "code-file", "-", "file containing the snippet")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the outcome as JSON")

	return cmd
}

func readCode(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read code: %w", err)
	}
	return string(data), nil
}
