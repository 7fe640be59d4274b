package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Ingest a documentation corpus",
	Long: `Walks the given directory (or the configured corpus.root), parses
every markdown file into sections and chunks, and replaces the indexed
copy of each document atomically. Re-running ingestion is idempotent.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	root := ""
	if len(args) > 0 {
		root = args[0]
	} else if configStore != nil {
		root = configStore.GetString("corpus.root")
	}
	if root == "" {
		return errors.New("no corpus path given and corpus.root is not configured")
	}

	report, err := ingestService.IngestCorpus(cmd.Context(), root)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	cmd.Printf("Ingested %d documents in %s (run %s)\n",
		report.DocumentsProcessed, report.Duration.Round(time.Millisecond), report.RunID)

	if report.DocumentsFailed > 0 {
		cmd.Printf("%d documents failed:\n", report.DocumentsFailed)
		for _, failure := range report.Failures {
			cmd.Printf("  %s: %s\n", failure.SourcePath, failure.Reason)
		}
	}

	return nil
}
