package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var purgeForce bool

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove the entire ingested corpus",
	Long: `Removes every document, section, chunk, and index entry from the
store. The original source files are untouched; re-running ingest
rebuilds the corpus.`,
	Args: cobra.NoArgs,
	RunE: runPurge,
}

func init() {
	purgeCmd.Flags().BoolVarP(&purgeForce, "force", "f", false, "skip the confirmation prompt")
	rootCmd.AddCommand(purgeCmd)
}

func runPurge(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	if !purgeForce {
		cmd.Print("This removes all ingested documents. Continue? [y/N]: ")
		var answer string
		if _, err := fmt.Fscanln(cmd.InOrStdin(), &answer); err != nil || (answer != "y" && answer != "Y") {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := ingestService.Purge(cmd.Context()); err != nil {
		return fmt.Errorf("purge failed: %w", err)
	}

	cmd.Println("Corpus purged.")
	return nil
}
