package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show ingestion status",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	status, err := ingestService.Status(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	if status.Running {
		cmd.Println("Ingestion: running")
	} else {
		cmd.Println("Ingestion: idle")
	}
	cmd.Printf("  Documents processed: %d\n", status.DocumentsProcessed)
	if status.ErrorCount > 0 {
		cmd.Printf("  Errors: %d\n", status.ErrorCount)
	}
	return nil
}
