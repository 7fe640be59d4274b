// Package cli provides the cobra command tree for the docdex binary.
// Commands are thin adapters: they parse flags, call the injected
// driving services and format output.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/docdex/docdex-cli/internal/core/ports/driven"
	"github.com/docdex/docdex-cli/internal/core/ports/driving"
	"github.com/docdex/docdex-cli/internal/logger"
)

// version is the docdex build version.
var version = "0.1.0"

// Injected services. Set by SetServices before Execute.
var (
	searchService   driving.SearchService
	documentService driving.DocumentService
	ingestService   driving.IngestService
	configStore     driven.ConfigStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "docdex",
	Short: "Local documentation search for agents and humans",
	Long: `Docdex ingests a markdown documentation corpus into a local index
and serves ranked full-text search over it, from the command line or
through an MCP server for AI assistants.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Services aggregates everything the command tree needs.
type Services struct {
	Search   driving.SearchService
	Document driving.DocumentService
	Ingest   driving.IngestService
	Config   driven.ConfigStore
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	searchService = s.Search
	documentService = s.Document
	ingestService = s.Ingest
	configStore = s.Config
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
