package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docdex/docdex-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Examples:
  # Stdio mode (default, for Claude Desktop)
  docdex mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  docdex mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "docdex": {
        "command": "/path/to/docdex",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	var defaultLimit int
	if configStore != nil {
		// mcp.enabled unset means enabled; only an explicit false
		// blocks serving.
		if v, ok := configStore.Get("mcp.enabled"); ok {
			if enabled, isBool := v.(bool); isBool && !enabled {
				return errors.New("MCP server is disabled (mcp.enabled = false)")
			}
		}
		if !cmd.Flags().Changed("port") {
			if p := configStore.GetInt("mcp.port"); p > 0 {
				port = p
			}
		}
		defaultLimit = configStore.GetInt("search.default_limit")
	}

	ports := &mcp.Ports{
		Search:       searchService,
		Document:     documentService,
		Ingest:       ingestService,
		DefaultLimit: defaultLimit,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
