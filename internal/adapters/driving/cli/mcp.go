package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/agricatalog/internal/adapters/driving/mcp"
	"github.com/custodia-labs/agricatalog/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve [source]",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can query a
product catalog.

When a source is given it is loaded before the server starts. Clients can
load another catalog at any time with the load_catalog tool.

By default, the server communicates over stdio using JSON-RPC. Use --port
to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Examples:
  # Stdio mode (default, for desktop assistants)
  agricatalog mcp serve products.xlsx

  # HTTP mode (for MCP Inspector, remote access)
  agricatalog mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "agricatalog": {
        "command": "/path/to/agricatalog",
        "args": ["mcp", "serve", "/path/to/products.xlsx"]
      }
    }
  }`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Catalog:  catalogService,
		Settings: settingsService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	// An explicit source must load. The configured default is best effort
	// since clients can load a catalog themselves.
	ref, err := resolveSource(args, "", "")
	switch {
	case err == nil:
		if _, err := catalogService.Load(cmd.Context(), ref); err != nil {
			if len(args) > 0 {
				return err
			}
			logger.Warn("Default source not loaded: %v", err)
		}
	case len(args) > 0:
		return err
	case !errors.Is(err, errNoSource):
		logger.Warn("Default source not loaded: %v", err)
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
