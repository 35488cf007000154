package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/medcheck-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can search
candidates and check interactions.

By default, the server communicates over stdio using JSON-RPC.

Use --http to serve streamable HTTP instead, which also exposes /healthz
and Prometheus metrics at /metrics.

Examples:
  # Stdio mode (default)
  medcheck mcp serve

  # HTTP mode
  medcheck mcp serve --http :8080

Desktop client configuration:
  {
    "mcpServers": {
      "medcheck": {
        "command": "/path/to/medcheck",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().String("http", "", "HTTP listen address (empty = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	addr, err := cmd.Flags().GetString("http")
	if err != nil {
		return fmt.Errorf("getting http flag: %w", err)
	}

	ports := &mcp.Ports{
		Search:  searchService,
		Panels:  panelProvider,
		History: historyService,
		Metrics: metricsHandler,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if addr != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://%s/mcp\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
