package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/mcp"
	"github.com/custodia-labs/docuflow-cli/internal/logger"
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

By default, the server communicates over stdio using JSON-RPC.
Use --http to serve streamable HTTP instead.

Examples:
  # Stdio mode (default)
  docuflow mcp serve

  # HTTP mode
  docuflow mcp serve --http :8090

Assistant configuration:
  {
    "mcpServers": {
      "docuflow": {
        "command": "/path/to/docuflow",
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
		Invoices:  invoiceService,
		Contracts: contractService,
		Workflow:  workflowService,
		Reports:   reportService,
		Dashboard: dashboardService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if addr != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://%s\n", addr)
		return server.RunHTTP(commandContext(cmd), addr)
	}

	logger.Debug("MCP server on stdio")
	return server.Run(commandContext(cmd))
}
