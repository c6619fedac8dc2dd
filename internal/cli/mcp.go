package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rubyscope/rubyscope/internal/config"
	"github.com/rubyscope/rubyscope/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for Ruby outline extraction",
	Long: `Start the Model Context Protocol (MCP) server that lets LLM-powered coding
assistants request Ruby file outlines.

The MCP server:
- Provides outlines via the ruby_outline tool
- Caches extracted outlines and invalidates them on file changes
- Communicates via stdio (standard MCP transport)

Example:
  rubyscope mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration from .rubyscope/config.yml
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Rubyscope MCP Server\nProject Root: %s\n\n", rootDir)

	server, err := mcp.NewMCPServer(cfg, rootDir)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	// Serve (blocks until shutdown)
	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	return nil
}
