package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/dayblocks/internal/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server exposes tools for reading the plan and adding, moving, resizing,
renaming and deleting blocks. The plan lives for as long as the server runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol; status goes to stderr.
		fmt.Fprintln(cmd.ErrOrStderr(), "Starting MCP server...")
		fmt.Fprintln(cmd.ErrOrStderr(), "   The server will communicate via stdio")
		fmt.Fprintln(cmd.ErrOrStderr(), "   Press Ctrl+C to stop")

		ctx := setupSignalHandler()

		// Create and start the MCP server
		server := mcp.NewServer(app.planner, Version)
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}

		return nil
	},
}
