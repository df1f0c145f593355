// ABOUTME: MCP command to start the MCP server.
// ABOUTME: Runs on stdio for integration with AI agents.

package main

import (
	"github.com/spf13/cobra"

	"github.com/harper/jot/internal/mcp"
)

func newMCPCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server",
		Long:  `Start the Model Context Protocol server for AI agent integration.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := mcp.NewServer(e.notes, version,
				mcp.WithClock(e.now),
				mcp.WithLogger(e.logger),
			)
			return server.Serve(cmd.Context())
		},
	}
}
