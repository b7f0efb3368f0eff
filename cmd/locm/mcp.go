package main

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/peterkuimelis/locm/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the game tools over MCP on stdio",
	Long: `Start an MCP server on stdin/stdout exposing new_game, get_state,
take_action and list_cards. Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	s := server.NewMCPServer(
		"locm",
		"1.0.0",
		server.WithToolCapabilities(false),
	)
	mcp.RegisterTools(s, mcp.NewManager(&e.cfg.Rules, e.catalog, e.logger))

	e.logger.Info("serving MCP on stdio")
	return server.ServeStdio(s)
}
