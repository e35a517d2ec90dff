// serve.go implements the "vers serve" command for MCP server operation.
//
// Design: Unlike other commands that run and exit, serve blocks indefinitely
// handling MCP requests over stdio. It is a noStoreCommand - it manages its
// own service lifecycle instead of using the shared service from root.go, so
// the database connection lives exactly as long as the server.

package cmd

import (
	"github.com/caldera-cms/vers/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Use --db to serve a specific database:
  vers serve --db drafts    # serve vers-drafts.db`,
		RunE: runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	return mcp.Serve(DB())
}

func init() {
	rootCmd.AddCommand(newServeCmd())
}
