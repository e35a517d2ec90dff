// tools_init.go implements the MCP tool for initialising a new repository.
//
// This tool works without an existing repository, allowing LLMs to bootstrap
// vers. Other tools require initialisation first.

package mcp

import (
	"context"
	"log/slog"

	"github.com/caldera-cms/vers/internal/engine"
	"github.com/caldera-cms/vers/internal/log"
	"github.com/caldera-cms/vers/internal/repo"
	"github.com/mark3labs/mcp-go/mcp"
)

// initRepo handles vers_init tool calls.
func (h *handlers) initRepo(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.svc != nil {
		return mcp.NewToolResultError("repository already initialised"), nil
	}

	err := repo.Init(false, h.db, "")

	log.Event("mcp:init", "init").Author("mcp").Detail("db", h.db).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Open the newly created repository
	svc, err := engine.New(h.db)
	if err != nil {
		return mcp.NewToolResultError("init succeeded but failed to open repository: " + err.Error()), nil
	}
	h.svc = svc

	slog.Info("repository initialised", "db", h.db)

	return mcp.NewToolResultText("repository initialised"), nil
}
