// tools_restore.go implements the MCP tool for restoring historical versions.
//
// Restore re-creates a past snapshot as a new current version. History is
// never rewritten, so an LLM can always undo its own restore by restoring
// again.

package mcp

import (
	"context"

	"github.com/caldera-cms/vers/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// restoreVersion handles vers_restore tool calls.
func (h *handlers) restoreVersion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil //nolint:nilerr
	}
	ctype, err := req.RequireString("type")
	if err != nil {
		return mcp.NewToolResultError("type is required"), nil //nolint:nilerr
	}
	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError("author is required"), nil //nolint:nilerr
	}
	target := getInt(req, "version", 0)
	if target < 1 {
		return mcp.NewToolResultError("version is required"), nil
	}

	v, created, err := h.svc.Restore(ctx, id, ctype, target, author)

	b := log.Event("mcp:restore", "restore").
		Author(author).
		Item(id, ctype).
		Detail("target", target).
		Detail("created", created)
	if v != nil {
		b = b.ResultVersion(v.Version)
	}
	b.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"created": created,
		"version": v.ToJSON(false),
	})
}
