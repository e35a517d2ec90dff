// tools_stats.go implements the MCP tool for version statistics.
//
// One tool covers both scopes: with id and type it reports one item's
// history profile, without them it reports database-wide counts.

package mcp

import (
	"context"

	"github.com/caldera-cms/vers/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// statsVersions handles vers_stats tool calls.
func (h *handlers) statsVersions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	id := getString(req, "id", "")
	ctype := getString(req, "type", "")

	if id != "" && ctype != "" {
		st, err := h.svc.VersionStats(ctx, id, ctype)

		log.Event("mcp:stats", "item_stats").Author("mcp").Item(id, ctype).Write(err)

		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(st)
	}
	if id != "" || ctype != "" {
		return mcp.NewToolResultError("id and type must be provided together"), nil
	}

	st, err := h.svc.Stats(ctx)

	log.Event("mcp:stats", "stats").Author("mcp").Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(st)
}
