// tools_compare.go implements the MCP tool for comparing versions.
//
// Compare enables LLMs to understand what changed between versions,
// supporting review and audit workflows. Results come from the persisted
// comparison cache, so repeated compares of the same pair are cheap.

package mcp

import (
	"context"

	"github.com/caldera-cms/vers/internal/diff"
	"github.com/caldera-cms/vers/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// compareVersions handles vers_compare tool calls.
func (h *handlers) compareVersions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
	from := getInt(req, "from", 0)
	to := getInt(req, "to", 0)
	if from < 1 || to < 1 {
		return mcp.NewToolResultError("from and to version numbers are required"), nil
	}

	kind, err := diff.ParseKind(getString(req, "kind", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil //nolint:nilerr
	}

	cmp, err := h.svc.Compare(ctx, id, ctype, from, to, kind)

	log.Event("mcp:compare", "compare").
		Author("mcp").
		Item(id, ctype).
		Detail("from", from).
		Detail("to", to).
		Detail("kind", string(kind)).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(cmp)
}
