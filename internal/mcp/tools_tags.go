// tools_tags.go implements MCP tools for version tagging operations.
//
// Design: Tag operations are idempotent - adding an existing tag or removing
// an absent tag succeeds silently. This simplifies LLM workflows that may
// not track current tag state.

package mcp

import (
	"context"

	"github.com/caldera-cms/vers/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// tagAdd handles vers_tag_add tool calls.
func (h *handlers) tagAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
	tag, err := req.RequireString("tag")
	if err != nil {
		return mcp.NewToolResultError("tag is required"), nil //nolint:nilerr
	}
	ver := getInt(req, "version", 0)
	if ver < 1 {
		return mcp.NewToolResultError("version is required"), nil
	}

	v, err := h.svc.Tag(ctx, id, ctype, ver, tag)

	log.Event("mcp:tag_add", "tag").Author("mcp").Item(id, ctype).Detail("tag", tag).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"key":     v.Key,
		"version": v.Version,
		"tags":    v.Tags,
	})
}

// tagRemove handles vers_tag_remove tool calls.
func (h *handlers) tagRemove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
	tag, err := req.RequireString("tag")
	if err != nil {
		return mcp.NewToolResultError("tag is required"), nil //nolint:nilerr
	}
	ver := getInt(req, "version", 0)
	if ver < 1 {
		return mcp.NewToolResultError("version is required"), nil
	}

	v, err := h.svc.Untag(ctx, id, ctype, ver, tag)

	log.Event("mcp:tag_remove", "untag").Author("mcp").Item(id, ctype).Detail("tag", tag).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"key":     v.Key,
		"version": v.Version,
		"tags":    v.Tags,
	})
}
