// tools_versions.go implements MCP tools for version read and write operations.
//
// These tools mirror the CLI commands (ls, show, write, history) but return
// structured JSON for LLM consumption rather than human-readable text.
//
// Design principles:
//
//  1. Author attribution: All write operations require an author parameter to
//     maintain a complete audit trail. This distinguishes between different
//     LLM agents (claude-code, cursor, etc.) and human CLI usage.
//
//  2. Error handling: Errors return MCP tool error results rather than Go
//     errors. This ensures the LLM receives actionable feedback it can parse
//     and potentially retry, rather than causing the entire tool call to fail
//     at the protocol level.

package mcp

import (
	"context"

	"github.com/caldera-cms/vers/internal/engine"
	"github.com/caldera-cms/vers/internal/log"
	"github.com/caldera-cms/vers/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// listContent handles vers_list tool calls.
func (h *handlers) listContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	ctype := getString(req, "type", "")

	items, err := h.svc.ListContent(ctx, ctype)

	log.Event("mcp:list", "list").Author("mcp").Detail("type", ctype).Detail("count", len(items)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(items)
}

// readVersion handles vers_read tool calls.
func (h *handlers) readVersion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
	ver := getInt(req, "version", 0)

	var v *store.Version
	if ver > 0 {
		v, err = h.svc.Get(ctx, id, ctype, ver)
	} else {
		v, err = h.svc.Latest(ctx, id, ctype)
	}

	log.Event("mcp:read", "read").Author("mcp").Item(id, ctype).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(v.ToJSON(true))
}

// writeVersion handles vers_write tool calls.
func (h *handlers) writeVersion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content is required"), nil //nolint:nilerr
	}
	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError("author is required"), nil //nolint:nilerr
	}

	v, created, err := h.svc.Create(ctx, id, ctype, engine.CreateInput{
		Title:   getString(req, "title", ""),
		Content: content,
		Summary: getString(req, "summary", ""),
		Major:   getBool(req, "major", false),
		Tags:    getStrings(req, "tags"),
		Author:  author,
	})

	b := log.Event("mcp:write", "write").Author(author).Item(id, ctype).Detail("created", created)
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

// historyVersions handles vers_history tool calls.
func (h *handlers) historyVersions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	versions, err := h.svc.History(ctx, id, ctype, store.HistoryOptions{
		MajorOnly: getBool(req, "major_only", false),
		Limit:     getInt(req, "limit", 0),
	})

	log.Event("mcp:history", "history").Author("mcp").Item(id, ctype).Detail("count", len(versions)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := make([]store.VersionJSON, len(versions))
	for i := range versions {
		out[i] = versions[i].ToJSON(false)
	}
	return jsonResult(out)
}
