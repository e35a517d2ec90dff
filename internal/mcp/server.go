// Package mcp implements the Model Context Protocol server, exposing vers
// operations to LLMs. This enables AI assistants to read, write, compare,
// and restore versioned content through a standardised protocol.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/caldera-cms/vers/internal/engine"
	"github.com/caldera-cms/vers/internal/repo"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// ErrNotInitialised is returned by tools when the repository has not been
// initialised. The LLM should call vers_init before using other tools.
const ErrNotInitialised = "repository not initialised - call vers_init first"

// Serve starts the MCP server over stdio, enabling LLM integration.
// Uses stdio transport for compatibility with Claude Desktop and other MCP clients.
//
// Design: The server starts successfully even if no repository exists. This
// allows LLMs to call vers_init to create one, rather than failing with an
// opaque error. Tools that require a repository return ErrNotInitialised
// with clear guidance.
func Serve(db string) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	h := &handlers{db: db}

	svc, err := engine.New(db)
	if err != nil && !errors.Is(err, repo.ErrNotInitialised) {
		slog.Error("failed to open repository", "error", err)
		return err
	}
	if err == nil {
		h.svc = svc
		defer svc.Close()
	} else {
		slog.Info("vers not initialised, starting in uninitialised mode - call vers_init to create a repository")
	}

	s := server.NewMCPServer(
		"vers",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	registerResources(s, h)
	registerTools(s, h)

	slog.Info("vers MCP server ready", "version", Version, "transport", "stdio")

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// handlers provides MCP request handlers with access to the version service.
// The svc field may be nil if the repository has not been initialised.
type handlers struct {
	db  string          // database name for init
	svc *engine.Service // nil if not initialised
}

// requireInit returns an error result if the repository is not initialised.
// Tools that require a repository should call this first.
func (h *handlers) requireInit() *mcp.CallToolResult {
	if h.svc == nil {
		return mcp.NewToolResultError(ErrNotInitialised)
	}
	return nil
}

// registerResources adds URI-based resource access for direct content reading.
func registerResources(s *server.MCPServer, h *handlers) {
	// Current version content by id and type
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"vers://content/{id}/{type}",
			"Content Item",
			mcp.WithTemplateDescription("Read the current version of a content item"),
			mcp.WithTemplateMIMEType("text/plain"),
		),
		h.readContent,
	)

	// Historical version content
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"vers://content/{id}/{type}/v/{version}",
			"Content Version",
			mcp.WithTemplateDescription("Read a specific version of a content item"),
			mcp.WithTemplateMIMEType("text/plain"),
		),
		h.readContentVersion,
	)
}

// registerTools exposes vers operations as MCP tools for LLM invocation.
func registerTools(s *server.MCPServer, h *handlers) {
	// Init - works without existing repository
	s.AddTool(
		mcp.NewTool("vers_init",
			mcp.WithDescription("Initialise a new vers repository. Call this first if other tools return 'repository not initialised'."),
		),
		h.initRepo,
	)

	// List content items
	s.AddTool(
		mcp.NewTool("vers_list",
			mcp.WithDescription("List versioned content items with version counts"),
			mcp.WithString("type", mcp.Description("Filter by content type")),
		),
		h.listContent,
	)

	// Read a version
	s.AddTool(
		mcp.NewTool("vers_read",
			mcp.WithDescription("Read a version of a content item"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Content item identifier")),
			mcp.WithString("type", mcp.Required(), mcp.Description("Content type (e.g. speech, bio, press_release)")),
			mcp.WithNumber("version", mcp.Description("Specific version to read (default: latest)")),
		),
		h.readVersion,
	)

	// Write a new version
	s.AddTool(
		mcp.NewTool("vers_write",
			mcp.WithDescription("Write a new version of a content item. Identical content is deduplicated and reports the existing version."),
			mcp.WithString("id", mcp.Required(), mcp.Description("Content item identifier")),
			mcp.WithString("type", mcp.Required(), mcp.Description("Content type")),
			mcp.WithString("content", mcp.Required(), mcp.Description("Full content snapshot")),
			mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution")),
			mcp.WithString("title", mcp.Description("Human-readable title")),
			mcp.WithString("summary", mcp.Description("Change summary")),
			mcp.WithBoolean("major", mcp.Description("Mark as a major milestone version")),
			mcp.WithArray("tags", mcp.Description("Tags to apply to the new version")),
		),
		h.writeVersion,
	)

	// History
	s.AddTool(
		mcp.NewTool("vers_history",
			mcp.WithDescription("Get version history for a content item, newest first"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Content item identifier")),
			mcp.WithString("type", mcp.Required(), mcp.Description("Content type")),
			mcp.WithNumber("limit", mcp.Description("Maximum versions to return")),
			mcp.WithBoolean("major_only", mcp.Description("Only versions flagged as major")),
		),
		h.historyVersions,
	)

	// Compare
	s.AddTool(
		mcp.NewTool("vers_compare",
			mcp.WithDescription("Compare two versions of a content item. Results are cached."),
			mcp.WithString("id", mcp.Required(), mcp.Description("Content item identifier")),
			mcp.WithString("type", mcp.Required(), mcp.Description("Content type")),
			mcp.WithNumber("from", mcp.Required(), mcp.Description("Older version number")),
			mcp.WithNumber("to", mcp.Required(), mcp.Description("Newer version number")),
			mcp.WithString("kind", mcp.Description("Granularity: full (lines), structural (words), text_only (characters)")),
		),
		h.compareVersions,
	)

	// Restore
	s.AddTool(
		mcp.NewTool("vers_restore",
			mcp.WithDescription("Restore a historical version as a new current version. History is never rewritten."),
			mcp.WithString("id", mcp.Required(), mcp.Description("Content item identifier")),
			mcp.WithString("type", mcp.Required(), mcp.Description("Content type")),
			mcp.WithNumber("version", mcp.Required(), mcp.Description("Version number to restore")),
			mcp.WithString("author", mcp.Required(), mcp.Description("Who is performing the restore")),
		),
		h.restoreVersion,
	)

	// Tag add
	s.AddTool(
		mcp.NewTool("vers_tag_add",
			mcp.WithDescription("Add a tag to a version (idempotent)"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Content item identifier")),
			mcp.WithString("type", mcp.Required(), mcp.Description("Content type")),
			mcp.WithNumber("version", mcp.Required(), mcp.Description("Version number")),
			mcp.WithString("tag", mcp.Required(), mcp.Description("Tag to add")),
		),
		h.tagAdd,
	)

	// Tag remove
	s.AddTool(
		mcp.NewTool("vers_tag_remove",
			mcp.WithDescription("Remove a tag from a version (no-op if absent)"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Content item identifier")),
			mcp.WithString("type", mcp.Required(), mcp.Description("Content type")),
			mcp.WithNumber("version", mcp.Required(), mcp.Description("Version number")),
			mcp.WithString("tag", mcp.Required(), mcp.Description("Tag to remove")),
		),
		h.tagRemove,
	)

	// Stats
	s.AddTool(
		mcp.NewTool("vers_stats",
			mcp.WithDescription("Get version statistics for one item, or database-wide stats when id/type are omitted"),
			mcp.WithString("id", mcp.Description("Content item identifier")),
			mcp.WithString("type", mcp.Description("Content type")),
		),
		h.statsVersions,
	)
}

// readContent handles vers://content/{id}/{type} resource requests.
func (h *handlers) readContent(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return h.readContentResource(ctx, req.Params.URI)
}

// readContentVersion handles vers://content/{id}/{type}/v/{version} resource requests.
func (h *handlers) readContentVersion(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return h.readContentResource(ctx, req.Params.URI)
}
