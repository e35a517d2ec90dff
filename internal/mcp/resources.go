// resources.go implements MCP resource handlers for content access.
//
// MCP resources provide read-only access to versioned content via URI
// schemes, enabling LLM clients to reference snapshots without using tools.
// This is useful for context loading where the LLM needs content but isn't
// performing an action.
//
// Design: Resource URIs follow the pattern vers://content/{id}/{type}[/v/{version}].
// Version is optional; omitting it returns the current version. This mirrors
// the CLI's "show" command behaviour.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

var (
	// ErrInvalidURI indicates a malformed resource URI, helping clients
	// debug URI construction issues.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyID indicates a missing content identifier in a resource URI.
	ErrEmptyID = errors.New("empty content identifier")
)

// readContentResource reads a version and returns it as resource contents.
func (h *handlers) readContentResource(ctx context.Context, uri string) ([]mcp.ResourceContents, error) {
	if h.svc == nil {
		return nil, errors.New(ErrNotInitialised)
	}

	id, ctype, version, err := parseContentURI(uri)
	if err != nil {
		return nil, err
	}

	var content string
	if version > 0 {
		v, err := h.svc.Get(ctx, id, ctype, version)
		if err != nil {
			return nil, err
		}
		content = v.Content
	} else {
		v, err := h.svc.Latest(ctx, id, ctype)
		if err != nil {
			return nil, err
		}
		content = v.Content
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     content,
		},
	}, nil
}

// parseContentURI extracts id, type and version from a content URI.
// Supports: vers://content/{id}/{type} and vers://content/{id}/{type}/v/{version}
func parseContentURI(uri string) (id, ctype string, version int, err error) {
	const prefix = "vers://content/"
	if !strings.HasPrefix(uri, prefix) {
		return "", "", 0, fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}

	rest := strings.TrimPrefix(uri, prefix)
	if rest == "" {
		return "", "", 0, ErrEmptyID
	}

	// Check for version suffix: /v/{version}
	if idx := strings.LastIndex(rest, "/v/"); idx != -1 {
		vStr := rest[idx+3:]
		version, err = strconv.Atoi(vStr)
		if err != nil {
			return "", "", 0, fmt.Errorf("%w: invalid version %s", ErrInvalidURI, vStr)
		}
		rest = rest[:idx]
	}

	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", 0, fmt.Errorf("%w: expected {id}/{type}, got %s", ErrInvalidURI, rest)
	}
	return parts[0], parts[1], version, nil
}
