// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasforge capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/erraggy/oasforge"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `oasforge MCP server — merges schema fragments, parses validation rules, and encodes schemas for any OpenAPI 3.x version.

Configuration: defaults are configurable via OASFORGE_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- OASFORGE_DEFAULT_VERSION (default: 3.1.2) — target version when a tool call omits one
- OASFORGE_INDENT (default: 2) — JSON output indent width

Versions: encode_schema accepts any 3.0.x or 3.1.x version plus the "3.0" and "3.1" shorthands. The 3.1 family renders nullability as type arrays; 3.0 renders the nullable keyword.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasforge", Version: oasforge.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "encode_schema",
		Description: "Encode a canonical schema (JSON) for a target OpenAPI version. The 3.1 family emits nullability as a type array or a {\"type\":\"null\"} composition member; 3.0.x emits nullable:true. Accepts versions like 3.0.3, 3.1.0, or the shorthands 3.0 and 3.1.",
	}, handleEncodeSchema)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "merge_fragments",
		Description: "Merge partial schema fragments into one canonical schema using precedence tiers (annotation > structure > type-info > rule > fallback). Each fragment carries a tier name and a schema object; same-tier conflicts keep the earliest fragment and are reported as warnings.",
	}, handleMergeFragments)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse_rules",
		Description: "Parse a validation rule string (e.g. \"required|string|min:3|max:64\" or \"required,email\") into the schema constraints it implies. Returns the schema fragment and whether the rules mark the value required.",
	}, handleParseRules)
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
