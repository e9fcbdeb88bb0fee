// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasmerge capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"log/slog"
	"os"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasmerge"
	"github.com/erraggy/oasmerge/parser"
)

const serverInstructions = `oasmerge MCP server. Merges several OpenAPI 3.x documents into one and inspects documents before merging.

Configuration: All defaults are configurable via OASMERGE_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- OASMERGE_TITLE, OASMERGE_VERSION: default info.title and info.version of merged documents
- OASMERGE_SERVERS: comma-separated default server URLs
- OASMERGE_SCHEMA_CONFLICT (default: rename): rename, first-wins or fail
- OASMERGE_VALIDATE (default: false): validate sources before merging
- OASMERGE_MAX_SOURCES (default: 50): maximum sources per merge
- OASMERGE_MAX_INLINE_SIZE (default: 10MiB): maximum inline content size
- OASMERGE_CACHE_ENABLED (default: true): disable parse caching entirely

Caching: Parsed documents are cached per session. File entries use path+mtime as key (auto-invalidated on change). A background sweeper removes expired entries.`

// logger receives merge debug output. Run points it at stderr; stdout
// belongs to the MCP transport.
var logger parser.Logger = parser.NopLogger{}

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled. level sets the minimum level logged to stderr.
func Run(ctx context.Context, level slog.Level) error {
	logger = parser.NewSlogAdapter(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasmerge", Version: oasmerge.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "merge",
		Description: "Merge OpenAPI 3.x documents into one. Each source may carry a path_prefix and an operation_id_prefix. Identical schemas are deduplicated; differing schemas with the same name are resolved by schema_conflict (rename, first-wins, fail). Info and servers come only from the arguments or OASMERGE_* defaults. Returns warnings for dropped paths, renamed schemas, duplicate operationIds and differing security schemes. Use output to write to a file instead of returning inline.",
	}, handleMerge)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse",
		Description: "Parse one OpenAPI 3.x document and summarize what a merge would take from it: paths, operationIds, component schema names, security schemes, tags and x-tagGroups. Use before merge to choose prefixes.",
	}, handleParse)
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
