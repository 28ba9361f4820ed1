// Package mcp serves gitscribe's offline checks over the Model Context
// Protocol so editors and agents can call them as tools:
//
//   - validate_commit_message checks a message against the commit format
//   - scan_diff_for_secrets runs the non-interactive secret scan on a diff
//   - list_models reports every registered model and whether it is usable
//
// None of the tools contacts a model backend.
//
//	srv := mcp.NewServer(resolve.New(), mcp.WithVersion(version))
//	if err := mcp.ServeStdio(srv); err != nil {
//	    log.Fatal(err)
//	}
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/spetersoncode/gitscribe/resolve"
)

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	name    string
	version string
	log     *zap.Logger
}

// WithName sets the server name reported to MCP clients.
func WithName(name string) ServerOption {
	return func(c *serverConfig) {
		c.name = name
	}
}

// WithVersion sets the server version reported to MCP clients.
func WithVersion(version string) ServerOption {
	return func(c *serverConfig) {
		c.version = version
	}
}

// WithLogger sets the logger for tool calls. Stdout belongs to the
// protocol, so it must not write there.
func WithLogger(l *zap.Logger) ServerOption {
	return func(c *serverConfig) {
		c.log = l
	}
}

// Catalog reports registry models and their availability.
// *resolve.Resolver implements it.
type Catalog interface {
	Catalog(exclusions []string, preferRouter bool) []resolve.Entry
}

// NewServer creates an MCP server exposing the gitscribe tools.
func NewServer(catalog Catalog, opts ...ServerOption) *server.MCPServer {
	cfg := &serverConfig{
		name:    "gitscribe",
		version: "dev",
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := server.NewMCPServer(
		cfg.name,
		cfg.version,
		server.WithToolCapabilities(true),
	)

	t := &tools{catalog: catalog, log: cfg.log}
	s.AddTool(validateTool(), handle(t.log, "validate_commit_message", t.validate))
	s.AddTool(scanTool(), handle(t.log, "scan_diff_for_secrets", t.scan))
	s.AddTool(listModelsTool(), handle(t.log, "list_models", t.listModels))

	return s
}

// ServeStdio serves s over stdin/stdout, the transport used when an MCP
// client starts gitscribe as a subprocess.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// handle adapts a typed tool function to an MCP handler. Arguments are
// decoded from JSON into A and the result is returned as JSON text.
// Errors become tool errors rather than protocol errors.
func handle[A, R any](log *zap.Logger, name string, fn func(ctx context.Context, args A) (R, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args A
		if req.Params.Arguments != nil {
			data, err := json.Marshal(req.Params.Arguments)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to marshal arguments: %v", err)), nil
			}
			if err := json.Unmarshal(data, &args); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
			}
		}

		result, err := fn(ctx, args)
		if err != nil {
			log.Debug("tool failed", zap.String("tool", name), zap.Error(err))
			return mcp.NewToolResultError(err.Error()), nil
		}

		out, err := json.Marshal(result)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}
		log.Debug("tool called", zap.String("tool", name))
		return mcp.NewToolResultText(string(out)), nil
	}
}
