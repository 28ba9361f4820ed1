package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	ai "github.com/spetersoncode/gitscribe"
	"github.com/spetersoncode/gitscribe/model"
	"github.com/spetersoncode/gitscribe/resolve"
)

type fakeCatalog struct {
	exclusions   []string
	preferRouter bool
}

func (f *fakeCatalog) Catalog(exclusions []string, preferRouter bool) []resolve.Entry {
	f.exclusions, f.preferRouter = exclusions, preferRouter
	return []resolve.Entry{
		{
			Detail:    model.ClaudeSonnet45,
			Available: true,
			Route:     resolve.Route{ModelCode: "anthropic/claude-sonnet-4.5", RouteID: ai.RouteOpenRouter, Credential: "sk-or-secret", Detail: model.ClaudeSonnet45},
		},
		{Detail: model.GPT41},
	}
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	switch c := res.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	}
	t.Fatalf("unexpected content type %T", res.Content[0])
	return ""
}

func call(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Name: name, Arguments: args}}
}

func TestValidateTool(t *testing.T) {
	tl := &tools{}
	h := handle(nopLogger(), "validate_commit_message", tl.validate)

	t.Run("valid message", func(t *testing.T) {
		res, err := h(context.Background(), call("validate_commit_message", map[string]any{
			"message": "Add MCP server for offline checks\n\n- expose validation and scanning",
		}))
		require.NoError(t, err)
		assert.False(t, res.IsError)

		var out ValidateResult
		require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &out))
		assert.True(t, out.Valid)
		assert.Empty(t, out.Reason)
	})

	t.Run("reports the first failing rule", func(t *testing.T) {
		res, err := h(context.Background(), call("validate_commit_message", map[string]any{"message": "   "}))
		require.NoError(t, err)

		assert.JSONEq(t, `{"valid":false,"reason":"message is empty"}`, textOf(t, res))
	})

	t.Run("malformed arguments are a tool error", func(t *testing.T) {
		res, err := h(context.Background(), call("validate_commit_message", map[string]any{"message": 42}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})
}

func TestScanTool(t *testing.T) {
	tl := &tools{log: nopLogger()}
	h := handle(nopLogger(), "scan_diff_for_secrets", tl.scan)

	t.Run("clean diff", func(t *testing.T) {
		res, err := h(context.Background(), call("scan_diff_for_secrets", map[string]any{"diff": "+fmt.Println(\"hi\")"}))
		require.NoError(t, err)
		assert.JSONEq(t, `{"clean":true}`, textOf(t, res))
	})

	t.Run("suspect tokens are reported without asking", func(t *testing.T) {
		diff := "+token := \"q7Zk2Xv9LmP4rT8wYb1NcE6hJ3sD0fGa\""
		res, err := h(context.Background(), call("scan_diff_for_secrets", map[string]any{"diff": diff}))
		require.NoError(t, err)

		var out ScanResult
		require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &out))
		assert.False(t, out.Clean)
		assert.Equal(t, "q7Zk2Xv9LmP4rT8wYb1NcE6hJ3sD0fGa", out.Token)
		assert.Equal(t, diff, out.Line)
	})
}

func TestListModelsTool(t *testing.T) {
	cat := &fakeCatalog{}
	tl := &tools{catalog: cat}
	h := handle(nopLogger(), "list_models", tl.listModels)

	res, err := h(context.Background(), call("list_models", map[string]any{"exclude": "opus, mini", "prefer_router": true}))
	require.NoError(t, err)

	assert.Equal(t, []string{"opus", "mini"}, cat.exclusions)
	assert.True(t, cat.preferRouter)

	text := textOf(t, res)
	assert.NotContains(t, text, "sk-or-secret")

	var out []ModelInfo
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	require.Len(t, out, 2)
	assert.Equal(t, ModelInfo{
		Name:             "claude-sonnet-4-5",
		Provider:         "anthropic",
		ContextWindow:    200_000,
		InputPerMillion:  3,
		OutputPerMillion: 15,
		StructuredOutput: true,
		Available:        true,
		Route:            "openrouter",
	}, out[0])
	assert.False(t, out[1].Available)
	assert.Empty(t, out[1].Route)
}

func TestServer(t *testing.T) {
	srv := NewServer(&fakeCatalog{}, WithName("gitscribe-test"), WithVersion("1.2.3"))
	c, err := client.NewInProcessClient(srv)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))
	defer c.Close()

	info, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    "test-client",
				Version: "1.0.0",
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "gitscribe-test", info.ServerInfo.Name)
	assert.Equal(t, "1.2.3", info.ServerInfo.Version)

	t.Run("lists the tools", func(t *testing.T) {
		list, err := c.ListTools(ctx, mcp.ListToolsRequest{})
		require.NoError(t, err)

		var names []string
		for _, tool := range list.Tools {
			names = append(names, tool.Name)
		}
		assert.ElementsMatch(t, []string{"validate_commit_message", "scan_diff_for_secrets", "list_models"}, names)
	})

	t.Run("calls a tool end to end", func(t *testing.T) {
		res, err := c.CallTool(ctx, call("validate_commit_message", map[string]any{"message": "short"}))
		require.NoError(t, err)
		assert.False(t, res.IsError)
		assert.Contains(t, textOf(t, res), "shorter than 40 characters")
	})
}

func nopLogger() *zap.Logger { return zap.NewNop() }
