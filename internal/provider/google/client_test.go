package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	ai "github.com/spetersoncode/gitscribe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestChat(t *testing.T) {
	t.Run("returns candidate text and usage", func(t *testing.T) {
		var got map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.5-pro:generateContent"), r.URL.Path)
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &got))
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{
				"candidates": [{"content": {"role": "model", "parts": [{"text": "{\"summary_line\":\"Add x\",\"extra_lines\":[]}"}]}, "finishReason": "STOP"}],
				"usageMetadata": {"promptTokenCount": 40, "candidatesTokenCount": 8}
			}`)
		}))
		defer srv.Close()

		c, err := New(context.Background(), "g-key", WithBaseURL(srv.URL))
		require.NoError(t, err)

		schema := &ai.ResponseSchema{Schema: json.RawMessage(`{"type":"object","properties":{"summary_line":{"type":"string"}},"required":["summary_line"]}`)}
		resp, err := c.Chat(context.Background(),
			[]ai.Message{ai.SystemMessage("rules"), ai.UserMessage("diff")},
			ai.WithModel("gemini-2.5-pro"), ai.WithResponseSchema(schema))
		require.NoError(t, err)

		assert.Contains(t, got, "systemInstruction")
		assert.Equal(t, `{"summary_line":"Add x","extra_lines":[]}`, resp.Content)
		assert.Equal(t, "STOP", resp.FinishReason)
		assert.Equal(t, ai.Usage{InputTokens: 40, OutputTokens: 8}, resp.Usage)
	})
}

func TestConvertMessages(t *testing.T) {
	contents, system := convertMessages([]ai.Message{
		ai.SystemMessage("a"),
		ai.SystemMessage("b"),
		ai.UserMessage("hi"),
		{Role: ai.RoleAssistant, Content: "ok"},
		ai.UserMessage(""),
	})

	require.NotNil(t, system)
	assert.Len(t, system.Parts, 2)
	require.Len(t, contents, 2)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "model", contents[1].Role)

	_, system = convertMessages([]ai.Message{ai.UserMessage("x")})
	assert.Nil(t, system)
}

func TestConvertJSONSchema(t *testing.T) {
	schema, err := ConvertJSONSchema(json.RawMessage(`{
		"type": "object",
		"properties": {
			"summary_line": {"type": "string", "description": "first line"},
			"extra_lines": {"type": "array", "items": {"type": "string"}}
		},
		"required": ["summary_line", "extra_lines"]
	}`))
	require.NoError(t, err)

	assert.Equal(t, genai.TypeObject, schema.Type)
	assert.Equal(t, genai.TypeString, schema.Properties["summary_line"].Type)
	assert.Equal(t, "first line", schema.Properties["summary_line"].Description)
	assert.Equal(t, genai.TypeArray, schema.Properties["extra_lines"].Type)
	assert.Equal(t, genai.TypeString, schema.Properties["extra_lines"].Items.Type)
	assert.Equal(t, []string{"summary_line", "extra_lines"}, schema.PropertyOrdering)

	_, err = ConvertJSONSchema(json.RawMessage(`[`))
	assert.Error(t, err)
}

func TestWrapError(t *testing.T) {
	err := wrapError(fmt.Errorf("generate: %w", genai.APIError{Code: 503, Message: "unavailable"}))
	assert.True(t, ai.IsTransient(err))
	assert.Equal(t, 503, ai.StatusCodeOf(err))

	assert.True(t, ai.IsUserInput(wrapError(genai.APIError{Code: 400})))

	plain := fmt.Errorf("dial tcp: refused")
	assert.Same(t, plain, wrapError(plain))
}

func TestBlockedError(t *testing.T) {
	assert.Equal(t, "google: prompt blocked: SAFETY", (&BlockedError{Reason: "SAFETY"}).Error())
}
