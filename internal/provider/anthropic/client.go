// Package anthropic implements a chat backend on the Anthropic SDK.
//
// Structured output is obtained by forcing a single tool whose input schema
// is the requested response schema; the tool input becomes the response.
package anthropic

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	ai "github.com/spetersoncode/gitscribe"
	"github.com/spetersoncode/gitscribe/internal/provider"
)

const defaultMaxTokens = 4096

// Client wraps the Anthropic SDK to implement ai.ChatProvider.
type Client struct {
	client *anthropic.Client
}

// ClientOption configures the client.
type ClientOption func(*settings)

type settings struct {
	reqOpts []option.RequestOption
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(url string) ClientOption {
	return func(s *settings) {
		s.reqOpts = append(s.reqOpts, option.WithBaseURL(url))
	}
}

// New creates a client with the given API key. SDK-level retries are disabled.
func New(apiKey string, opts ...ClientOption) *Client {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}
	reqOpts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, s.reqOpts...)

	client := anthropic.NewClient(reqOpts...)
	return &Client{client: &client}
}

// Chat sends a conversation and returns a complete response.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	options := ai.ApplyOptions(opts...)
	model := options.Model
	if model == "" {
		return nil, provider.ErrNoModel
	}

	maxTokens := int64(defaultMaxTokens)
	if options.MaxTokens > 0 {
		maxTokens = int64(options.MaxTokens)
	}

	msgs, system := convertMessages(messages)
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		Messages:  msgs,
	}
	if len(system) > 0 {
		params.System = system
	}
	if options.Temperature != nil {
		params.Temperature = anthropic.Float(*options.Temperature)
	}

	var toolName string
	if options.ResponseSchema != nil {
		tool, choice, err := buildJSONTool(options.ResponseSchema)
		if err != nil {
			return nil, err
		}
		params.Tools = []anthropic.ToolUnionParam{tool}
		params.ToolChoice = choice
		toolName = tool.OfTool.Name
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}

	var text strings.Builder
	content := ""
	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			text.WriteString(block.Text)
		case "tool_use":
			if toolName != "" && block.Name == toolName {
				content = string(block.Input)
			}
		}
	}
	if content == "" {
		content = text.String()
	}

	return &ai.Response{
		Content:      content,
		FinishReason: string(resp.StopReason),
		Usage: ai.Usage{
			InputTokens:  int(resp.Usage.InputTokens),
			OutputTokens: int(resp.Usage.OutputTokens),
		},
	}, nil
}

func wrapError(err error) error {
	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	return provider.StatusError(err, apiErr.StatusCode, provider.ResponseHeader(apiErr.Response))
}

var _ ai.ChatProvider = (*Client)(nil)
