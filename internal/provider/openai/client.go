// Package openai implements a chat backend on the OpenAI SDK. Any
// OpenAI-compatible endpoint, including the routing services, is reached
// by pointing the client at a different base URL.
package openai

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	ai "github.com/spetersoncode/gitscribe"
	"github.com/spetersoncode/gitscribe/internal/provider"
)

// Base URLs of the OpenAI-compatible services gitscribe talks to.
const (
	BaseURLDeepSeek   = "https://api.deepseek.com/v1"
	BaseURLMistral    = "https://api.mistral.ai/v1"
	BaseURLXAI        = "https://api.x.ai/v1"
	BaseURLOpenRouter = "https://openrouter.ai/api/v1"
	BaseURLRequesty   = "https://router.requesty.ai/v1"
)

// ErrNoChoices is returned when a completion carries no choices.
var ErrNoChoices = errors.New("openai: response contained no choices")

// Client wraps the OpenAI SDK to implement ai.ChatProvider.
type Client struct {
	client *openai.Client
}

// ClientOption configures the client.
type ClientOption func(*settings)

type settings struct {
	reqOpts []option.RequestOption
}

// WithBaseURL points the client at an OpenAI-compatible endpoint.
func WithBaseURL(url string) ClientOption {
	return func(s *settings) {
		s.reqOpts = append(s.reqOpts, option.WithBaseURL(url))
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) ClientOption {
	return func(s *settings) {
		s.reqOpts = append(s.reqOpts, option.WithHeader(key, value))
	}
}

// New creates a client with the given API key. SDK-level retries are
// disabled; callers retry through internal/retry.
func New(apiKey string, opts ...ClientOption) *Client {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}
	reqOpts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, s.reqOpts...)

	client := openai.NewClient(reqOpts...)
	return &Client{client: &client}
}

// Chat sends a conversation and returns a complete response.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	options := ai.ApplyOptions(opts...)
	model := options.Model
	if model == "" {
		return nil, provider.ErrNoModel
	}

	params := openai.ChatCompletionNewParams{
		Model:    model,
		Messages: convertMessages(messages),
	}
	if options.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(options.MaxTokens))
	}
	if options.Temperature != nil {
		params.Temperature = openai.Float(*options.Temperature)
	}
	if options.ResponseSchema != nil {
		format, err := buildSchemaFormat(options.ResponseSchema)
		if err != nil {
			return nil, err
		}
		params.ResponseFormat = format
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrNoChoices
	}

	choice := resp.Choices[0]
	content := choice.Message.Content
	if content == "" && choice.Message.Refusal != "" {
		return nil, ai.NewUserInputError("model refused: "+choice.Message.Refusal, 0, nil)
	}

	return &ai.Response{
		Content:      content,
		FinishReason: string(choice.FinishReason),
		Usage: ai.Usage{
			InputTokens:  int(resp.Usage.PromptTokens),
			OutputTokens: int(resp.Usage.CompletionTokens),
		},
	}, nil
}

// wrapError categorizes SDK API errors; transport errors pass through.
func wrapError(err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	return provider.StatusError(err, apiErr.StatusCode, provider.ResponseHeader(apiErr.Response))
}

var _ ai.ChatProvider = (*Client)(nil)
