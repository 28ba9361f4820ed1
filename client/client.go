package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	ai "github.com/spetersoncode/gitscribe"
	"github.com/spetersoncode/gitscribe/internal/provider/anthropic"
	"github.com/spetersoncode/gitscribe/internal/provider/google"
	"github.com/spetersoncode/gitscribe/internal/provider/openai"
	"github.com/spetersoncode/gitscribe/internal/retry"
	"github.com/spetersoncode/gitscribe/resolve"
)

// appTitle identifies gitscribe to routing services that attribute traffic.
const appTitle = "gitscribe"

// compatibleBaseURLs maps providers reached through the OpenAI wire protocol
// to their endpoints.
var compatibleBaseURLs = map[ai.Provider]string{
	ai.ProviderDeepSeek:   openai.BaseURLDeepSeek,
	ai.ProviderMistral:    openai.BaseURLMistral,
	ai.ProviderXAI:        openai.BaseURLXAI,
	ai.ProviderOpenRouter: openai.BaseURLOpenRouter,
	ai.ProviderRequesty:   openai.BaseURLRequesty,
}

// ErrMissingCredential is returned when a route carries no credential.
type ErrMissingCredential struct {
	Route string
}

func (e *ErrMissingCredential) Error() string {
	return fmt.Sprintf("no credential for route %s", e.Route)
}

// ErrUnsupportedProvider is returned for providers without a backend.
type ErrUnsupportedProvider struct {
	Provider ai.Provider
}

func (e *ErrUnsupportedProvider) Error() string {
	return fmt.Sprintf("unsupported provider: %s", e.Provider)
}

// BackendFactory builds the chat backend for a resolved route.
type BackendFactory func(ctx context.Context, route resolve.Route) (ai.ChatProvider, error)

// DefaultBackend builds SDK-backed backends: Anthropic and Google natively,
// everything else through the OpenAI SDK at the provider's base URL.
func DefaultBackend(ctx context.Context, route resolve.Route) (ai.ChatProvider, error) {
	switch route.Provider {
	case ai.ProviderAnthropic:
		return anthropic.New(route.Credential), nil
	case ai.ProviderOpenAI:
		return openai.New(route.Credential), nil
	case ai.ProviderGoogle:
		c, err := google.New(ctx, route.Credential)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Google client: %w", err)
		}
		return c, nil
	}

	baseURL, ok := compatibleBaseURLs[route.Provider]
	if !ok {
		return nil, &ErrUnsupportedProvider{Provider: route.Provider}
	}
	opts := []openai.ClientOption{openai.WithBaseURL(baseURL)}
	if route.RouteID.IsRouter() {
		opts = append(opts, openai.WithHeader("X-Title", appTitle))
	}
	return openai.New(route.Credential, opts...), nil
}

// RetryConfig holds retry parameters.
type RetryConfig = retry.Config

// Config holds client configuration.
type Config struct {
	// Retry configures retries of transient errors. Nil means retry.DefaultConfig().
	Retry *RetryConfig

	// Events receives request events. Sends never block; events are dropped when full.
	Events chan<- Event

	// Backend overrides how backends are built.
	Backend BackendFactory
}

type backendKey struct {
	route      ai.RouteID
	provider   ai.Provider
	credential string
}

// Client sends chat requests over resolved routes. One backend per
// (route, provider, credential) is built on first use and reused; Client is
// safe for concurrent use.
type Client struct {
	retryConfig retry.Config
	events      chan<- Event
	factory     BackendFactory

	mu       sync.RWMutex
	backends map[backendKey]ai.ChatProvider
}

// New creates a client.
func New(cfg Config) *Client {
	retryConfig := retry.DefaultConfig()
	if cfg.Retry != nil {
		retryConfig = *cfg.Retry
	}
	factory := cfg.Backend
	if factory == nil {
		factory = DefaultBackend
	}
	return &Client{
		retryConfig: retryConfig,
		events:      cfg.Events,
		factory:     factory,
		backends:    make(map[backendKey]ai.ChatProvider),
	}
}

// backend returns the backend for route, building it if needed.
func (c *Client) backend(ctx context.Context, route resolve.Route) (ai.ChatProvider, error) {
	key := backendKey{route: route.RouteID, provider: route.Provider, credential: route.Credential}

	c.mu.RLock()
	b, ok := c.backends[key]
	c.mu.RUnlock()
	if ok {
		return b, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if b, ok := c.backends[key]; ok {
		return b, nil
	}

	if route.Credential == "" {
		return nil, &ErrMissingCredential{Route: route.String()}
	}
	b, err := c.factory(ctx, route)
	if err != nil {
		return nil, err
	}
	c.backends[key] = b
	return b, nil
}

// Chat sends messages over route, retrying transient failures.
// The route's model code is sent unless opts name another model.
func (c *Client) Chat(ctx context.Context, route resolve.Route, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	if len(messages) == 0 {
		return nil, ai.ErrEmptyInput
	}

	b, err := c.backend(ctx, route)
	if err != nil {
		return nil, err
	}

	opts = append([]ai.Option{ai.WithModel(route.ModelCode)}, opts...)
	name := route.String()

	start := time.Now()
	emit(c.events, Event{Type: EventRequestStart, Route: name})

	notify := func(ev retry.Event) {
		emit(c.events, Event{Type: EventRetry, Route: name, Retry: &ev, Error: ev.Err})
	}
	resp, err := retry.Do(ctx, c.retryConfig, notify, func() (*ai.Response, error) {
		return b.Chat(ctx, messages, opts...)
	})
	if err != nil {
		emit(c.events, Event{Type: EventRequestError, Route: name, Duration: time.Since(start), Error: err})
		return nil, err
	}

	emit(c.events, Event{Type: EventRequestComplete, Route: name, Duration: time.Since(start), Usage: &resp.Usage})
	return resp, nil
}
