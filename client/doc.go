// Package client sends chat requests to language-model backends over
// resolved routes.
//
// A route (see package resolve) names the provider, the model code and the
// credential. The client builds one SDK-backed backend per route on first
// use: Anthropic and Google through their own SDKs, OpenAI and every
// OpenAI-compatible service (DeepSeek, Mistral, xAI, OpenRouter, Requesty)
// through the OpenAI SDK pointed at the service's base URL.
//
//	route, err := resolve.New().Resolve("gpt-5", false)
//	if err != nil {
//	    return err
//	}
//	c := client.New(client.Config{})
//	resp, err := c.Chat(ctx, route, []ai.Message{ai.UserMessage("hello")})
//
// # Retries
//
// Transient failures (rate limits, 5xx, timeouts) are retried with
// exponential backoff, honoring Retry-After when the server sends one.
// Configure with Config.Retry; retry.Disabled() makes a single attempt.
//
// # Events
//
// Config.Events receives request start, completion, error and retry events.
// Sends never block:
//
//	events := make(chan client.Event, 64)
//	c := client.New(client.Config{Events: events})
package client
