package model

import (
	"slices"

	ai "github.com/spetersoncode/gitscribe"
)

func codes(direct, openRouter, requesty string) map[ai.RouteID]string {
	return map[ai.RouteID]string{
		ai.RouteDirect:     direct,
		ai.RouteOpenRouter: openRouter,
		ai.RouteRequesty:   requesty,
	}
}

// Anthropic Claude Models
// Model pricing last verified: December 14, 2025
var (
	ClaudeOpus45   = Detail{name: "claude-opus-4-5", provider: ai.ProviderAnthropic, codes: codes("claude-opus-4-5", "anthropic/claude-opus-4.5", "anthropic/claude-opus-4-5"), contextWindow: 200_000, pricing: Pricing{InputPerMillion: 5.00, OutputPerMillion: 25.00}, structured: true}
	ClaudeSonnet45 = Detail{name: "claude-sonnet-4-5", provider: ai.ProviderAnthropic, codes: codes("claude-sonnet-4-5", "anthropic/claude-sonnet-4.5", "anthropic/claude-sonnet-4-5"), contextWindow: 200_000, pricing: Pricing{InputPerMillion: 3.00, OutputPerMillion: 15.00}, structured: true}
	ClaudeHaiku45  = Detail{name: "claude-haiku-4-5", provider: ai.ProviderAnthropic, codes: codes("claude-haiku-4-5", "anthropic/claude-haiku-4.5", "anthropic/claude-haiku-4-5"), contextWindow: 200_000, pricing: Pricing{InputPerMillion: 1.00, OutputPerMillion: 5.00}, structured: true}
)

// OpenAI GPT Models
// Model pricing last verified: December 14, 2025
var (
	GPT5      = Detail{name: "gpt-5", provider: ai.ProviderOpenAI, codes: codes("gpt-5", "openai/gpt-5", "openai/gpt-5"), contextWindow: 400_000, pricing: Pricing{InputPerMillion: 1.25, OutputPerMillion: 10.00}, structured: true, reasoning: true}
	GPT5Mini  = Detail{name: "gpt-5-mini", provider: ai.ProviderOpenAI, codes: codes("gpt-5-mini", "openai/gpt-5-mini", "openai/gpt-5-mini"), contextWindow: 400_000, pricing: Pricing{InputPerMillion: 0.25, OutputPerMillion: 2.00}, structured: true, reasoning: true}
	GPT41     = Detail{name: "gpt-4.1", provider: ai.ProviderOpenAI, codes: codes("gpt-4.1", "openai/gpt-4.1", "openai/gpt-4.1"), contextWindow: 1_047_576, pricing: Pricing{InputPerMillion: 2.00, OutputPerMillion: 8.00}, structured: true}
	GPT41Mini = Detail{name: "gpt-4.1-mini", provider: ai.ProviderOpenAI, codes: codes("gpt-4.1-mini", "openai/gpt-4.1-mini", "openai/gpt-4.1-mini"), contextWindow: 1_047_576, pricing: Pricing{InputPerMillion: 0.40, OutputPerMillion: 1.60}, structured: true}
	GPT4o     = Detail{name: "gpt-4o", provider: ai.ProviderOpenAI, codes: codes("gpt-4o", "openai/gpt-4o", "openai/gpt-4o"), contextWindow: 128_000, pricing: Pricing{InputPerMillion: 2.50, OutputPerMillion: 10.00}, structured: true}
)

// Google Gemini Models
// Model pricing last verified: December 14, 2025
var (
	Gemini25Pro   = Detail{name: "gemini-2.5-pro", provider: ai.ProviderGoogle, codes: codes("gemini-2.5-pro", "google/gemini-2.5-pro", "google/gemini-2.5-pro"), contextWindow: 1_048_576, pricing: Pricing{InputPerMillion: 1.25, OutputPerMillion: 10.00}, structured: true, reasoning: true}
	Gemini25Flash = Detail{name: "gemini-2.5-flash", provider: ai.ProviderGoogle, codes: codes("gemini-2.5-flash", "google/gemini-2.5-flash", "google/gemini-2.5-flash"), contextWindow: 1_048_576, pricing: Pricing{InputPerMillion: 0.30, OutputPerMillion: 2.50}, structured: true, reasoning: true}
)

// Models served through OpenAI-compatible endpoints.
// Model pricing last verified: December 14, 2025
var (
	DeepSeekChat     = Detail{name: "deepseek-chat", provider: ai.ProviderDeepSeek, codes: codes("deepseek-chat", "deepseek/deepseek-chat-v3.1", ""), contextWindow: 128_000, pricing: Pricing{InputPerMillion: 0.56, OutputPerMillion: 1.68}}
	DeepSeekReasoner = Detail{name: "deepseek-reasoner", provider: ai.ProviderDeepSeek, codes: codes("deepseek-reasoner", "deepseek/deepseek-r1-0528", ""), contextWindow: 128_000, pricing: Pricing{InputPerMillion: 0.56, OutputPerMillion: 1.68}, reasoning: true}
	MistralMedium    = Detail{name: "mistral-medium", provider: ai.ProviderMistral, codes: codes("mistral-medium-latest", "mistralai/mistral-medium-3.1", ""), contextWindow: 128_000, pricing: Pricing{InputPerMillion: 0.40, OutputPerMillion: 2.00}, structured: true}
	Grok4            = Detail{name: "grok-4", provider: ai.ProviderXAI, codes: codes("grok-4", "x-ai/grok-4", "xai/grok-4"), contextWindow: 256_000, pricing: Pricing{InputPerMillion: 3.00, OutputPerMillion: 15.00}, structured: true, reasoning: true}
	KimiK2           = Detail{name: "kimi-k2", provider: ai.ProviderOpenRouter, codes: codes("", "moonshotai/kimi-k2", "moonshot/kimi-k2"), contextWindow: 131_072, pricing: Pricing{InputPerMillion: 0.60, OutputPerMillion: 2.50}}
)

// Default is the model used when none is requested.
var Default = ClaudeSonnet45

// registry lists every known model. Order is significant: it is the order
// in which comparison mode presents results.
var registry = []Detail{
	ClaudeSonnet45,
	ClaudeOpus45,
	ClaudeHaiku45,
	GPT5,
	GPT5Mini,
	GPT41,
	GPT41Mini,
	GPT4o,
	Gemini25Pro,
	Gemini25Flash,
	DeepSeekChat,
	DeepSeekReasoner,
	MistralMedium,
	Grok4,
	KimiK2,
}

// All returns every registry entry in registry order.
func All() []Detail {
	return slices.Clone(registry)
}

// Names returns every registered model name in registry order.
func Names() []Name {
	names := make([]Name, len(registry))
	for i, d := range registry {
		names[i] = d.name
	}
	return names
}

// Lookup returns the entry for name. The error is an *UnknownError
// matching ErrUnknownModel when the name is not registered.
func Lookup(name string) (Detail, error) {
	for _, d := range registry {
		if string(d.name) == name {
			return d, nil
		}
	}
	return Detail{}, &UnknownError{Name: name}
}

// New builds a registry entry. It exists for callers that assemble their own
// tables, such as tests; the built-in table is fixed.
func New(name Name, provider ai.Provider, routeCodes map[ai.RouteID]string, contextWindow int, pricing Pricing, structured, reasoning bool) Detail {
	c := make(map[ai.RouteID]string, len(routeCodes))
	for k, v := range routeCodes {
		c[k] = v
	}
	return Detail{
		name:          name,
		provider:      provider,
		codes:         c,
		contextWindow: contextWindow,
		pricing:       pricing,
		structured:    structured,
		reasoning:     reasoning,
	}
}
