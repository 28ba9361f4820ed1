package gitscribe

// Provider identifies an AI provider or routing service.
type Provider string

// String returns the provider identifier.
func (p Provider) String() string { return string(p) }

// Supported providers.
const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderGoogle    Provider = "google"
	ProviderDeepSeek  Provider = "deepseek"
	ProviderMistral   Provider = "mistral"
	ProviderXAI       Provider = "xai"

	// Routing services that proxy many providers behind one key.
	ProviderOpenRouter Provider = "openrouter"
	ProviderRequesty   Provider = "requesty"
)

// RouteID identifies the channel a request travels through.
type RouteID string

// String returns the route identifier.
func (r RouteID) String() string { return string(r) }

// Route channels. RouteDirect calls the model's own provider; the router
// routes proxy through an intermediary.
const (
	RouteDirect     RouteID = "direct"
	RouteOpenRouter RouteID = "openrouter"
	RouteRequesty   RouteID = "requesty"
)

// Routes lists every route in the default fallback order.
var Routes = []RouteID{RouteDirect, RouteOpenRouter, RouteRequesty}

// IsRouter reports whether the route proxies through a routing service.
func (r RouteID) IsRouter() bool {
	return r == RouteOpenRouter || r == RouteRequesty
}
