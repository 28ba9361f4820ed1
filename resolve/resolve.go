// Package resolve maps a model name to a concrete route: the model code to
// send, the channel to send it through, and the credential that unlocks it.
package resolve

import (
	"fmt"
	"os"
	"slices"
	"strings"

	ai "github.com/spetersoncode/gitscribe"
	"github.com/spetersoncode/gitscribe/model"
)

// credentialEnv names the environment variable holding each provider's key.
var credentialEnv = map[ai.Provider]string{
	ai.ProviderAnthropic:  "ANTHROPIC_API_KEY",
	ai.ProviderOpenAI:     "OPENAI_API_KEY",
	ai.ProviderGoogle:     "GEMINI_API_KEY",
	ai.ProviderDeepSeek:   "DEEPSEEK_API_KEY",
	ai.ProviderMistral:    "MISTRAL_API_KEY",
	ai.ProviderXAI:        "XAI_API_KEY",
	ai.ProviderOpenRouter: "OPENROUTER_API_KEY",
	ai.ProviderRequesty:   "REQUESTY_API_KEY",
}

// CredentialEnv returns the environment variable that supplies the key for p.
func CredentialEnv(p ai.Provider) string {
	return credentialEnv[p]
}

// Route is a resolved (model code, channel, credential) triple.
type Route struct {
	ModelCode  string
	RouteID    ai.RouteID
	Provider   ai.Provider
	Credential string
	Detail     model.Detail
}

// String renders the route as "<model> via <route>".
func (r Route) String() string {
	return fmt.Sprintf("%s via %s", r.Detail.Name(), r.RouteID)
}

// LookupFunc reads one environment variable.
type LookupFunc func(key string) (string, bool)

// Option configures a Resolver.
type Option func(*Resolver)

// WithLookup replaces the environment lookup.
func WithLookup(fn LookupFunc) Option {
	return func(r *Resolver) {
		r.lookup = fn
	}
}

// WithRegistry replaces the model table consulted by ResolveAll and Resolve.
func WithRegistry(details []model.Detail) Option {
	return func(r *Resolver) {
		r.registry = slices.Clone(details)
	}
}

// Resolver picks routes for models. Credentials are read at every call.
type Resolver struct {
	lookup   LookupFunc
	registry []model.Detail
}

// New creates a Resolver backed by the process environment and the built-in registry.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		lookup:   os.LookupEnv,
		registry: model.All(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// routeProvider returns the provider whose credential unlocks route for d.
func routeProvider(d model.Detail, route ai.RouteID) ai.Provider {
	switch route {
	case ai.RouteOpenRouter:
		return ai.ProviderOpenRouter
	case ai.RouteRequesty:
		return ai.ProviderRequesty
	default:
		return d.Provider()
	}
}

func candidates(preferRouter bool) []ai.RouteID {
	if preferRouter {
		return []ai.RouteID{ai.RouteOpenRouter, ai.RouteRequesty, ai.RouteDirect}
	}
	return []ai.RouteID{ai.RouteDirect, ai.RouteOpenRouter, ai.RouteRequesty}
}

func (r *Resolver) detail(name string) (model.Detail, error) {
	for _, d := range r.registry {
		if d.Name().String() == name {
			return d, nil
		}
	}
	return model.Detail{}, &UnknownModelError{Name: name}
}

func (r *Resolver) credential(p ai.Provider) (string, bool) {
	env := CredentialEnv(p)
	if env == "" {
		return "", false
	}
	v, ok := r.lookup(env)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// Resolve returns the first route, in fallback order, that has both a model
// code and a configured credential. With preferRouter the router routes are
// tried before direct.
func (r *Resolver) Resolve(name string, preferRouter bool) (Route, error) {
	d, err := r.detail(name)
	if err != nil {
		return Route{}, err
	}

	var envs []string
	for _, id := range candidates(preferRouter) {
		code, ok := d.Code(id)
		if !ok {
			continue
		}
		p := routeProvider(d, id)
		envs = append(envs, CredentialEnv(p))
		key, ok := r.credential(p)
		if !ok {
			continue
		}
		return Route{
			ModelCode:  code,
			RouteID:    id,
			Provider:   p,
			Credential: key,
			Detail:     d,
		}, nil
	}
	return Route{}, &MissingCredentialError{Model: name, EnvVars: envs}
}

// IsAvailable reports whether name is not excluded and some route can carry it.
// A model is excluded when its name contains any non-blank exclusion.
func (r *Resolver) IsAvailable(name string, exclusions []string) bool {
	for _, ex := range exclusions {
		ex = strings.TrimSpace(ex)
		if ex != "" && strings.Contains(name, ex) {
			return false
		}
	}
	d, err := r.detail(name)
	if err != nil {
		return false
	}
	for _, id := range ai.Routes {
		if _, ok := d.Code(id); !ok {
			continue
		}
		if _, ok := r.credential(routeProvider(d, id)); ok {
			return true
		}
	}
	return false
}

// ResolveAll resolves every available model in registry order.
func (r *Resolver) ResolveAll(exclusions []string, preferRouter bool) ([]Route, error) {
	var routes []Route
	for _, d := range r.registry {
		name := d.Name().String()
		if !r.IsAvailable(name, exclusions) {
			continue
		}
		route, err := r.Resolve(name, preferRouter)
		if err != nil {
			return nil, fmt.Errorf("model %s was available but failed to resolve: %w", name, err)
		}
		routes = append(routes, route)
	}
	return routes, nil
}

// ParseExclusions splits a comma-separated exclusion list.
func ParseExclusions(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
