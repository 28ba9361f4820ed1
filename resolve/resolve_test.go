package resolve

import (
	"errors"
	"testing"

	ai "github.com/spetersoncode/gitscribe"
	"github.com/spetersoncode/gitscribe/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envLookup(env map[string]string) Option {
	return WithLookup(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
}

func TestResolve(t *testing.T) {
	t.Run("unknown model fails without consulting credentials", func(t *testing.T) {
		called := false
		r := New(WithLookup(func(string) (string, bool) {
			called = true
			return "", false
		}))

		_, err := r.Resolve("no-such-model", false)
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrUnknownModel))
		var ue *UnknownModelError
		assert.ErrorAs(t, err, &ue)
		assert.False(t, called)
	})

	t.Run("direct route wins by default", func(t *testing.T) {
		r := New(envLookup(map[string]string{
			"ANTHROPIC_API_KEY":  "sk-ant",
			"OPENROUTER_API_KEY": "sk-or",
		}))

		route, err := r.Resolve("claude-sonnet-4-5", false)
		require.NoError(t, err)
		assert.Equal(t, ai.RouteDirect, route.RouteID)
		assert.Equal(t, ai.ProviderAnthropic, route.Provider)
		assert.Equal(t, "claude-sonnet-4-5", route.ModelCode)
		assert.Equal(t, "sk-ant", route.Credential)
		assert.Equal(t, "claude-sonnet-4-5 via direct", route.String())
	})

	t.Run("router preference tries routers first", func(t *testing.T) {
		r := New(envLookup(map[string]string{
			"ANTHROPIC_API_KEY": "sk-ant",
			"REQUESTY_API_KEY":  "rq",
		}))

		route, err := r.Resolve("claude-sonnet-4-5", true)
		require.NoError(t, err)
		assert.Equal(t, ai.RouteRequesty, route.RouteID)
		assert.Equal(t, "anthropic/claude-sonnet-4-5", route.ModelCode)
	})

	t.Run("direct is still a fallback under router preference", func(t *testing.T) {
		r := New(envLookup(map[string]string{"OPENAI_API_KEY": "sk-oa"}))

		route, err := r.Resolve("gpt-5", true)
		require.NoError(t, err)
		assert.Equal(t, ai.RouteDirect, route.RouteID)
	})

	t.Run("routes without a model code are skipped", func(t *testing.T) {
		r := New(envLookup(map[string]string{
			"REQUESTY_API_KEY":   "rq",
			"OPENROUTER_API_KEY": "or",
		}))

		route, err := r.Resolve("deepseek-chat", false)
		require.NoError(t, err)
		assert.Equal(t, ai.RouteOpenRouter, route.RouteID)
	})

	t.Run("blank credentials do not count", func(t *testing.T) {
		r := New(envLookup(map[string]string{"XAI_API_KEY": "  "}))

		_, err := r.Resolve("grok-4", false)
		assert.True(t, errors.Is(err, ErrMissingCredential))
	})

	t.Run("missing credential names every candidate variable", func(t *testing.T) {
		r := New(envLookup(nil))

		_, err := r.Resolve("kimi-k2", false)
		var me *MissingCredentialError
		require.ErrorAs(t, err, &me)
		assert.Equal(t, []string{"OPENROUTER_API_KEY", "REQUESTY_API_KEY"}, me.EnvVars)
		assert.Contains(t, err.Error(), "OPENROUTER_API_KEY, REQUESTY_API_KEY")
	})

	t.Run("result is first in fallback order among usable routes", func(t *testing.T) {
		all := map[string]string{
			"GEMINI_API_KEY":     "g",
			"OPENROUTER_API_KEY": "or",
			"REQUESTY_API_KEY":   "rq",
		}
		for _, tc := range []struct {
			env      []string
			prefer   bool
			expected ai.RouteID
		}{
			{[]string{"GEMINI_API_KEY", "OPENROUTER_API_KEY", "REQUESTY_API_KEY"}, false, ai.RouteDirect},
			{[]string{"OPENROUTER_API_KEY", "REQUESTY_API_KEY"}, false, ai.RouteOpenRouter},
			{[]string{"REQUESTY_API_KEY"}, false, ai.RouteRequesty},
			{[]string{"GEMINI_API_KEY", "OPENROUTER_API_KEY", "REQUESTY_API_KEY"}, true, ai.RouteOpenRouter},
			{[]string{"GEMINI_API_KEY", "REQUESTY_API_KEY"}, true, ai.RouteRequesty},
		} {
			env := map[string]string{}
			for _, k := range tc.env {
				env[k] = all[k]
			}
			route, err := New(envLookup(env)).Resolve("gemini-2.5-flash", tc.prefer)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, route.RouteID, "env=%v prefer=%v", tc.env, tc.prefer)
		}
	})
}

func TestIsAvailable(t *testing.T) {
	env := envLookup(map[string]string{
		"OPENAI_API_KEY":    "sk-oa",
		"ANTHROPIC_API_KEY": "sk-ant",
	})

	t.Run("exclusion substring rejects regardless of credentials", func(t *testing.T) {
		r := New(env)
		assert.False(t, r.IsAvailable("gpt-5-mini", []string{"mini"}))
		assert.False(t, r.IsAvailable("gpt-5", []string{" gpt "}))
	})

	t.Run("blank exclusions are ignored", func(t *testing.T) {
		r := New(env)
		assert.True(t, r.IsAvailable("gpt-5", []string{"", "   "}))
	})

	t.Run("requires a credential", func(t *testing.T) {
		r := New(env)
		assert.True(t, r.IsAvailable("claude-haiku-4-5", nil))
		assert.False(t, r.IsAvailable("gemini-2.5-pro", nil))
		assert.False(t, r.IsAvailable("unknown", nil))
	})
}

func TestResolveAll(t *testing.T) {
	t.Run("keeps registry order and applies exclusions", func(t *testing.T) {
		r := New(envLookup(map[string]string{"ANTHROPIC_API_KEY": "k"}))

		routes, err := r.ResolveAll([]string{"opus"}, false)
		require.NoError(t, err)
		require.Len(t, routes, 2)
		assert.Equal(t, model.ClaudeSonnet45.Name(), routes[0].Detail.Name())
		assert.Equal(t, model.ClaudeHaiku45.Name(), routes[1].Detail.Name())
	})

	t.Run("custom registry", func(t *testing.T) {
		d := model.New("local", ai.ProviderMistral, map[ai.RouteID]string{ai.RouteDirect: "m"}, 1000, model.Pricing{}, false, false)
		r := New(WithRegistry([]model.Detail{d}), envLookup(map[string]string{"MISTRAL_API_KEY": "k"}))

		routes, err := r.ResolveAll(nil, false)
		require.NoError(t, err)
		require.Len(t, routes, 1)
		assert.Equal(t, "m", routes[0].ModelCode)
	})

	t.Run("no credentials yields no routes", func(t *testing.T) {
		routes, err := New(envLookup(nil)).ResolveAll(nil, false)
		require.NoError(t, err)
		assert.Empty(t, routes)
	})
}

func TestParseExclusions(t *testing.T) {
	assert.Equal(t, []string{"mini", "gpt-4o"}, ParseExclusions(" mini, ,gpt-4o "))
	assert.Nil(t, ParseExclusions(""))
}
