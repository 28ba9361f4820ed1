package model

import (
	"errors"
	"testing"

	ai "github.com/spetersoncode/gitscribe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Run("finds a registered model", func(t *testing.T) {
		d, err := Lookup("gpt-4.1")
		require.NoError(t, err)
		assert.Equal(t, Name("gpt-4.1"), d.Name())
		assert.Equal(t, ai.ProviderOpenAI, d.Provider())
		assert.Equal(t, 1_047_576, d.ContextWindow())
	})

	t.Run("unknown names match the sentinel", func(t *testing.T) {
		_, err := Lookup("gpt-9000")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownModel))

		var ue *UnknownError
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, "gpt-9000", ue.Name)
		assert.Equal(t, `unknown model "gpt-9000"`, err.Error())
	})
}

func TestRegistry(t *testing.T) {
	t.Run("names are unique", func(t *testing.T) {
		seen := map[Name]bool{}
		for _, n := range Names() {
			assert.False(t, seen[n], "duplicate %s", n)
			seen[n] = true
		}
	})

	t.Run("every entry is reachable on at least one route", func(t *testing.T) {
		for _, d := range All() {
			reachable := false
			for _, r := range ai.Routes {
				if _, ok := d.Code(r); ok {
					reachable = true
				}
			}
			assert.True(t, reachable, d.Name())
			assert.Positive(t, d.ContextWindow(), d.Name())
		}
	})

	t.Run("All returns a copy", func(t *testing.T) {
		all := All()
		all[0] = Detail{}
		assert.Equal(t, ClaudeSonnet45.Name(), All()[0].Name())
	})

	t.Run("default is registered", func(t *testing.T) {
		_, err := Lookup(Default.Name().String())
		assert.NoError(t, err)
	})
}

func TestDetailCode(t *testing.T) {
	t.Run("router routes use vendor-prefixed codes", func(t *testing.T) {
		code, ok := ClaudeSonnet45.Code(ai.RouteOpenRouter)
		assert.True(t, ok)
		assert.Equal(t, "anthropic/claude-sonnet-4.5", code)
	})

	t.Run("empty code means the route does not carry the model", func(t *testing.T) {
		_, ok := KimiK2.Code(ai.RouteDirect)
		assert.False(t, ok)
		_, ok = DeepSeekChat.Code(ai.RouteRequesty)
		assert.False(t, ok)
	})
}

func TestNew(t *testing.T) {
	codes := map[ai.RouteID]string{ai.RouteDirect: "m1"}
	d := New("custom", ai.ProviderMistral, codes, 1000, Pricing{InputPerMillion: 1}, true, true)
	codes[ai.RouteDirect] = "changed"

	code, ok := d.Code(ai.RouteDirect)
	assert.True(t, ok)
	assert.Equal(t, "m1", code)
	assert.True(t, d.StructuredOutput())
	assert.True(t, d.DefaultReasoning())
}
