package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/spetersoncode/gitscribe"
	"github.com/spetersoncode/gitscribe/config"
	"github.com/spetersoncode/gitscribe/git"
	"github.com/spetersoncode/gitscribe/model"
	"github.com/spetersoncode/gitscribe/resolve"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "gitscribe dev\n", out)
}

func TestModels(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	out, err := execute(t, "models", "--exclude-models", "haiku")
	require.NoError(t, err)

	assert.Contains(t, out, "MODEL")
	assert.Contains(t, out, "claude-sonnet-4-5")
	assert.Contains(t, out, "gpt-4.1")
	assert.Contains(t, out, "direct")
	assert.NotContains(t, out, "test-key")
}

func TestModelsTable(t *testing.T) {
	entries := []resolve.Entry{
		{Detail: model.ClaudeHaiku45, Available: true, Route: resolve.Route{RouteID: ai.RouteRequesty}},
		{Detail: model.Grok4},
	}

	out := modelsTable(entries)
	assert.Contains(t, out, "claude-haiku-4-5")
	assert.Contains(t, out, "requesty")
	assert.Contains(t, out, "grok-4")
	assert.Contains(t, out, "1.00")
	assert.Contains(t, out, "15.00")
}

func TestRunOutsideRepository(t *testing.T) {
	_, err := execute(t, "--auto-commit", "--disable-push")
	require.Error(t, err)
	assert.ErrorIs(t, err, git.ErrNotGitRepo)
}

func TestRunRejectsConflictingFlags(t *testing.T) {
	_, err := execute(t, "--auto-push", "--disable-push")
	assert.ErrorIs(t, err, config.ErrConflictingFlags)
}

func TestRunRejectsUnknownLogLevel(t *testing.T) {
	_, err := execute(t, "version", "--log-level", "loud")
	require.NoError(t, err)

	_, err = execute(t, "models", "--log-level", "loud")
	assert.Error(t, err)
}
