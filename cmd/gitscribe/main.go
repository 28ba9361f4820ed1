// Command gitscribe writes a commit message for the staged changes with a
// language model, validates it, and commits and pushes on confirmation.
//
// Usage:
//
//	gitscribe [flags]
//	gitscribe models
//	gitscribe mcp
//	gitscribe version
//
// Credentials are read from the provider environment variables
// (ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY, OPENROUTER_API_KEY,
// ...), which may also be set in a .env file in the working directory.
package main

import (
	"context"
	"os"
	"os/signal"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		cmd.PrintErrln("error:", err)
		return 1
	}
	return 0
}
