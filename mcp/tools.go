package mcp

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	ai "github.com/spetersoncode/gitscribe"
	"github.com/spetersoncode/gitscribe/resolve"
	"github.com/spetersoncode/gitscribe/secrets"
	"github.com/spetersoncode/gitscribe/validate"
)

type tools struct {
	catalog Catalog
	log     *zap.Logger
}

type validateArgs struct {
	Message string `json:"message"`
}

// ValidateResult is the reply of validate_commit_message.
type ValidateResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

func validateTool() mcp.Tool {
	schema := ai.SchemaFrom[validateArgs]().
		Desc("message", "Full commit message: summary line, blank line, then bullet lines").
		Required("message").
		Build()
	return mcp.NewToolWithRawSchema("validate_commit_message",
		"Check a commit message against the gitscribe format rules", schema)
}

func (t *tools) validate(_ context.Context, args validateArgs) (ValidateResult, error) {
	o := validate.Message(args.Message)
	return ValidateResult{Valid: o.Valid, Reason: o.Reason}, nil
}

type scanArgs struct {
	Diff string `json:"diff"`
}

// ScanResult is the reply of scan_diff_for_secrets.
type ScanResult struct {
	Clean bool   `json:"clean"`
	Line  string `json:"line,omitempty"`
	Token string `json:"token,omitempty"`
}

func scanTool() mcp.Tool {
	schema := ai.SchemaFrom[scanArgs]().
		Desc("diff", "Unified diff text, as printed by git diff").
		Required("diff").
		Build()
	return mcp.NewToolWithRawSchema("scan_diff_for_secrets",
		"Look for likely credentials in a diff. Every suspect token is reported", schema)
}

func (t *tools) scan(_ context.Context, args scanArgs) (ScanResult, error) {
	err := secrets.New(secrets.WithLogger(t.log)).Scan(args.Diff)
	var found *secrets.DetectedError
	switch {
	case err == nil:
		return ScanResult{Clean: true}, nil
	case errors.As(err, &found):
		return ScanResult{Line: found.Line, Token: found.Token}, nil
	}
	return ScanResult{}, err
}

type listModelsArgs struct {
	Exclude      string `json:"exclude,omitempty"`
	PreferRouter bool   `json:"prefer_router,omitempty"`
}

// ModelInfo is one entry of the list_models reply.
type ModelInfo struct {
	Name             string  `json:"name"`
	Provider         string  `json:"provider"`
	ContextWindow    int     `json:"context_window"`
	InputPerMillion  float64 `json:"input_per_million_usd"`
	OutputPerMillion float64 `json:"output_per_million_usd"`
	StructuredOutput bool    `json:"structured_output"`
	Reasoning        bool    `json:"reasoning"`
	Available        bool    `json:"available"`
	Route            string  `json:"route,omitempty"`
}

func listModelsTool() mcp.Tool {
	schema := ai.SchemaFrom[listModelsArgs]().
		Desc("exclude", "Comma-separated substrings; matching model names are reported unavailable").
		Desc("prefer_router", "Report router routes ahead of direct provider routes").
		Build()
	return mcp.NewToolWithRawSchema("list_models",
		"List registered models with pricing and whether credentials for them are configured", schema)
}

func (t *tools) listModels(_ context.Context, args listModelsArgs) ([]ModelInfo, error) {
	entries := t.catalog.Catalog(resolve.ParseExclusions(args.Exclude), args.PreferRouter)
	out := make([]ModelInfo, len(entries))
	for i, e := range entries {
		d := e.Detail
		out[i] = ModelInfo{
			Name:             d.Name().String(),
			Provider:         string(d.Provider()),
			ContextWindow:    d.ContextWindow(),
			InputPerMillion:  d.Pricing().InputPerMillion,
			OutputPerMillion: d.Pricing().OutputPerMillion,
			StructuredOutput: d.StructuredOutput(),
			Reasoning:        d.DefaultReasoning(),
			Available:        e.Available,
		}
		if e.Available {
			out[i].Route = string(e.Route.RouteID)
		}
	}
	return out, nil
}
