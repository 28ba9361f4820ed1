// Package model is the registry of language models gitscribe can use.
//
// Each entry is a Detail keyed by a stable Name. A Detail knows the
// provider that serves it directly, the model code each route expects,
// its context window, prices, and whether it supports structured output
// or reasons by default.
//
//	d, err := model.Lookup("claude-sonnet-4-5")
//	if err != nil {
//	    return err // errors.Is(err, model.ErrUnknownModel)
//	}
//	code, ok := d.Code(ai.RouteOpenRouter) // "anthropic/claude-sonnet-4.5", true
//
// # Pricing
//
// Prices are per million tokens in USD:
//
//	cost := model.GPT5.Cost(ai.Usage{InputTokens: 12_000, OutputTokens: 300})
package model
