package model

import ai "github.com/spetersoncode/gitscribe"

// Pricing contains per-million-token prices in USD.
type Pricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

// IsZero reports whether no price is known.
func (p Pricing) IsZero() bool {
	return p.InputPerMillion == 0 && p.OutputPerMillion == 0
}

// CalculateCost returns the USD cost of usage at the given prices.
func CalculateCost(usage ai.Usage, p Pricing) float64 {
	in := float64(usage.InputTokens) / 1_000_000 * p.InputPerMillion
	out := float64(usage.OutputTokens) / 1_000_000 * p.OutputPerMillion
	return in + out
}
