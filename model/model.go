package model

import (
	"errors"
	"fmt"

	ai "github.com/spetersoncode/gitscribe"
)

// ErrUnknownModel is returned by Lookup for names missing from the registry.
var ErrUnknownModel = errors.New("unknown model")

// Name is the registry key of a model, independent of any route's model code.
type Name string

// String returns the model name.
func (n Name) String() string { return string(n) }

// Detail is an immutable registry entry describing one model.
type Detail struct {
	name          Name
	provider      ai.Provider
	codes         map[ai.RouteID]string
	contextWindow int
	pricing       Pricing
	structured    bool
	reasoning     bool
}

// Name returns the registry key.
func (d Detail) Name() Name { return d.name }

// Provider returns the provider that serves the model on the direct route.
func (d Detail) Provider() ai.Provider { return d.provider }

// Code returns the model code to send on the given route, if the route carries the model.
func (d Detail) Code(route ai.RouteID) (string, bool) {
	code, ok := d.codes[route]
	return code, ok && code != ""
}

// ContextWindow returns the maximum number of input plus output tokens.
func (d Detail) ContextWindow() int { return d.contextWindow }

// Pricing returns the per-million-token prices.
func (d Detail) Pricing() Pricing { return d.pricing }

// StructuredOutput reports whether the model can be constrained to a response schema.
func (d Detail) StructuredOutput() bool { return d.structured }

// DefaultReasoning reports whether the model reasons by default.
// Reasoning models reject sampling parameters such as temperature.
func (d Detail) DefaultReasoning() bool { return d.reasoning }

// Cost returns the USD cost of the given usage at this model's prices.
func (d Detail) Cost(usage ai.Usage) float64 {
	return CalculateCost(usage, d.pricing)
}

// UnknownError reports a lookup of a model name that is not in the registry.
type UnknownError struct {
	Name string
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("unknown model %q", e.Name)
}

// Is makes errors.Is(err, ErrUnknownModel) match.
func (e *UnknownError) Is(target error) bool {
	return target == ErrUnknownModel
}
