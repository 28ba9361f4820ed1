package generate

import (
	"math"
	"time"

	ai "github.com/spetersoncode/gitscribe"
	"github.com/spetersoncode/gitscribe/resolve"
)

// Result is the outcome of one generation call. It holds either an output
// with its usage or an error text, never both. Build one with NewSuccess or
// NewFailure.
type Result struct {
	route   resolve.Route
	elapsed int
	output  string
	usage   ai.Usage
	err     string
}

// NewSuccess records a call that produced output.
func NewSuccess(route resolve.Route, output string, usage ai.Usage) Result {
	return Result{route: route, output: output, usage: usage}
}

// NewFailure records a failed call. An empty text is replaced with a
// generic one so the result always reads as failed.
func NewFailure(route resolve.Route, errText string) Result {
	if errText == "" {
		errText = "generation failed"
	}
	return Result{route: route, err: errText}
}

// Route returns the route the call used.
func (r Result) Route() resolve.Route { return r.route }

// ElapsedSeconds returns wall-clock time rounded to whole seconds.
func (r Result) ElapsedSeconds() int { return r.elapsed }

// Output returns the commit message; empty when the call failed.
func (r Result) Output() string { return r.output }

// Usage returns token usage; zero when the call failed.
func (r Result) Usage() ai.Usage { return r.usage }

// Err returns the error text; empty on success.
func (r Result) Err() string { return r.err }

// Failed reports whether the call failed.
func (r Result) Failed() bool { return r.err != "" }

// Cost returns the USD cost of the call at the model's prices.
func (r Result) Cost() float64 {
	return r.route.Detail.Cost(r.usage)
}

func roundSeconds(d time.Duration) int {
	return int(math.Round(d.Seconds()))
}
