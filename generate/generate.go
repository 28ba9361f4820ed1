// Package generate produces commit messages from staged changes using
// language-model backends.
package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	ai "github.com/spetersoncode/gitscribe"
	"github.com/spetersoncode/gitscribe/resolve"
	"go.uber.org/zap"
)

const (
	defaultTemperature = 0.2
	defaultMaxTokens   = 1024
)

// ErrEmptyResponse is returned when a backend answers with no text.
var ErrEmptyResponse = errors.New("backend returned an empty response")

// Chatter sends a conversation over a resolved route. *client.Client implements it.
type Chatter interface {
	Chat(ctx context.Context, route resolve.Route, messages []ai.Message, opts ...ai.Option) (*ai.Response, error)
}

// Request holds the staged changes to describe. The target route is passed
// alongside it.
type Request struct {
	Diffstat          string
	Diff              string
	ExtraInstructions []string
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for debug channels and call summaries.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		g.log = l
	}
}

// WithDebug enables the given debug channels.
func WithDebug(d ai.Debug) Option {
	return func(g *Generator) {
		g.debug = d
	}
}

// WithClock replaces the time source used for elapsed time.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithCounter replaces tokenizer selection.
func WithCounter(fn func(modelCode string) TokenCounter) Option {
	return func(g *Generator) {
		g.counterFor = fn
	}
}

// Generator builds prompts under the route's token budget and calls the backend.
type Generator struct {
	chat       Chatter
	log        *zap.Logger
	debug      ai.Debug
	now        func() time.Time
	counterFor func(modelCode string) TokenCounter
}

// New creates a Generator that sends requests through chat.
func New(chat Chatter, opts ...Option) *Generator {
	g := &Generator{
		chat:       chat,
		log:        zap.NewNop(),
		now:        time.Now,
		counterFor: CounterFor,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Prompt is the conversation sent for one request.
type Prompt struct {
	System    string
	User      string
	Truncated bool
	Ceiling   int // character ceiling for diffstat plus diff
}

// BuildPrompt assembles the system and user turns for route, truncating
// the diff to the route's context window.
func (g *Generator) BuildPrompt(route resolve.Route, req Request) Prompt {
	system := SystemPrompt(route.Detail.StructuredOutput(), req.ExtraInstructions)
	systemTokens := g.counterFor(route.ModelCode).Count(system)
	ceiling := CharCeiling(route.Detail.ContextWindow(), systemTokens)

	diff, truncated := FitDiff(req.Diffstat, req.Diff, ceiling)
	return Prompt{
		System:    system,
		User:      UserPrompt(req.Diffstat, diff, truncated),
		Truncated: truncated,
		Ceiling:   ceiling,
	}
}

// Generate produces one commit message over route. It never returns an
// error: failures, including panics in the backend, are captured in the
// Result, and elapsed time is recorded on every path.
func (g *Generator) Generate(ctx context.Context, route resolve.Route, req Request) (res Result) {
	start := g.now()
	defer func() {
		if p := recover(); p != nil {
			res = NewFailure(route, fmt.Sprintf("panic: %v", p))
		}
		res.elapsed = roundSeconds(g.now().Sub(start))

		fields := []zap.Field{zap.Stringer("route", route), zap.Int("elapsed_s", res.elapsed)}
		if res.Failed() {
			g.log.Warn("generation failed", append(fields, zap.String("error", res.err))...)
		} else {
			g.log.Debug("generation succeeded", append(fields, zap.Int("input_tokens", res.usage.InputTokens), zap.Int("output_tokens", res.usage.OutputTokens))...)
		}
	}()

	output, usage, err := g.generate(ctx, route, req)
	if err != nil {
		return NewFailure(route, describeFailure(err))
	}
	return NewSuccess(route, output, usage)
}

// describeFailure labels categorized backend errors so a rejected request
// reads differently from an outage.
func describeFailure(err error) string {
	var label string
	switch {
	case ai.IsUserInput(err):
		label = "request rejected"
	case ai.IsTransient(err):
		label = "backend unavailable"
	case ai.IsPermanent(err):
		label = "request refused"
	default:
		return err.Error()
	}
	if code := ai.StatusCodeOf(err); code != 0 {
		return fmt.Sprintf("%s (%d): %v", label, code, err)
	}
	return fmt.Sprintf("%s: %v", label, err)
}

func (g *Generator) generate(ctx context.Context, route resolve.Route, req Request) (string, ai.Usage, error) {
	prompt := g.BuildPrompt(route, req)
	if prompt.Truncated {
		g.log.Info("diff truncated", zap.Stringer("route", route), zap.Int("ceiling", prompt.Ceiling))
	}
	if g.debug.Prompts {
		g.log.Info("system prompt", zap.Stringer("route", route), zap.String("prompt", prompt.System))
	}
	if g.debug.Inputs {
		g.log.Info("user prompt", zap.Stringer("route", route), zap.String("input", prompt.User))
	}

	structured := route.Detail.StructuredOutput()
	var opts []ai.Option
	if !route.Detail.DefaultReasoning() {
		opts = append(opts, ai.WithTemperature(defaultTemperature), ai.WithMaxTokens(defaultMaxTokens))
	}
	if structured {
		opts = append(opts, ai.WithResponseSchema(commitSchema))
	}

	resp, err := g.chat.Chat(ctx, route, []ai.Message{
		ai.SystemMessage(prompt.System),
		ai.UserMessage(prompt.User),
	}, opts...)
	if err != nil {
		return "", ai.Usage{}, err
	}
	if g.debug.Outputs {
		g.log.Info("raw output", zap.Stringer("route", route), zap.String("output", resp.Content))
	}

	raw := strings.TrimSpace(resp.Content)
	if raw == "" {
		return "", ai.Usage{}, ErrEmptyResponse
	}
	if !structured {
		return raw, resp.Usage, nil
	}
	msg, err := RenderStructured(raw)
	if err != nil {
		return "", ai.Usage{}, err
	}
	return msg, resp.Usage, nil
}

// GenerateAll runs Generate for every route concurrently and waits for all
// of them. One failing route never cancels the others. Results are in
// route order and there is always one per route.
func (g *Generator) GenerateAll(ctx context.Context, routes []resolve.Route, req Request) []Result {
	results := make([]Result, len(routes))

	var wg sync.WaitGroup
	for i, route := range routes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = g.Generate(ctx, route, req)
		}()
	}
	wg.Wait()

	return results
}
