package workflow

import (
	"context"
	"errors"
	"fmt"

	ai "github.com/spetersoncode/gitscribe"
	"github.com/spetersoncode/gitscribe/config"
	"github.com/spetersoncode/gitscribe/generate"
	"github.com/spetersoncode/gitscribe/git"
	"github.com/spetersoncode/gitscribe/model"
	"github.com/spetersoncode/gitscribe/resolve"
)

const validMessage = "Add commit workflow sequencer\n\n- drive phases from staging to push\n- inject git and model collaborators"

type fakeRepo struct {
	staged     bool
	changes    bool
	files      []git.Change
	diff       string
	stageCalls int
	commits    []string
	noVerify   bool
	pushes     int
	pushForce  bool
	pushErr    error
}

func (r *fakeRepo) Root() string { return "/repo" }

func (r *fakeRepo) HasStaged(context.Context) (bool, error)  { return r.staged, nil }
func (r *fakeRepo) HasChanges(context.Context) (bool, error) { return r.changes || r.staged, nil }

func (r *fakeRepo) StageAll(context.Context) error {
	r.stageCalls++
	r.staged = true
	if len(r.files) == 0 {
		r.files = []git.Change{{Kind: git.Added, Path: "new.go"}}
	}
	return nil
}

func (r *fakeRepo) StagedChanges(context.Context) ([]git.Change, error) {
	if !r.staged {
		return nil, nil
	}
	return r.files, nil
}

func (r *fakeRepo) DiffStaged(context.Context) (string, error) { return r.diff, nil }
func (r *fakeRepo) Diffstat(context.Context) (string, error)   { return " main.go | 2 +-", nil }

func (r *fakeRepo) Commit(_ context.Context, message string, noVerify bool) error {
	r.commits = append(r.commits, message)
	r.noVerify = noVerify
	return nil
}

func (r *fakeRepo) Push(_ context.Context, noVerify, force bool) error {
	r.pushes++
	r.noVerify = noVerify
	r.pushForce = force
	return r.pushErr
}

func stagedRepo() *fakeRepo {
	return &fakeRepo{
		staged: true,
		files:  []git.Change{{Kind: git.Modified, Path: "main.go"}},
		diff:   "+fmt.Println(\"hello\")",
	}
}

func routeFor(d model.Detail) resolve.Route {
	code, _ := d.Code(ai.RouteDirect)
	return resolve.Route{ModelCode: code, RouteID: ai.RouteDirect, Provider: d.Provider(), Credential: "k", Detail: d}
}

type fakeResolver struct {
	routes []resolve.Route
	err    error
	asked  []string
}

func (f *fakeResolver) Resolve(name string, _ bool) (resolve.Route, error) {
	f.asked = append(f.asked, name)
	if f.err != nil {
		return resolve.Route{}, f.err
	}
	return f.routes[0], nil
}

func (f *fakeResolver) ResolveAll([]string, bool) ([]resolve.Route, error) {
	return f.routes, f.err
}

type fakeGenerator struct {
	outputs map[model.Name]string
	errs    map[model.Name]string
	reqs    []generate.Request
}

func (f *fakeGenerator) Generate(_ context.Context, route resolve.Route, req generate.Request) generate.Result {
	f.reqs = append(f.reqs, req)
	name := route.Detail.Name()
	if e, ok := f.errs[name]; ok {
		return generate.NewFailure(route, e)
	}
	return generate.NewSuccess(route, f.outputs[name], ai.Usage{InputTokens: 100, OutputTokens: 20})
}

func (f *fakeGenerator) GenerateAll(ctx context.Context, routes []resolve.Route, req generate.Request) []generate.Result {
	out := make([]generate.Result, len(routes))
	for i, r := range routes {
		out[i] = f.Generate(ctx, r, req)
	}
	return out
}

type fakeScanner struct {
	err   error
	diffs []string
}

func (f *fakeScanner) Scan(diff string) error {
	f.diffs = append(f.diffs, diff)
	return f.err
}

type fakeConfirmer struct {
	answers   map[string]bool
	questions []string
	err       error
}

func (f *fakeConfirmer) Confirm(question string, defaultYes bool) (bool, error) {
	f.questions = append(f.questions, question)
	if f.err != nil {
		return false, f.err
	}
	if a, ok := f.answers[question]; ok {
		return a, nil
	}
	return defaultYes, nil
}

type fakePrinter struct {
	infos    []string
	warnings []string
	statuses [][]git.Change
	previews []string
	success  int
}

func (p *fakePrinter) Info(msg string)             { p.infos = append(p.infos, msg) }
func (p *fakePrinter) Success(string)              { p.success++ }
func (p *fakePrinter) Warn(msg string)             { p.warnings = append(p.warnings, msg) }
func (p *fakePrinter) Status(changes []git.Change) { p.statuses = append(p.statuses, changes) }
func (p *fakePrinter) Preview(heading, message string) {
	p.previews = append(p.previews, fmt.Sprintf("%s\n%s", heading, message))
}

// harness wires a Sequencer to fakes.
type harness struct {
	repo     *fakeRepo
	openErr  error
	resolver *fakeResolver
	gen      *fakeGenerator
	scanner  *fakeScanner
	confirm  *fakeConfirmer
	printer  *fakePrinter
	project  config.Project
	projErr  error
}

func newHarness() *harness {
	return &harness{
		repo:     stagedRepo(),
		resolver: &fakeResolver{routes: []resolve.Route{routeFor(model.GPT41)}},
		gen:      &fakeGenerator{outputs: map[model.Name]string{model.GPT41.Name(): validMessage}},
		scanner:  &fakeScanner{},
		confirm:  &fakeConfirmer{answers: map[string]bool{}},
		printer:  &fakePrinter{},
	}
}

var errNoRepo = errors.New("not a git repository")

func (h *harness) sequencer(cfg config.Workflow) *Sequencer {
	if cfg.Model == "" {
		cfg.Model = string(model.GPT41.Name())
	}
	return New(cfg, Deps{
		Open: func(string) (Git, error) {
			if h.openErr != nil {
				return nil, h.openErr
			}
			return h.repo, nil
		},
		Resolver:  h.resolver,
		Generator: h.gen,
		Scanner:   h.scanner,
		Confirmer: h.confirm,
		Printer:   h.printer,
	}, WithProjectLoader(func(string) (config.Project, error) {
		return h.project, h.projErr
	}))
}

func (h *harness) run(cfg config.Workflow) Result {
	return h.sequencer(cfg).Run(context.Background(), "/repo/sub")
}
