package workflow

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spetersoncode/gitscribe/config"
	"github.com/spetersoncode/gitscribe/generate"
	"github.com/spetersoncode/gitscribe/git"
	"github.com/spetersoncode/gitscribe/resolve"
	"github.com/spetersoncode/gitscribe/validate"
)

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Sequencer) {
		s.log = l
	}
}

// WithProjectLoader replaces how the project file is read from the
// repository root.
func WithProjectLoader(fn func(root string) (config.Project, error)) Option {
	return func(s *Sequencer) {
		s.loadProject = fn
	}
}

// Sequencer drives one run through its phases.
type Sequencer struct {
	cfg         config.Workflow
	deps        Deps
	loadProject func(root string) (config.Project, error)
	log         *zap.Logger
}

// New creates a Sequencer for the given configuration.
func New(cfg config.Workflow, deps Deps, opts ...Option) *Sequencer {
	s := &Sequencer{
		cfg:         cfg,
		deps:        deps,
		loadProject: config.LoadProject,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// run is the mutable state of one Run call.
type run struct {
	dir       string
	repo      Git
	message   string
	committed bool
}

// Run executes the workflow in dir until it reaches a terminal phase.
func (s *Sequencer) Run(ctx context.Context, dir string) Result {
	r := &run{dir: dir}
	var res Result

	phase := Pending
	for !phase.Terminal() {
		next, err := s.advance(ctx, r, phase)
		if err != nil {
			var we *Error
			if !errors.As(err, &we) {
				we = wrap(KindGitFailed, err)
			}
			res.Err = we
			if we.Fatal() {
				next, res.Termination = Aborted, TerminationAborted
				s.log.Error("run aborted", zap.Stringer("phase", phase), zap.String("kind", string(we.Kind)), zap.Error(we.Err))
			} else {
				next, res.Termination = Stopped, TerminationStopped
				s.log.Info("run stopped", zap.Stringer("phase", phase), zap.Error(we.Err))
			}
		}
		s.log.Debug("phase", zap.Stringer("from", phase), zap.Stringer("to", next))
		res.Trace = append(res.Trace, next)
		phase = next
	}

	if phase == Done {
		res.Termination = TerminationComplete
		if !s.cfg.Silent {
			s.deps.Printer.Success("Done")
		}
	}
	res.Message = r.message
	return res
}

// advance performs the work that leaves phase and returns the phase entered.
func (s *Sequencer) advance(ctx context.Context, r *run, phase Phase) (Phase, error) {
	switch phase {
	case Pending:
		return Opened, s.open(r)
	case Opened:
		return Added, s.stage(ctx, r)
	case Added:
		return StatusShown, s.status(ctx, r)
	case StatusShown:
		if s.cfg.Compare {
			return Compared, s.compare(ctx, r)
		}
		return Committed, s.commit(ctx, r)
	case Committed:
		if s.cfg.DisablePush || s.cfg.DisableCommit || !r.committed {
			return Done, nil
		}
		return Pushed, s.push(ctx, r)
	case Compared, Pushed:
		return Done, nil
	}
	return Aborted, fmt.Errorf("no transition from phase %s", phase)
}

func (s *Sequencer) open(r *run) error {
	repo, err := s.deps.Open(r.dir)
	if err != nil {
		return wrap(KindRepositoryInvalid, err)
	}
	r.repo = repo
	return nil
}

func (s *Sequencer) stage(ctx context.Context, r *run) error {
	staged, err := r.repo.HasStaged(ctx)
	if err != nil {
		return wrap(KindGitFailed, err)
	}
	if staged {
		return nil
	}

	changes, err := r.repo.HasChanges(ctx)
	if err != nil {
		return wrap(KindGitFailed, err)
	}
	if !changes {
		return wrap(KindNothingToCommit, git.ErrNothingToCommit)
	}
	if s.cfg.DisableAdd {
		return fail(KindNothingToCommit, "no changes are staged and adding is disabled")
	}

	if !s.cfg.AutoAdd {
		yes, err := s.deps.Confirmer.Confirm("No changes are staged. Stage all changes?", true)
		if err != nil {
			return wrap(KindPromptFailed, err)
		}
		if !yes {
			return fail(KindNothingToCommit, "no changes are staged")
		}
	}

	if !s.cfg.Silent {
		s.deps.Printer.Info("Staging all changes")
	}
	if err := r.repo.StageAll(ctx); err != nil {
		return wrap(KindGitFailed, err)
	}
	return nil
}

func (s *Sequencer) status(ctx context.Context, r *run) error {
	changes, err := r.repo.StagedChanges(ctx)
	if err != nil {
		return wrap(KindGitFailed, err)
	}
	if !s.cfg.DisableStatus && !s.cfg.Silent && len(changes) > 0 {
		s.deps.Printer.Status(changes)
	}
	if len(changes) == 0 {
		return wrap(KindNothingToCommit, git.ErrNothingToCommit)
	}
	return nil
}

// request loads the project file, then reads the staged diff and scans it.
// It runs before any backend is contacted.
func (s *Sequencer) request(ctx context.Context, r *run) (generate.Request, error) {
	project, err := s.loadProject(r.repo.Root())
	if err != nil {
		return generate.Request{}, wrap(KindConfigInvalid, err)
	}

	diff, err := r.repo.DiffStaged(ctx)
	if err != nil {
		return generate.Request{}, wrap(KindGitFailed, err)
	}
	stat, err := r.repo.Diffstat(ctx)
	if err != nil {
		return generate.Request{}, wrap(KindGitFailed, err)
	}

	if s.cfg.SecretCheck() {
		if err := s.deps.Scanner.Scan(diff); err != nil {
			return generate.Request{}, wrap(scanKind(err), err)
		}
	}

	return generate.Request{
		Diffstat:          stat,
		Diff:              diff,
		ExtraInstructions: s.cfg.Instructions(project),
	}, nil
}

func (s *Sequencer) commit(ctx context.Context, r *run) error {
	route, err := s.deps.Resolver.Resolve(s.cfg.Model, s.cfg.PreferRouter)
	if err != nil {
		return wrap(resolveKind(err), err)
	}
	s.log.Info("route resolved", zap.Stringer("route", route), zap.String("model_code", route.ModelCode))

	req, err := s.request(ctx, r)
	if err != nil {
		return err
	}

	res := s.deps.Generator.Generate(ctx, route, req)
	s.logResult(res)
	if res.Failed() {
		return fail(KindGenerationFailed, "%s: %s", route, res.Err())
	}

	if outcome := validate.Message(res.Output()); !outcome.Valid {
		s.deps.Printer.Warn(fmt.Sprintf("%s; generated message:\n%s", outcome.Reason, res.Output()))
		return wrap(KindValidationFailed, outcome.Err())
	}

	r.message = Decorate(res.Output(), s.cfg.Prefix, s.cfg.Suffix, route)
	if !s.cfg.DisablePreview && !s.cfg.Silent {
		s.deps.Printer.Preview(route.String(), r.message)
	}

	if s.cfg.DisableCommit {
		if !s.cfg.Silent {
			s.deps.Printer.Info("Commit disabled; nothing was committed")
		}
		return nil
	}

	if !s.cfg.AutoCommit {
		yes, err := s.deps.Confirmer.Confirm("Commit with this message?", true)
		if err != nil {
			return wrap(KindPromptFailed, err)
		}
		if !yes {
			s.deps.Printer.Warn("commit cancelled")
			return declined("commit")
		}
	}

	if err := r.repo.Commit(ctx, r.message, s.cfg.NoVerify); err != nil {
		if errors.Is(err, git.ErrNothingToCommit) {
			return wrap(KindNothingToCommit, err)
		}
		return wrap(KindGitFailed, err)
	}
	r.committed = true
	return nil
}

func (s *Sequencer) compare(ctx context.Context, r *run) error {
	routes, err := s.deps.Resolver.ResolveAll(s.cfg.Exclusions(), s.cfg.PreferRouter)
	if err != nil {
		return wrap(resolveKind(err), err)
	}
	if len(routes) == 0 {
		return wrap(KindMissingCredential, resolve.ErrMissingCredential)
	}

	req, err := s.request(ctx, r)
	if err != nil {
		return err
	}

	for _, res := range s.deps.Generator.GenerateAll(ctx, routes, req) {
		s.logResult(res)
		heading := fmt.Sprintf("%s (%ds)", res.Route(), res.ElapsedSeconds())
		if res.Failed() {
			s.deps.Printer.Warn(fmt.Sprintf("%s: %s", heading, res.Err()))
			continue
		}
		s.deps.Printer.Preview(fmt.Sprintf("%s $%.4f", heading, res.Cost()), res.Output())
		if outcome := validate.Message(res.Output()); !outcome.Valid {
			s.deps.Printer.Warn(fmt.Sprintf("%s: %s", res.Route(), outcome.Reason))
		}
	}
	return nil
}

func (s *Sequencer) push(ctx context.Context, r *run) error {
	if !s.cfg.AutoPush {
		yes, err := s.deps.Confirmer.Confirm("Push to the remote?", false)
		if err != nil {
			return wrap(KindPromptFailed, err)
		}
		if !yes {
			return declined("push")
		}
	}

	if !s.cfg.Silent {
		s.deps.Printer.Info("Pushing")
	}
	if err := r.repo.Push(ctx, s.cfg.NoVerify, s.cfg.Force); err != nil {
		return wrap(KindPushFailed, err)
	}
	return nil
}

func (s *Sequencer) logResult(res generate.Result) {
	fields := []zap.Field{
		zap.Stringer("route", res.Route()),
		zap.Int("elapsed_s", res.ElapsedSeconds()),
	}
	if res.Failed() {
		s.log.Warn("generation failed", append(fields, zap.String("error", res.Err()))...)
		return
	}
	u := res.Usage()
	s.log.Info("generation finished", append(fields,
		zap.Int("input_tokens", u.InputTokens),
		zap.Int("output_tokens", u.OutputTokens),
		zap.Float64("cost_usd", res.Cost()),
	)...)
}
