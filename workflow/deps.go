package workflow

import (
	"context"

	"github.com/spetersoncode/gitscribe/generate"
	"github.com/spetersoncode/gitscribe/git"
	"github.com/spetersoncode/gitscribe/resolve"
)

// Git is the repository the run operates on. *git.Repo implements it.
type Git interface {
	Root() string
	HasStaged(ctx context.Context) (bool, error)
	HasChanges(ctx context.Context) (bool, error)
	StageAll(ctx context.Context) error
	StagedChanges(ctx context.Context) ([]git.Change, error)
	DiffStaged(ctx context.Context) (string, error)
	Diffstat(ctx context.Context) (string, error)
	Commit(ctx context.Context, message string, noVerify bool) error
	Push(ctx context.Context, noVerify, force bool) error
}

// Opener finds the repository containing dir.
type Opener func(dir string) (Git, error)

// Resolver picks routes for models. *resolve.Resolver implements it.
type Resolver interface {
	Resolve(name string, preferRouter bool) (resolve.Route, error)
	ResolveAll(exclusions []string, preferRouter bool) ([]resolve.Route, error)
}

// Generator produces commit messages. *generate.Generator implements it.
type Generator interface {
	Generate(ctx context.Context, route resolve.Route, req generate.Request) generate.Result
	GenerateAll(ctx context.Context, routes []resolve.Route, req generate.Request) []generate.Result
}

// Scanner checks a diff for secrets. *secrets.Scanner implements it.
type Scanner interface {
	Scan(diff string) error
}

// Confirmer asks yes/no questions. *ui.Prompter implements it.
type Confirmer interface {
	Confirm(question string, defaultYes bool) (bool, error)
}

// Printer shows progress to the user. *ui.Printer implements it.
type Printer interface {
	Info(msg string)
	Success(msg string)
	Warn(msg string)
	Status(changes []git.Change)
	Preview(heading, message string)
}

// Deps bundles the collaborators of a Sequencer.
type Deps struct {
	Open      Opener
	Resolver  Resolver
	Generator Generator
	Scanner   Scanner
	Confirmer Confirmer
	Printer   Printer
}
