package git

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// Repo runs git operations against one working tree.
type Repo struct {
	root   string
	runner CommandRunner
}

// Option configures a Repo.
type Option func(*Repo)

// WithRunner sets the command runner. Tests use it to script git output.
func WithRunner(runner CommandRunner) Option {
	return func(r *Repo) {
		r.runner = runner
	}
}

// Open locates the repository containing path. It returns ErrNotGitRepo
// when there is none and ErrBareRepo when the repository has no working tree.
func Open(path string, opts ...Option) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &Error{Op: "resolve path", Err: err}
	}

	repo, err := gogit.PlainOpenWithOptions(abs, &gogit.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		// Parent detection only looks for a .git entry; a bare repository
		// is the directory itself.
		repo, err = gogit.PlainOpen(abs)
	}
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, ErrNotGitRepo
		}
		return nil, &Error{Op: "open repository", Err: err}
	}

	wt, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, gogit.ErrIsBareRepository) {
			return nil, ErrBareRepo
		}
		return nil, &Error{Op: "open worktree", Err: err}
	}

	return NewRepo(wt.Filesystem.Root(), opts...), nil
}

// NewRepo returns a Repo rooted at root without checking it.
func NewRepo(root string, opts ...Option) *Repo {
	r := &Repo{root: root, runner: NewExecRunner()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Root returns the working tree root.
func (r *Repo) Root() string {
	return r.root
}

// StagedChanges lists the paths staged for the next commit.
func (r *Repo) StagedChanges(ctx context.Context) ([]Change, error) {
	out, err := r.run(ctx, "diff", "--cached", "--name-status", "-M")
	if err != nil {
		return nil, &Error{Op: "list staged changes", Output: out, Err: err}
	}
	return parseNameStatus(out), nil
}

// HasStaged reports whether anything is staged.
func (r *Repo) HasStaged(ctx context.Context) (bool, error) {
	changes, err := r.StagedChanges(ctx)
	if err != nil {
		return false, err
	}
	return len(changes) > 0, nil
}

// HasChanges reports whether the working tree has anything to stage,
// untracked files included.
func (r *Repo) HasChanges(ctx context.Context) (bool, error) {
	out, err := r.run(ctx, "status", "--porcelain")
	if err != nil {
		return false, &Error{Op: "status", Output: out, Err: err}
	}
	return strings.TrimSpace(out) != "", nil
}

// StageAll stages all changes (git add -A).
func (r *Repo) StageAll(ctx context.Context) error {
	if out, err := r.run(ctx, "add", "-A"); err != nil {
		return &Error{Op: "stage all", Output: out, Err: err}
	}
	return nil
}

// DiffStaged returns the diff of staged changes.
func (r *Repo) DiffStaged(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "diff", "--cached")
	if err != nil {
		return "", &Error{Op: "diff staged", Output: out, Err: err}
	}
	return out, nil
}

// Diffstat returns the per-file summary of staged changes.
func (r *Repo) Diffstat(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "diff", "--cached", "--stat")
	if err != nil {
		return "", &Error{Op: "diffstat", Output: out, Err: err}
	}
	return out, nil
}

// Commit creates a commit with the given message. With noVerify the
// pre-commit and commit-msg hooks are skipped.
func (r *Repo) Commit(ctx context.Context, message string, noVerify bool) error {
	args := []string{"commit", "-m", message}
	if noVerify {
		args = append(args, "--no-verify")
	}
	out, err := r.run(ctx, args...)
	if err != nil {
		if strings.Contains(out, "nothing to commit") {
			return ErrNothingToCommit
		}
		return &Error{Op: "commit", Output: out, Err: err}
	}
	return nil
}

// Push pushes the current branch to its upstream. force uses
// --force-with-lease so a remote that moved since the last fetch is not
// overwritten.
func (r *Repo) Push(ctx context.Context, noVerify, force bool) error {
	args := []string{"push"}
	if noVerify {
		args = append(args, "--no-verify")
	}
	if force {
		args = append(args, "--force-with-lease")
	}
	if out, err := r.run(ctx, args...); err != nil {
		return &Error{Op: "push", Output: out, Err: err}
	}
	return nil
}

func (r *Repo) run(ctx context.Context, args ...string) (string, error) {
	return r.runner.Run(ctx, r.root, "git", args...)
}
