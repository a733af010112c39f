// Package steps wires the collaborators into the create, share and reflect
// workflows behind the CLI subcommands. Collaborator failures are handled
// at the step boundary: logged, reported on the console, and folded into
// the step result instead of propagating as panics.
package steps

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rjoshi/studyops/internal/config"
	"github.com/rjoshi/studyops/internal/publish"
	"github.com/rjoshi/studyops/internal/ui/theme"
)

// GitService is the version-control surface the share step drives.
// Satisfied by *publish.Git.
type GitService interface {
	InitRepo(ctx context.Context, path string) error
	Commit(ctx context.Context, path, message, author string) error
	Push(ctx context.Context, path, url, branch string) error
}

// RemoteService creates hosted repositories. Satisfied by *publish.GitHub.
type RemoteService interface {
	CreateRemote(ctx context.Context, name, description string, private bool) (*publish.Remote, error)
}

// Runner carries the shared dependencies of all steps.
type Runner struct {
	cfg *config.Config
	log *zap.Logger
	out *theme.Printer

	git    GitService
	remote RemoteService
}

// Option configures a Runner.
type Option func(*Runner)

// WithGitService overrides the git collaborator (used by tests).
func WithGitService(g GitService) Option {
	return func(r *Runner) { r.git = g }
}

// WithRemoteService overrides the repository-hosting collaborator (used by
// tests).
func WithRemoteService(s RemoteService) Option {
	return func(r *Runner) { r.remote = s }
}

// NewRunner creates a Runner.
func NewRunner(cfg *config.Config, log *zap.Logger, out *theme.Printer, opts ...Option) *Runner {
	r := &Runner{cfg: cfg, log: log, out: out}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// stepLogger returns a logger scoped to one step invocation, tagged with a
// fresh run ID so interleaved runs can be told apart in the logs.
func (r *Runner) stepLogger(step string) *zap.Logger {
	return r.log.With(
		zap.String("step", step),
		zap.String("run_id", uuid.NewString()),
	)
}
