package steps

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rjoshi/studyops/internal/project"
	"github.com/rjoshi/studyops/internal/publish"
)

// Share publishes every unpublished lab project in the workspace: README,
// git init, commit, remote creation, push. Per-project failures are logged
// and counted; the step keeps going, then reports failure if any project
// could not be published.
func (r *Runner) Share(ctx context.Context) error {
	if err := r.cfg.ValidateShare(); err != nil {
		return err
	}
	log := r.stepLogger("share")

	detector, err := project.NewDetector(r.cfg.WorkspaceDir)
	if err != nil {
		return err
	}

	projects, err := detector.List()
	if err != nil {
		log.Error("workspace listing failed", zap.Error(err))
		r.out.Fail("workspace listing failed: %v", err)
		return err
	}

	git := r.git
	if git == nil {
		git = publish.NewGit()
	}
	remote := r.remote
	if remote == nil {
		remote = publish.NewGitHub(r.cfg.GitHubToken)
	}

	r.out.Header("Publishing lab projects from %s", r.cfg.WorkspaceDir)

	published, failed := 0, 0
	for _, p := range projects {
		if !detector.IsNewProject(ctx, p.Path) {
			r.out.Info("%s: already published", p.Name)
			continue
		}

		if err := r.shareOne(ctx, git, remote, p); err != nil {
			failed++
			log.Warn("project publish failed", zap.String("project", p.Name), zap.Error(err))
			r.out.Fail("%s: %v", p.Name, err)
			continue
		}
		published++
		r.out.Success("%s published", p.Name)
	}

	r.out.Info("%d published, %d failed, %d total", published, failed, len(projects))
	if failed > 0 {
		return fmt.Errorf("%d of %d publish attempts failed", failed, published+failed)
	}
	return nil
}

func (r *Runner) shareOne(ctx context.Context, git GitService, remote RemoteService, p project.Project) error {
	if _, err := project.WriteReadmeIfAbsent(p, ""); err != nil {
		return err
	}

	if err := git.InitRepo(ctx, p.Path); err != nil {
		return err
	}
	if err := git.Commit(ctx, p.Path, "Initial commit", r.cfg.CommitAuthor); err != nil {
		return err
	}

	created, err := remote.CreateRemote(ctx, p.Name, fmt.Sprintf("Learning lab project: %s", p.Name), r.cfg.PrivateRepos)
	if errors.Is(err, publish.ErrRepoExists) {
		return fmt.Errorf("remote %s already exists, not overwriting", p.Name)
	}
	if err != nil {
		return err
	}

	return git.Push(ctx, p.Path, created.CloneURL, "main")
}
