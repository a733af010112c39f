package publish

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// gitTimeout bounds every git subprocess call. A timed-out call simply
// fails; nothing is cancellable mid-flight.
const gitTimeout = 30 * time.Second

// Git wraps the version-control subprocess operations used when publishing
// a lab project. All calls are synchronous and blocking.
type Git struct {
	timeout time.Duration
}

// NewGit returns a Git wrapper with the default per-call timeout.
func NewGit() *Git {
	return &Git{timeout: gitTimeout}
}

// InitRepo initializes a repository at path with a main branch.
func (g *Git) InitRepo(ctx context.Context, path string) error {
	return g.run(ctx, path, "init", "--initial-branch=main")
}

// Commit stages everything and commits. author is optional in
// "Name <email>" form.
func (g *Git) Commit(ctx context.Context, path, message, author string) error {
	if err := g.run(ctx, path, "add", "-A"); err != nil {
		return err
	}
	args := []string{"commit", "-m", message}
	if author != "" {
		args = append(args, "--author", author)
	}
	return g.run(ctx, path, args...)
}

// Push pushes branch to the given remote URL, setting origin if needed.
func (g *Git) Push(ctx context.Context, path, url, branch string) error {
	// Setting the remote twice fails; fall back to updating the URL.
	if err := g.run(ctx, path, "remote", "add", "origin", url); err != nil {
		if err := g.run(ctx, path, "remote", "set-url", "origin", url); err != nil {
			return err
		}
	}
	return g.run(ctx, path, "push", "-u", "origin", branch)
}

// CurrentCommit returns the HEAD commit hash, or "" when there is none.
func (g *Git) CurrentCommit(ctx context.Context, path string) string {
	out, err := g.output(ctx, path, "rev-parse", "HEAD")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

func (g *Git) run(ctx context.Context, dir string, args ...string) error {
	_, err := g.output(ctx, dir, args...)
	return err
}

func (g *Git) output(ctx context.Context, dir string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", dir}, args...)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}
