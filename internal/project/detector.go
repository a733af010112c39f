package project

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Project is one classified workspace subdirectory.
type Project struct {
	Name string
	Path string
	// Techs lists detected technologies, primary language first.
	Techs []string
}

// markerFiles maps a manifest/marker file to the technology it indicates.
// Languages are checked before infrastructure markers so the primary
// language ends up first in Project.Techs.
var markerFiles = []struct {
	file string
	tech string
}{
	{"go.mod", "Go"},
	{"package.json", "JavaScript"},
	{"pyproject.toml", "Python"},
	{"requirements.txt", "Python"},
	{"Cargo.toml", "Rust"},
	{"pom.xml", "Java"},
	{"Dockerfile", "Docker"},
	{"main.tf", "Terraform"},
}

// Detector lists and classifies the projects in a workspace directory.
type Detector struct {
	workspace  string
	gitTimeout time.Duration
}

// NewDetector validates the workspace path at construction.
func NewDetector(workspace string) (*Detector, error) {
	info, err := os.Stat(workspace)
	if err != nil {
		return nil, fmt.Errorf("workspace path %s: %w", workspace, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("workspace path %s is not a directory", workspace)
	}
	return &Detector{workspace: workspace, gitTimeout: 10 * time.Second}, nil
}

// List returns the workspace's immediate subdirectories as classified
// projects, in lexical order. Hidden directories are skipped.
func (d *Detector) List() ([]Project, error) {
	entries, err := os.ReadDir(d.workspace)
	if err != nil {
		return nil, fmt.Errorf("read workspace: %w", err)
	}

	var projects []Project
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		path := filepath.Join(d.workspace, e.Name())
		projects = append(projects, Project{
			Name:  e.Name(),
			Path:  path,
			Techs: classify(path),
		})
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })
	return projects, nil
}

// IsNewProject reports whether the project has never been published: true
// when no .git directory exists or when no origin remote is configured.
func (d *Detector) IsNewProject(ctx context.Context, path string) bool {
	if _, err := os.Stat(filepath.Join(path, ".git")); err != nil {
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, d.gitTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "-C", path, "config", "--get", "remote.origin.url")
	out, err := cmd.Output()
	if err != nil {
		// git exits nonzero when the key is unset.
		return true
	}
	return strings.TrimSpace(string(out)) == ""
}

func classify(path string) []string {
	var techs []string
	seen := map[string]bool{}
	for _, m := range markerFiles {
		if seen[m.tech] {
			continue
		}
		if _, err := os.Stat(filepath.Join(path, m.file)); err == nil {
			techs = append(techs, m.tech)
			seen[m.tech] = true
		}
	}
	return techs
}
