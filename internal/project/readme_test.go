package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReadme(t *testing.T) {
	p := Project{Name: "api-lab", Techs: []string{"Go", "Docker"}}

	out, err := RenderReadme(p, "A small HTTP API lab.")
	require.NoError(t, err)

	assert.Contains(t, out, "# api-lab")
	assert.Contains(t, out, "A small HTTP API lab.")
	assert.Contains(t, out, "img.shields.io/badge/Go")
	assert.Contains(t, out, "img.shields.io/badge/Docker")
	assert.Contains(t, out, "go build ./...")
	// Docker snippet is templated with the project name.
	assert.Contains(t, out, "docker build -t api-lab .")
}

func TestRenderReadmeDefaultDescription(t *testing.T) {
	out, err := RenderReadme(Project{Name: "infra-lab", Techs: []string{"Terraform"}}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Learning lab project: infra-lab.")
}

func TestRenderReadmeUnknownTechSkipped(t *testing.T) {
	out, err := RenderReadme(Project{Name: "x", Techs: []string{"COBOL"}}, "desc")
	require.NoError(t, err)
	assert.NotContains(t, out, "COBOL")
}

func TestWriteReadmeIfAbsent(t *testing.T) {
	dir := t.TempDir()
	p := Project{Name: "api-lab", Path: dir, Techs: []string{"Go"}}

	wrote, err := WriteReadmeIfAbsent(p, "first")
	require.NoError(t, err)
	assert.True(t, wrote)

	before, err := os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, err)

	// Second call must leave the existing file untouched.
	wrote, err = WriteReadmeIfAbsent(p, "second")
	require.NoError(t, err)
	assert.False(t, wrote)

	after, err := os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
