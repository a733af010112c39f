package steps

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rjoshi/studyops/internal/config"
	"github.com/rjoshi/studyops/internal/ui/theme"
)

func newTestRunner(cfg *config.Config, opts ...Option) *Runner {
	return NewRunner(cfg, zap.NewNop(), theme.NewPrinter(io.Discard), opts...)
}

func TestCreateRequiresVault(t *testing.T) {
	r := newTestRunner(&config.Config{})
	err := r.Create()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STUDYOPS_VAULT_DIR")
}

func TestCreateExportsDeckOnce(t *testing.T) {
	vaultDir := t.TempDir()
	deckDir := t.TempDir()
	note := "Q: What is a shell?\nA: A command interpreter.\n"
	require.NoError(t, os.WriteFile(filepath.Join(vaultDir, "shell.md"), []byte(note), 0o644))

	r := newTestRunner(&config.Config{VaultDir: vaultDir, DeckDir: deckDir})
	require.NoError(t, r.Create())

	target := filepath.Join(deckDir, DeckFileName)
	first, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(first), "What is a shell?")

	// Re-running create with the same target must not change the file,
	// even after the vault changes.
	require.NoError(t, os.WriteFile(filepath.Join(vaultDir, "extra.md"), []byte("more? :: yes\n"), 0o644))
	require.NoError(t, r.Create())

	second, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCreateEmptyVault(t *testing.T) {
	r := newTestRunner(&config.Config{VaultDir: t.TempDir(), DeckDir: t.TempDir()})
	require.NoError(t, r.Create())
}
