package vault

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDeck(t *testing.T) {
	cards := []Card{
		{Question: "What is a pod?", Answer: "Smallest unit.", Tags: []string{MarkerTag, "kubernetes"}},
		{Question: "multi\nline?", Answer: "tab\there", Tags: []string{MarkerTag, "bash"}},
	}

	out := FormatDeck(cards)

	assert.True(t, strings.HasPrefix(out, deckHeader), "missing header banner")

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 5) // 3 header lines + 2 cards
	assert.Equal(t, "What is a pod?\tSmallest unit.\tstudyops kubernetes", lines[3])
	// Embedded tabs and newlines must not break the column layout.
	assert.Equal(t, "multi line?\ttab here\tstudyops bash", lines[4])
}

func TestFormatDeckEmpty(t *testing.T) {
	assert.Equal(t, deckHeader, FormatDeck(nil))
}

func TestWriteDeckIfAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.txt")
	cards := []Card{{Question: "q", Answer: "a", Tags: []string{MarkerTag}}}

	wrote, err := WriteDeckIfAbsent(path, cards)
	require.NoError(t, err)
	assert.True(t, wrote)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	// Second invocation with the same target is a no-op even when the
	// cards differ.
	wrote, err = WriteDeckIfAbsent(path, nil)
	require.NoError(t, err)
	assert.False(t, wrote)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
