package vault

import (
	"fmt"
	"os"
	"strings"
)

// deckHeader is the Anki import banner. Fields are tab-separated with tags
// in the third column.
const deckHeader = "#separator:tab\n#html:false\n#tags column:3\n"

// FormatDeck serializes cards into an Anki-importable text document.
func FormatDeck(cards []Card) string {
	var b strings.Builder
	b.WriteString(deckHeader)
	for _, c := range cards {
		b.WriteString(sanitizeField(c.Question))
		b.WriteByte('\t')
		b.WriteString(sanitizeField(c.Answer))
		b.WriteByte('\t')
		b.WriteString(strings.Join(c.Tags, " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteDeckIfAbsent writes the formatted deck to path unless a file already
// exists there. It reports whether a write happened, so a second invocation
// with the same target is a no-op.
func WriteDeckIfAbsent(path string, cards []Card) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat deck file: %w", err)
	}
	if err := os.WriteFile(path, []byte(FormatDeck(cards)), 0o644); err != nil {
		return false, fmt.Errorf("write deck file: %w", err)
	}
	return true, nil
}

// sanitizeField keeps a field on one line so it cannot break the
// tab-separated layout.
func sanitizeField(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
