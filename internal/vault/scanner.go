package vault

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// MarkerTag is attached to every extracted card so exported notes can be
// traced back to this tool.
const MarkerTag = "studyops"

// Card is one extracted question/answer record.
type Card struct {
	Question string
	Answer   string
	Tags     []string
}

// key returns the exact-equality dedup key over (question, answer, tags).
func (c Card) key() string {
	return c.Question + "\x1f" + c.Answer + "\x1f" + strings.Join(c.Tags, ",")
}

var (
	// Q: question / A: answer on consecutive lines.
	questionLine = regexp.MustCompile(`^Q:\s*(.+)$`)
	answerLine   = regexp.MustCompile(`^A:\s*(.+)$`)

	// Inline "question :: answer".
	inlineCard = regexp.MustCompile(`^(.+?)\s::\s(.+)$`)

	// Line tagged #flashcard; the answer is the next non-empty line.
	markerCard = regexp.MustCompile(`^(.+?)\s*#flashcard\s*$`)
)

// Scanner extracts flashcards from a vault of markdown notes.
type Scanner struct {
	root string
}

// NewScanner validates the vault root up front: a missing or non-directory
// path is a construction error, not something callers discover mid-scan.
func NewScanner(root string) (*Scanner, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("vault path %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault path %s is not a directory", root)
	}
	return &Scanner{root: root}, nil
}

// Scan walks every .md file under the vault root (lexical order) and returns
// the deduplicated cards. Duplicates are exact matches on question, answer
// and tags; the first occurrence wins.
func (s *Scanner) Scan() ([]Card, error) {
	var files []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".md") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk vault: %w", err)
	}
	sort.Strings(files)

	var cards []Card
	seen := map[string]bool{}
	for _, f := range files {
		extracted, err := s.scanFile(f)
		if err != nil {
			return nil, err
		}
		for _, c := range extracted {
			if seen[c.key()] {
				continue
			}
			seen[c.key()] = true
			cards = append(cards, c)
		}
	}
	return cards, nil
}

func (s *Scanner) scanFile(path string) ([]Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open note: %w", err)
	}
	defer func() { _ = f.Close() }()

	noteTag := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), " \t"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read note %s: %w", path, err)
	}

	var cards []Card
	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if m := questionLine.FindStringSubmatch(line); m != nil {
			if i+1 < len(lines) {
				if a := answerLine.FindStringSubmatch(lines[i+1]); a != nil {
					cards = append(cards, newCard(m[1], a[1], noteTag))
					i++
					continue
				}
			}
			// No A: line follows; the line may still use another
			// convention, so fall through.
		}

		if m := markerCard.FindStringSubmatch(line); m != nil {
			if answer := nextNonEmpty(lines, i+1); answer != "" {
				cards = append(cards, newCard(m[1], answer, noteTag))
			}
			continue
		}

		if m := inlineCard.FindStringSubmatch(line); m != nil {
			cards = append(cards, newCard(m[1], m[2], noteTag))
		}
	}
	return cards, nil
}

func newCard(question, answer, noteTag string) Card {
	return Card{
		Question: strings.TrimSpace(question),
		Answer:   strings.TrimSpace(answer),
		Tags:     []string{MarkerTag, noteTag},
	}
}

func nextNonEmpty(lines []string, from int) string {
	for i := from; i < len(lines); i++ {
		if s := strings.TrimSpace(lines[i]); s != "" {
			return s
		}
	}
	return ""
}
