package steps

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/rjoshi/studyops/internal/vault"
)

// DeckFileName is the fixed target of the create step. Re-running create
// with the same target is a no-op until the file is removed or imported.
const DeckFileName = "studyops-deck.txt"

// Create scans the vault for flashcards and exports them as an
// Anki-importable deck file.
func (r *Runner) Create() error {
	if err := r.cfg.ValidateCreate(); err != nil {
		return err
	}
	log := r.stepLogger("create")

	scanner, err := vault.NewScanner(r.cfg.VaultDir)
	if err != nil {
		return err
	}

	r.out.Header("Extracting flashcards from %s", r.cfg.VaultDir)

	cards, err := scanner.Scan()
	if err != nil {
		log.Error("vault scan failed", zap.Error(err))
		r.out.Fail("scan failed: %v", err)
		return err
	}
	log.Info("vault scanned", zap.Int("cards", len(cards)))

	if len(cards) == 0 {
		r.out.Warn("no flashcards found")
		return nil
	}

	target := filepath.Join(r.cfg.DeckDir, DeckFileName)
	wrote, err := vault.WriteDeckIfAbsent(target, cards)
	if err != nil {
		log.Error("deck export failed", zap.Error(err))
		r.out.Fail("export failed: %v", err)
		return err
	}

	if wrote {
		r.out.Success("exported %d cards to %s", len(cards), target)
	} else {
		r.out.Warn("deck already exists at %s, skipping (remove it to re-export)", target)
	}
	return nil
}
