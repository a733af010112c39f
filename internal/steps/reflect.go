package steps

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/rjoshi/studyops/internal/profile"
	"github.com/rjoshi/studyops/internal/vault"
	"github.com/rjoshi/studyops/internal/wakatime"
)

// ReflectInput carries the self-reported counters the reflect step cannot
// observe on its own. Nil pointers mean "not provided" and fall back to
// the profiler's documented defaults.
type ReflectInput struct {
	Exercise  *profile.ExerciseStats
	SelfScore *int

	CommitsPerWeek   int
	ReposContributed int
	StarsReceived    int
}

// Reflect assembles the available stats sources, evaluates the learner
// profile, persists it, and prints the result. Telemetry and vault sources
// are best-effort: when one is unavailable its bundle is absent and the
// profiler applies neutral defaults.
func (r *Runner) Reflect(ctx context.Context, in ReflectInput) error {
	if err := r.cfg.ValidateReflect(); err != nil {
		return err
	}
	log := r.stepLogger("reflect")

	deck := r.deckStatsFromVault(log)
	vcs := r.vcsStats(ctx, log, in)

	p := profile.Evaluate(r.cfg.Username, in.Exercise, deck, vcs, in.SelfScore)
	now := time.Now().UTC().Truncate(time.Second)
	p.LastEvaluated = &now

	dir, err := r.cfg.ResolveProfileDir()
	if err != nil {
		return err
	}
	store, err := profile.NewStore(dir)
	if err != nil {
		return err
	}
	if err := store.Save(p); err != nil {
		log.Error("profile save failed", zap.Error(err))
		r.out.Fail("could not save profile: %v", err)
		return err
	}
	log.Info("profile saved",
		zap.String("username", p.Username),
		zap.Int("overall_score", p.OverallScore),
		zap.String("level", string(p.Level)))

	r.printProfile(p)
	return nil
}

// deckStatsFromVault derives spaced-repetition stats from the note vault.
// Each note file that produced cards counts as one deck. Returns nil when
// no vault is configured or the scan fails.
func (r *Runner) deckStatsFromVault(log *zap.Logger) *profile.DeckStats {
	if r.cfg.VaultDir == "" {
		return nil
	}
	scanner, err := vault.NewScanner(r.cfg.VaultDir)
	if err != nil {
		log.Warn("vault unavailable for reflection", zap.Error(err))
		return nil
	}
	cards, err := scanner.Scan()
	if err != nil {
		log.Warn("vault scan failed during reflection", zap.Error(err))
		return nil
	}

	names := map[string]bool{}
	for _, c := range cards {
		// Tags are [marker, note]; the note stem names the deck.
		if len(c.Tags) > 1 {
			names[c.Tags[1]] = true
		}
	}
	deckNames := make([]string, 0, len(names))
	for n := range names {
		deckNames = append(deckNames, n)
	}
	return &profile.DeckStats{Decks: len(deckNames), DeckNames: deckNames}
}

// vcsStats combines self-reported counters with languages observed by the
// telemetry API. Returns nil only when neither source has anything.
func (r *Runner) vcsStats(ctx context.Context, log *zap.Logger, in ReflectInput) *profile.VCSStats {
	var languages []string
	if r.cfg.WakaTimeAPIKey != "" {
		client := wakatime.NewClient(r.cfg.WakaTimeAPIKey)
		stats, err := client.GetTodayStats(ctx)
		switch {
		case errors.Is(err, wakatime.ErrUnauthorized):
			log.Warn("wakatime key rejected, skipping telemetry")
			r.out.Warn("wakatime key rejected, check STUDYOPS_WAKATIME_API_KEY")
		case err != nil:
			log.Warn("telemetry fetch failed", zap.Error(err))
		default:
			for _, l := range stats.Languages {
				languages = append(languages, l.Name)
			}
			r.out.Info("coding time today: %s", stats.GrandTotal.Text)
		}
	}

	if languages == nil && in.CommitsPerWeek == 0 && in.ReposContributed == 0 && in.StarsReceived == 0 {
		return nil
	}
	return &profile.VCSStats{
		CommitsPerWeek:   in.CommitsPerWeek,
		ReposContributed: in.ReposContributed,
		StarsReceived:    in.StarsReceived,
		Languages:        languages,
	}
}

func (r *Runner) printProfile(p *profile.LearnerProfile) {
	r.out.Header("Learner profile: %s", p.Username)
	r.out.Success("overall score %d/100 (%s)", p.OverallScore, p.Level)
	for _, s := range p.Skills {
		r.out.Info("  %-20s %3d/100  %dh practice (%s confidence)", s.Name, s.Score, s.PracticeHours, s.Confidence)
	}
	if len(p.LearningGaps) > 0 {
		r.out.Warn("learning gaps: %v", p.LearningGaps)
	}
}
